// Package export writes report visualizations to disk.
package export

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/vizagent/internal/models"
)

var (
	ErrNoVisualization     = errors.New("report has no visualization")
	ErrUnsupportedEncoding = errors.New("unsupported visualization encoding")
)

// tempFile is the minimal handle needed to write and commit a temp file.
type tempFile interface {
	io.Writer
	Sync() error
	Close() error
	Name() string
}

// FileExporter saves artifacts with a write-to-temp-then-rename sequence, so
// a reader never sees a half-written image. The syscall fields are swapped
// out in tests.
type FileExporter struct {
	createTemp func(dir, pattern string) (tempFile, error)
	rename     func(oldpath, newpath string) error
	chmod      func(name string, mode os.FileMode) error
	remove     func(name string) error
	mkdirAll   func(path string, perm os.FileMode) error
}

func NewFileExporter() *FileExporter {
	return &FileExporter{
		createTemp: func(dir, pattern string) (tempFile, error) {
			return os.CreateTemp(dir, pattern)
		},
		rename:   os.Rename,
		chmod:    os.Chmod,
		remove:   os.Remove,
		mkdirAll: os.MkdirAll,
	}
}

// SaveVisualization decodes artifact and writes the image bytes to path,
// creating parent directories as needed.
func (e *FileExporter) SaveVisualization(path string, artifact *models.VisualizationArtifact) error {
	if artifact == nil {
		return ErrNoVisualization
	}
	if artifact.Encoding != models.EncodingBase64 {
		return fmt.Errorf("%w: %q", ErrUnsupportedEncoding, artifact.Encoding)
	}

	data, err := base64.StdEncoding.DecodeString(artifact.Data)
	if err != nil {
		return fmt.Errorf("failed to decode visualization: %w", err)
	}

	if err := e.mkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	return e.writeAtomic(path, data, 0o644)
}

func (e *FileExporter) writeAtomic(path string, content []byte, perm os.FileMode) error {
	tmp, err := e.createTemp(filepath.Dir(path), ".vizagent-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
		}
		if !committed {
			_ = e.remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	// Some platforms refuse to rename an open file.
	err = tmp.Close()
	tmp = nil
	if err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := e.rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	committed = true

	if err := e.chmod(path, perm); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	return nil
}
