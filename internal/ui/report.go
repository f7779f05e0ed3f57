// Package ui renders reports and progress for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/vizagent/internal/config"
	"github.com/Cyclone1070/vizagent/internal/report"
	"github.com/charmbracelet/glamour"
)

// Renderer formats reports for the terminal: a status badge followed by the
// narrative rendered as markdown.
type Renderer struct {
	md *glamour.TermRenderer
}

// NewRenderer builds a renderer with the configured glamour style
// ("auto", "dark", "light", "notty", ... or a JSON style file).
func NewRenderer(cfg config.UIConfig) (*Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithStylePath(cfg.Style)}
	if cfg.WordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(cfg.WordWrap))
	}
	md, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{md: md}, nil
}

// Render formats r. imagePath, when non-empty, is where the PNG was saved.
func (rd *Renderer) Render(r report.Report, imagePath string) (string, error) {
	body, err := rd.md.Render(Markdown(r, imagePath))
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return Badge(r.Status) + "\n" + body, nil
}

// Badge renders the report status as a colored label.
func Badge(s report.Status) string {
	if s == report.StatusSuccess {
		return successBadge.Render(strings.ToUpper(string(s)))
	}
	return errorBadge.Render(strings.ToUpper(string(s)))
}

// Markdown is the report body before terminal styling.
func Markdown(r report.Report, imagePath string) string {
	var sb strings.Builder
	sb.WriteString("# Agent Report\n\n")
	sb.WriteString(r.Text)
	sb.WriteString("\n\n")

	v := r.Visualization
	if v == nil {
		sb.WriteString("_No visualization was produced._\n")
		return sb.String()
	}

	sb.WriteString("## Visualization\n\n")
	fmt.Fprintf(&sb, "- MIME type: `%s`\n", v.MimeType)
	fmt.Fprintf(&sb, "- Encoding: `%s` (%d characters)\n", v.Encoding, len(v.Data))
	if imagePath != "" {
		fmt.Fprintf(&sb, "- Saved to: `%s`\n", imagePath)
	}
	return sb.String()
}
