// Package report assembles the structured result handed to presentation
// layers. Reports are only built through Assemble, Failure and Errorf, which
// keep the visualization present exactly when the status is success.
package report

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Cyclone1070/vizagent/internal/models"
)

// Status is the outcome of a report run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const failurePrefix = "Could not generate graph due to tool execution failure"

// FailureText is reported when the tool produced nothing.
const FailureText = failurePrefix + "."

// Report is the contract between the agent and its presentation layers.
type Report struct {
	Status        Status                        `json:"status" yaml:"status"`
	Text          string                        `json:"text" yaml:"text"`
	Visualization *models.VisualizationArtifact `json:"visualization,omitempty" yaml:"visualization,omitempty"`
}

// Summary holds the statistics quoted in the narrative.
type Summary struct {
	Min   float64
	Max   float64
	Mean  float64
	Count int
}

// Summarize computes Y statistics over points. The zero Summary is returned
// for no points.
func Summarize(points []models.DataPoint) Summary {
	if len(points) == 0 {
		return Summary{}
	}
	s := Summary{Min: points[0].Y, Max: points[0].Y, Count: len(points)}
	var sum float64
	for _, p := range points {
		s.Min = min(s.Min, p.Y)
		s.Max = max(s.Max, p.Y)
		sum += p.Y
	}
	s.Mean = sum / float64(len(points))
	return s
}

// Assemble builds a success report for artifact, or the generic failure
// report when artifact is nil. It is pure: equal inputs give equal reports.
func Assemble(points []models.DataPoint, artifact *models.VisualizationArtifact) Report {
	if artifact == nil {
		return Report{Status: StatusError, Text: FailureText}
	}
	return Report{
		Status:        StatusSuccess,
		Text:          Narrative(Summarize(points)),
		Visualization: artifact,
	}
}

// Narrative is the fixed analysis text for s.
func Narrative(s Summary) string {
	return fmt.Sprintf(
		"The agent analyzed the mock performance data. It shows a generally positive correlation "+
			"between Metric X (Input/Time) and Metric Y (Output/Value). "+
			"Metric Y's values are increasing, ranging from %s to %s, with an overall average of approximately %.2f. "+
			"The embedded plot provides the definitive visual trend.",
		formatNumber(s.Min), formatNumber(s.Max), s.Mean,
	)
}

// Failure builds an error report that carries err as the diagnostic.
func Failure(err error) Report {
	if err == nil {
		return Report{Status: StatusError, Text: FailureText}
	}
	return Report{
		Status: StatusError,
		Text:   fmt.Sprintf("%s: %v", failurePrefix, err),
	}
}

// Errorf builds an error report for failures that happen before any tool runs.
func Errorf(format string, args ...any) Report {
	return Report{Status: StatusError, Text: fmt.Sprintf(format, args...)}
}

// DataURI returns the visualization as a data: URI, or "" when there is none.
func (r Report) DataURI() string {
	if r.Visualization == nil {
		return ""
	}
	v := r.Visualization
	return fmt.Sprintf("data:%s;%s,%s", v.MimeType, v.Encoding, v.Data)
}

var (
	errUnknownStatus    = errors.New("unknown status")
	errMissingArtifact  = errors.New("success report without visualization")
	errUnexpectedImage  = errors.New("error report with visualization")
	errIncompleteVisual = errors.New("visualization missing mime type, encoding or data")
)

// Validate checks the status/visualization invariant. The web handlers and the
// CLI writer refuse to present a report that fails it.
func (r Report) Validate() error {
	switch r.Status {
	case StatusSuccess:
		if r.Visualization == nil {
			return errMissingArtifact
		}
		v := r.Visualization
		if v.MimeType == "" || v.Encoding == "" || v.Data == "" {
			return errIncompleteVisual
		}
	case StatusError:
		if r.Visualization != nil {
			return errUnexpectedImage
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownStatus, r.Status)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
