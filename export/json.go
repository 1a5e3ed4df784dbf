package export

import (
	"encoding/json"

	"github.com/pkg/errors"

	"wirepath/core"
)

// JSONExporter exports routing results to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

type jsonReport struct {
	Name    string       `json:"name,omitempty"`
	Results []jsonResult `json:"results"`
}

type jsonResult struct {
	Index    int          `json:"index"`
	Request  core.Request `json:"request"`
	Path     []core.Point `json:"path,omitempty"`
	Detoured bool         `json:"detoured"`
	Blocker  *int         `json:"blocker,omitempty"`
	Error    string       `json:"error,omitempty"`
	Skipped  []string     `json:"skipped,omitempty"`
}

// Export converts a report to JSON
func (e *JSONExporter) Export(r *Report) (string, error) {
	if r == nil {
		return "", errors.New("report is nil")
	}

	out := jsonReport{Name: r.Name, Results: make([]jsonResult, 0, len(r.Results))}
	for _, res := range r.Results {
		jr := jsonResult{
			Index:    res.Index,
			Request:  res.Request,
			Path:     res.Path.Points,
			Detoured: res.Path.Detoured(),
		}
		if res.Blocker != nil {
			seq := res.Blocker.Obstacle.Seq
			jr.Blocker = &seq
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		for _, s := range res.Skipped {
			jr.Skipped = append(jr.Skipped, s.Error())
		}
		out.Results = append(out.Results, jr)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to encode results")
	}
	return string(data) + "\n", nil
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
