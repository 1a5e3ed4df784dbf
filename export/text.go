package export

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// TextExporter writes one block per request: the request, then its routed
// path or the reason it was rejected.
type TextExporter struct{}

// NewTextExporter creates a new text exporter
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Export converts the report to a plain listing
func (e *TextExporter) Export(r *Report) (string, error) {
	if r == nil {
		return "", errors.New("report is nil")
	}

	var sb strings.Builder
	if r.Name != "" {
		fmt.Fprintf(&sb, "circuit %s\n", r.Name)
	}

	for _, res := range r.Results {
		fmt.Fprintf(&sb, "drawing %s\n", res.Request)
		if res.Err != nil {
			fmt.Fprintf(&sb, "  error: %v\n", res.Err)
			continue
		}
		for _, skipped := range res.Skipped {
			fmt.Fprintf(&sb, "  skipped: %v\n", skipped)
		}
		if res.Blocker != nil {
			fmt.Fprintf(&sb, "  path: %s (detour, blocked by obstacle %d)\n", res.Path, res.Blocker.Obstacle.Seq)
		} else {
			fmt.Fprintf(&sb, "  path: %s\n", res.Path)
		}
	}

	return sb.String(), nil
}

// GetFileExtension returns the file extension for the listing
func (e *TextExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *TextExporter) GetFormatName() string {
	return "Text"
}
