// Package export provides functionality to export routed circuits to various text-based formats
package export

import (
	"strings"

	"github.com/pkg/errors"

	"wirepath/routing"
)

// Format represents an export format
type Format string

const (
	// FormatText exports the plain routing listing (default)
	FormatText Format = "text"
	// FormatJSON exports results as JSON
	FormatJSON Format = "json"
	// FormatASCII plots the routed wires as ASCII/Unicode art
	FormatASCII Format = "ascii"
	// FormatGraphviz exports the wires as a Graphviz graph with pinned positions
	FormatGraphviz Format = "graphviz"
)

// Report is a routed circuit ready for export.
type Report struct {
	Name    string
	Results []routing.Result
}

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a report to the target format
	Export(r *Report) (string, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// Option configures exporters created by NewExporter.
type Option func(*settings)

type settings struct {
	width, height int
}

// WithCanvasSize sets the character grid used by plotting formats.
func WithCanvasSize(width, height int) Option {
	return func(s *settings) {
		s.width, s.height = width, height
	}
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format, opts ...Option) (Exporter, error) {
	s := settings{width: DefaultCanvasWidth, height: DefaultCanvasHeight}
	for _, opt := range opts {
		opt(&s)
	}

	switch format {
	case FormatText:
		return NewTextExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatASCII:
		return NewASCIIExporter(s.width, s.height), nil
	case FormatGraphviz:
		return NewGraphvizExporter(), nil
	default:
		return nil, errors.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "ascii", "plot":
		return FormatASCII, nil
	case "graphviz", "dot", "gv":
		return FormatGraphviz, nil
	default:
		return "", errors.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatText,
		FormatJSON,
		FormatASCII,
		FormatGraphviz,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatText:     "Plain listing of each request and its routed path",
		FormatJSON:     "Machine readable results",
		FormatASCII:    "ASCII/Unicode plot of the routed wires",
		FormatGraphviz: "Graphviz graph with pinned wire positions (render with neato -n)",
	}
}
