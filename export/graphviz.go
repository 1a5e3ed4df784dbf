package export

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"wirepath/core"
)

// GraphvizExporter exports routed wires to Graphviz DOT syntax. Every distinct
// path point becomes a node pinned at its coordinates; wires become edges.
type GraphvizExporter struct{}

// NewGraphvizExporter creates a new Graphviz exporter
func NewGraphvizExporter() *GraphvizExporter {
	return &GraphvizExporter{}
}

// Export converts the report to Graphviz DOT syntax
func (e *GraphvizExporter) Export(r *Report) (string, error) {
	if r == nil {
		return "", errors.New("report is nil")
	}

	var sb strings.Builder

	name := r.Name
	if name == "" {
		name = "circuit"
	}
	sb.WriteString(fmt.Sprintf("graph \"%s\" {\n", e.escapeLabel(name)))

	// Global attributes
	sb.WriteString("  layout=neato;\n")
	sb.WriteString("  node [shape=point, width=0.08];\n")
	sb.WriteString("  edge [penwidth=1.5];\n")

	ids := make(map[core.Point]string)
	var order []core.Point
	detours := make(map[core.Point]bool)
	for _, res := range r.Results {
		for i, p := range res.Path.Points {
			if _, ok := ids[p]; !ok {
				ids[p] = e.getNodeID(len(order))
				order = append(order, p)
			}
			if i > 0 && i < len(res.Path.Points)-1 {
				detours[p] = true
			}
		}
	}

	if len(order) > 0 {
		sb.WriteString("\n")
	}
	for _, p := range order {
		attrs := fmt.Sprintf("pos=\"%g,%g!\"", p.X, p.Y)
		if detours[p] {
			attrs += ", color=red"
		}
		sb.WriteString(fmt.Sprintf("  %s [%s];\n", ids[p], attrs))
	}

	wrote := false
	for _, res := range r.Results {
		for _, s := range res.Path.Segments() {
			if s.Start == s.End {
				continue
			}
			if !wrote {
				sb.WriteString("\n")
				wrote = true
			}
			sb.WriteString(fmt.Sprintf("  %s -- %s [label=\"w%d\"];\n", ids[s.Start], ids[s.End], res.Index))
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

// getNodeID returns a valid DOT node identifier
func (e *GraphvizExporter) getNodeID(id int) string {
	return fmt.Sprintf("P%d", id)
}

// escapeLabel escapes special characters in labels
func (e *GraphvizExporter) escapeLabel(label string) string {
	label = strings.ReplaceAll(label, `\`, `\\`)
	label = strings.ReplaceAll(label, `"`, `\"`)
	return label
}

// GetFileExtension returns the file extension for DOT files
func (e *GraphvizExporter) GetFileExtension() string {
	return ".dot"
}

// GetFormatName returns the format name
func (e *GraphvizExporter) GetFormatName() string {
	return "Graphviz DOT"
}
