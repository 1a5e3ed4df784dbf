// Package markdown finds circuit code blocks in markdown documents.
package markdown

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"wirepath/circuit"
)

// CircuitBlock represents a circuit code block found in markdown
type CircuitBlock struct {
	Format    circuit.Format // wires or json
	Content   string         // The block content with the fence indentation removed
	StartLine int            // Line number where block starts (0-based)
	EndLine   int            // Line number where block ends
	Indent    string         // Indentation before the code fence
}

// Scanner finds and extracts circuit blocks from markdown content
type Scanner struct {
	lines []string
}

// NewScanner creates a new markdown scanner
func NewScanner(content string) *Scanner {
	return &Scanner{
		lines: strings.Split(content, "\n"),
	}
}

// FindCircuitBlocks finds all circuit code blocks in the markdown. A block
// left open at the end of the document is ignored.
func (s *Scanner) FindCircuitBlocks() []CircuitBlock {
	var blocks []CircuitBlock
	var current *CircuitBlock
	var content []string

	for i, line := range s.lines {
		trimmed := strings.TrimLeft(line, " \t")

		if current == nil {
			if !strings.HasPrefix(trimmed, "```") {
				continue
			}
			lang := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			if format, ok := circuitLanguage(lang); ok {
				current = &CircuitBlock{
					Format:    format,
					StartLine: i,
					Indent:    line[:len(line)-len(trimmed)],
				}
				content = nil
			}
			continue
		}

		// Check for code fence end
		if strings.HasPrefix(trimmed, "```") {
			current.EndLine = i
			current.Content = strings.Join(content, "\n")
			blocks = append(blocks, *current)
			current = nil
			continue
		}

		content = append(content, strings.TrimPrefix(line, current.Indent))
	}

	return blocks
}

// Circuit parses the block. Parse errors carry the block's position in the
// document.
func (b CircuitBlock) Circuit(p *circuit.Parser) (*circuit.Circuit, error) {
	var (
		c   *circuit.Circuit
		err error
	)
	switch b.Format {
	case circuit.FormatJSON:
		c, err = circuit.ParseJSON(strings.NewReader(b.Content))
	default:
		c, err = p.ParseString(b.Content)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "block at line %d", b.StartLine+1)
	}
	return c, nil
}

// circuitLanguage maps a code fence language to a circuit format.
func circuitLanguage(lang string) (circuit.Format, bool) {
	switch strings.ToLower(lang) {
	case "wires", "wirepath", "circuit":
		return circuit.FormatText, true
	case "wires-json", "circuit-json":
		return circuit.FormatJSON, true
	default:
		return "", false
	}
}

// FormatBlockInfo returns a human-readable description of a block
func FormatBlockInfo(block CircuitBlock, index int) string {
	// Extract first meaningful line of content for preview
	preview := ""
	for _, line := range strings.Split(block.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			preview = trimmed
			if len(preview) > 50 {
				preview = preview[:47] + "..."
			}
			break
		}
	}

	return fmt.Sprintf("%d. %s (line %d): %s", index+1, block.Format, block.StartLine+1, preview)
}
