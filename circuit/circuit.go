// Package circuit loads the wire requests of a circuit from text or JSON files.
package circuit

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"wirepath/core"
)

// Format identifies an input file format.
type Format string

const (
	// FormatText is the line oriented wire list format.
	FormatText Format = "wires"
	// FormatJSON is the JSON circuit format.
	FormatJSON Format = "json"
)

// Wire is a single wire request as written in a circuit file.
type Wire struct {
	From core.Point `json:"from"`
	To   core.Point `json:"to"`
	// Line is the source line of the wire in text files, 0 otherwise.
	Line int `json:"-"`
}

// Circuit is an ordered list of wires to route.
type Circuit struct {
	Name  string `json:"name,omitempty"`
	Wires []Wire `json:"wires"`
}

// Requests converts the wires to router requests, preserving order.
func (c *Circuit) Requests() []core.Request {
	reqs := make([]core.Request, len(c.Wires))
	for i, w := range c.Wires {
		reqs[i] = core.Request{Start: w.From, End: w.To}
	}
	return reqs
}

// Parser reads circuits in the text format.
type Parser struct {
	parser *participle.Parser[wireFile]
}

// NewParser creates a new wire list parser.
func NewParser() (*Parser, error) {
	p, err := buildParser()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build parser")
	}
	return &Parser{parser: p}, nil
}

// Parse parses a wire list from a reader. The filename is only used in errors.
func (p *Parser) Parse(filename string, r io.Reader) (*Circuit, error) {
	file, err := p.parser.Parse(filename, r)
	if err != nil {
		return nil, errors.Wrap(err, "parse error")
	}
	return fromTree(file), nil
}

// ParseString parses a wire list from a string.
func (p *Parser) ParseString(input string) (*Circuit, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, errors.Wrap(err, "parse error")
	}
	return fromTree(file), nil
}

func fromTree(file *wireFile) *Circuit {
	c := &Circuit{Wires: make([]Wire, 0, len(file.Wires))}
	if file.Name != nil {
		c.Name = *file.Name
	}
	for _, w := range file.Wires {
		c.Wires = append(c.Wires, Wire{
			From: core.Pt(w.From.X, w.From.Y),
			To:   core.Pt(w.To.X, w.To.Y),
			Line: w.Pos.Line,
		})
	}
	return c
}

// ParseJSON decodes a circuit from JSON.
func ParseJSON(r io.Reader) (*Circuit, error) {
	var c Circuit
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "invalid circuit JSON")
	}
	if c.Wires == nil {
		c.Wires = []Wire{}
	}
	return &c, nil
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "wires", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", errors.Errorf("unknown input format: %s", s)
	}
}

// DetectFormat guesses the format of a file from its extension.
// Unknown extensions are read as text.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Read parses a circuit in the given format.
func Read(filename string, r io.Reader, format Format) (*Circuit, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(r)
	case FormatText:
		p, err := NewParser()
		if err != nil {
			return nil, err
		}
		return p.Parse(filename, r)
	default:
		return nil, errors.Errorf("unsupported input format: %s", format)
	}
}

// Load reads a circuit file. An empty format is detected from the extension.
func Load(filename string, format Format) (*Circuit, error) {
	if format == "" {
		format = DetectFormat(filename)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()

	c, err := Read(filename, f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filename)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return c, nil
}

// Demo returns the two crossing wires used as the built in example.
func Demo() *Circuit {
	return &Circuit{
		Name: "demo",
		Wires: []Wire{
			{From: core.Pt(-100, 0), To: core.Pt(100, 0)},
			{From: core.Pt(0, -100), To: core.Pt(0, 100)},
		},
	}
}
