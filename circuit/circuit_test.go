package circuit

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"wirepath/core"
)

func TestParser_ParseString(t *testing.T) {
	input := `# the demo circuit
circuit "crossing"
wire (-100, 0) -> (100, 0)
wire (0,-100)->(0, 100)   # vertical
wire (1.5, -2.25) -> (+3, 1e2)
`
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	c, err := p.ParseString(input)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	if c.Name != "crossing" {
		t.Errorf("Name = %q, want crossing", c.Name)
	}
	want := []core.Request{
		{Start: core.Pt(-100, 0), End: core.Pt(100, 0)},
		{Start: core.Pt(0, -100), End: core.Pt(0, 100)},
		{Start: core.Pt(1.5, -2.25), End: core.Pt(3, 100)},
	}
	if got := c.Requests(); !reflect.DeepEqual(got, want) {
		t.Errorf("Requests() = %v, want %v", got, want)
	}
	if c.Wires[1].Line != 4 {
		t.Errorf("second wire line = %d, want 4", c.Wires[1].Line)
	}
}

func TestParser_Empty(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatal(err)
	}
	c, err := p.ParseString("# nothing to route\n")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if len(c.Requests()) != 0 {
		t.Errorf("expected no requests, got %v", c.Requests())
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Missing arrow", "wire (0, 0) (1, 1)"},
		{"Missing coordinate", "wire (0) -> (1, 1)"},
		{"Unknown keyword", "line (0, 0) -> (1, 1)"},
		{"Bad character", "wire (0, 0) -> (1, 1) ;"},
	}

	p, err := NewParser()
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.ParseString(tt.input); err == nil {
				t.Errorf("ParseString(%q) should fail", tt.input)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	input := `{"name": "j", "wires": [{"from": {"x": -10, "y": 0}, "to": {"x": 10, "y": 0}}]}`
	c, err := ParseJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if c.Name != "j" || len(c.Wires) != 1 {
		t.Fatalf("decoded %+v", c)
	}
	if c.Wires[0].From != core.Pt(-10, 0) || c.Wires[0].To != core.Pt(10, 0) {
		t.Errorf("wire = %+v", c.Wires[0])
	}

	if _, err := ParseJSON(strings.NewReader(`{"wirez": []}`)); err == nil {
		t.Error("unknown fields should be rejected")
	}
}

func TestDetectAndParseFormat(t *testing.T) {
	if DetectFormat("a/b.JSON") != FormatJSON {
		t.Error(".JSON should be detected as json")
	}
	if DetectFormat("board.wires") != FormatText {
		t.Error(".wires should be detected as text")
	}
	if f, err := ParseFormat("txt"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(txt) = %v, %v", f, err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) should fail")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "board.wires")
	if err := os.WriteFile(text, []byte("wire (0, 0) -> (1, 0)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(text, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Name != "board" || len(c.Wires) != 1 {
		t.Errorf("loaded %+v", c)
	}

	if _, err := Load(filepath.Join(dir, "missing.wires"), ""); err == nil {
		t.Error("loading a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.wires")
	if err := os.WriteFile(bad, []byte("wire (0, 0) ->"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad, ""); err == nil || !strings.Contains(err.Error(), "bad.wires") {
		t.Errorf("Load error should name the file, got %v", err)
	}
}

func TestDemo(t *testing.T) {
	reqs := Demo().Requests()
	if len(reqs) != 2 || reqs[0].Start != core.Pt(-100, 0) || reqs[1].End != core.Pt(0, 100) {
		t.Errorf("Demo() requests = %v", reqs)
	}
}
