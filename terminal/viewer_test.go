package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"wirepath/canvas"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func crossCanvas(t *testing.T) *canvas.MatrixCanvas {
	t.Helper()
	c, err := canvas.NewMatrixCanvas(5, 3)
	if err != nil {
		t.Fatal(err)
	}
	c.DrawLine(canvas.Cell{X: 0, Y: 1}, canvas.Cell{X: 4, Y: 1})
	c.DrawLine(canvas.Cell{X: 2, Y: 0}, canvas.Cell{X: 2, Y: 2})
	c.Mark(canvas.Cell{X: 0, Y: 1}, canvas.MarkEndpoint)
	c.Mark(canvas.Cell{X: 2, Y: 1}, canvas.MarkDetour)
	return c
}

// row returns the runes shown on one screen row.
func row(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(runes[0])
	}
	return sb.String()
}

func TestViewer_Draw(t *testing.T) {
	s := newScreen(t, 8, 4)
	v := NewViewer(s, crossCanvas(t), "demo")
	v.Draw()

	want := []string{"  │     ", "o─+──   ", "  │     "}
	for y, line := range want {
		if got := row(s, y); got != line {
			t.Errorf("row %d = %q, want %q", y, got, line)
		}
	}
	if got := row(s, 3); !strings.HasPrefix(got, "[ demo ]") {
		t.Errorf("status line = %q", got)
	}

	cells, w, _ := s.GetContents()
	fg, _, _ := cells[1*w+2].Style.Decompose()
	if fg != tcell.ColorRed {
		t.Errorf("detour marker colour = %v, want red", fg)
	}
}

func TestViewer_HandleEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want bool
	}{
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true},
		{"arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewer(newScreen(t, 8, 4), crossCanvas(t), "")
			if got := v.HandleEvent(tt.ev); got != tt.want {
				t.Errorf("HandleEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewer_ScrollIsClamped(t *testing.T) {
	// 3x2 screen leaves a 3x1 view onto the 5x3 canvas
	v := NewViewer(newScreen(t, 3, 2), crossCanvas(t), "")
	for i := 0; i < 5; i++ {
		v.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
		v.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	}
	if x, y := v.Offset(); x != 2 || y != 2 {
		t.Errorf("Offset() = (%d, %d), want (2, 2)", x, y)
	}

	v.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	v.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if x, y := v.Offset(); x != 1 || y != 1 {
		t.Errorf("Offset() = (%d, %d), want (1, 1)", x, y)
	}
}

func TestViewer_RunStopsOnQuit(t *testing.T) {
	s := newScreen(t, 8, 4)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := NewViewer(s, crossCanvas(t), "demo").Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestViewer_RunNeedsCanvas(t *testing.T) {
	if err := NewViewer(newScreen(t, 8, 4), nil, "").Run(); err == nil {
		t.Error("Run without a canvas should fail")
	}
}

func TestViewer_FrameReplacesCanvas(t *testing.T) {
	s := newScreen(t, 40, 4)
	v := NewViewer(s, crossCanvas(t), "demo")

	c, err := canvas.NewMatrixCanvas(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	c.Mark(canvas.Cell{X: 0, Y: 0}, canvas.MarkEndpoint)
	c.Mark(canvas.Cell{X: 2, Y: 0}, canvas.MarkDetour)

	if !v.HandleEvent(tcell.NewEventInterrupt(Frame{Canvas: c, Status: "step 1"})) {
		t.Fatal("frame event should not quit")
	}
	v.Draw()

	if got := strings.TrimRight(row(s, 0), " "); got != "o +" {
		t.Errorf("row 0 = %q", got)
	}
	if got := row(s, 3); !strings.HasPrefix(got, "[ demo ] step 1 | arrows") {
		t.Errorf("status line = %q", got)
	}
}

func TestViewer_StatusLineIsClipped(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"title only", 8, "[ demo ]"},
		{"cut inside status", 14, "[ demo ] wire "},
		{"wide enough", 60, "[ demo ] wire 1 | arrows scroll, q quits" + strings.Repeat(" ", 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScreen(t, tt.width, 3)
			v := NewViewer(s, crossCanvas(t), "demo")
			v.SetStatus("wire 1")
			v.Draw()

			if got := row(s, 2); got != tt.want {
				t.Errorf("status line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestViewer_StatusLineWideRunes(t *testing.T) {
	s := newScreen(t, 20, 2)
	v := NewViewer(s, crossCanvas(t), "配線")
	v.Draw()

	cells, w, _ := s.GetContents()
	status := cells[1*w:]
	for x, want := range map[int]rune{0: '[', 2: '配', 4: '線', 7: ']', 9: 'a'} {
		if runes := status[x].Runes; len(runes) == 0 || runes[0] != want {
			t.Errorf("status cell %d = %q, want %q", x, runes, want)
		}
	}
}

func TestDrawString_DropsWideRuneAtEdge(t *testing.T) {
	s := newScreen(t, 5, 1)
	if next := drawString(s, 0, 0, 3, "ab配", tcell.StyleDefault); next != 2 {
		t.Errorf("drawString returned %d, want 2", next)
	}
	s.Show()
	if got := row(s, 0); got != "ab   " {
		t.Errorf("row = %q", got)
	}
}

func TestViewer_PostDeliversFrame(t *testing.T) {
	s := newScreen(t, 8, 4)
	v := NewViewer(s, crossCanvas(t), "demo")

	c, _ := canvas.NewMatrixCanvas(1, 1)
	if err := v.Post(Frame{Canvas: c}); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := v.Run(); err != nil {
		t.Fatal(err)
	}
	if got := row(s, 0); got != "        " {
		t.Errorf("row 0 = %q, want the posted blank canvas", got)
	}
}
