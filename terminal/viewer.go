// Package terminal shows plotted circuits in an interactive tcell screen.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"wirepath/canvas"
)

var (
	styleLine     = tcell.StyleDefault
	styleEndpoint = tcell.StyleDefault.Bold(true)
	styleDetour   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

// Viewer draws a canvas on a screen with a status line underneath. The arrow
// keys scroll canvases larger than the screen; q, Esc and Ctrl-C quit.
type Viewer struct {
	screen  tcell.Screen
	canvas  *canvas.MatrixCanvas
	title   string
	status  string
	offsetX int
	offsetY int
}

// NewViewer creates a viewer for an initialised screen.
func NewViewer(screen tcell.Screen, c *canvas.MatrixCanvas, title string) *Viewer {
	return &Viewer{screen: screen, canvas: c, title: title}
}

// SetStatus sets extra text shown after the title on the status line.
func (v *Viewer) SetStatus(status string) {
	v.status = status
}

// Offset returns the canvas cell shown in the top-left corner.
func (v *Viewer) Offset() (x, y int) {
	return v.offsetX, v.offsetY
}

// Draw renders the visible part of the canvas and the status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	_, h := v.screen.Size()
	Show(v.screen, v.canvas, v.offsetX, v.offsetY, h-1)
	v.drawStatus()
	v.screen.Show()
}

func (v *Viewer) drawStatus() {
	w, h := v.screen.Size()
	if h < 1 {
		return
	}

	title := v.title
	if title == "" {
		title = "untitled"
	}
	line := fmt.Sprintf("[ %s ] ", title)
	if v.status != "" {
		line += v.status + " | "
	}
	line += "arrows scroll, q quits"

	x := drawString(v.screen, 0, h-1, w, line, styleStatus)
	for ; x < w; x++ {
		v.screen.SetContent(x, h-1, ' ', nil, styleStatus)
	}
}

// drawString writes text on row y from column x, clipped at column limit, and
// returns the column after the last cell written. Wide runes take two cells
// and are dropped when only one is left.
func drawString(screen tcell.Screen, x, y, limit int, text string, style tcell.Style) int {
	for _, r := range text {
		width := runewidth.RuneWidth(r)
		if width == 0 {
			continue
		}
		if x+width > limit {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += width
	}
	return x
}

// Frame replaces the canvas and status line of a running viewer.
type Frame struct {
	Canvas *canvas.MatrixCanvas
	Status string
}

// Post queues a frame for the viewer's event loop. It is safe to call from
// other goroutines.
func (v *Viewer) Post(f Frame) error {
	return v.screen.PostEvent(tcell.NewEventInterrupt(f))
}

// HandleEvent applies one event and reports whether the viewer should keep
// running.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' || ev.Rune() == 'Q' {
				return false
			}
		case tcell.KeyLeft:
			v.scroll(-1, 0)
		case tcell.KeyRight:
			v.scroll(1, 0)
		case tcell.KeyUp:
			v.scroll(0, -1)
		case tcell.KeyDown:
			v.scroll(0, 1)
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.scroll(0, 0)
	case *tcell.EventInterrupt:
		if f, ok := ev.Data().(Frame); ok && f.Canvas != nil {
			v.canvas = f.Canvas
			v.status = f.Status
			v.scroll(0, 0)
		}
	}
	return true
}

// scroll moves the view, keeping it within the canvas.
func (v *Viewer) scroll(dx, dy int) {
	sw, sh := v.screen.Size()
	cw, ch := v.canvas.Size()
	v.offsetX = clamp(v.offsetX+dx, 0, cw-sw)
	v.offsetY = clamp(v.offsetY+dy, 0, ch-(sh-1))
}

// Run draws and handles events until the user quits or the screen is
// finalised.
func (v *Viewer) Run() error {
	if v.screen == nil || v.canvas == nil {
		return errors.New("viewer needs a screen and a canvas")
	}
	for {
		v.Draw()
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !v.HandleEvent(ev) {
			return nil
		}
	}
}

// Show copies up to rows lines of the canvas onto the screen, starting at the
// given canvas offset. Markers are highlighted.
func Show(screen tcell.Screen, c *canvas.MatrixCanvas, offsetX, offsetY, rows int) {
	sw, _ := screen.Size()
	cw, ch := c.Size()
	for y := 0; y < rows && offsetY+y < ch; y++ {
		for x := 0; x < sw && offsetX+x < cw; x++ {
			r := c.Get(canvas.Cell{X: offsetX + x, Y: offsetY + y})
			screen.SetContent(x, y, r, nil, styleFor(r))
		}
	}
}

func styleFor(r rune) tcell.Style {
	switch r {
	case canvas.MarkEndpoint:
		return styleEndpoint
	case canvas.MarkDetour:
		return styleDetour
	default:
		return styleLine
	}
}

// Preview opens the terminal, shows the canvas until the user quits and
// restores the terminal. start, if non-nil, is called with the viewer before
// the event loop begins.
func Preview(c *canvas.MatrixCanvas, title, status string, start func(*Viewer)) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "failed to open terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "failed to setup terminal")
	}
	defer screen.Fini()

	v := NewViewer(screen, c, title)
	v.SetStatus(status)
	if start != nil {
		start(v)
	}
	return v.Run()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
