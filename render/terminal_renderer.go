package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/tumble/engine"
)

// statusRows is the height of the status line below the playfield
const statusRows = 1

// TerminalRenderer paints a world onto a tcell screen scaled to fit the terminal
type TerminalRenderer struct {
	screen     tcell.Screen
	showStatus bool
	title      string
}

// NewTerminalRenderer creates a renderer drawing to screen
func NewTerminalRenderer(screen tcell.Screen, title string) *TerminalRenderer {
	return &TerminalRenderer{
		screen:     screen,
		showStatus: true,
		title:      title,
	}
}

// SetStatus toggles the status line
func (r *TerminalRenderer) SetStatus(on bool) {
	r.showStatus = on
}

// Render clears the screen, paints elements in depth order and flushes
// Elements not implementing Painter are drawn as plain blocks
func (r *TerminalRenderer) Render(w *engine.World) error {
	cols, rows := r.screen.Size()
	if r.showStatus {
		rows -= statusRows
	}
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("terminal too small: %dx%d", cols, rows)
	}

	bg := tcell.StyleDefault.Background(RgbBackground)
	r.screen.SetStyle(bg)
	r.screen.Clear()

	canvas := NewCanvas(r.screen, Viewport{
		WorldWidth:  w.Width,
		WorldHeight: w.Height,
		Cols:        cols,
		Rows:        rows,
	})

	for _, e := range w.PaintOrder() {
		if p, ok := e.(Painter); ok {
			p.Paint(canvas)
			continue
		}
		canvas.FillRect(e.Base().Rect(), '#', bg.Foreground(RgbStatusText))
	}

	if r.showStatus {
		r.drawStatus(w, cols, rows)
	}

	r.screen.Show()
	return nil
}

func (r *TerminalRenderer) drawStatus(w *engine.World, cols, row int) {
	style := tcell.StyleDefault.Background(RgbStatusBg).Foreground(RgbStatusText)
	st := w.Stats()
	line := fmt.Sprintf(" %s  step %d  bodies %d  passes %d  hits %d ",
		r.title, st.Steps, st.Bodies, st.Passes, st.Collisions)

	for x := 0; x < cols; x++ {
		ch := ' '
		if x < len(line) {
			ch = rune(line[x])
		}
		r.screen.SetContent(x, row, ch, nil, style)
	}
}
