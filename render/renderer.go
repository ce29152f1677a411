package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pi-catcher/constants"
	"github.com/lixenwraith/pi-catcher/engine"
	"github.com/lixenwraith/pi-catcher/physics"
	"github.com/lixenwraith/pi-catcher/status"
)

var (
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	stylePie    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDigit  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePlate  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stylePrompt = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleDetail = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleNext   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
)

// Renderer draws engine frames onto a tcell screen
type Renderer struct {
	screen  tcell.Screen
	bounds  physics.Bounds
	layout  Layout
	metrics *status.Registry
}

// NewRenderer sizes the layout from the screen; metrics may be nil
func NewRenderer(screen tcell.Screen, bounds physics.Bounds, metrics *status.Registry) *Renderer {
	r := &Renderer{screen: screen, bounds: bounds, metrics: metrics}
	r.Resize()
	return r
}

// Resize recomputes the layout after a terminal resize
func (r *Renderer) Resize() {
	cols, rows := r.screen.Size()
	r.layout = NewLayout(cols, rows, r.bounds.Half)
}

func (r *Renderer) Layout() Layout {
	return r.layout
}

// Draw renders one frame and flushes it
func (r *Renderer) Draw(rs engine.RenderState) {
	r.screen.Clear()
	r.drawStatus(rs)

	switch rs.Scene {
	case engine.SceneGame:
		for _, p := range rs.Pies {
			r.drawPie(p)
		}
		r.drawPlate(rs.PlateX, rs.PlateY)
	case engine.SceneStart, engine.SceneLoading, engine.SceneGameOver:
		r.drawPrompt(rs.Prompt, rs.Detail)
	}

	r.screen.Show()
}

func (r *Renderer) drawStatus(rs engine.RenderState) {
	cols := r.layout.Cols
	for x := 0; x < cols; x++ {
		r.screen.SetContent(x, 0, ' ', nil, styleStatus)
	}

	left := fmt.Sprintf(" π │ caught %d │ pos %d │ %s", rs.Caught, rs.Position, rs.Scene)
	x := drawText(r.screen, 0, 0, left, styleStatus)

	if rs.Scene == engine.SceneGame {
		x = drawText(r.screen, x, 0, " │ next ", styleStatus)
		next := "?"
		if rs.Digit >= 0 {
			next = strconv.Itoa(rs.Digit)
		}
		drawText(r.screen, x, 0, next, styleNext.Background(tcell.ColorSilver))
	}

	if r.metrics != nil {
		right := r.statusRight(rs.Scene, cols-x-1)
		drawText(r.screen, cols-len([]rune(right)), 0, right, styleStatus)
	}
}

// statusRight shows a pending fetch error during play, session counters otherwise
func (r *Renderer) statusRight(scene engine.Scene, width int) string {
	if msg := r.metrics.Label(status.LastError); msg != "" && scene == engine.SceneGame {
		s := []rune("fetch error: " + msg + " ")
		// Truncate, keeping the trailing pad
		if width > 2 && len(s) > width {
			s = append(s[:width-2], '…', ' ')
		}
		return string(s)
	}
	return fmt.Sprintf("miss %d wrong %d fetch %d/%d ",
		r.metrics.Count(status.Missed),
		r.metrics.Count(status.Mismatched),
		r.metrics.Count(status.FetchFailures),
		r.metrics.Count(status.Fetches),
	)
}

// drawPie fills an ellipse approximating the pie's circle with the digit at its center
func (r *Renderer) drawPie(p engine.PieView) {
	l := r.layout
	cx, cy := l.Col(p.X), l.Row(p.Y)
	rx := math.Max(l.CellsX(r.bounds.PieRadius), 1)
	ry := math.Max(l.CellsY(r.bounds.PieRadius), 1)

	for row := cy - int(ry); row <= cy+int(ry); row++ {
		for col := cx - int(rx); col <= cx+int(rx); col++ {
			if !l.InArea(col, row) {
				continue
			}
			dx := float64(col-cx) / rx
			dy := float64(row-cy) / ry
			if dx*dx+dy*dy <= 1 {
				r.screen.SetContent(col, row, constants.PieRune, nil, stylePie)
			}
		}
	}

	if l.InArea(cx, cy) {
		r.screen.SetContent(cx, cy, rune('0'+p.Digit), nil, styleDigit)
	}
}

func (r *Renderer) drawPlate(x, y float64) {
	l := r.layout
	half := r.bounds.PlateWidth / 2
	left, right := l.Col(x-half), l.Col(x+half)
	row := min(l.Row(y), l.Rows-1)

	for col := left; col <= right; col++ {
		if l.InArea(col, row) {
			r.screen.SetContent(col, row, constants.PlateRune, nil, stylePlate)
		}
	}
}

func (r *Renderer) drawPrompt(prompt, detail string) {
	l := r.layout
	mid := statusRows + (l.Rows-statusRows)/2
	drawCentered(r.screen, l.Cols, mid, prompt, stylePrompt)
	if detail != "" {
		drawCentered(r.screen, l.Cols, mid+2, detail, styleDetail)
	}
}

// drawText writes s from (x, y) and returns the column after it
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

func drawCentered(screen tcell.Screen, cols, y int, s string, style tcell.Style) {
	x := (cols - len([]rune(s))) / 2
	drawText(screen, max(x, 0), y, s, style)
}
