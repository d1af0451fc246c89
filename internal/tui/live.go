package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/SharonMathew4/StellarForge/internal/particle"
)

const (
	width       = 78
	height      = 24
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws the particle cloud as an XY projection in the
// terminal, brighter where more particles land on the same cell.
type LiveRenderer struct {
	scale     float64
	frameRate int
	lastFrame time.Time
	counts    [][]int
}

func NewLiveRenderer(scale float64, frameRate int) *LiveRenderer {
	counts := make([][]int, height)
	for i := range counts {
		counts[i] = make([]int, width)
	}
	return &LiveRenderer{scale: scale, frameRate: frameRate, counts: counts}
}

// OnStep renders a frame, gated to the configured frame rate.
func (r *LiveRenderer) OnStep(s *particle.System, t float64, stepMS float64) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	for y := range r.counts {
		for x := range r.counts[y] {
			r.counts[y][x] = 0
		}
	}

	for i := 0; i < s.Len(); i++ {
		px := int((float64(s.Pos[i][0])/r.scale + 1) * 0.5 * float64(width-1))
		py := int((1 - (float64(s.Pos[i][1])/r.scale+1)*0.5) * float64(height-1))
		if px >= 0 && px < width && py >= 0 && py < height {
			r.counts[py][px]++
		}
	}

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  t=%.3f  n=%d  step=%.2fms\n", t, s.Len(), stepMS))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.counts {
		b.WriteString("  ")
		for _, c := range row {
			b.WriteRune(densityChar(c))
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	fmt.Print(b.String())
}

func densityChar(c int) rune {
	switch {
	case c == 0:
		return ' '
	case c == 1:
		return '·'
	case c == 2:
		return '∘'
	case c <= 4:
		return '○'
	default:
		return '●'
	}
}

func (r *LiveRenderer) Start() { fmt.Print(hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Print(showCursor) }
