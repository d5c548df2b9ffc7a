package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/tocview/internal/textutil"
	"github.com/mattn/go-runewidth"
)

// runeWidths caches cell widths; labels are redrawn every frame.
type runeWidths struct {
	ascii [128]int8 // width+1, 0 = unknown
	mu    sync.RWMutex
	wide  map[rune]int
}

func (c *runeWidths) width(ru rune) int {
	if ru >= 0 && ru < 128 {
		if w := c.ascii[ru]; w != 0 {
			return int(w) - 1
		}
		w := runewidth.RuneWidth(ru)
		c.ascii[ru] = int8(w + 1)
		return w
	}

	c.mu.RLock()
	w, ok := c.wide[ru]
	c.mu.RUnlock()
	if ok {
		return w
	}
	w = runewidth.RuneWidth(ru)
	c.mu.Lock()
	if c.wide == nil {
		c.wide = make(map[rune]int)
	}
	c.wide[ru] = w
	c.mu.Unlock()
	return w
}

// drawText writes text from startX, stopping before maxX. Zero-width runes
// are attached to the preceding cell. It returns the column after the text.
func (r *Renderer) drawText(startX, y, maxX int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	for i := 0; i < len(runes); {
		mainc := runes[i]
		i++
		var combc []rune
		for i < len(runes) && r.widths.width(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}
		w := r.widths.width(mainc)
		if w < 1 {
			w = 1
		}
		if x+w > maxX {
			break
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		for k := 1; k < w; k++ {
			r.screen.SetContent(x+k, y, ' ', nil, style)
		}
		x += w
	}
	return x
}

// fill paints [startX, maxX) of row y with blanks.
func (r *Renderer) fill(startX, y, maxX int, style tcell.Style) {
	for x := startX; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawRow draws a whole row of width cells: text truncated to fit, the
// remainder padded.
func (r *Renderer) drawRow(x, y, width int, text string, style tcell.Style) {
	if width <= 0 {
		return
	}
	end := r.drawText(x, y, x+width, textutil.Truncate(text, width), style)
	r.fill(end, y, x+width, style)
}

// drawRight draws text right-aligned so that it ends at maxX. It returns the
// column where the text starts.
func (r *Renderer) drawRight(minX, y, maxX int, text string, style tcell.Style) int {
	w := textutil.Width(text)
	start := maxX - w
	if start < minX {
		return maxX
	}
	r.drawText(start, y, maxX, text, style)
	return start
}
