package preview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/alexisbeaulieu97/slidesmith/internal/layout"
	"github.com/alexisbeaulieu97/slidesmith/internal/theme"
)

const (
	minCanvasCols = 20
	darkInk       = "#0f172a"
	lightInk      = "#ffffff"
)

// cell is one terminal column of the slide canvas.
type cell struct {
	r     rune
	cont  bool // right half of a wide rune
	fill  bool
	fg    string
	bg    string
	bold  bool
	focus bool
}

type canvas struct {
	cols, rows int
	cells      [][]cell
	palette    theme.Palette
}

// canvasRows keeps the 16:9 aspect for terminal cells roughly twice as tall
// as they are wide.
func canvasRows(cols int) int {
	return max(4, int(math.Round(float64(cols)*layout.CanvasHeight/layout.CanvasWidth/2)))
}

func newCanvas(cols int, res theme.Resolution) *canvas {
	cols = max(cols, minCanvasCols)
	rows := canvasRows(cols)
	c := &canvas{cols: cols, rows: rows, cells: make([][]cell, rows), palette: res.Palette}
	for y := range c.cells {
		c.cells[y] = make([]cell, cols)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' ', bg: backgroundAt(res, float64(x)/float64(cols), float64(y)/float64(rows))}
		}
	}
	return c
}

// backgroundAt samples the slide background at a fractional position.
// Images are approximated by their base color under the template scrim.
func backgroundAt(res theme.Resolution, fx, fy float64) string {
	bg := res.Background
	switch bg.Kind {
	case theme.PaintSolid:
		return bg.Color
	case theme.PaintGradient:
		switch len(bg.Stops) {
		case 0:
			return res.Base
		case 1:
			return bg.Stops[0]
		}
		// 155deg runs from the top-left corner to the bottom-right one
		pos := (fx*0.6 + fy*0.4) * float64(len(bg.Stops)-1)
		i := min(int(pos), len(bg.Stops)-2)
		return theme.BlendHex(bg.Stops[i], bg.Stops[i+1], pos-float64(i))
	default:
		if res.Overlay > 0 {
			return theme.BlendHex(res.Base, "#000000", res.Overlay)
		}
		return res.Base
	}
}

type rect struct{ x0, y0, x1, y1 int }

func (r rect) width() int  { return r.x1 - r.x0 }
func (r rect) height() int { return r.y1 - r.y0 }

// rect maps a fractional box onto cells. Anything with area keeps at least
// one cell.
func (c *canvas) rect(b layout.Box) rect {
	x0 := clampInt(int(math.Round(b.X*float64(c.cols))), 0, c.cols-1)
	y0 := clampInt(int(math.Round(b.Y*float64(c.rows))), 0, c.rows-1)
	x1 := clampInt(int(math.Round((b.X+b.W)*float64(c.cols))), x0+1, c.cols)
	y1 := clampInt(int(math.Round((b.Y+b.H)*float64(c.rows))), y0+1, c.rows)
	return rect{x0, y0, x1, y1}
}

func (c *canvas) draw(plan layout.Plan, focus string) {
	for _, r := range plan.Regions {
		if r.Box.W <= 0 || r.Box.H <= 0 {
			continue
		}
		switch r.Kind {
		case layout.RegionShape:
			c.shape(r)
		case layout.RegionIcon:
			c.icon(r)
		case layout.RegionImage:
			c.badge(r)
		default:
			c.text(r)
		}
		if focus != "" && r.Name == focus {
			c.mark(c.rect(r.Box))
		}
	}
}

func (c *canvas) shape(r layout.Region) {
	area := c.rect(r.Box)
	color := r.Style.Color(c.palette)
	thinH := r.Box.H*float64(c.rows) < 0.5
	thinW := r.Box.W*float64(c.cols) < 0.5

	switch {
	case thinH:
		c.line(area.x0, area.x1, area.y0, '─', color)
		return
	case thinW:
		for y := area.y0; y < area.y1; y++ {
			c.set(area.x0, y, '│', color, false)
		}
		return
	case r.Style.Role == layout.RoleSurface:
		c.fill(area, c.palette.CardSurface)
		c.frame(area, c.palette.CardBorder)
	default:
		c.fill(area, color)
	}

	if r.Content != "" {
		ink := c.palette.Accent
		if r.Style.Role != layout.RoleSurface {
			ink = contrast(color)
		}
		c.write(area, []string{r.Content}, layout.AlignCenter, ink, true)
	}
}

func (c *canvas) icon(r layout.Region) {
	area := c.rect(r.Box)
	c.write(area, []string{r.Content}, layout.AlignCenter, r.Style.Color(c.palette), false)
}

// badge marks the user image corner.
func (c *canvas) badge(r layout.Region) {
	area := c.rect(r.Box)
	c.fill(area, c.palette.CardSurface)
	c.frame(area, c.palette.CardBorder)
	c.write(area, []string{"▣ image"}, layout.AlignCenter, c.palette.Muted, false)
}

func (c *canvas) text(r layout.Region) {
	text := r.Text()
	if strings.TrimSpace(r.Content) == "" {
		return
	}
	area := c.rect(r.Box)
	c.write(area, wrap(text, area.width()), r.Style.Align, r.Style.Color(c.palette), r.Style.Bold)
}

// write lays lines into area, vertically centered, cutting the last visible
// line with an ellipsis when they do not fit.
func (c *canvas) write(area rect, lines []string, align layout.Align, fg string, bold bool) {
	if len(lines) == 0 {
		return
	}
	if len(lines) > area.height() {
		lines = lines[:area.height()]
		last := len(lines) - 1
		lines[last] = runewidth.Truncate(lines[last]+" …", area.width(), "…")
	}

	top := area.y0
	if align == layout.AlignCenter {
		top += (area.height() - len(lines)) / 2
	}
	for i, line := range lines {
		x := area.x0
		if align == layout.AlignCenter {
			x += max(0, (area.width()-runewidth.StringWidth(line))/2)
		}
		c.put(x, area.x1, top+i, line, fg, bold)
	}
}

func (c *canvas) put(x, limit, y int, s string, fg string, bold bool) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			return
		}
		c.set(x, y, r, fg, bold)
		if w == 2 {
			c.cells[y][x+1].cont = true
		}
		x += w
	}
}

func (c *canvas) set(x, y int, r rune, fg string, bold bool) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	cl := &c.cells[y][x]
	// drawn cells keep the fill color as background but are no longer blank
	cl.r, cl.fg, cl.bold, cl.cont, cl.fill = r, fg, bold, false, false
}

func (c *canvas) fill(area rect, color string) {
	for y := area.y0; y < area.y1; y++ {
		for x := area.x0; x < area.x1; x++ {
			c.cells[y][x] = cell{r: ' ', fill: true, bg: color}
		}
	}
}

func (c *canvas) line(x0, x1, y int, r rune, fg string) {
	for x := x0; x < x1; x++ {
		c.set(x, y, r, fg, false)
	}
}

func (c *canvas) frame(area rect, fg string) {
	if area.width() < 2 || area.height() < 2 {
		return
	}
	right, bottom := area.x1-1, area.y1-1
	c.line(area.x0+1, right, area.y0, '─', fg)
	c.line(area.x0+1, right, bottom, '─', fg)
	for y := area.y0 + 1; y < bottom; y++ {
		c.set(area.x0, y, '│', fg, false)
		c.set(right, y, '│', fg, false)
	}
	c.set(area.x0, area.y0, '╭', fg, false)
	c.set(right, area.y0, '╮', fg, false)
	c.set(area.x0, bottom, '╰', fg, false)
	c.set(right, bottom, '╯', fg, false)
}

func (c *canvas) mark(area rect) {
	for y := area.y0; y < area.y1; y++ {
		for x := area.x0; x < area.x1; x++ {
			c.cells[y][x].focus = true
		}
	}
}

// styled renders the canvas with 24-bit colors.
func (c *canvas) styled() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(cellStyle(cur).Render(run.String()))
				run.Reset()
			}
		}
		for x, cl := range row {
			if cl.cont {
				continue
			}
			if x > 0 && !sameLook(cl, cur) {
				flush()
			}
			cur = cl
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}

// plain renders the canvas without escape sequences inside a frame.
func (c *canvas) plain() string {
	var b strings.Builder
	edge := strings.Repeat("─", c.cols)
	b.WriteString("┌" + edge + "┐\n")
	for _, row := range c.cells {
		b.WriteString("│")
		for _, cl := range row {
			switch {
			case cl.cont:
			case cl.fill && cl.r == ' ':
				b.WriteRune('░')
			default:
				b.WriteRune(cl.r)
			}
		}
		b.WriteString("│\n")
	}
	b.WriteString("└" + edge + "┘")
	return b.String()
}

func sameLook(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold && a.focus == b.focus
}

func cellStyle(cl cell) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(cl.bold)
	if cl.fg != "" {
		s = s.Foreground(lipgloss.Color(cl.fg))
	}
	if cl.bg != "" {
		s = s.Background(lipgloss.Color(cl.bg))
	}
	if cl.focus {
		s = s.Reverse(true)
	}
	return s
}

func contrast(bg string) string {
	if theme.IsLightHex(bg) {
		return darkInk
	}
	return lightInk
}

// wrap breaks text into lines no wider than width columns. Words longer
// than a line, and text without spaces, are split by width.
func wrap(text string, width int) []string {
	if width < 1 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for runewidth.StringWidth(word) > width {
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					break
				}
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				lines = append(lines, head)
				word = word[len(head):]
			}
			switch {
			case word == "":
			case line == "":
				line = word
			case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Render draws a slide plan as colored terminal cells cols wide. The region
// named focus is highlighted.
func Render(plan layout.Plan, res theme.Resolution, cols int, focus string) string {
	c := newCanvas(cols, res)
	c.draw(plan, focus)
	return c.styled()
}

// RenderText draws a slide plan as plain text inside a frame, for output
// that is not a terminal.
func RenderText(plan layout.Plan, res theme.Resolution, width int) string {
	c := newCanvas(width-2, res)
	c.draw(plan, "")
	return c.plain()
}
