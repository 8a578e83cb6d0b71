package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/canvas-arcade/internal/canvas"
	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// upperHalf paints the top pixel of a cell in the foreground color and the
// bottom pixel in the background color.
const upperHalf = '▀'

// PixelSize returns the raster size that fills cols x rows terminal cells.
func PixelSize(cols, rows int) (w, h int) {
	return max(cols, 0), max(rows, 0) * 2
}

type termCell struct {
	ch     rune
	fg, bg color.RGBA
	bold   bool
}

type styleKey struct {
	fg, bg color.RGBA
	bold   bool
}

// RenderRaster converts a raster into styled terminal lines, two pixel rows
// per line, with the text layer drawn over the pixels. Adjacent cells with
// the same colors share one escape sequence.
func RenderRaster(r *canvas.Raster) string {
	grid := rasterCells(r)

	styles := make(map[styleKey]lipgloss.Style)
	var sb strings.Builder
	for y, row := range grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < len(row) {
			k := styleKey{fg: row[x].fg, bg: row[x].bg, bold: row[x].bold}
			var run strings.Builder
			for x < len(row) && (styleKey{fg: row[x].fg, bg: row[x].bg, bold: row[x].bold}) == k {
				run.WriteRune(row[x].ch)
				x++
			}
			st, ok := styles[k]
			if !ok {
				st = lipgloss.NewStyle().
					Foreground(lipgloss.Color(hexOf(k.fg))).
					Background(lipgloss.Color(hexOf(k.bg))).
					Bold(k.bold)
				styles[k] = st
			}
			sb.WriteString(st.Render(run.String()))
		}
	}
	return sb.String()
}

// rasterCells builds the cell grid: half blocks from the pixels, then text.
func rasterCells(r *canvas.Raster) [][]termCell {
	b := r.Image().Bounds()
	cols, rows := b.Dx(), (b.Dy()+1)/2

	grid := make([][]termCell, rows)
	for y := range rows {
		grid[y] = make([]termCell, cols)
		for x := range cols {
			top := r.At(x, 2*y)
			bottom := top
			if 2*y+1 < b.Dy() {
				bottom = r.At(x, 2*y+1)
			}
			grid[y][x] = termCell{ch: upperHalf, fg: top, bg: bottom}
		}
	}

	for _, t := range r.Texts() {
		row := int(t.Y / 2)
		if row < 0 || row >= rows {
			continue
		}
		runes := []rune(t.Text)
		start := int(t.X)
		switch t.Style.Align {
		case core.AlignCenter:
			start = int(t.X) - len(runes)/2
		case core.AlignRight:
			start = int(t.X) - len(runes)
		}
		fg := toRGBA(t.Style.Color)
		for i, ch := range runes {
			x := start + i
			if x < 0 || x >= cols {
				continue
			}
			c := &grid[row][x]
			c.bg = mix(c.fg, c.bg)
			c.fg = fg
			c.ch = ch
			c.bold = t.Style.Bold
		}
	}
	return grid
}

func toRGBA(c core.Color) color.RGBA {
	if c == nil {
		return color.RGBA{255, 255, 255, 255}
	}
	r, g, b := core.ToColorful(c).Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

func mix(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
		A: 255,
	}
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
