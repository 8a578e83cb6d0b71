package tui

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canvas-arcade/internal/canvas"
	"github.com/vovakirdan/canvas-arcade/internal/core"
)

func TestPixelSize(t *testing.T) {
	w, h := PixelSize(80, 22)
	assert.Equal(t, 80, w)
	assert.Equal(t, 44, h)

	w, h = PixelSize(-1, -3)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestRasterCellsHalfBlocks(t *testing.T) {
	r := canvas.NewRaster(2, 4)
	r.Clear(color.RGBA{0, 0, 0, 255})
	r.FillRect(core.NewRect(0, 0, 2, 1), color.RGBA{255, 0, 0, 255})

	grid := rasterCells(r)
	require.Len(t, grid, 2)
	require.Len(t, grid[0], 2)

	top := grid[0][0]
	assert.Equal(t, upperHalf, top.ch)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, top.fg)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, top.bg)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, grid[1][1].fg)
}

func TestRasterCellsOddHeight(t *testing.T) {
	r := canvas.NewRaster(1, 3)
	r.Clear(color.RGBA{10, 20, 30, 255})

	grid := rasterCells(r)
	require.Len(t, grid, 2)
	assert.Equal(t, grid[1][0].fg, grid[1][0].bg)
}

func TestRasterCellsText(t *testing.T) {
	r := canvas.NewRaster(10, 4)
	r.Clear(color.RGBA{0, 0, 0, 255})
	r.FillText("hi", 5, 2, core.TextStyle{Align: core.AlignCenter, Bold: true, Color: color.RGBA{255, 255, 0, 255}})
	r.FillText("edge", 8, 0, core.TextStyle{})

	grid := rasterCells(r)

	assert.Equal(t, 'h', grid[1][4].ch)
	assert.Equal(t, 'i', grid[1][5].ch)
	assert.True(t, grid[1][4].bold)
	assert.Equal(t, color.RGBA{255, 255, 0, 255}, grid[1][4].fg)

	// Runs past the right edge are clipped.
	assert.Equal(t, 'e', grid[0][8].ch)
	assert.Equal(t, 'd', grid[0][9].ch)
}

func TestRenderRasterLines(t *testing.T) {
	r := canvas.NewRaster(6, 6)
	r.Clear(color.RGBA{0, 0, 255, 255})
	r.FillText("ok", 0, 0, core.TextStyle{})

	out := RenderRaster(r)

	assert.Equal(t, 3, len(strings.Split(out, "\n")))
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, string(upperHalf))
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  ab", centerText("ab", 6))
	assert.Equal(t, "abcdef", centerText("abcdef", 4))
}
