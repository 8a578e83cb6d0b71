package canvas

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

var (
	red   = core.MustHex("#ff0000")
	black = core.MustHex("#000000")
)

func TestRasterSize(t *testing.T) {
	r := NewRaster(0, 0)
	w, h := r.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)

	r.Resize(40, 30)
	w, h = r.Size()
	assert.Equal(t, 40.0, w)
	assert.Equal(t, 30.0, h)
}

func TestRasterZeroSizedDrawingIsSafe(t *testing.T) {
	r := NewRaster(0, 0)
	assert.NotPanics(t, func() {
		r.Clear(black)
		r.FillRect(core.NewRect(-5, -5, 50, 50), red)
		r.FillCircle(core.Vec{X: 1, Y: 1}, 3, red)
		r.FillGradient(core.NewRect(0, 0, 10, 10), core.Gradient{})
	})
}

func TestRasterFillRectClips(t *testing.T) {
	r := NewRaster(10, 10)
	r.Clear(black)
	r.FillRect(core.NewRect(8, 8, 10, 10), red)

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, r.At(9, 9))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, r.At(7, 7))
}

func TestRasterAlphaBlends(t *testing.T) {
	r := NewRaster(4, 4)
	r.Clear(black)
	r.SetAlpha(0.5)
	r.FillRect(core.NewRect(0, 0, 4, 4), core.MustHex("#ffffff"))
	r.SetAlpha(1)

	px := r.At(1, 1)
	assert.InDelta(t, 128, int(px.R), 2)
}

func TestRasterTinyCircleCoversCenterPixel(t *testing.T) {
	r := NewRaster(10, 10)
	r.Clear(black)
	r.FillCircle(core.Vec{X: 5.5, Y: 5.5}, 0.1, red)
	assert.Equal(t, uint8(255), r.At(5, 5).R)
	assert.Equal(t, uint8(0), r.At(7, 7).R)
}

func TestRasterPolygon(t *testing.T) {
	r := NewRaster(10, 10)
	r.Clear(black)
	r.FillPolygon([]core.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}, red)

	assert.Equal(t, uint8(255), r.At(1, 1).R, "inside triangle")
	assert.Equal(t, uint8(0), r.At(9, 9).R, "outside triangle")
}

func TestRasterArcHonorsAngles(t *testing.T) {
	r := NewRaster(21, 21)
	r.Clear(black)
	// Right half only: -90deg to +90deg.
	r.StrokeArc(core.Vec{X: 10.5, Y: 10.5}, 8, -math.Pi/2, math.Pi/2, 2, red)

	assert.Equal(t, uint8(255), r.At(18, 10).R, "rightmost point")
	assert.Equal(t, uint8(0), r.At(2, 10).R, "leftmost point excluded")
}

func TestRasterTextLayer(t *testing.T) {
	r := NewRaster(10, 10)
	r.SetAlpha(0.25)
	r.FillText("hi", 5, 5, core.TextStyle{Align: core.AlignCenter})
	r.FillText("", 5, 5, core.TextStyle{})

	runs := r.Texts()
	assert.Len(t, runs, 1)
	assert.Equal(t, 0.25, runs[0].Alpha)

	r.Clear(black)
	assert.Empty(t, r.Texts())
}

func TestRecorderTracksAlphaAndTexts(t *testing.T) {
	rec := NewRecorder(100, 50)
	rec.SetAlpha(0.5)
	rec.FillCircle(core.Vec{X: 1, Y: 1}, 2, red)
	rec.SetAlpha(1)
	rec.FillText("Score: 0", 0, 0, core.TextStyle{})

	assert.Equal(t, 1, rec.Count(OpFillCircle))
	assert.Equal(t, 0.5, rec.Ops[0].Alpha)
	assert.Equal(t, []string{"Score: 0"}, rec.Texts())

	w, h := rec.Size()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 50.0, h)
}
