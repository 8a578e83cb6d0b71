package canvas

import (
	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// OpKind names a recorded drawing call.
type OpKind string

const (
	OpClear        OpKind = "clear"
	OpFillRect     OpKind = "fill_rect"
	OpStrokeRect   OpKind = "stroke_rect"
	OpRoundRect    OpKind = "round_rect"
	OpFillCircle   OpKind = "fill_circle"
	OpStrokeCircle OpKind = "stroke_circle"
	OpArc          OpKind = "arc"
	OpLine         OpKind = "line"
	OpPolygon      OpKind = "polygon"
	OpGradient     OpKind = "gradient"
	OpText         OpKind = "text"
)

// Op is one recorded call.
type Op struct {
	Kind   OpKind
	Rect   core.Rect
	Center core.Vec
	Radius float64
	Text   string
	Color  core.Color
	Alpha  float64
}

// Recorder is a Surface that remembers every call instead of drawing.
type Recorder struct {
	W, H  float64
	Ops   []Op
	alpha float64
}

// NewRecorder creates a recorder reporting the given size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h, alpha: 1}
}

func (r *Recorder) add(op Op) {
	op.Alpha = r.alpha
	r.Ops = append(r.Ops, op)
}

// Resize changes the reported size.
func (r *Recorder) Resize(w, h float64) {
	r.W, r.H = w, h
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.Ops = nil
}

// Count returns how many calls of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every string passed to FillText, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Alpha returns the current global alpha.
func (r *Recorder) Alpha() float64 {
	return r.alpha
}

// Size implements core.Surface.
func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

// SetAlpha implements core.Surface.
func (r *Recorder) SetAlpha(a float64) { r.alpha = a }

// Clear implements core.Surface. It also drops the calls recorded for the
// previous frame.
func (r *Recorder) Clear(c core.Color) {
	r.Ops = r.Ops[:0]
	r.add(Op{Kind: OpClear, Rect: core.NewRect(0, 0, r.W, r.H), Color: c})
}

// FillRect implements core.Surface.
func (r *Recorder) FillRect(rect core.Rect, c core.Color) {
	r.add(Op{Kind: OpFillRect, Rect: rect, Color: c})
}

// StrokeRect implements core.Surface.
func (r *Recorder) StrokeRect(rect core.Rect, _ float64, c core.Color) {
	r.add(Op{Kind: OpStrokeRect, Rect: rect, Color: c})
}

// FillRoundRect implements core.Surface.
func (r *Recorder) FillRoundRect(rect core.Rect, radius float64, c core.Color) {
	r.add(Op{Kind: OpRoundRect, Rect: rect, Radius: radius, Color: c})
}

// FillCircle implements core.Surface.
func (r *Recorder) FillCircle(center core.Vec, radius float64, c core.Color) {
	r.add(Op{Kind: OpFillCircle, Center: center, Radius: radius, Color: c})
}

// StrokeCircle implements core.Surface.
func (r *Recorder) StrokeCircle(center core.Vec, radius, _ float64, c core.Color) {
	r.add(Op{Kind: OpStrokeCircle, Center: center, Radius: radius, Color: c})
}

// StrokeArc implements core.Surface.
func (r *Recorder) StrokeArc(center core.Vec, radius, _, _, _ float64, c core.Color) {
	r.add(Op{Kind: OpArc, Center: center, Radius: radius, Color: c})
}

// StrokeLine implements core.Surface.
func (r *Recorder) StrokeLine(from, to core.Vec, _ float64, c core.Color) {
	r.add(Op{Kind: OpLine, Rect: core.NewRect(from.X, from.Y, to.X-from.X, to.Y-from.Y), Color: c})
}

// FillPolygon implements core.Surface.
func (r *Recorder) FillPolygon(points []core.Vec, c core.Color) {
	op := Op{Kind: OpPolygon, Color: c}
	if len(points) > 0 {
		op.Center = points[0]
	}
	r.add(op)
}

// FillGradient implements core.Surface.
func (r *Recorder) FillGradient(rect core.Rect, _ core.Gradient) {
	r.add(Op{Kind: OpGradient, Rect: rect})
}

// FillText implements core.Surface.
func (r *Recorder) FillText(text string, x, y float64, style core.TextStyle) {
	r.add(Op{Kind: OpText, Text: text, Center: core.Vec{X: x, Y: y}, Color: style.Color})
}
