package particle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canvas-arcade/internal/canvas"
	"github.com/vovakirdan/canvas-arcade/internal/core"
)

func newPool() *Pool {
	return NewPool(rand.New(rand.NewSource(1)))
}

func TestSpawnRespectsRanges(t *testing.T) {
	p := newPool()
	p.Spawn(Burst{
		Origin: core.Vec{X: 10, Y: 20},
		Count:  50,
		VelX:   Range{-2.5, 2.5},
		VelY:   Range{-1, 0},
		Size:   Range{2, 5},
		Color:  core.ColorWhite,
		Life:   30,
	})

	require.Equal(t, 50, p.Len())
	for _, pt := range p.Particles() {
		assert.Equal(t, core.Vec{X: 10, Y: 20}, pt.Pos)
		assert.GreaterOrEqual(t, pt.Vel.X, -2.5)
		assert.LessOrEqual(t, pt.Vel.X, 2.5)
		assert.GreaterOrEqual(t, pt.Vel.Y, -1.0)
		assert.LessOrEqual(t, pt.Vel.Y, 0.0)
		assert.GreaterOrEqual(t, pt.Size, 2.0)
		assert.LessOrEqual(t, pt.Size, 5.0)
		assert.Equal(t, 30, pt.Life)
		assert.Equal(t, 30, pt.MaxLife)
	}
}

func TestSpawnIgnoresEmptyBursts(t *testing.T) {
	p := newPool()
	p.Spawn(Burst{Count: 0, Life: 10})
	p.Spawn(Burst{Count: 5, Life: 0})
	assert.Zero(t, p.Len())
}

func TestColorFnPerParticle(t *testing.T) {
	p := newPool()
	calls := 0
	p.Spawn(Burst{
		Count: 4,
		Life:  1,
		ColorFn: func(*rand.Rand) core.Color {
			calls++
			return core.ColorBlack
		},
	})
	assert.Equal(t, 4, calls)
}

func TestAdvanceIntegratesAndExpires(t *testing.T) {
	p := newPool()
	p.Spawn(Burst{Count: 1, VelX: Range{1, 1}, VelY: Range{2, 2}, Size: Range{1, 1}, Life: 2})
	p.Spawn(Burst{Count: 1, VelX: Range{0, 0}, VelY: Range{0, 0}, Size: Range{1, 1}, Life: 5})

	p.Advance()
	require.Equal(t, 2, p.Len())
	assert.Equal(t, core.Vec{X: 1, Y: 2}, p.Particles()[0].Pos)
	assert.Equal(t, 1, p.Particles()[0].Life)

	p.Advance()
	require.Equal(t, 1, p.Len(), "particle with life 2 expires after two advances")
	assert.Equal(t, 5, p.Particles()[0].MaxLife)
}

func TestRenderFadesWithLife(t *testing.T) {
	p := newPool()
	p.Spawn(Burst{Count: 1, Size: Range{3, 3}, Color: core.ColorWhite, Life: 4})
	p.Advance()

	rec := canvas.NewRecorder(100, 100)
	p.Render(rec)

	require.Equal(t, 1, rec.Count(canvas.OpFillCircle))
	assert.InDelta(t, 0.75, rec.Ops[0].Alpha, 1e-9)
	assert.Equal(t, 1.0, rec.Alpha(), "render restores full opacity")
}

func TestClear(t *testing.T) {
	p := newPool()
	p.Spawn(Burst{Count: 3, Life: 3})
	p.Clear()
	assert.Zero(t, p.Len())
}
