package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsSuperLinear(t *testing.T) {
	r := DefaultRules()

	for level := 1; level <= 3; level++ {
		assert.Equal(t, 0, r.Points(0, level))

		single := r.Points(1, level)
		require.Positive(t, single)
		for n := 2; n <= 4; n++ {
			assert.Greater(t, r.Points(n, level), n*single, "%d rows at level %d", n, level)
		}
	}

	assert.Equal(t, 1200*2, r.Points(4, 2))
	assert.Equal(t, r.Points(4, 1), r.Points(6, 1))

	r.LinePoints = []int{0, 1, 10}
	assert.Equal(t, 10, r.Points(2, 1))
	assert.Equal(t, 10, r.Points(3, 1))

	r.LinePoints = nil
	assert.Zero(t, r.Points(4, 1))
}

func TestLevel(t *testing.T) {
	r := DefaultRules()

	assert.Equal(t, 1, r.Level(0))
	assert.Equal(t, 1, r.Level(9))
	assert.Equal(t, 2, r.Level(10))
	assert.Equal(t, 4, r.Level(35))

	r.StartLevel = 5
	assert.Equal(t, 5, r.Level(3))
}

func TestGravityInterval(t *testing.T) {
	g := DefaultRules().Gravity

	assert.Equal(t, DefaultFallTime, g.Interval(1))
	assert.Equal(t, DefaultFallTime, g.Interval(0))

	prev := g.Interval(1)
	for level := 2; level <= 50; level++ {
		d := g.Interval(level)
		assert.LessOrEqual(t, d, prev, "level %d", level)
		assert.GreaterOrEqual(t, d, g.Minimum, "level %d", level)
		prev = d
	}

	assert.Equal(t, 50*time.Millisecond, g.Interval(100))
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())

	for name, modify := range map[string]func(r *Rules){
		"narrow":        func(r *Rules) { r.Width = 3 },
		"short":         func(r *Rules) { r.Height = 0 },
		"buffer":        func(r *Rules) { r.Buffer = -1 },
		"level":         func(r *Rules) { r.StartLevel = 0 },
		"lines":         func(r *Rules) { r.LinesPerLevel = 0 },
		"gravity":       func(r *Rules) { r.Gravity.Initial = 0 },
		"gravity floor": func(r *Rules) { r.Gravity.Minimum = time.Hour },
		"factor":        func(r *Rules) { r.Gravity.Factor = 1.5 },
	} {
		r := DefaultRules()
		modify(&r)
		assert.Error(t, r.Validate(), name)
	}
}
