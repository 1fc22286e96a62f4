package game

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/qnkhuat/termtris/pkg/mino"
)

const DefaultFallTime = 850 * time.Millisecond

// DefaultLinePoints is indexed by the number of rows cleared by one lock.
var DefaultLinePoints = []int{0, 40, 100, 300, 1200}

// DefaultKicks are the anchor offsets tried, in order, when a rotation in
// place is blocked.
var DefaultKicks = []mino.Point{{Row: 0, Col: -1}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: -1}, {Row: 1, Col: 1}, {Row: 0, Col: -2}, {Row: 0, Col: 2}, {Row: -1, Col: 0}}

// Gravity describes how the fall interval shrinks as the level rises.
type Gravity struct {
	Initial time.Duration
	Factor  float64
	Minimum time.Duration
}

// Interval returns Initial*Factor^(level-1), never below Minimum.
func (g Gravity) Interval(level int) time.Duration {
	if level < 1 {
		level = 1
	}

	d := time.Duration(float64(g.Initial) * math.Pow(g.Factor, float64(level-1)))
	if d < g.Minimum {
		return g.Minimum
	}

	return d
}

// Rules holds every tunable of a game. The zero value is not usable; start
// from DefaultRules.
type Rules struct {
	Width  int
	Height int
	Buffer int

	StartLevel    int
	LinesPerLevel int

	LinePoints     []int
	SoftDropPoints int
	HardDropPoints int

	Gravity Gravity

	// Kicks is empty for plain rejection of blocked rotations.
	Kicks []mino.Point
}

func DefaultRules() Rules {
	return Rules{
		Width:          mino.DefaultWidth,
		Height:         mino.DefaultHeight,
		StartLevel:     1,
		LinesPerLevel:  10,
		LinePoints:     DefaultLinePoints,
		SoftDropPoints: 1,
		HardDropPoints: 2,
		Gravity: Gravity{
			Initial: DefaultFallTime,
			Factor:  0.85,
			Minimum: 50 * time.Millisecond,
		},
	}
}

func (r Rules) Validate() error {
	switch {
	case r.Width < 4:
		return fmt.Errorf("invalid width %d: must be at least 4", r.Width)
	case r.Height < 4:
		return fmt.Errorf("invalid height %d: must be at least 4", r.Height)
	case r.Buffer < 0:
		return fmt.Errorf("invalid buffer %d", r.Buffer)
	case r.StartLevel < 1:
		return fmt.Errorf("invalid start level %d", r.StartLevel)
	case r.LinesPerLevel < 1:
		return fmt.Errorf("invalid lines per level %d", r.LinesPerLevel)
	case r.Gravity.Initial <= 0 || r.Gravity.Minimum <= 0 || r.Gravity.Minimum > r.Gravity.Initial:
		return fmt.Errorf("invalid gravity %+v", r.Gravity)
	case r.Gravity.Factor <= 0 || r.Gravity.Factor > 1:
		return errors.New("invalid gravity factor: must be in (0, 1]")
	}

	return nil
}

// Points returns the score for clearing rows in a single lock at level.
// Counts beyond the table score as its last entry.
func (r Rules) Points(cleared int, level int) int {
	if cleared <= 0 || len(r.LinePoints) == 0 {
		return 0
	}

	if cleared >= len(r.LinePoints) {
		cleared = len(r.LinePoints) - 1
	}

	return r.LinePoints[cleared] * level
}

// Level returns the level reached after clearing lines in total.
func (r Rules) Level(lines int) int {
	return r.StartLevel + lines/r.LinesPerLevel
}
