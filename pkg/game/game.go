package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/qnkhuat/termtris/pkg/event"
	"github.com/qnkhuat/termtris/pkg/mino"
)

// State is the phase of the game state machine.
type State int

const (
	StateSpawning State = iota
	StateFalling
	StateLineClearing
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "Spawning"
	case StateFalling:
		return "Falling"
	case StateLineClearing:
		return "LineClearing"
	case StateGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Game owns the whole state of one game. It is not safe for concurrent use;
// a single Loop drives it.
type Game struct {
	Rules  Rules
	Matrix *mino.Matrix
	Seed   int64
	Name   string

	State State
	Piece mino.Piece // Valid while State is StateFalling
	Next  mino.Kind

	Score    int
	Lines    int
	Level    int
	Interval time.Duration
	Pieces   int // Pieces spawned

	Logger   *log.Logger
	LogLevel int

	bag        *mino.Bag
	controller *Controller
}

func NewGame(rules Rules, seed int64) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	m := mino.NewMatrix(rules.Width, rules.Height, rules.Buffer)
	bag := mino.NewBag(seed)

	g := &Game{
		Rules:      rules,
		Matrix:     m,
		Seed:       seed,
		State:      StateSpawning,
		Next:       bag.Next(),
		Level:      rules.StartLevel,
		Interval:   rules.Gravity.Interval(rules.StartLevel),
		bag:        bag,
		controller: NewController(m, rules.Kicks),
	}

	return g, nil
}

func (g *Game) Logf(level int, format string, a ...interface{}) {
	if g.Logger == nil || level > g.LogLevel {
		return
	}

	g.Logger.Printf(format, a...)
}

// Controller returns the controller moving pieces on g's matrix.
func (g *Game) Controller() *Controller {
	return g.controller
}

// Start spawns the first piece. It does nothing once the game has started.
func (g *Game) Start() {
	if g.State != StateSpawning || g.Pieces > 0 {
		return
	}

	g.Logf(LogDebug, "Starting game %d at level %d", g.Seed, g.Level)

	g.spawn()
}

func (g *Game) Over() bool {
	return g.State == StateGameOver
}

func (g *Game) spawn() {
	k := g.bag.Take()
	g.Next = g.bag.Next()

	p, err := g.controller.Spawn(k)
	g.Piece = p
	if errors.Is(err, ErrSpawnBlocked) {
		g.State = StateGameOver

		g.Logf(LogStandard, "Game over: %s - score %d, lines %d, level %d", err, g.Score, g.Lines, g.Level)
		return
	}

	g.Pieces++
	g.State = StateFalling

	g.Logf(LogVerbose, "Spawned %s", p)
}

// Apply performs one command against the falling piece immediately and
// reports whether anything changed. Commands outside StateFalling and Quit
// are ignored; quitting is the loop's business.
func (g *Game) Apply(c event.Command) bool {
	if g.State != StateFalling {
		return false
	}

	var (
		p  mino.Piece
		ok bool
	)

	switch c {
	case event.CommandMoveLeft:
		p, ok = g.controller.TryMove(g.Piece, 0, -1)
	case event.CommandMoveRight:
		p, ok = g.controller.TryMove(g.Piece, 0, 1)
	case event.CommandRotateCW:
		p, ok = g.controller.TryRotate(g.Piece, mino.RotateCW)
	case event.CommandRotateCCW:
		p, ok = g.controller.TryRotate(g.Piece, mino.RotateCCW)
	case event.CommandSoftDrop:
		p, ok = g.controller.TryMove(g.Piece, 1, 0)
		if ok {
			g.Score += g.Rules.SoftDropPoints
		}
	case event.CommandHardDrop:
		p = g.controller.HardDrop(g.Piece)
		g.Score += (p.Row - g.Piece.Row) * g.Rules.HardDropPoints

		g.Piece = p
		g.controller.Lock(p)
		g.landed()
		return true
	default:
		return false
	}

	if ok {
		g.Piece = p
	}

	return ok
}

// Tick applies one gravity step. A piece that cannot fall locks, which runs
// the line clear and spawns the next piece.
func (g *Game) Tick() bool {
	if g.State != StateFalling {
		return false
	}

	p, locked := g.controller.SoftDropTick(g.Piece)
	g.Piece = p
	if locked {
		g.landed()
	}

	return true
}

// landed runs the line clear for a piece just written into the matrix and
// moves on to the next spawn.
func (g *Game) landed() {
	g.State = StateLineClearing

	cleared, rows := g.Matrix.ClearFullRows()
	if cleared > 0 {
		points := g.Rules.Points(cleared, g.Level)
		g.Score += points
		g.Lines += cleared

		g.Logf(LogDebug, "Cleared rows %v for %d points", rows, points)

		if level := g.Rules.Level(g.Lines); level != g.Level {
			g.Level = level
			g.Interval = g.Rules.Gravity.Interval(level)

			g.Logf(LogStandard, "Level %d - gravity every %s", g.Level, g.Interval)
		}
	}

	g.State = StateSpawning
	g.spawn()
}

// Snapshot copies everything a renderer needs. The result shares nothing
// with g.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		W:        g.Matrix.W,
		H:        g.Matrix.H,
		B:        g.Matrix.B,
		Blocks:   g.Matrix.Blocks(),
		Next:     g.Next,
		Name:     g.Name,
		Score:    g.Score,
		Lines:    g.Lines,
		Level:    g.Level,
		Interval: g.Interval,
		State:    g.State,
		Danger:   g.Matrix.IsTopOccupied(),
	}

	if g.State == StateFalling {
		s.Piece = g.Piece.Cells()
		s.PieceBlock = g.Piece.Block()
		s.Ghost = g.controller.Ghost(g.Piece)
	}

	return s
}
