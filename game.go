package tetris

import (
	"fmt"
	"math"
	"time"
)

// Game is the controller state machine. It is not safe for concurrent use;
// Runner provides the single goroutine that should own it.
type Game struct {
	getter          ShapeGetter
	completeHandler CompleteHandler
	gameOverHandler GameOverHandler
	width, height   int

	board        *Board
	piece        Piece
	next         Shape
	score, lines int
	phase        Phase
}

type GameOption func(*Game)

func WithSize(width, height int) GameOption {
	if width < 4 || height < 4 {
		panic(fmt.Errorf("minimal width x height is 4x4"))
	}
	return func(g *Game) {
		g.width = width
		g.height = height
	}
}

func WithGetter(getter ShapeGetter) GameOption {
	return func(g *Game) {
		g.getter = getter
	}
}

func WithCompleteHandler(handler CompleteHandler) GameOption {
	return func(g *Game) {
		g.completeHandler = handler
	}
}

func WithGameOverHandler(handler GameOverHandler) GameOption {
	return func(g *Game) {
		g.gameOverHandler = handler
	}
}

func NewGame(options ...GameOption) *Game {
	g := &Game{
		getter: NewRandomGetter(time.Now().UnixNano()),
		width:  10,
		height: 20,
	}
	for _, opt := range options {
		opt(g)
	}

	g.reset()
	return g
}

// Apply runs one action to completion and reports whether it changed the
// game. Gameplay actions outside PhaseRunning and blocked moves are ignored.
func (g *Game) Apply(action Action) bool {
	switch action {
	case ActionStart:
		return g.start()
	case ActionRestart:
		g.reset()
		return g.start()
	}

	if g.phase != PhaseRunning {
		return false
	}

	switch action {
	case ActionTick, ActionSoftDrop:
		g.applyTick()
		return true
	case ActionGoLeft:
		return g.applyShift(-1)
	case ActionGoRight:
		return g.applyShift(1)
	case ActionRotate:
		return TryRotate(g.board, &g.piece)
	case ActionSmash:
		g.applySmash()
		return true
	}
	return false
}

func (g *Game) reset() {
	g.board = NewBoard(g.width, g.height)
	g.piece = Piece{}
	g.next = Shape{}
	g.score = 0
	g.lines = 0
	g.phase = PhaseNotStarted
}

func (g *Game) start() bool {
	if g.phase != PhaseNotStarted {
		return false
	}
	g.phase = PhaseRunning
	g.next = g.getter.Next()
	g.spawn()
	return true
}

func (g *Game) spawn() {
	g.piece = SpawnPiece(g.board, g.next)
	g.next = g.getter.Next()
	if Collides(g.board, g.piece) {
		g.phase = PhaseGameOver
		if g.gameOverHandler != nil {
			g.gameOverHandler.OnGameOver(g.score)
		}
	}
}

func (g *Game) applyTick() {
	moved := g.piece
	moved.Y++
	if Collides(g.board, moved) {
		g.lockPiece()
		return
	}
	g.piece = moved
}

// lockPiece commits the piece at its current position, the last one that did
// not collide, then sweeps, scores and spawns the next piece.
func (g *Game) lockPiece() {
	Lock(g.board, g.piece)
	rows := Sweep(g.board)
	points := CascadeScore(rows)
	g.score += points
	g.lines += rows
	if g.completeHandler != nil {
		g.completeHandler.OnCompleted(rows, points)
	}
	g.spawn()
}

func (g *Game) applyShift(dx int) bool {
	moved := g.piece
	moved.X += dx
	if Collides(g.board, moved) {
		return false
	}
	g.piece = moved
	return true
}

func (g *Game) applySmash() {
	for {
		moved := g.piece
		moved.Y++
		if Collides(g.board, moved) {
			break
		}
		g.piece = moved
	}
	g.lockPiece()
}

func (g *Game) Phase() Phase { return g.phase }
func (g *Game) Score() int { return g.score }
func (g *Game) Lines() int { return g.lines }
func (g *Game) Piece() Piece { return g.piece }
func (g *Game) Next() Shape { return g.next }
func (g *Game) Width() int { return g.width }
func (g *Game) Height() int { return g.height }

// FinalScore is the score to hand to a reporter. It is only available once
// the game is over.
func (g *Game) FinalScore() (uint32, error) {
	return finalScore(g.phase, g.score)
}

func finalScore(phase Phase, score int) (uint32, error) {
	if phase != PhaseGameOver {
		return 0, ErrGameNotOver
	}
	if uint64(score) > math.MaxUint32 {
		return math.MaxUint32, nil
	}
	return uint32(score), nil
}

func (g *Game) State() State {
	return State{
		Tiles:  g.board.Rows(),
		Piece:  g.piece,
		Next:   g.next,
		Score:  g.score,
		Lines:  g.lines,
		Phase:  g.phase,
		Width:  g.width,
		Height: g.height,
	}
}

// Render returns the board with the falling piece drawn over it.
func (g *Game) Render() [][]Cell {
	return g.State().Frame()
}
