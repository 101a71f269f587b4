// Package tetris implements a deterministic falling-block puzzle engine.
//
// A Game owns the board, the falling piece and the score. Callers drive it
// with Actions, either directly through Game.Apply or through a Runner that
// serialises keyboard commands and gravity ticks onto one goroutine.
package tetris

import (
	"errors"
	"fmt"
)

type Action int

const (
	ActionTick Action = iota
	ActionGoLeft
	ActionGoRight
	ActionRotate
	ActionSoftDrop
	ActionSmash
	ActionStart
	ActionRestart
)

var actionNames = map[Action]string{
	ActionTick:     "tick",
	ActionGoLeft:   "left",
	ActionGoRight:  "right",
	ActionRotate:   "rotate",
	ActionSoftDrop: "soft-drop",
	ActionSmash:    "smash",
	ActionStart:    "start",
	ActionRestart:  "restart",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game-over"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var ErrGameNotOver = errors.New("game is not over")

// CompleteHandler is told about every lock: how many rows the sweep cleared
// and how many points they were worth. rows may be zero.
type CompleteHandler interface {
	OnCompleted(rows, points int)
}

type CompleteHandlerFunc func(rows, points int)

func (f CompleteHandlerFunc) OnCompleted(rows, points int) {
	f(rows, points)
}

type GameOverHandler interface {
	OnGameOver(score int)
}

type GameOverHandlerFunc func(score int)

func (f GameOverHandlerFunc) OnGameOver(score int) {
	f(score)
}

// State is a snapshot of a game. It shares no memory with the game.
type State struct {
	Tiles  [][]Cell
	Piece  Piece
	Next   Shape
	Score  int
	Lines  int
	Phase  Phase
	Width  int
	Height int
}

// FinalScore is the score of the game the snapshot was taken from, available
// once that game is over.
func (s State) FinalScore() (uint32, error) {
	return finalScore(s.Phase, s.Score)
}

// Frame is a copy of the snapshot board with the falling piece drawn over it.
func (s State) Frame() [][]Cell {
	frame := make([][]Cell, len(s.Tiles))
	for y, row := range s.Tiles {
		frame[y] = append([]Cell(nil), row...)
	}
	if s.Phase == PhaseNotStarted {
		return frame
	}
	s.Piece.cells(func(row, col int, c Cell) {
		if row >= 0 && row < len(frame) && col >= 0 && col < len(frame[row]) {
			frame[row][col] = c
		}
	})
	return frame
}
