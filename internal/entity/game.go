package entity

import (
	"fmt"
	"slices"
	"time"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/apperror"
)

// Game is the mutable aggregate for one match between a human and the computer.
// Board, Status, NextPlayer, Moves and UpdatedAt change only through ApplyMove.
type Game struct {
	ID           string     `json:"id"`
	Board        Board      `json:"board"`
	NextPlayer   Mark       `json:"next_player"`
	Difficulty   Difficulty `json:"difficulty"`
	Status       Status     `json:"status"`
	HumanMark    Mark       `json:"human_symbol"`
	ComputerMark Mark       `json:"computer_symbol"`
	Moves        []int      `json:"moves"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// now is replaced in tests.
var now = func() time.Time {
	return time.Now().UTC()
}

func NewGame(id string, difficulty Difficulty, firstPlayerIsHuman bool, humanMark Mark) *Game {
	computerMark := humanMark.Other()

	nextPlayer := computerMark
	if firstPlayerIsHuman {
		nextPlayer = humanMark
	}

	createdAt := now()

	return &Game{
		ID:           id,
		Board:        EmptyBoard(),
		NextPlayer:   nextPlayer,
		Difficulty:   difficulty,
		Status:       StatusInProgress,
		HumanMark:    humanMark,
		ComputerMark: computerMark,
		Moves:        []int{},
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// ApplyMove - places mark at position and recomputes the derived state.
// NextPlayer flips only while the game is still in progress.
func (that *Game) ApplyMove(position int, mark Mark) error {
	if that.IsOver() {
		return fmt.Errorf("%w: status %s", apperror.ErrGameOver, that.Status)
	}

	board, err := that.Board.WithMove(position, mark)
	if err != nil {
		return err
	}

	that.Board = board
	that.Moves = append(that.Moves, position)
	that.Status = StatusOf(board)
	that.UpdatedAt = now()

	if !that.IsOver() {
		that.NextPlayer = mark.Other()
	}

	return nil
}

func (that *Game) IsOver() bool {
	return that.Status.IsTerminal()
}

func (that *Game) IsHumanTurn() bool {
	return that.NextPlayer == that.HumanMark
}

// Clone - deep copy, so stored games never alias caller state.
func (that *Game) Clone() *Game {
	clone := *that
	clone.Moves = slices.Clone(that.Moves)
	if clone.Moves == nil {
		clone.Moves = []int{}
	}
	return &clone
}
