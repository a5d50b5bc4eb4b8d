package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidMove  = errors.New("invalid move")
	ErrGameOver     = errors.New("game is over")
	ErrNotFound     = errors.New("game not found")

	// ErrNotHumanTurn matches ErrInvalidMove with errors.Is.
	ErrNotHumanTurn = fmt.Errorf("%w: not human's turn", ErrInvalidMove)
)
