package strategy

import (
	"context"
	"slices"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/entity"
)

// Heuristic is a fixed priority ladder:
// win, block, center, corners (7,9,1,3), sides (8,4,6,2), first free cell.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (that *Heuristic) SelectMove(_ context.Context, board entity.Board, me entity.Mark) (int, error) {
	available := board.AvailablePositions()
	if len(available) == 0 {
		return 0, ErrNoAvailableMoves
	}

	if position, ok := winningMove(board, me); ok {
		return position, nil
	}

	if position, ok := winningMove(board, me.Other()); ok {
		return position, nil
	}

	if slices.Contains(available, entity.CenterPosition) {
		return entity.CenterPosition, nil
	}

	for _, position := range entity.CornerPositions {
		if slices.Contains(available, position) {
			return position, nil
		}
	}

	for _, position := range entity.SidePositions {
		if slices.Contains(available, position) {
			return position, nil
		}
	}

	// unreachable: corners, sides and center cover the board
	return available[0], nil
}
