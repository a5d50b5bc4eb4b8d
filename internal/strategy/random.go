package strategy

import (
	"context"
	"math/rand/v2"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/entity"
)

// Random picks uniformly among the free cells.
type Random struct {
	rnd *rand.Rand
}

func NewRandom(rnd *rand.Rand) *Random {
	return &Random{rnd: rnd}
}

func (that *Random) SelectMove(_ context.Context, board entity.Board, _ entity.Mark) (int, error) {
	choices := board.AvailablePositions()
	if len(choices) == 0 {
		return 0, ErrNoAvailableMoves
	}

	if that.rnd == nil {
		return choices[rand.IntN(len(choices))], nil //nolint: gosec // it's ok
	}

	return choices[that.rnd.IntN(len(choices))], nil
}
