// Package strategy selects the computer's move. Strategies are stateless apart
// from their configuration and are built per move by For.
package strategy

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// Strategy returns the numpad position (1..9) where `me` should play.
type Strategy interface {
	SelectMove(ctx context.Context, board entity.Board, me entity.Mark) (int, error)
}

// ModelClient sends a prompt to a text-generation model and returns its raw text.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Options struct {
	Logger *slog.Logger

	// RemoteClient is nil when no model credential is configured.
	RemoteClient  ModelClient
	RemoteTimeout time.Duration

	// Rand overrides the random source of the easy strategy. It is not safe
	// for concurrent use, so only tests set it.
	Rand *rand.Rand
}

// For - picks the strategy for a difficulty. Hard falls back to the heuristic
// when no remote client is configured.
func For(difficulty entity.Difficulty, opts Options) Strategy {
	switch difficulty {
	case entity.EasyDifficulty:
		return NewRandom(opts.Rand)
	case entity.HardDifficulty:
		if opts.RemoteClient == nil {
			return NewHeuristic()
		}
		return NewRemote(opts.Logger, opts.RemoteClient, opts.RemoteTimeout)
	default:
		return NewHeuristic()
	}
}

// winningMove - first available position (wire order) that completes a line for mark.
func winningMove(board entity.Board, mark entity.Mark) (int, bool) {
	for _, position := range board.AvailablePositions() {
		if completesLine(board, position, mark) {
			return position, true
		}
	}
	return 0, false
}

// completesLine - reports whether mark at position wins the game.
func completesLine(board entity.Board, position int, mark entity.Mark) bool {
	next, err := board.WithMove(position, mark)
	if err != nil {
		return false
	}
	winner, ok := next.Winner()
	return ok && winner == mark
}
