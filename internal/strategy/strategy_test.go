package strategy

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/entity"
)

func mustBoard(t *testing.T, s string) entity.Board {
	t.Helper()

	board, err := entity.ParseBoard(s)
	require.NoError(t, err)

	return board
}

func TestHeuristic_SelectMove(t *testing.T) {
	ctx := context.Background()
	heuristic := NewHeuristic()

	testCases := []struct {
		name     string
		board    string
		me       entity.Mark
		expected int
	}{
		{name: "Takes the immediate win", board: "xx oo    ", me: entity.MarkX, expected: 9},
		{name: "Prefers winning over blocking", board: "oo xx    ", me: entity.MarkX, expected: 6},
		{name: "Blocks the opponent", board: "xx  o    ", me: entity.MarkO, expected: 9},
		{name: "Takes the center on an empty board", board: "         ", me: entity.MarkX, expected: 5},
		{name: "Answers a center opening with a corner", board: "    x    ", me: entity.MarkO, expected: 7},
		{name: "Corners in order", board: "x   o    ", me: entity.MarkX, expected: 9},
		{name: "Sides when corners are gone", board: "xox o oxo", me: entity.MarkX, expected: 4},	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When: selecting a move on the given board
			position, err := heuristic.SelectMove(ctx, mustBoard(t, tc.board), tc.me)

			// Then: the expected position is chosen
			require.NoError(t, err)
			assert.Equal(t, tc.expected, position)
		})
	}

	t.Run("Always wins when a win is available", func(t *testing.T) {
		var walk func(board entity.Board, toMove entity.Mark)
		walk = func(board entity.Board, toMove entity.Mark) {
			if _, over := board.Winner(); over || board.IsFull() {
				return
			}

			if _, ok := winningMove(board, toMove); ok {
				position, err := heuristic.SelectMove(ctx, board, toMove)
				require.NoError(t, err)

				next, err := board.WithMove(position, toMove)
				require.NoError(t, err)
				winner, won := next.Winner()
				require.True(t, won, board.Pretty())
				require.Equal(t, toMove, winner)
			}

			for _, position := range board.AvailablePositions() {
				next, err := board.WithMove(position, toMove)
				require.NoError(t, err)
				walk(next, toMove.Other())
			}
		}

		walk(entity.EmptyBoard(), entity.MarkX)
	})

	t.Run("Full board has no moves", func(t *testing.T) {
		_, err := heuristic.SelectMove(ctx, mustBoard(t, "xoxxoooxx"), entity.MarkX)
		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})
}

func TestRandom_SelectMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Only picks available positions", func(t *testing.T) {
		// Given: a seeded random strategy and a partially filled board
		random := NewRandom(rand.New(rand.NewPCG(1, 2)))
		board := mustBoard(t, "xo  x  o ")
		available := board.AvailablePositions()

		// When: selecting many moves
		seen := map[int]bool{}
		for range 200 {
			position, err := random.SelectMove(ctx, board, entity.MarkX)
			require.NoError(t, err)

			// Then: each choice is free on the board
			require.True(t, slices.Contains(available, position), position)
			seen[position] = true
		}

		assert.Len(t, seen, len(available))
	})

	t.Run("Works with the default source", func(t *testing.T) {
		position, err := NewRandom(nil).SelectMove(ctx, mustBoard(t, "xoxxoox o"), entity.MarkX)
		require.NoError(t, err)
		assert.Equal(t, 2, position)
	})

	t.Run("Full board has no moves", func(t *testing.T) {
		_, err := NewRandom(nil).SelectMove(ctx, mustBoard(t, "xoxxoooxx"), entity.MarkO)
		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})
}

func TestFor(t *testing.T) {
	client := modelFunc(func(context.Context, string) (string, error) { return `{"position":5}`, nil })

	t.Run("Easy is random", func(t *testing.T) {
		assert.IsType(t, &Random{}, For(entity.EasyDifficulty, Options{}))
	})

	t.Run("Medium is heuristic", func(t *testing.T) {
		assert.IsType(t, &Heuristic{}, For(entity.MediumDifficulty, Options{RemoteClient: client}))
	})

	t.Run("Hard is remote when a client is configured", func(t *testing.T) {
		assert.IsType(t, &Remote{}, For(entity.HardDifficulty, Options{RemoteClient: client}))
	})

	t.Run("Hard without a client downgrades to heuristic", func(t *testing.T) {
		assert.IsType(t, &Heuristic{}, For(entity.HardDifficulty, Options{}))
	})

	t.Run("Unknown difficulty is heuristic", func(t *testing.T) {
		assert.IsType(t, &Heuristic{}, For(entity.Difficulty("insane"), Options{}))
	})
}
