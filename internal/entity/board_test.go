package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/apperror"
)

func mustBoard(t *testing.T, s string) Board {
	t.Helper()

	board, err := ParseBoard(s)
	require.NoError(t, err)

	return board
}

func TestParseBoard(t *testing.T) {
	t.Run("Parses a valid board string", func(t *testing.T) {
		// When: parsing a board with marks in the first row
		board, err := ParseBoard("xo       ")

		// Then: the marks land on positions 7 and 8
		require.NoError(t, err)
		assert.Equal(t, MarkX, board[0])
		assert.Equal(t, MarkO, board[1])
		assert.Equal(t, "xo       ", board.String())
	})

	t.Run("Rejects wrong length", func(t *testing.T) {
		for _, s := range []string{"", "xo", "          "} {
			// When: parsing a string that is not 9 characters long
			_, err := ParseBoard(s)

			// Then: ErrInvalidBoard is returned
			require.ErrorIs(t, err, apperror.ErrInvalidBoard, s)
		}
	})

	t.Run("Rejects illegal characters", func(t *testing.T) {
		// When: parsing a board with an uppercase X
		_, err := ParseBoard("X        ")

		// Then: ErrInvalidBoard is returned
		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Round trips every valid string", func(t *testing.T) {
		symbols := []byte{'x', 'o', ' '}
		// 3^9 boards, including unreachable ones
		for n := 0; n < 19683; n++ {
			raw := make([]byte, 9)
			v := n
			for i := range raw {
				raw[i] = symbols[v%3]
				v /= 3
			}

			board, err := ParseBoard(string(raw))
			require.NoError(t, err)

			again, err := ParseBoard(board.String())
			require.NoError(t, err)
			require.Equal(t, board, again)
			require.Equal(t, string(raw), board.String())
		}
	})
}

func TestBoard_AvailablePositions(t *testing.T) {
	t.Run("Empty board lists every position in wire order", func(t *testing.T) {
		assert.Equal(t, []int{7, 8, 9, 4, 5, 6, 1, 2, 3}, EmptyBoard().AvailablePositions())
	})

	t.Run("Occupied positions are skipped", func(t *testing.T) {
		// Given: x on 7 and o on 5
		board := mustBoard(t, "x   o    ")

		// Then: only the remaining positions are listed
		assert.Equal(t, []int{8, 9, 4, 6, 1, 2, 3}, board.AvailablePositions())
	})

	t.Run("Full board has none", func(t *testing.T) {
		board := mustBoard(t, "xoxxoooxx")
		assert.Empty(t, board.AvailablePositions())
	})
}

func TestBoard_WithMove(t *testing.T) {
	t.Run("Places the mark and leaves the receiver untouched", func(t *testing.T) {
		// Given: an empty board
		board := EmptyBoard()

		// When: x plays position 1 (bottom-left)
		next, err := board.WithMove(1, MarkX)

		// Then: slot 6 holds x and the original board is still empty
		require.NoError(t, err)
		assert.Equal(t, "      x  ", next.String())
		assert.Equal(t, "         ", board.String())
	})

	t.Run("Occupied cell fails without mutation", func(t *testing.T) {
		// Given: o on the center
		board := mustBoard(t, "    o    ")

		// When: x tries to play the center
		next, err := board.WithMove(5, MarkX)

		// Then: ErrInvalidMove is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, board, next)
		assert.Equal(t, "    o    ", board.String())
	})

	t.Run("Out of range positions fail", func(t *testing.T) {
		for _, position := range []int{-1, 0, 10, 42} {
			_, err := EmptyBoard().WithMove(position, MarkX)
			require.ErrorIs(t, err, apperror.ErrInvalidMove, position)
		}
	})

	t.Run("Empty mark cannot be placed", func(t *testing.T) {
		_, err := EmptyBoard().WithMove(5, EmptyCell)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})
}

func TestBoard_Winner(t *testing.T) {
	t.Run("Top row", func(t *testing.T) {
		// Given: positions 7,8,9 held by x
		board := mustBoard(t, "xxx      ")

		// When: checking the winner
		winner, ok := board.Winner()

		// Then: x wins
		require.True(t, ok)
		assert.Equal(t, MarkX, winner)
	})

	t.Run("Column", func(t *testing.T) {
		board := mustBoard(t, " o  o  o ")

		winner, ok := board.Winner()

		require.True(t, ok)
		assert.Equal(t, MarkO, winner)
	})

	t.Run("Diagonal", func(t *testing.T) {
		board := mustBoard(t, "  x x x  ")

		winner, ok := board.Winner()

		require.True(t, ok)
		assert.Equal(t, MarkX, winner)
	})

	t.Run("No winner on an ongoing board", func(t *testing.T) {
		board := mustBoard(t, "xo  x   o")

		_, ok := board.Winner()

		assert.False(t, ok)
		assert.False(t, board.IsDraw())
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a full board without a line
		board := mustBoard(t, "xoxxoooxx")

		// Then: it is full, has no winner and is a draw
		_, ok := board.Winner()
		assert.False(t, ok)
		assert.True(t, board.IsFull())
		assert.True(t, board.IsDraw())
	})

	t.Run("Winner is unique on every reachable board", func(t *testing.T) {
		var walk func(board Board, toMove Mark)
		walk = func(board Board, toMove Mark) {
			winner, ok := board.Winner()
			if ok {
				for _, combo := range WinCombos {
					a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
					if a != EmptyCell && a == b && b == c {
						require.Equal(t, winner, a, board.Pretty())
					}
				}
				return
			}

			for _, position := range board.AvailablePositions() {
				next, err := board.WithMove(position, toMove)
				require.NoError(t, err)
				walk(next, toMove.Other())
			}
		}

		walk(EmptyBoard(), MarkX)
	})
}

func TestBoard_Helpers(t *testing.T) {
	board := mustBoard(t, "xo  x    ")

	xs, os := board.Counts()
	assert.Equal(t, 2, xs)
	assert.Equal(t, 1, os)

	mark, err := board.Cell(8)
	require.NoError(t, err)
	assert.Equal(t, MarkO, mark)
	assert.True(t, board.IsEmptyAt(1))
	assert.False(t, board.IsEmptyAt(5))
	assert.False(t, board.IsEmptyAt(0))

	assert.Equal(t, "x o  \n  x  \n     ", board.Pretty())
}

func TestParseMark(t *testing.T) {
	mark, err := ParseMark("o")
	require.NoError(t, err)
	assert.Equal(t, MarkO, mark)

	// unknown symbols are not move errors
	_, err = ParseMark("z")
	require.ErrorIs(t, err, ErrUnknownMark)
	assert.NotErrorIs(t, err, apperror.ErrInvalidMove)
}
