package entity

import (
	"fmt"
	"strings"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/apperror"
)

// Positions use the numpad layout:
//
//	7 8 9
//	4 5 6
//	1 2 3
//
// Slot i of a Board holds position ExternalOrder[i], which is also the
// order of the 9-character wire string.
var ExternalOrder = [9]int{7, 8, 9, 4, 5, 6, 1, 2, 3}

const CenterPosition = 5

var (
	CornerPositions = [4]int{7, 9, 1, 3}
	SidePositions   = [4]int{8, 4, 6, 2}

	// WinCombos - rows, then columns, then diagonals over slot indices.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// positionToSlot maps a numpad position (index) to its slot; -1 for 0.
var positionToSlot = [10]int{-1, 6, 7, 8, 3, 4, 5, 0, 1, 2}

// Board is an immutable 3x3 grid. Methods never modify the receiver.
type Board [9]Mark

func EmptyBoard() Board {
	return Board{}
}

// ParseBoard - reads the 9-character wire form made of 'x', 'o' and ' '.
func ParseBoard(s string) (Board, error) {
	var board Board

	if len(s) != len(board) {
		return Board{}, fmt.Errorf("%w: must be exactly 9 characters long, got %d", apperror.ErrInvalidBoard, len(s))
	}

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case byte(MarkX):
			board[i] = MarkX
		case byte(MarkO):
			board[i] = MarkO
		case emptySymbol:
			board[i] = EmptyCell
		default:
			return Board{}, fmt.Errorf("%w: illegal character %q at %d", apperror.ErrInvalidBoard, s[i], i)
		}
	}

	return board, nil
}

// String - returns the 9-character wire form.
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(len(that))

	for _, cell := range that {
		sb.WriteString(cell.String())
	}

	return sb.String()
}

func (that Board) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Board) UnmarshalText(text []byte) error {
	board, err := ParseBoard(string(text))
	if err != nil {
		return err
	}
	*that = board
	return nil
}

func slotOf(position int) (int, error) {
	if position < 1 || position > 9 {
		return 0, fmt.Errorf("%w: position %d must be one of 1..9", apperror.ErrInvalidMove, position)
	}
	return positionToSlot[position], nil
}

// Cell - returns the mark at a numpad position.
func (that Board) Cell(position int) (Mark, error) {
	slot, err := slotOf(position)
	if err != nil {
		return EmptyCell, err
	}
	return that[slot], nil
}

func (that Board) IsEmptyAt(position int) bool {
	mark, err := that.Cell(position)
	return err == nil && mark == EmptyCell
}

// AvailablePositions - empty positions in wire order (7,8,9,4,5,6,1,2,3).
func (that Board) AvailablePositions() []int {
	positions := make([]int, 0, len(that))
	for slot, cell := range that {
		if cell == EmptyCell {
			positions = append(positions, ExternalOrder[slot])
		}
	}
	return positions
}

// WithMove - returns a copy of the board with mark placed at position.
func (that Board) WithMove(position int, mark Mark) (Board, error) {
	if !mark.IsPlayer() {
		return that, fmt.Errorf("%w: mark %q cannot be placed", apperror.ErrInvalidMove, mark.String())
	}

	slot, err := slotOf(position)
	if err != nil {
		return that, err
	}

	if that[slot] != EmptyCell {
		return that, fmt.Errorf("%w: cell %d is already occupied", apperror.ErrInvalidMove, position)
	}

	next := that
	next[slot] = mark

	return next, nil
}

// Winner - returns the mark that completed a line, if any.
func (that Board) Winner() (Mark, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a, true
		}
	}

	return EmptyCell, false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

func (that Board) IsDraw() bool {
	_, won := that.Winner()
	return !won && that.IsFull()
}

// Counts - number of x and o marks on the board.
func (that Board) Counts() (int, int) {
	var xs, os int
	for _, cell := range that {
		switch cell {
		case MarkX:
			xs++
		case MarkO:
			os++
		}
	}
	return xs, os
}

// Pretty - 3-line rendering in numpad layout, for debugging.
func (that Board) Pretty() string {
	s := that.String()
	lines := make([]string, 0, 3)
	for row := 0; row < 3; row++ {
		line := s[row*3 : row*3+3]
		lines = append(lines, strings.Join(strings.Split(line, ""), " "))
	}
	return strings.Join(lines, "\n")
}
