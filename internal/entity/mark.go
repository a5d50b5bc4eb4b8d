package entity

import (
	"errors"
	"fmt"
)

// Mark is a player's symbol on the board. The zero value is an empty cell.
type Mark byte

const (
	EmptyCell Mark = 0
	MarkX     Mark = 'x'
	MarkO     Mark = 'o'
)

const emptySymbol = ' '

// ParseMark - converts a wire symbol ("x" or "o") into a Mark.
func ParseMark(s string) (Mark, error) {
	switch s {
	case "x":
		return MarkX, nil
	case "o":
		return MarkO, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMark, s)
	}
}

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// Other - returns the opposing mark.
func (that Mark) Other() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

func (that Mark) String() string {
	if that == EmptyCell {
		return string(emptySymbol)
	}
	return string(rune(that))
}

func (that Mark) MarshalText() ([]byte, error) {
	if !that.IsPlayer() {
		return nil, fmt.Errorf("cannot marshal mark %q", rune(that))
	}
	return []byte{byte(that)}, nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}
	*that = mark
	return nil
}

type Difficulty string

const (
	EasyDifficulty   Difficulty = "easy"
	MediumDifficulty Difficulty = "medium"
	HardDifficulty   Difficulty = "hard"
)

var (
	ErrUnknownMark       = errors.New("unknown mark")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case EasyDifficulty, MediumDifficulty, HardDifficulty:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusXWon       Status = "x_won"
	StatusOWon       Status = "o_won"
	StatusDraw       Status = "draw"
)

func (that Status) IsTerminal() bool {
	return that != StatusInProgress
}

// StatusOf - derives the game status from a board.
func StatusOf(board Board) Status {
	if winner, ok := board.Winner(); ok {
		if winner == MarkX {
			return StatusXWon
		}
		return StatusOWon
	}

	if board.IsFull() {
		return StatusDraw
	}

	return StatusInProgress
}
