package binval

import (
	"errors"
	"fmt"
)

var ErrEmpty = errors.New("binval: empty input")

type ErrInvalidDigit struct {
	Pos  int
	Char rune
}

func (e ErrInvalidDigit) Error() string {
	return fmt.Sprintf("binval: invalid digit %q at position %d", e.Char, e.Pos)
}

type ErrUnknownOp struct {
	Token string
}

func (e ErrUnknownOp) Error() string {
	return fmt.Sprintf("binval: unknown operator %q", e.Token)
}
