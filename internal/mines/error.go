package mines

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyLayout       = errors.New("mines: layout must have at least one row and one column")
	ErrRaggedLayout      = errors.New("mines: all layout rows must have the same length")
	ErrInvalidDimensions = errors.New("mines: grid must have at least one row and one column")
	ErrTooManyMines      = errors.New("mines: mine count must be between 0 and the number of cells minus one")
	ErrNilRand           = errors.New("mines: random source is nil")
	ErrOutOfBounds       = errors.New("mines: position out of bounds")
)

func outOfBounds(row, col, rows, cols int) error {
	return fmt.Errorf("%w: %d:%d not within %dx%d", ErrOutOfBounds, row, col, rows, cols)
}
