package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrCoordinateOutOfRange = errors.New("coordinate out of range")
)

func outOfRange(c Coord) error {
	return fmt.Errorf("%w: %s", ErrCoordinateOutOfRange, c)
}
