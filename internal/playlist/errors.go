package playlist

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a position is outside [1, Len()].
var ErrOutOfRange = errors.New("position out of range")

// RangeError carries the rejected position and the playlist size.
type RangeError struct {
	Position int
	Count    int
}

func (e *RangeError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("song %d: playlist is empty", e.Position)
	}
	return fmt.Sprintf("song %d: valid numbers are 1 to %d", e.Position, e.Count)
}

// Is makes errors.Is(err, ErrOutOfRange) match.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
