package game

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds          = errors.New("координата вне доски")
	ErrInvalidBounds        = errors.New("неверные границы доски")
	ErrInvalidOwner         = errors.New("неизвестный владелец")
	ErrInvalidConcatenation = errors.New("нельзя склеить последовательности разных владельцев или направлений")
)

// OutOfBoundsError возвращается при обращении к клетке за пределами окна доски
type OutOfBoundsError struct {
	Coord  Coord
	Bounds Bounds
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("координата %s вне доски [%d..%d]x[%d..%d]",
		e.Coord, e.Bounds.MinX, e.Bounds.MaxX, e.Bounds.MinY, e.Bounds.MaxY)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
