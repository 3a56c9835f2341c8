package game

import (
	"fmt"
	"slices"
	"strings"
)

// RequiredLength - длина ряда, необходимая для победы
const RequiredLength = 5

// Sequence - непрерывный ряд клеток одного владельца вдоль одного направления
type Sequence struct {
	Owner     Owner
	Direction Direction
	Fields    []Coord
}

func NewSequence(owner Owner, direction Direction, fields ...Coord) Sequence {
	return Sequence{Owner: owner, Direction: direction, Fields: fields}
}

func (s Sequence) Len() int { return len(s.Fields) }

// Start возвращает первую клетку ряда
func (s Sequence) Start() Coord { return s.Fields[0] }

// End возвращает последнюю клетку ряда
func (s Sequence) End() Coord { return s.Fields[len(s.Fields)-1] }

// MissingPoints - сколько камней не хватает до победной длины, может быть <= 0
func (s Sequence) MissingPoints() int {
	return RequiredLength - s.Len()
}

func (s Sequence) Closed() bool {
	return s.Len() >= RequiredLength
}

func (s Sequence) Equal(other Sequence) bool {
	return s.Owner == other.Owner &&
		s.Direction == other.Direction &&
		slices.Equal(s.Fields, other.Fields)
}

// Concat склеивает два ряда в порядке аргументов. Непрерывность не проверяется.
func (s Sequence) Concat(other Sequence) (Sequence, error) {
	if s.Owner != other.Owner || s.Direction != other.Direction {
		return Sequence{}, ErrInvalidConcatenation
	}
	fields := make([]Coord, 0, len(s.Fields)+len(other.Fields))
	fields = append(fields, s.Fields...)
	fields = append(fields, other.Fields...)
	return Sequence{Owner: s.Owner, Direction: s.Direction, Fields: fields}, nil
}

func (s Sequence) String() string {
	return s.Annotated(OpenEnds{}).String()
}

// Annotated прикрепляет к ряду посчитанные открытые концы
func (s Sequence) Annotated(ends OpenEnds) AnnotatedSequence {
	return AnnotatedSequence{Sequence: s, OpenEnds: ends}
}

// OpenEnds - количество свободных клеток за началом и за концом ряда
type OpenEnds struct {
	Start int
	End   int
}

// AnnotatedSequence - ряд вместе с результатом подсчета открытых концов
type AnnotatedSequence struct {
	Sequence
	OpenEnds OpenEnds
}

func (a AnnotatedSequence) SurroundingOpenPoints() int {
	return a.OpenEnds.Start + a.OpenEnds.End
}

// Closable - хватает ли места, чтобы теоретически дотянуть ряд до победной длины
func (a AnnotatedSequence) Closable() bool {
	return a.SurroundingOpenPoints() >= a.MissingPoints()
}

func (a AnnotatedSequence) String() string {
	parts := make([]string, len(a.Fields))
	for i, f := range a.Fields {
		parts[i] = f.String()
	}
	closable := ""
	if a.Closable() {
		closable = " closable"
	}
	return fmt.Sprintf("(%s: %s) <%d-%d%s>",
		a.Direction, strings.Join(parts, ","), a.OpenEnds.Start, a.OpenEnds.End, closable)
}
