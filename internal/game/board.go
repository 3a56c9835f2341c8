package game

import (
	"iter"
	"math"
)

// MaxBoardCells ограничивает число клеток одного окна
const MaxBoardCells = 1 << 28

// Bounds - включительные границы окна доски по обеим осям
type Bounds struct {
	MinX int `json:"min_x"`
	MaxX int `json:"max_x"`
	MinY int `json:"min_y"`
	MaxY int `json:"max_y"`
}

func (b Bounds) Width() int  { return b.MaxX - b.MinX + 1 }
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Cells возвращает число клеток окна; имеет смысл только после Validate
func (b Bounds) Cells() int { return b.Width() * b.Height() }

// Validate проверяет, что окно непустое и его размеры не переполняют int
func (b Bounds) Validate() error {
	w, ok := span(b.MinX, b.MaxX)
	if !ok {
		return ErrInvalidBounds
	}
	h, ok := span(b.MinY, b.MaxY)
	if !ok {
		return ErrInvalidBounds
	}
	if w > MaxBoardCells/h {
		return ErrInvalidBounds
	}
	return nil
}

// span возвращает hi-lo+1, если результат помещается в int
func span(lo, hi int) (int, bool) {
	if hi < lo {
		return 0, false
	}
	if lo < 0 && hi > math.MaxInt+lo {
		return 0, false
	}
	d := hi - lo
	if d == math.MaxInt {
		return 0, false
	}
	return d + 1, true
}

// Contains проверяет, лежит ли координата внутри окна
func (b Bounds) Contains(c Coord) bool {
	return c.X >= b.MinX && c.X <= b.MaxX && c.Y >= b.MinY && c.Y <= b.MaxY
}

// Board - конечное прямоугольное окно бесконечной сетки
type Board struct {
	bounds Bounds
	cells  []Owner
	stones int
}

// создает пустую доску с фиксированными границами
func NewBoard(bounds Bounds) (*Board, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	return &Board{
		bounds: bounds,
		cells:  make([]Owner, bounds.Cells()),
	}, nil
}

func (b *Board) Bounds() Bounds { return b.bounds }
func (b *Board) Width() int     { return b.bounds.Width() }
func (b *Board) Height() int    { return b.bounds.Height() }

// Stones возвращает количество занятых клеток
func (b *Board) Stones() int { return b.stones }

func (b *Board) Contains(c Coord) bool {
	return b.bounds.Contains(c)
}

func (b *Board) Get(c Coord) (Owner, error) {
	i, err := b.index(c)
	if err != nil {
		return None, err
	}
	return b.cells[i], nil
}

// Set записывает владельца клетки; None очищает клетку
func (b *Board) Set(c Coord, owner Owner) error {
	if owner != None && !owner.IsValid() {
		return ErrInvalidOwner
	}
	i, err := b.index(c)
	if err != nil {
		return err
	}
	prev := b.cells[i]
	b.cells[i] = owner
	switch {
	case prev == None && owner != None:
		b.stones++
	case prev != None && owner == None:
		b.stones--
	}
	return nil
}

func (b *Board) Clear(c Coord) error {
	return b.Set(c, None)
}

func (b *Board) IsOpen(c Coord) (bool, error) {
	owner, err := b.Get(c)
	if err != nil {
		return false, err
	}
	return owner == None, nil
}

// Fields обходит все клетки построчно: y снаружи, x внутри, оба по возрастанию
func (b *Board) Fields() iter.Seq2[Coord, Owner] {
	return func(yield func(Coord, Owner) bool) {
		w, h := b.bounds.Width(), b.bounds.Height()
		i := 0
		for dy := 0; dy < h; dy++ {
			for dx := 0; dx < w; dx++ {
				c := Coord{X: b.bounds.MinX + dx, Y: b.bounds.MinY + dy}
				if !yield(c, b.cells[i]) {
					return
				}
				i++
			}
		}
	}
}

// OccupiedFields обходит занятые клетки; None означает любого владельца
func (b *Board) OccupiedFields(owner Owner) iter.Seq2[Coord, Owner] {
	return func(yield func(Coord, Owner) bool) {
		for c, o := range b.Fields() {
			if o == None || (owner != None && o != owner) {
				continue
			}
			if !yield(c, o) {
				return
			}
		}
	}
}

func (b *Board) OpenFields() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for c, o := range b.Fields() {
			if o != None {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Clone возвращает независимую копию доски
func (b *Board) Clone() *Board {
	cells := make([]Owner, len(b.cells))
	copy(cells, b.cells)
	return &Board{bounds: b.bounds, cells: cells, stones: b.stones}
}

func (b *Board) index(c Coord) (int, error) {
	if !b.bounds.Contains(c) {
		return 0, &OutOfBoundsError{Coord: c, Bounds: b.bounds}
	}
	return (c.Y-b.bounds.MinY)*b.bounds.Width() + (c.X - b.bounds.MinX), nil
}
