package game

import "fmt"

// Coord - координата на бесконечной сетке
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Adjacent возвращает соседнюю клетку в заданном направлении, границы не проверяются
func (c Coord) Adjacent(d Direction) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

func (c Coord) String() string {
	return fmt.Sprintf("<%d:%d>", c.X, c.Y)
}
