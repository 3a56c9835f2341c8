package game

// Direction - одно из 8 направлений на сетке. Ось y направлена вниз.
type Direction uint8

const (
	Right Direction = iota
	DownRight
	Down
	UpRight
	Left
	UpLeft
	Up
	DownLeft
)

var positiveDirections = [4]Direction{Right, DownRight, Down, UpRight}

var allDirections = [8]Direction{Right, DownRight, Down, UpRight, Left, UpLeft, Up, DownLeft}

// PositiveDirections возвращает по одному представителю на каждую ось,
// чтобы каждая линия через клетку сканировалась ровно один раз
func PositiveDirections() []Direction {
	return positiveDirections[:]
}

// AllDirections возвращает все 8 направлений
func AllDirections() []Direction {
	return allDirections[:]
}

func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Right:
		return 1, 0
	case DownRight:
		return 1, 1
	case Down:
		return 0, 1
	case UpRight:
		return 1, -1
	case Left:
		return -1, 0
	case UpLeft:
		return -1, -1
	case Up:
		return 0, -1
	case DownLeft:
		return -1, 1
	}
	return 0, 0
}

func (d Direction) Reversed() Direction {
	switch d {
	case Right:
		return Left
	case DownRight:
		return UpLeft
	case Down:
		return Up
	case UpRight:
		return DownLeft
	case Left:
		return Right
	case UpLeft:
		return DownRight
	case Up:
		return Down
	case DownLeft:
		return UpRight
	}
	return d
}

// IsPositive сообщает, является ли направление каноническим представителем оси
func (d Direction) IsPositive() bool {
	return d <= UpRight
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case DownRight:
		return "down_right"
	case Down:
		return "down"
	case UpRight:
		return "up_right"
	case Left:
		return "left"
	case UpLeft:
		return "up_left"
	case Up:
		return "up"
	case DownLeft:
		return "down_left"
	}
	return "unknown"
}
