package domain

import (
	"time"

	"five_in_row/internal/game"
)

type MoveAction string

const (
	MoveActionPlace MoveAction = "place"
	MoveActionClear MoveAction = "clear"
)

// подтверждение хода, отправляется клиенту и подписчикам доски
type MoveConfirmation struct {
	BoardID string     `json:"board_id"`
	Action  MoveAction `json:"action"`
	X       int        `json:"x"`
	Y       int        `json:"y"`
	Owner   game.Owner `json:"owner,omitempty"`
	Version int64      `json:"version"`
	Stones  int        `json:"stones"`
	At      time.Time  `json:"at"`
}

type Stone struct {
	X     int        `json:"x"`
	Y     int        `json:"y"`
	Owner game.Owner `json:"owner"`
}

type BoardInfo struct {
	ID        string      `json:"id"`
	Bounds    game.Bounds `json:"bounds"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Stones    []Stone     `json:"stones"`
	Version   int64       `json:"version"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ряд с посчитанными открытыми концами в виде для клиента
type SequenceView struct {
	Owner           game.Owner   `json:"owner"`
	Direction       string       `json:"direction"`
	Fields          []game.Coord `json:"fields"`
	Length          int          `json:"length"`
	MissingPoints   int          `json:"missing_points"`
	StartOpenPoints int          `json:"start_open_points"`
	EndOpenPoints   int          `json:"end_open_points"`
	Closable        bool         `json:"closable"`
	Closed          bool         `json:"closed"`
}

func NewSequenceView(s game.AnnotatedSequence) SequenceView {
	return SequenceView{
		Owner:           s.Owner,
		Direction:       s.Direction.String(),
		Fields:          s.Fields,
		Length:          s.Len(),
		MissingPoints:   s.MissingPoints(),
		StartOpenPoints: s.OpenEnds.Start,
		EndOpenPoints:   s.OpenEnds.End,
		Closable:        s.Closable(),
		Closed:          s.Closed(),
	}
}
