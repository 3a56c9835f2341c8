package game

// Analysis ищет ряды и кандидатов для хода на одной доске.
// Доску нельзя изменять, пока выполняется запрос.
type Analysis struct {
	board *Board
}

func NewAnalysis(board *Board) *Analysis {
	return &Analysis{board: board}
}

// FindSequences возвращает все ряды владельца: сначала по Right, затем DownRight,
// Down и UpRight. Внутри направления ряды идут в порядке обхода их первой клетки.
func (a *Analysis) FindSequences(owner Owner) ([]AnnotatedSequence, error) {
	if !owner.IsValid() {
		return nil, ErrInvalidOwner
	}
	var runs []Sequence
	for _, d := range PositiveDirections() {
		runs = append(runs, a.findDirectionalSequences(owner, d)...)
	}

	out := make([]AnnotatedSequence, 0, len(runs))
	for _, s := range runs {
		out = append(out, a.Annotate(s))
	}
	return out, nil
}

func (a *Analysis) findDirectionalSequences(owner Owner, d Direction) []Sequence {
	var runs []Sequence
	solved := make(map[Coord]struct{})

	for c := range a.board.OccupiedFields(owner) {
		if _, ok := solved[c]; ok {
			continue
		}
		run := a.followRun(c, owner, d)
		for _, f := range run.Fields {
			solved[f] = struct{}{}
		}
		runs = append(runs, run)
	}
	return runs
}

// followRun идет вперед от start, пока следующая клетка принадлежит тому же владельцу
func (a *Analysis) followRun(start Coord, owner Owner, d Direction) Sequence {
	fields := []Coord{start}
	next := start.Adjacent(d)
	for a.ownerAt(next) == owner {
		fields = append(fields, next)
		next = next.Adjacent(d)
	}
	return Sequence{Owner: owner, Direction: d, Fields: fields}
}

// Annotate считает открытые концы ряда на текущей доске
func (a *Analysis) Annotate(s Sequence) AnnotatedSequence {
	missing := s.MissingPoints()
	return s.Annotated(OpenEnds{
		Start: a.countOpenEnd(s.Owner, missing, s.Start(), s.Direction.Reversed()),
		End:   a.countOpenEnd(s.Owner, missing, s.End(), s.Direction),
	})
}

// countOpenEnd считает свободные клетки за концом ряда, но не больше missing.
// Свободной считается любая клетка внутри доски, не занятая противником.
func (a *Analysis) countOpenEnd(owner Owner, missing int, from Coord, d Direction) int {
	free := 0
	for free < missing {
		from = from.Adjacent(d)
		if !a.board.Contains(from) || a.ownerAt(from) == owner.Opponent() {
			break
		}
		free++
	}
	return free
}

// FindEmptyAdjacentFields возвращает пустые клетки, соседние хотя бы с одной занятой
func (a *Analysis) FindEmptyAdjacentFields() map[Coord]struct{} {
	fields := make(map[Coord]struct{})
	for c := range a.board.OpenFields() {
		for _, d := range AllDirections() {
			if a.ownerAt(c.Adjacent(d)) != None {
				fields[c] = struct{}{}
				break
			}
		}
	}
	return fields
}

// ownerAt возвращает None для клеток вне доски
func (a *Analysis) ownerAt(c Coord) Owner {
	owner, err := a.board.Get(c)
	if err != nil {
		return None
	}
	return owner
}
