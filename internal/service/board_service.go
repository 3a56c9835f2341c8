package service

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"five_in_row/internal/cache"
	"five_in_row/internal/domain"
	"five_in_row/internal/game"
	"five_in_row/internal/logger"
	"five_in_row/internal/metrics"

	"github.com/google/uuid"
)

var (
	ErrBoardNotFound = errors.New("доска не найдена")
	ErrCellOccupied  = errors.New("клетка уже занята")
	ErrBoardTooLarge = errors.New("доска слишком большая")
)

type BoardServiceConfig struct {
	MaxCells int
	CacheTTL time.Duration
	IdleTTL  time.Duration
}

// одна доска в памяти; mu держится на все время анализа
type boardEntry struct {
	mu        sync.RWMutex
	id        string
	board     *game.Board
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// управляет досками и запускает анализ над ними
type BoardService struct {
	cfg    BoardServiceConfig
	cache  cache.Cache
	log    *slog.Logger
	boards map[string]*boardEntry
	mu     sync.RWMutex
	now    func() time.Time

	notifyMove    func(domain.MoveConfirmation)
	notifyRemoved func(id string)

	stop     chan struct{}
	stopOnce sync.Once
}

// создает сервис; если задан IdleTTL, запускает очистку неактивных досок
func NewBoardService(cfg BoardServiceConfig, c cache.Cache) *BoardService {
	if c == nil {
		c = cache.NewMemoryCache()
	}
	s := &BoardService{
		cfg:    cfg,
		cache:  c,
		log:    logger.For("board_service"),
		boards: make(map[string]*boardEntry),
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	if cfg.IdleTTL > 0 {
		go s.cleanupIdleBoards()
	}
	return s
}

// устанавливает callback для уведомлений о ходах
func (s *BoardService) SetMoveNotifyCallback(fn func(domain.MoveConfirmation)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyMove = fn
}

// устанавливает callback, вызываемый после удаления доски, в том числе по простою
func (s *BoardService) SetBoardRemovedCallback(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyRemoved = fn
}

func (s *BoardService) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *BoardService) Create(bounds game.Bounds) (domain.BoardInfo, error) {
	if err := bounds.Validate(); err != nil {
		return domain.BoardInfo{}, err
	}
	if s.cfg.MaxCells > 0 && bounds.Cells() > s.cfg.MaxCells {
		return domain.BoardInfo{}, fmt.Errorf("%w: %dx%d, максимум %d клеток",
			ErrBoardTooLarge, bounds.Width(), bounds.Height(), s.cfg.MaxCells)
	}
	board, err := game.NewBoard(bounds)
	if err != nil {
		return domain.BoardInfo{}, err
	}

	now := s.now()
	e := &boardEntry{
		id:        uuid.New().String(),
		board:     board,
		createdAt: now,
		updatedAt: now,
	}

	info := e.info()

	s.mu.Lock()
	s.boards[e.id] = e
	count := len(s.boards)
	s.mu.Unlock()

	metrics.BoardsActive.Set(float64(count))
	s.log.Info("board created", "board_id", e.id, "width", info.Width, "height", info.Height)

	return info, nil
}

func (s *BoardService) Get(id string) (domain.BoardInfo, error) {
	e, err := s.entry(id)
	if err != nil {
		return domain.BoardInfo{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.info(), nil
}

// Exists сообщает, есть ли доска с таким id
func (s *BoardService) Exists(id string) bool {
	_, err := s.entry(id)
	return err == nil
}

func (s *BoardService) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.boards[id]
	delete(s.boards, id)
	count := len(s.boards)
	notify := s.notifyRemoved
	s.mu.Unlock()

	if !ok {
		return ErrBoardNotFound
	}
	metrics.BoardsActive.Set(float64(count))
	s.log.Info("board deleted", "board_id", id)
	s.forget(id, notify)
	return nil
}

// сбрасывает кэш анализа доски и сообщает подписчикам об удалении
func (s *BoardService) forget(id string, notify func(string)) {
	if err := s.cache.DeletePrefix(context.Background(), id+":"); err != nil {
		s.log.Warn("analysis cache cleanup failed", "board_id", id, "error", err)
	}
	if notify != nil {
		notify(id)
	}
}

// Place ставит камень владельца на доску. Занятые клетки не перезаписываются.
func (s *BoardService) Place(ctx context.Context, id string, c game.Coord, owner game.Owner) (domain.MoveConfirmation, error) {
	if !owner.IsValid() {
		return domain.MoveConfirmation{}, game.ErrInvalidOwner
	}
	return s.mutate(ctx, id, c, owner, domain.MoveActionPlace)
}

// Clear убирает камень с доски
func (s *BoardService) Clear(ctx context.Context, id string, c game.Coord) (domain.MoveConfirmation, error) {
	return s.mutate(ctx, id, c, game.None, domain.MoveActionClear)
}

func (s *BoardService) mutate(ctx context.Context, id string, c game.Coord, owner game.Owner, action domain.MoveAction) (domain.MoveConfirmation, error) {
	if err := ctx.Err(); err != nil {
		return domain.MoveConfirmation{}, err
	}
	e, err := s.entry(id)
	if err != nil {
		return domain.MoveConfirmation{}, err
	}
	s.mu.RLock()
	notify := s.notifyMove
	s.mu.RUnlock()

	// уведомление уходит под блокировкой доски, чтобы подписчики видели версии по порядку
	e.mu.Lock()
	defer e.mu.Unlock()
	current, err := e.board.Get(c)
	if err != nil {
		return domain.MoveConfirmation{}, err
	}
	if action == domain.MoveActionPlace && current != game.None {
		return domain.MoveConfirmation{}, fmt.Errorf("%w: %s", ErrCellOccupied, c)
	}
	if err := e.board.Set(c, owner); err != nil {
		return domain.MoveConfirmation{}, err
	}
	if action == domain.MoveActionClear {
		owner = current
	}
	e.version++
	e.updatedAt = s.now()
	confirmation := domain.MoveConfirmation{
		BoardID: e.id,
		Action:  action,
		X:       c.X,
		Y:       c.Y,
		Owner:   owner,
		Version: e.version,
		Stones:  e.board.Stones(),
		At:      e.updatedAt,
	}

	metrics.Moves.WithLabelValues(string(action)).Inc()
	s.log.Debug("move applied", "board_id", id, "action", action, "coord", c.String(), "owner", owner.String())

	if notify != nil {
		notify(confirmation)
	}
	return confirmation, nil
}

// Sequences возвращает ряды владельца, результат кэшируется по версии доски
func (s *BoardService) Sequences(ctx context.Context, id string, owner game.Owner) ([]domain.SequenceView, error) {
	if !owner.IsValid() {
		return nil, game.ErrInvalidOwner
	}
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	key := fmt.Sprintf("%s:%d:%s", e.id, e.version, owner)
	if cached, ok := s.loadCached(ctx, key); ok {
		return cached, nil
	}

	start := time.Now()
	seqs, err := game.NewAnalysis(e.board).FindSequences(owner)
	metrics.ObserveSince("sequences", start)
	if err != nil {
		return nil, err
	}

	views := make([]domain.SequenceView, len(seqs))
	for i, seq := range seqs {
		views[i] = domain.NewSequenceView(seq)
	}
	s.storeCached(ctx, key, views)
	return views, nil
}

// Frontier возвращает пустые клетки рядом с камнями в построчном порядке
func (s *BoardService) Frontier(ctx context.Context, id string) ([]game.Coord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	start := time.Now()
	fields := game.NewAnalysis(e.board).FindEmptyAdjacentFields()
	e.mu.RUnlock()
	metrics.ObserveSince("frontier", start)

	out := make([]game.Coord, 0, len(fields))
	for c := range fields {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b game.Coord) int {
		if a.Y != b.Y {
			return cmp.Compare(a.Y, b.Y)
		}
		return cmp.Compare(a.X, b.X)
	})
	return out, nil
}

func (s *BoardService) loadCached(ctx context.Context, key string) ([]domain.SequenceView, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("analysis cache read failed", "key", key, "error", err)
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	var views []domain.SequenceView
	if err := json.Unmarshal(raw, &views); err != nil {
		s.log.Warn("analysis cache entry corrupted", "key", key, "error", err)
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return views, true
}

func (s *BoardService) storeCached(ctx context.Context, key string, views []domain.SequenceView) {
	raw, err := json.Marshal(views)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cfg.CacheTTL); err != nil {
		s.log.Warn("analysis cache write failed", "key", key, "error", err)
	}
}

func (s *BoardService) entry(id string) (*boardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.boards[id]
	if !ok {
		return nil, ErrBoardNotFound
	}
	return e, nil
}

// удаляет доски, которые не менялись дольше IdleTTL
func (s *BoardService) cleanupIdleBoards() {
	interval := s.cfg.IdleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *BoardService) evictIdle() int {
	cutoff := s.now().Add(-s.cfg.IdleTTL)

	s.mu.Lock()
	var evicted []string
	for id, e := range s.boards {
		e.mu.RLock()
		idle := e.updatedAt.Before(cutoff)
		e.mu.RUnlock()
		if idle {
			delete(s.boards, id)
			evicted = append(evicted, id)
		}
	}
	count := len(s.boards)
	notify := s.notifyRemoved
	s.mu.Unlock()

	if len(evicted) > 0 {
		metrics.BoardsActive.Set(float64(count))
		s.log.Info("idle boards evicted", "count", len(evicted))
	}
	for _, id := range evicted {
		s.forget(id, notify)
	}
	return len(evicted)
}

func (e *boardEntry) info() domain.BoardInfo {
	stones := make([]domain.Stone, 0, e.board.Stones())
	for c, o := range e.board.OccupiedFields(game.None) {
		stones = append(stones, domain.Stone{X: c.X, Y: c.Y, Owner: o})
	}
	return domain.BoardInfo{
		ID:        e.id,
		Bounds:    e.board.Bounds(),
		Width:     e.board.Width(),
		Height:    e.board.Height(),
		Stones:    stones,
		Version:   e.version,
		CreatedAt: e.createdAt,
		UpdatedAt: e.updatedAt,
	}
}
