package habit

import (
	"context"
	"sync"
	"time"

	"habittracker/internal/model"
	"habittracker/pkg/kv"
	"habittracker/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultStorageKey is the key the whole snapshot is stored under.
const DefaultStorageKey = "habits-data"

type Status int

const (
	StatusLoading Status = iota
	StatusReady
)

func (s Status) String() string {
	if s == StatusReady {
		return "ready"
	}
	return "loading"
}

// Store owns the habit list. Mutations update memory synchronously and
// then dispatch a full-snapshot save that nobody waits for; the last save
// to reach the backend wins.
type Store struct {
	backend  kv.Backend
	logger   *zap.Logger
	key      string
	notifier Notifier
	newID    func() model.HabitID
	now      func() time.Time

	mu          sync.Mutex
	idle        *sync.Cond
	state       State
	status      Status
	loadStarted bool
	pending     int
}

func NewStore(backend kv.Backend, logger *zap.Logger) *Store {
	s := &Store{
		backend: backend,
		logger:  logger,
		key:     DefaultStorageKey,
		newID:   func() model.HabitID { return model.HabitID(uuid.NewString()) },
		now:     time.Now,
	}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// WithKey sets the storage key.
func (s *Store) WithKey(key string) *Store {
	if key != "" {
		s.key = key
	}
	return s
}

// WithNotifier sets where change events go.
func (s *Store) WithNotifier(n Notifier) *Store {
	s.notifier = n
	return s
}

// WithIDGenerator replaces the uuid id source.
func (s *Store) WithIDGenerator(fn func() model.HabitID) *Store {
	s.newID = fn
	return s
}

// WithClock replaces time.Now, which decides what "today" is.
func (s *Store) WithClock(fn func() time.Time) *Store {
	s.now = fn
	return s
}

// Load reads the snapshot once. Missing data, backend errors and
// undecodable blobs all leave the store empty; in every case the store
// becomes ready. Calls after the first are ignored.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	if s.loadStarted {
		s.mu.Unlock()
		s.logger.Debug("Habit store already loaded", zap.String("key", s.key))
		return
	}
	s.loadStarted = true
	s.mu.Unlock()

	habits := s.fetch(ctx)

	s.mu.Lock()
	s.state = NewState(habits)
	s.status = StatusReady
	s.mu.Unlock()

	s.logger.Info("Habit store ready",
		zap.String("key", s.key),
		zap.Int("habit_count", len(habits)),
	)
}

func (s *Store) fetch(ctx context.Context) []model.Habit {
	raw, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("Failed to read habit snapshot, starting empty",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return nil
	}
	if !found {
		s.logger.Info("No existing habit data, starting fresh", zap.String("key", s.key))
		return nil
	}

	habits, err := DecodeSnapshot([]byte(raw))
	if err != nil {
		s.logger.Warn("Discarding unreadable habit snapshot",
			zap.String("key", s.key),
			zap.Int("bytes", len(raw)),
			zap.Error(err),
		)
		return nil
	}
	return habits
}

func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Store) Ready() bool {
	return s.Status() == StatusReady
}

// Snapshot returns the current state. Before Load resolves it is empty.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Habits returns copies of all habits in display order.
func (s *Store) Habits() []model.Habit {
	return s.Snapshot().Habits()
}

func (s *Store) Habit(id model.HabitID) (model.Habit, bool) {
	return s.Snapshot().Find(id)
}

// Today is the current calendar day according to the store clock.
func (s *Store) Today() model.Day {
	return model.DayOf(s.now())
}

// AddHabit appends a habit. ok is false when the name was blank, the id
// generator returned an id already in use, or the store is still loading.
func (s *Store) AddHabit(name string) (h model.Habit, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.acceptMutation("add") {
		return model.Habit{}, false
	}

	id := s.newID()
	if _, taken := s.state.Find(id); taken {
		s.logger.Warn("Ignoring habit with duplicate id", zap.String("habit_id", string(id)))
		return model.Habit{}, false
	}
	next, eff := s.state.Add(id, name, s.now())
	if !eff.Save {
		s.logger.Debug("Ignoring habit with blank name")
		return model.Habit{}, false
	}
	s.apply(next, eff, "add")
	h, _ = next.Find(id)
	return h, true
}

// ToggleCompletion flips day for habit id. ok is false when id is unknown
// or the store is still loading.
func (s *Store) ToggleCompletion(id model.HabitID, day model.Day) (completed, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.acceptMutation("toggle") {
		return false, false
	}

	next, eff := s.state.Toggle(id, day, s.now())
	if !eff.Save {
		s.logger.Debug("Ignoring toggle for unknown habit", zap.String("habit_id", string(id)))
		return false, false
	}
	s.apply(next, eff, "toggle")
	return eff.Event.Completed, true
}

// ToggleToday toggles the store clock's current day.
func (s *Store) ToggleToday(id model.HabitID) (completed, ok bool) {
	return s.ToggleCompletion(id, s.Today())
}

// DeleteHabit removes habit id and reports whether it existed. Callers
// holding a selection of id must clear it themselves.
func (s *Store) DeleteHabit(id model.HabitID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.acceptMutation("delete") {
		return false
	}

	next, eff := s.state.Delete(id, s.now())
	if !eff.Save {
		s.logger.Debug("Ignoring delete for unknown habit", zap.String("habit_id", string(id)))
		return false
	}
	s.apply(next, eff, "delete")
	return true
}

// Wait blocks until every dispatched save and event has finished.
func (s *Store) Wait() {
	s.mu.Lock()
	for s.pending > 0 {
		s.idle.Wait()
	}
	s.mu.Unlock()
}

// Flush is Wait bounded by ctx. It returns ctx's error as soon as ctx is
// done, even if saves are still blocked in the backend.
func (s *Store) Flush(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		s.idle.Broadcast()
		s.mu.Unlock()
	})
	defer stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	for s.pending > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.idle.Wait()
	}
	return nil
}

// caller holds s.mu
func (s *Store) acceptMutation(op string) bool {
	if s.status == StatusReady {
		return true
	}
	s.logger.Warn("Rejecting mutation while habit store is loading", zap.String("op", op))
	return false
}

// caller holds s.mu
func (s *Store) apply(next State, eff Effect, op string) {
	s.state = next
	metrics.IncrementMutation(op)

	if eff.Save {
		// Encode here so each save carries the state its own mutation produced.
		data, err := EncodeSnapshot(next.habits)
		if err != nil {
			metrics.IncrementSnapshotSave(err)
			s.logger.Error("Failed to encode habit snapshot", zap.Error(err))
		} else {
			s.pending++
			go s.save(data)
		}
	}

	if eff.Event != nil && s.notifier != nil {
		s.pending++
		go s.notify(*eff.Event)
	}
}

func (s *Store) save(data []byte) {
	defer s.done()

	err := s.backend.Set(context.Background(), s.key, string(data))
	metrics.IncrementSnapshotSave(err)
	if err != nil {
		s.logger.Error("Failed to save habit snapshot",
			zap.String("key", s.key),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("Habit snapshot saved",
		zap.String("key", s.key),
		zap.Int("bytes", len(data)),
	)
}

func (s *Store) notify(e Event) {
	defer s.done()

	if err := s.notifier.Notify(context.Background(), e); err != nil {
		s.logger.Warn("Failed to deliver habit event",
			zap.String("kind", string(e.Kind)),
			zap.String("habit_id", string(e.HabitID)),
			zap.Error(err),
		)
	}
}

func (s *Store) done() {
	s.mu.Lock()
	s.pending--
	if s.pending == 0 {
		s.idle.Broadcast()
	}
	s.mu.Unlock()
}
