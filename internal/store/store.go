// Package store owns the task collection and keeps it in sync with a single
// blob in a key-value store.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
)

const DefaultKey = "todos"

var (
	// ErrRejected marks invalid input. Nothing was changed or written.
	ErrRejected = errors.New("store: rejected")
	// ErrPersist marks a failed write. The in-memory change was kept and
	// will be written with the next successful persist.
	ErrPersist = errors.New("store: persist failed")
	ErrNilKV   = errors.New("store: nil key-value store")

	ErrNotFound  = errors.New("store: no task matches")
	ErrAmbiguous = errors.New("store: reference matches more than one task")
)

// IsRejected reports whether err is a validation rejection from Add or Edit.
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the only writer of its key. It is not safe for concurrent use;
// callers drive it from a single event loop.
type Store struct {
	kv     storage.KeyValue
	key    string
	now    func() time.Time
	newID  func() string
	logger *log.Logger
	tasks  []model.Task
}

// New builds a Store and loads whatever is persisted under its key. Corrupt
// content is discarded; only a failing read is returned as an error.
func New(ctx context.Context, kv storage.KeyValue, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, ErrNilKV
	}
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: log.New(io.Discard),
		tasks:  make([]model.Task, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.rehydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Key() string { return s.key }

func (s *Store) Add(ctx context.Context, description string, priority model.Priority) (model.Task, error) {
	desc, err := model.NormalizeDescription(description)
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: %w", ErrRejected, err)
	}
	if !priority.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %w: %d", ErrRejected, model.ErrInvalidPriority, int(priority))
	}
	task := model.Task{
		ID:          s.newID(),
		Description: desc,
		Priority:    priority,
		CreatedAt:   s.stamp(),
	}
	s.tasks = append(s.tasks, task)
	s.logger.Debug("task added", "id", task.ID, "priority", int(priority))
	return task.Clone(), s.persist(ctx)
}

// Complete marks the task done. A task that is already done keeps its
// original completion time, and an unknown id is ignored.
func (s *Store) Complete(ctx context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 || s.tasks[i].Completed {
		return nil
	}
	at := s.stamp()
	s.tasks[i].Completed = true
	s.tasks[i].CompletedAt = &at
	s.logger.Debug("task completed", "id", id)
	return s.persist(ctx)
}

func (s *Store) Edit(ctx context.Context, id, description string) error {
	desc, err := model.NormalizeDescription(description)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	i := s.indexOf(id)
	if i < 0 || s.tasks[i].Description == desc {
		return nil
	}
	s.tasks[i].Description = desc
	s.logger.Debug("task edited", "id", id)
	return s.persist(ctx)
}

// Delete removes the task with id. Deleting an unknown id writes nothing.
func (s *Store) Delete(ctx context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.logger.Debug("task deleted", "id", id)
	return s.persist(ctx)
}

// List returns a copy of the collection ordered by priority, keeping
// insertion order among equal priorities.
func (s *Store) List() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	slices.SortStableFunc(out, func(a, b model.Task) int {
		return int(a.Priority) - int(b.Priority)
	})
	return out
}

func (s *Store) Get(id string) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

func (s *Store) Len() int { return len(s.tasks) }

// Resolve finds a task by full id or by a unique id prefix.
func (s *Store) Resolve(ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, ErrNotFound
	}
	if t, ok := s.Get(ref); ok {
		return t, nil
	}
	match := -1
	for i, t := range s.tasks {
		if !strings.HasPrefix(t.ID, ref) {
			continue
		}
		if match >= 0 {
			return model.Task{}, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
		}
		match = i
	}
	if match < 0 {
		return model.Task{}, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return s.tasks[match].Clone(), nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

// stamp truncates to the persisted precision so a reload compares equal.
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Store) persist(ctx context.Context) error {
	blob, err := encodeTasks(s.tasks)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}
	if err := s.kv.Set(ctx, s.key, blob); err != nil {
		s.logger.Error("persist failed", "key", s.key, "err", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) rehydrate(ctx context.Context) error {
	blob, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("store: read %q: %w", s.key, err)
	}
	if !ok || blob == "" {
		return nil
	}
	tasks, dropped, err := decodeTasks(blob)
	if err != nil {
		s.logger.Warn("discarding unreadable task data", "key", s.key, "err", err)
		return nil
	}
	for _, d := range dropped {
		s.logger.Warn("dropping invalid task record", "key", s.key, "index", d.Index, "reason", d.Reason)
	}
	s.tasks = tasks
	s.logger.Info("tasks loaded", "key", s.key, "count", len(tasks), "dropped", len(dropped))
	return nil
}
