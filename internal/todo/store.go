package todo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/tasks/internal/utils"
)

// Store holds the task list together with the current filter and search
// query, and persists the list through a Repository after each change.
//
// When a save fails the in-memory change is kept and the error returned,
// so callers can report it without losing what the user did.
type Store struct {
	mu     sync.RWMutex
	repo   Repository
	tasks  []Task
	filter Filter
	search string

	newID  func() ID
	now    func() time.Time
	logger *log.Logger
}

// Errors returned by Resolve.
var (
	ErrRefRequired  = errors.New("task reference required")
	ErrRefNotFound  = errors.New("no matching task")
	ErrRefAmbiguous = errors.New("ambiguous task reference")
)

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid id generator.
func WithIDGenerator(fn func() ID) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithFilter sets the initial filter.
func WithFilter(f Filter) Option {
	return func(s *Store) { s.filter = f }
}

// Open loads the list from repo and returns a Store over it.
// The filter starts at "all" and the search query empty.
func Open(ctx context.Context, repo Repository, opts ...Option) (*Store, error) {
	tasks, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	s := &Store{
		repo:   repo,
		tasks:  tasks,
		filter: FilterAll,
		newID:  func() ID { return ID(uuid.NewString()) },
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tasks == nil {
		s.tasks = []Task{}
	}
	s.logger.Debug("task list loaded", "count", len(s.tasks))
	return s, nil
}

// Add creates a task from text and prepends it. Text is trimmed; if
// nothing is left Add does nothing and reports false.
func (s *Store) Add(ctx context.Context, text string) (Task, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:        s.uniqueID(),
		Text:      text,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	s.tasks = append([]Task{t}, s.tasks...)
	s.logger.Debug("task added", "id", t.ID)
	return t, true, s.save(ctx)
}

// uniqueID draws ids until one is unused. Callers hold s.mu.
func (s *Store) uniqueID() ID {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

// ToggleCompleted flips the completed flag of task id. It reports false
// when no task has that id.
func (s *Store) ToggleCompleted(ctx context.Context, id ID) (bool, error) {
	return s.update(ctx, id, func(t *Task) bool {
		t.Completed = !t.Completed
		return true
	})
}

// ToggleFavorite flips the favorite flag of task id. It reports false
// when no task has that id.
func (s *Store) ToggleFavorite(ctx context.Context, id ID) (bool, error) {
	return s.update(ctx, id, func(t *Task) bool {
		t.Favorite = !t.Favorite
		return true
	})
}

// Edit replaces the text of task id with trimmed newText. Empty text and
// unknown ids are ignored. It reports whether the text changed; the list is
// only saved when it did.
func (s *Store) Edit(ctx context.Context, id ID, newText string) (bool, error) {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return false, nil
	}
	return s.update(ctx, id, func(t *Task) bool {
		if t.Text == newText {
			return false
		}
		t.Text = newText
		return true
	})
}

func (s *Store) update(ctx context.Context, id ID, fn func(*Task) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	if !fn(&s.tasks[i]) {
		return false, nil
	}
	s.logger.Debug("task updated", "id", id)
	return true, s.save(ctx)
}

// Remove deletes task id. It reports false when no task has that id.
func (s *Store) Remove(ctx context.Context, id ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.logger.Debug("task removed", "id", id)
	return true, s.save(ctx)
}

// ClearCompleted removes every completed task and returns how many went.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.tasks = kept
	s.logger.Debug("completed tasks cleared", "count", removed)
	return removed, s.save(ctx)
}

// SetFilter changes the active filter. It is not persisted.
func (s *Store) SetFilter(f Filter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// SetSearch changes the search query. It is not persisted.
func (s *Store) SetSearch(q string) {
	s.mu.Lock()
	s.search = q
	s.mu.Unlock()
}

// Filter returns the active filter.
func (s *Store) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Search returns the search query.
func (s *Store) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// Tasks returns a copy of the full list, most recent first.
func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Task{}, s.tasks...)
}

// Visible returns the tasks shown under the current filter and query.
func (s *Store) Visible() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Apply(s.tasks, s.filter, s.search)
}

// Counts summarizes the full list regardless of filter and query.
func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Count(s.tasks)
}

// Task returns the task with id.
func (s *Store) Task(id ID) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Resolve finds a task by reference: an exact id, a 1-based position in
// the full list when ref is all digits, or otherwise a prefix of its id that
// matches exactly one task.
func (s *Store) Resolve(ref string) (Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Task{}, ErrRefRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(ID(ref)); i >= 0 {
		return s.tasks[i], nil
	}
	if n, ok := parsePosition(ref); ok {
		if n < 1 || n > len(s.tasks) {
			return Task{}, fmt.Errorf("%w: position %s out of range (have %d)", ErrRefNotFound, ref, len(s.tasks))
		}
		return s.tasks[n-1], nil
	}

	var found []Task
	for _, t := range s.tasks {
		if strings.HasPrefix(string(t.ID), ref) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return Task{}, fmt.Errorf("%w: %q", ErrRefNotFound, ref)
	case 1:
		return found[0], nil
	}
	ids := make([]string, len(found))
	for i, t := range found {
		ids[i] = utils.ShortID(string(t.ID), len(ref)+shortIDExtra)
	}
	return Task{}, fmt.Errorf("%w: %q matches %d tasks (%s), use a longer prefix",
		ErrRefAmbiguous, ref, len(found), strings.Join(ids, ", "))
}

// shortIDExtra is how many characters past the ref an ambiguity error shows.
const shortIDExtra = 4

// parsePosition parses an all-digit ref. Values too large to be a
// position are returned as 0.
func parsePosition(ref string) (int, bool) {
	for _, r := range ref {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, true
	}
	return n, true
}

func (s *Store) indexOf(id ID) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// save writes the list. Callers hold s.mu.
func (s *Store) save(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.tasks); err != nil {
		s.logger.Error("failed to save tasks", "err", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
