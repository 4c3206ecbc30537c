package todo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nibzard/tasks/internal/kv"
)

// StorageKey is the key the task list is stored under.
const StorageKey = "todo-list-app"

// Repository loads and saves the whole task list.
type Repository interface {
	Load(ctx context.Context) ([]Task, error)
	Save(ctx context.Context, tasks []Task) error
}

// KVRepository stores the task list as a JSON array in a kv.Store.
type KVRepository struct {
	store    kv.Store
	key      string
	validate bool
}

// RepositoryOption configures a KVRepository.
type RepositoryOption func(*KVRepository)

// WithKey overrides StorageKey.
func WithKey(key string) RepositoryOption {
	return func(r *KVRepository) { r.key = key }
}

// WithValidation enables schema and field validation on Load.
func WithValidation(enabled bool) RepositoryOption {
	return func(r *KVRepository) { r.validate = enabled }
}

// NewKVRepository returns a repository backed by store.
func NewKVRepository(store kv.Store, opts ...RepositoryOption) *KVRepository {
	r := &KVRepository{store: store, key: StorageKey, validate: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads the list. A missing or empty value is an empty list.
func (r *KVRepository) Load(ctx context.Context) ([]Task, error) {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.key, err)
	}
	if !ok || raw == "" {
		return []Task{}, nil
	}
	return Decode([]byte(raw), r.validate)
}

// Save writes the list.
func (r *KVRepository) Save(ctx context.Context, tasks []Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", r.key, err)
	}
	return nil
}

// Encode serializes tasks as a compact JSON array. A nil slice encodes as [].
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses a stored JSON array. With validate set the document is
// checked against Schema and every task against the field rules first.
func Decode(data []byte, validate bool) ([]Task, error) {
	if validate {
		if err := ValidateDocument(data); err != nil {
			return nil, fmt.Errorf("invalid task list: %w", err)
		}
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	if validate {
		if err := ValidateTasks(tasks); err != nil {
			return nil, fmt.Errorf("invalid task list: %w", err)
		}
	}
	return tasks, nil
}

// MemoryRepository keeps the list in memory. It is used by tests and by
// callers that do not persist.
type MemoryRepository struct {
	Tasks   []Task
	SaveErr error
	Saves   int
}

// Load returns a copy of the held tasks.
func (m *MemoryRepository) Load(context.Context) ([]Task, error) {
	return append([]Task{}, m.Tasks...), nil
}

// Save replaces the held tasks unless SaveErr is set.
func (m *MemoryRepository) Save(_ context.Context, tasks []Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.Tasks = append([]Task{}, tasks...)
	return nil
}
