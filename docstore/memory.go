package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store. It backs tests and the "memory" driver.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Doc
	closed      bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]Doc)}
}

func (m *Memory) Create(ctx context.Context, collection string, data Doc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", fmt.Errorf("memory store is closed")
	}
	col := m.collections[collection]
	if col == nil {
		col = make(map[string]Doc)
		m.collections[collection] = col
	}
	id := uuid.NewString()
	col[id] = Clone(data)
	return id, nil
}

func (m *Memory) Insert(ctx context.Context, collection, id string, data Doc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("memory store is closed")
	}
	col := m.collections[collection]
	if col == nil {
		col = make(map[string]Doc)
		m.collections[collection] = col
	}
	if _, ok := col[id]; ok {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrExists)
	}
	col[id] = Clone(data)
	return nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.collections[collection][id]
	if !ok {
		return Snapshot{}, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return Snapshot{ID: id, Data: Clone(d)}, nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, fields Doc) error {
	return m.UpdateAll(ctx, collection, []Update{{ID: id, Fields: fields}})
}

func (m *Memory) Find(ctx context.Context, q Query) ([]Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Snapshot
	for id, d := range m.collections[q.Collection] {
		if !matches(d, q) {
			continue
		}
		out = append(out, Snapshot{ID: id, Data: Clone(d)})
	}
	sort.Slice(out, func(i, j int) bool {
		if q.OrderBy != "" {
			if c := Compare(out[i].Data[q.OrderBy], out[j].Data[q.OrderBy]); c != 0 {
				return c < 0
			}
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func matches(d Doc, q Query) bool {
	for _, f := range q.Filters {
		v, ok := d[f.Field]
		if !ok || !Equal(v, f.Value) {
			return false
		}
	}
	if q.OrderBy != "" {
		if _, ok := d[q.OrderBy]; !ok {
			return false
		}
	}
	return true
}

// UpdateAll checks every id before touching any document.
func (m *Memory) UpdateAll(ctx context.Context, collection string, updates []Update) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	col := m.collections[collection]
	for _, u := range updates {
		if _, ok := col[u.ID]; !ok {
			return fmt.Errorf("%s/%s: %w", collection, u.ID, ErrNotFound)
		}
	}
	for _, u := range updates {
		d := col[u.ID]
		for k, v := range u.Fields {
			d[k] = cloneValue(v)
		}
	}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return fmt.Errorf("memory store is closed")
	}
	return ctx.Err()
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
