package repository

import (
	"context"
	"sync"

	"github.com/eadsgraphic/vizreport/internal/visualization"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory repository used when no MongoDB URI is
// configured and in unit tests. IDs use the same ObjectID hex format as
// the Mongo repository.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*visualization.Visualization
	order []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*visualization.Visualization)}
}

func (m *MemoryRepo) Insert(ctx context.Context, v *visualization.Visualization) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v.ID = primitive.NewObjectID().Hex()
	cp := *v
	m.store[v.ID] = &cp
	m.order = append(m.order, v.ID)
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*visualization.Visualization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.store[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, visualization.ErrNotFound
}

func (m *MemoryRepo) List(ctx context.Context, firm string) ([]*visualization.Visualization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*visualization.Visualization, 0, len(m.order))
	for _, id := range m.order {
		v := m.store[id]
		if firm != "" && v.Firm != firm {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepo) Replace(ctx context.Context, id string, in visualization.Input) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.store[id]
	if !ok {
		return visualization.ErrNotFound
	}
	v.Name = in.Name
	v.Description = in.Description
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return nil
	}
	delete(m.store, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryRepo) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = make(map[string]*visualization.Visualization)
	m.order = nil
	return nil
}

func (m *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}
