// Package mock implements an in-memory resource.Backend replacement used by
// tests, examples and the sandbox.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Statekit/statekit_sdk_go/internal/seed"
	"github.com/Statekit/statekit_sdk_go/pkg/resource"
)

type collection struct {
	order []string
	items map[string]map[string]any
}

func newCollection() *collection {
	return &collection{items: make(map[string]map[string]any)}
}

func (c *collection) put(id string, attrs map[string]any) {
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = attrs
}

// Mock is a seedable in-memory backend. Records keep their insertion order so
// listings stay deterministic.
type Mock struct {
	mu          sync.RWMutex
	collections map[string]*collection
	newID       func() string
}

// Option configures the mock instance.
type Option func(*Mock)

// WithIDFunc overrides the generator used for missing record ids (useful in
// tests that need stable ids).
func WithIDFunc(fn func() string) Option {
	return func(m *Mock) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// New creates an empty mock backend.
func New(opts ...Option) *Mock {
	m := &Mock{
		collections: make(map[string]*collection),
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Seed loads initial records from a dataset (typically decoded via
// seed.LoadDataset). Records without an id attribute are assigned one.
func (m *Mock) Seed(ds seed.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, records := range ds {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("mock resource: seed collection name is required")
		}
		col := m.collections[name]
		if col == nil {
			col = newCollection()
			m.collections[name] = col
		}
		for _, attrs := range records {
			if attrs == nil {
				return fmt.Errorf("mock resource: seed record in %q is empty", name)
			}
			stored := cloneAttrs(attrs)
			id := attrID(stored)
			if id == "" {
				id = m.newID()
				stored["id"] = id
			}
			col.put(id, stored)
		}
	}
	return nil
}

// Get implements resource.Backend.
func (m *Mock) Get(ctx context.Context, endpoint, id string, opts *resource.RequestOptions) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	col := m.collections[endpoint]
	if col == nil {
		return nil, fmt.Errorf("%w: %s/%s", resource.ErrNotFound, endpoint, id)
	}
	attrs, ok := col.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", resource.ErrNotFound, endpoint, id)
	}
	return json.Marshal(attrs)
}

// GetAll implements resource.Backend.
func (m *Mock) GetAll(ctx context.Context, endpoint string, opts *resource.RequestOptions) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	col := m.collections[endpoint]
	if col == nil {
		return json.RawMessage("[]"), nil
	}
	items := make([]map[string]any, 0, len(col.order))
	for _, id := range col.order {
		items = append(items, col.items[id])
	}
	return json.Marshal(items)
}

// Create implements resource.Backend. Records without an id are assigned one.
func (m *Mock) Create(ctx context.Context, endpoint string, body json.RawMessage, opts *resource.RequestOptions) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	attrs, err := decodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("mock resource: decode create body: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	col := m.collections[endpoint]
	if col == nil {
		col = newCollection()
		m.collections[endpoint] = col
	}
	id := attrID(attrs)
	if id == "" {
		id = m.newID()
		attrs["id"] = id
	}
	col.put(id, attrs)
	return json.Marshal(attrs)
}

// Update implements resource.Backend. The record must already exist.
func (m *Mock) Update(ctx context.Context, endpoint, id string, body json.RawMessage, opts *resource.RequestOptions) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	attrs, err := decodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("mock resource: decode update body: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	col := m.collections[endpoint]
	if col == nil {
		return nil, fmt.Errorf("%w: %s/%s", resource.ErrNotFound, endpoint, id)
	}
	if _, ok := col.items[id]; !ok {
		return nil, fmt.Errorf("%w: %s/%s", resource.ErrNotFound, endpoint, id)
	}
	attrs["id"] = id
	col.put(id, attrs)
	return json.Marshal(attrs)
}

func decodeBody(body json.RawMessage) (map[string]any, error) {
	var attrs map[string]any
	if err := json.Unmarshal(body, &attrs); err != nil {
		return nil, err
	}
	if attrs == nil {
		attrs = make(map[string]any)
	}
	return attrs, nil
}

func cloneAttrs(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

func attrID(attrs map[string]any) string {
	switch v := attrs["id"].(type) {
	case string:
		return v
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}
