package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Model is a registered resource type. It exposes the read operations; write
// operations live on Record.
type Model struct {
	app    *App
	def    ModelDef
	schema *gojsonschema.Schema
}

// Name returns the registry key.
func (m *Model) Name() string { return m.def.Name }

// Singular returns the singular resource form.
func (m *Model) Singular() string { return m.def.Singular }

// Plural returns the plural resource form.
func (m *Model) Plural() string { return m.def.Plural }

// Endpoint returns the REST path segment for the model's collection.
func (m *Model) Endpoint() string { return m.def.Endpoint }

// NewRecord wraps the supplied attributes in a Record bound to this model.
// A nil attribute map yields an empty record.
func (m *Model) NewRecord(attrs map[string]any) *Record {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	return &Record{model: m, attrs: attrs}
}

// Get fetches a single record by id.
func (m *Model) Get(ctx context.Context, id string, opts *RequestOptions) (*Record, error) {
	if m == nil || m.app == nil || m.app.backend == nil {
		return nil, fmt.Errorf("resource: model is not bound to an app")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("resource: id is required")
	}
	raw, err := m.app.backend.Get(ctx, m.def.Endpoint, id, opts)
	if err != nil {
		return nil, err
	}
	attrs, err := decodeAttrs(raw)
	if err != nil {
		return nil, fmt.Errorf("resource: decode %s: %w", m.def.Singular, err)
	}
	if attrs == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, m.def.Endpoint, id)
	}
	return m.NewRecord(attrs), nil
}

// GetAll fetches the model's collection.
func (m *Model) GetAll(ctx context.Context, opts *RequestOptions) ([]*Record, error) {
	if m == nil || m.app == nil || m.app.backend == nil {
		return nil, fmt.Errorf("resource: model is not bound to an app")
	}
	raw, err := m.app.backend.GetAll(ctx, m.def.Endpoint, opts)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []*Record{}, nil
	}
	var items []map[string]any
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("resource: decode %s: %w", m.def.Plural, err)
	}
	records := make([]*Record, 0, len(items))
	for _, attrs := range items {
		records = append(records, m.NewRecord(attrs))
	}
	return records, nil
}

// validate applies the model's JSON schema, when one was registered.
func (m *Model) validate(attrs map[string]any) error {
	if m.schema == nil {
		return nil
	}
	result, err := m.schema.Validate(gojsonschema.NewGoLoader(attrs))
	if err != nil {
		return fmt.Errorf("resource: validate %s: %w", m.def.Singular, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%w: %s: %s", ErrSchemaViolation, m.def.Singular, strings.Join(msgs, "; "))
}

func decodeAttrs(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var attrs map[string]any
	if err := json.Unmarshal(trimmed, &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}
