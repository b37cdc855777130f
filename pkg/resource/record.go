package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is a single instance of a model. Records are not safe for concurrent
// mutation; clone via Attributes when sharing across goroutines.
type Record struct {
	model *Model
	attrs map[string]any
}

// Model returns the record's constructor model.
func (r *Record) Model() *Model { return r.model }

// Singular exposes the constructor-declared singular form, which the action
// layer uses to name instance-rooted operations.
func (r *Record) Singular() string { return r.model.Singular() }

// ID returns the record's id attribute rendered as a string, or "" when the
// record has not been assigned one yet.
func (r *Record) ID() string {
	switch v := r.attrs["id"].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// Get reads a single attribute.
func (r *Record) Get(field string) (any, bool) {
	v, ok := r.attrs[field]
	return v, ok
}

// Set writes a single attribute.
func (r *Record) Set(field string, value any) {
	r.attrs[field] = value
}

// Attributes returns a shallow copy of the record's attributes.
func (r *Record) Attributes() map[string]any {
	out := make(map[string]any, len(r.attrs))
	for k, v := range r.attrs {
		out[k] = v
	}
	return out
}

// MarshalJSON renders the record as its attribute map.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.attrs)
}

// Save persists the record by creating it on the collection endpoint. The
// returned record reflects the server's view, including any assigned id.
func (r *Record) Save(ctx context.Context, opts *RequestOptions) (*Record, error) {
	if r == nil || r.model == nil || r.model.app == nil || r.model.app.backend == nil {
		return nil, fmt.Errorf("resource: record is not bound to a model")
	}
	if err := r.model.validate(r.attrs); err != nil {
		return nil, err
	}
	body, err := json.Marshal(r.attrs)
	if err != nil {
		return nil, fmt.Errorf("resource: encode %s: %w", r.model.Singular(), err)
	}
	raw, err := r.model.app.backend.Create(ctx, r.model.Endpoint(), body, opts)
	if err != nil {
		return nil, err
	}
	return r.fromResponse(raw)
}

// Update replaces the stored record identified by the record's id attribute.
func (r *Record) Update(ctx context.Context, opts *RequestOptions) (*Record, error) {
	if r == nil || r.model == nil || r.model.app == nil || r.model.app.backend == nil {
		return nil, fmt.Errorf("resource: record is not bound to a model")
	}
	id := r.ID()
	if id == "" {
		return nil, fmt.Errorf("%w: update %s", ErrMissingID, r.model.Singular())
	}
	if err := r.model.validate(r.attrs); err != nil {
		return nil, err
	}
	body, err := json.Marshal(r.attrs)
	if err != nil {
		return nil, fmt.Errorf("resource: encode %s: %w", r.model.Singular(), err)
	}
	raw, err := r.model.app.backend.Update(ctx, r.model.Endpoint(), id, body, opts)
	if err != nil {
		return nil, err
	}
	return r.fromResponse(raw)
}

// fromResponse builds the resulting record from a write response. Servers
// that answer with an empty body confirm the write without echoing it back;
// the original record stands in for the result in that case.
func (r *Record) fromResponse(raw json.RawMessage) (*Record, error) {
	attrs, err := decodeAttrs(raw)
	if err != nil {
		return nil, fmt.Errorf("resource: decode %s: %w", r.model.Singular(), err)
	}
	if attrs == nil {
		return r, nil
	}
	return r.model.NewRecord(attrs), nil
}
