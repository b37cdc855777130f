package resource

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
)

// ModelDef declares a resource type for registration with an App.
type ModelDef struct {
	// Name is the registry key, e.g. "user".
	Name string
	// Singular defaults to Name.
	Singular string
	// Plural defaults to Singular with an "s" appended.
	Plural string
	// Endpoint is the REST path segment; defaults to Plural.
	Endpoint string
	// Schema optionally holds a JSON schema document validated against
	// record attributes before save and update.
	Schema json.RawMessage
}

// RequestOptions carry per-call query parameters and headers. They are passed
// through to the backend unchanged.
type RequestOptions struct {
	Params url.Values
	Header http.Header
}

var (
	// ErrUnknownModel is returned when no model is registered under a name.
	ErrUnknownModel = errors.New("resource: unknown model")
	// ErrNotFound is returned when a record is missing.
	ErrNotFound = errors.New("resource: not found")
	// ErrMissingID signals an update on a record without an id attribute.
	ErrMissingID = errors.New("resource: record has no id")
	// ErrSchemaViolation wraps JSON-schema validation failures.
	ErrSchemaViolation = errors.New("resource: schema violation")
)
