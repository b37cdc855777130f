package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Statekit/statekit_sdk_go/internal/httpx"
	"github.com/Statekit/statekit_sdk_go/internal/restapi"
)

// App owns the backend connection and the registered models.
type App struct {
	mu      sync.RWMutex
	models  map[string]*Model
	backend Backend
}

// NewApp constructs an App bound to the provided REST base URL.
func NewApp(baseURL string, opts ...httpx.Option) (*App, error) {
	cl, err := httpx.NewClient(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewAppWithHTTPClient(cl), nil
}

// NewAppWithHTTPClient wraps an existing httpx.Client.
func NewAppWithHTTPClient(httpClient *httpx.Client) *App {
	return NewAppWithBackend(&httpBackend{client: httpClient})
}

// NewAppWithBackend allows callers to supply a custom backend (e.g., mocks).
func NewAppWithBackend(b Backend) *App {
	return &App{
		models:  make(map[string]*Model),
		backend: b,
	}
}

// RegisterModel adds a model definition to the registry, applying the
// defaulting rules for the singular/plural forms and the endpoint.
func (a *App) RegisterModel(def ModelDef) (*Model, error) {
	if a == nil {
		return nil, fmt.Errorf("resource: app is nil")
	}
	if strings.TrimSpace(def.Name) == "" {
		return nil, fmt.Errorf("resource: model name is required")
	}
	if def.Singular == "" {
		def.Singular = def.Name
	}
	if def.Plural == "" {
		def.Plural = def.Singular + "s"
	}
	if def.Endpoint == "" {
		def.Endpoint = def.Plural
	}

	var schema *gojsonschema.Schema
	if len(def.Schema) > 0 {
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(def.Schema))
		if err != nil {
			return nil, fmt.Errorf("resource: compile schema for model %q: %w", def.Name, err)
		}
		schema = compiled
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.models[def.Name]; exists {
		return nil, fmt.Errorf("resource: model %q already registered", def.Name)
	}
	model := &Model{app: a, def: def, schema: schema}
	a.models[def.Name] = model
	return model, nil
}

// GetModel looks up a registered model by name.
func (a *App) GetModel(name string) (*Model, bool) {
	if a == nil {
		return nil, false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	model, ok := a.models[name]
	return model, ok
}

// Models returns the registered model names in sorted order.
func (a *App) Models() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.models))
	for name := range a.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Backend performs the raw network operations for a collection endpoint.
// Implementations return the response payload as raw JSON.
type Backend interface {
	Get(ctx context.Context, endpoint, id string, opts *RequestOptions) (json.RawMessage, error)
	GetAll(ctx context.Context, endpoint string, opts *RequestOptions) (json.RawMessage, error)
	Create(ctx context.Context, endpoint string, body json.RawMessage, opts *RequestOptions) (json.RawMessage, error)
	Update(ctx context.Context, endpoint, id string, body json.RawMessage, opts *RequestOptions) (json.RawMessage, error)
}

type httpBackend struct {
	client *httpx.Client
}

func (b *httpBackend) Get(ctx context.Context, endpoint, id string, opts *RequestOptions) (json.RawMessage, error) {
	if b == nil || b.client == nil {
		return nil, fmt.Errorf("resource: http backend not configured")
	}
	resp, err := b.client.Do(ctx, &httpx.Request{
		Method: http.MethodGet,
		Path:   itemPath(endpoint, id),
		Query:  optParams(opts),
		Header: optHeader(opts),
	})
	if err != nil {
		return nil, mapNotFound(err, endpoint, id)
	}
	return readPayload(resp)
}

func (b *httpBackend) GetAll(ctx context.Context, endpoint string, opts *RequestOptions) (json.RawMessage, error) {
	if b == nil || b.client == nil {
		return nil, fmt.Errorf("resource: http backend not configured")
	}
	resp, err := b.client.Do(ctx, &httpx.Request{
		Method: http.MethodGet,
		Path:   endpoint,
		Query:  optParams(opts),
		Header: optHeader(opts),
	})
	if err != nil {
		return nil, err
	}
	return readPayload(resp)
}

func (b *httpBackend) Create(ctx context.Context, endpoint string, body json.RawMessage, opts *RequestOptions) (json.RawMessage, error) {
	if b == nil || b.client == nil {
		return nil, fmt.Errorf("resource: http backend not configured")
	}
	reader, contentType, err := httpx.WithJSONBody(body)
	if err != nil {
		return nil, err
	}
	header := optHeader(opts)
	header.Set("Content-Type", contentType)
	resp, err := b.client.Do(ctx, &httpx.Request{
		Method: http.MethodPost,
		Path:   endpoint,
		Query:  optParams(opts),
		Header: header,
		Body:   reader,
	})
	if err != nil {
		return nil, err
	}
	return readPayload(resp)
}

func (b *httpBackend) Update(ctx context.Context, endpoint, id string, body json.RawMessage, opts *RequestOptions) (json.RawMessage, error) {
	if b == nil || b.client == nil {
		return nil, fmt.Errorf("resource: http backend not configured")
	}
	reader, contentType, err := httpx.WithJSONBody(body)
	if err != nil {
		return nil, err
	}
	header := optHeader(opts)
	header.Set("Content-Type", contentType)
	resp, err := b.client.Do(ctx, &httpx.Request{
		Method: http.MethodPut,
		Path:   itemPath(endpoint, id),
		Query:  optParams(opts),
		Header: header,
		Body:   reader,
	})
	if err != nil {
		return nil, mapNotFound(err, endpoint, id)
	}
	return readPayload(resp)
}

func readPayload(resp *http.Response) (json.RawMessage, error) {
	data, err := httpx.ReadAllAndClose(resp.Body)
	if err != nil {
		return nil, err
	}
	return restapi.ExtractData(data), nil
}

func itemPath(endpoint, id string) string {
	return strings.TrimSuffix(endpoint, "/") + "/" + url.PathEscape(id)
}

func mapNotFound(err error, endpoint, id string) error {
	var httpErr *httpx.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, endpoint, id)
	}
	return err
}

func optParams(opts *RequestOptions) url.Values {
	if opts == nil {
		return nil
	}
	return opts.Params
}

func optHeader(opts *RequestOptions) http.Header {
	header := make(http.Header)
	if opts != nil {
		for k, values := range opts.Header {
			for _, v := range values {
				header.Add(k, v)
			}
		}
	}
	return header
}
