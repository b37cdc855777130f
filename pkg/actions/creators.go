package actions

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/Statekit/statekit_sdk_go/pkg/resource"
)

// Dispatch submits an action to the hosting store.
type Dispatch func(Action)

// Thunk is a deferred data-access operation. Running it dispatches the
// requested action, performs the network call and dispatches exactly one
// terminal action; it returns once that terminal dispatch has been issued.
// Network failures are never returned to the caller — they travel inside the
// failed action.
type Thunk func(ctx context.Context, dispatch Dispatch)

var (
	// ErrNilApp is returned by New when no app is supplied.
	ErrNilApp = errors.New("actions: app is required")
	// ErrNilRecord is returned by Save and Update when no record is supplied.
	ErrNilRecord = errors.New("actions: record is required")
)

// Saver is the capability Save requires of its input.
type Saver interface {
	Singular() string
	Save(ctx context.Context, opts *resource.RequestOptions) (*resource.Record, error)
}

// Updater is the capability Update requires of its input.
type Updater interface {
	Singular() string
	Update(ctx context.Context, opts *resource.RequestOptions) (*resource.Record, error)
}

// Creators builds deferred operations for the CRUD verbs against one app.
type Creators struct {
	app *resource.App
}

// New returns a Creators factory bound to the supplied app.
func New(app *resource.App) (*Creators, error) {
	if app == nil {
		return nil, ErrNilApp
	}
	return &Creators{app: app}, nil
}

// Save creates the operation persisting rec on its collection endpoint. The
// action forms use the record's constructor-declared singular form.
func (c *Creators) Save(rec Saver, opts *resource.RequestOptions) (Thunk, error) {
	if isNilRecord(rec) {
		return nil, fmt.Errorf("%w: save", ErrNilRecord)
	}
	return c.write(VerbSave, rec.Singular(), func(ctx context.Context) (*resource.Record, error) {
		return rec.Save(ctx, opts)
	}), nil
}

// Update creates the operation replacing the stored record rec points at.
func (c *Creators) Update(rec Updater, opts *resource.RequestOptions) (Thunk, error) {
	if isNilRecord(rec) {
		return nil, fmt.Errorf("%w: update", ErrNilRecord)
	}
	return c.write(VerbUpdate, rec.Singular(), func(ctx context.Context) (*resource.Record, error) {
		return rec.Update(ctx, opts)
	}), nil
}

// Get creates the operation fetching one record of the named model by id.
// The requested action carries the id.
func (c *Creators) Get(name, id string, opts *resource.RequestOptions) (Thunk, error) {
	model, ok := c.app.GetModel(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", resource.ErrUnknownModel, name)
	}
	form := model.Singular()
	return func(ctx context.Context, dispatch Dispatch) {
		dispatch(Action{Verb: VerbGet, Phase: PhaseRequested, Form: form, ID: id})
		record, err := model.Get(ctx, id, opts)
		if err != nil {
			dispatch(Action{Verb: VerbGet, Phase: PhaseFailed, Form: form, Err: err})
			return
		}
		dispatch(Action{Verb: VerbGet, Phase: PhaseSucceeded, Form: form, Payload: record})
	}, nil
}

// GetAll creates the operation fetching the named model's collection. The
// action forms use the model's plural form.
func (c *Creators) GetAll(name string, opts *resource.RequestOptions) (Thunk, error) {
	model, ok := c.app.GetModel(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", resource.ErrUnknownModel, name)
	}
	form := model.Plural()
	return func(ctx context.Context, dispatch Dispatch) {
		dispatch(Action{Verb: VerbGetAll, Phase: PhaseRequested, Form: form})
		records, err := model.GetAll(ctx, opts)
		if err != nil {
			dispatch(Action{Verb: VerbGetAll, Phase: PhaseFailed, Form: form, Err: err})
			return
		}
		dispatch(Action{Verb: VerbGetAll, Phase: PhaseSucceeded, Form: form, Payload: records})
	}, nil
}

// isNilRecord reports whether rec is nil or wraps a typed nil pointer. A nil
// *resource.Record satisfies Saver/Updater as a non-nil interface value, so a
// plain nil comparison is not enough.
func isNilRecord(rec any) bool {
	if rec == nil {
		return true
	}
	rv := reflect.ValueOf(rec)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// write builds the shared requested/terminal sequence for the instance-rooted
// verbs.
func (c *Creators) write(verb Verb, form string, op func(ctx context.Context) (*resource.Record, error)) Thunk {
	return func(ctx context.Context, dispatch Dispatch) {
		dispatch(Action{Verb: verb, Phase: PhaseRequested, Form: form})
		record, err := op(ctx)
		if err != nil {
			dispatch(Action{Verb: verb, Phase: PhaseFailed, Form: form, Err: err})
			return
		}
		dispatch(Action{Verb: verb, Phase: PhaseSucceeded, Form: form, Payload: record})
	}
}
