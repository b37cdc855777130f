package actions

import (
	"encoding/json"
	"strings"
)

// Verb identifies the CRUD operation behind an action.
type Verb string

const (
	VerbSave   Verb = "SAVE"
	VerbGet    Verb = "GET"
	VerbGetAll Verb = "GET_ALL"
	VerbUpdate Verb = "UPDATE"
)

// Phase tracks an operation's position in the request/success/failure
// triplet.
type Phase int

const (
	PhaseRequested Phase = iota
	PhaseSucceeded
	PhaseFailed
)

// Action describes one step of a data-access operation. Verb, Phase and Form
// identify the action; reducers can switch on those fields directly or on the
// legacy string rendered by Type.
type Action struct {
	Verb  Verb
	Phase Phase
	// Form is the lower-case resource form: singular for save/get/update,
	// plural for getAll.
	Form string
	// ID is set on get requested actions only.
	ID string
	// Payload carries the returned record or collection on succeeded actions,
	// keyed by Form in the JSON rendering.
	Payload any
	// Err carries the operation error on failed actions, unmodified.
	Err error
}

// Type renders the action's wire name: the verb joined to the upper-cased
// resource form, with _SUCCEEDED/_FAILED appended for terminal phases.
func (a Action) Type() string {
	t := string(a.Verb) + "_" + strings.ToUpper(a.Form)
	switch a.Phase {
	case PhaseSucceeded:
		t += "_SUCCEEDED"
	case PhaseFailed:
		t += "_FAILED"
	}
	return t
}

// MarshalJSON emits the flat mapping consumers reduce over:
//
//	{"type": "GET_ALL_TESTS_SUCCEEDED", "tests": [...]}
//	{"type": "GET_TEST", "id": "1"}
//	{"type": "SAVE_TEST_FAILED", "error": "..."}
func (a Action) MarshalJSON() ([]byte, error) {
	out := map[string]any{"type": a.Type()}
	if a.Verb == VerbGet && a.Phase == PhaseRequested && a.ID != "" {
		out["id"] = a.ID
	}
	switch a.Phase {
	case PhaseSucceeded:
		out[a.Form] = a.Payload
	case PhaseFailed:
		if a.Err != nil {
			out["error"] = a.Err.Error()
		}
	}
	return json.Marshal(out)
}
