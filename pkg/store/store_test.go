package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Statekit/statekit_sdk_go/pkg/actions"
	"github.com/Statekit/statekit_sdk_go/pkg/store"
)

func requested(form string) actions.Action {
	return actions.Action{Verb: actions.VerbGetAll, Phase: actions.PhaseRequested, Form: form}
}

func TestDispatchAppliesReducer(t *testing.T) {
	reducer := func(state any, action actions.Action) any {
		return append(state.([]string), action.Type())
	}
	st := store.New(reducer, []string{})

	st.Dispatch(requested("tests"))
	st.Dispatch(requested("users"))

	assert.Equal(t, []string{"GET_ALL_TESTS", "GET_ALL_USERS"}, st.State())
}

func TestNilReducerOnlyNotifies(t *testing.T) {
	st := store.New(nil, "initial")

	var seen []string
	st.Subscribe(func(a actions.Action) {
		seen = append(seen, a.Type())
	})

	st.Dispatch(requested("tests"))

	assert.Equal(t, "initial", st.State())
	assert.Equal(t, []string{"GET_ALL_TESTS"}, seen)
}

func TestListenersRunInSubscriptionOrder(t *testing.T) {
	st := store.New(nil, nil)

	var order []int
	st.Subscribe(func(actions.Action) { order = append(order, 1) })
	st.Subscribe(func(actions.Action) { order = append(order, 2) })
	st.Subscribe(func(actions.Action) { order = append(order, 3) })

	st.Dispatch(requested("tests"))

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestUnsubscribe(t *testing.T) {
	st := store.New(nil, nil)

	var count int
	unsubscribe := st.Subscribe(func(actions.Action) { count++ })

	st.Dispatch(requested("tests"))
	unsubscribe()
	st.Dispatch(requested("tests"))

	assert.Equal(t, 1, count)
}

func TestRunExecutesThunk(t *testing.T) {
	st := store.New(nil, nil)

	var seen []string
	st.Subscribe(func(a actions.Action) {
		seen = append(seen, a.Type())
	})

	thunk := actions.Thunk(func(ctx context.Context, dispatch actions.Dispatch) {
		dispatch(requested("tests"))
		dispatch(actions.Action{Verb: actions.VerbGetAll, Phase: actions.PhaseSucceeded, Form: "tests"})
	})
	st.Run(context.Background(), thunk)

	require.Equal(t, []string{"GET_ALL_TESTS", "GET_ALL_TESTS_SUCCEEDED"}, seen)
}

func TestRunNilThunk(t *testing.T) {
	st := store.New(nil, nil)
	st.Run(context.Background(), nil)
	assert.Nil(t, st.State())
}
