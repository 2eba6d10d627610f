package querycache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutate_InvalidatesBeforeOnSuccess(t *testing.T) {
	c := newTestClient(t, Options{})
	ctx := context.Background()

	f := &counter{}
	_, err := Fetch(ctx, c, desc(NewKey("events", "e1", ""), f))
	require.NoError(t, err)
	_, err = Fetch(ctx, c, desc(NewKey("events", "e2", ""), f))
	require.NoError(t, err)

	var sawEntry bool
	out, err := Mutate(ctx, c, Mutation[string]{
		Run: func(context.Context) (string, error) { return "e1", nil },
		Invalidates: func(ep string) []Key {
			return []Key{NewKey("events", ep)}
		},
	}, Callbacks[string]{
		OnSuccess: func(string) {
			_, sawEntry = c.Inspect(NewKey("events", "e1", ""))
		},
		OnError: func(error) { t.Fatal("unexpected error callback") },
	})
	require.NoError(t, err)
	assert.Equal(t, "e1", out)
	assert.False(t, sawEntry)

	_, ok := c.Inspect(NewKey("events", "e2", ""))
	assert.True(t, ok)
}

func TestMutate_ForwardsErrorVerbatim(t *testing.T) {
	c := newTestClient(t, Options{})
	boom := errors.New("boom")

	var got error
	invalidated := false
	_, err := Mutate(context.Background(), c, Mutation[int]{
		Run:         func(context.Context) (int, error) { return 0, boom },
		Invalidates: func(int) []Key { invalidated = true; return nil },
	}, Callbacks[int]{
		OnSuccess: func(int) { t.Fatal("unexpected success callback") },
		OnError:   func(err error) { got = err },
	})
	assert.Same(t, boom, err)
	assert.Same(t, boom, got)
	assert.False(t, invalidated)
}
