package sqlite_test

import (
	"context"
	"testing"

	"household-illness-tracker/internal/adapters/storage/sqlite"
	"household-illness-tracker/internal/ports/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) store.Store {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := sqlite.New(context.Background(), db)
	require.NoError(t, err)
	return s
}

func TestSQLiteStore_EpisodesActiveAndPast(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, store.CollectionEpisode, store.Record{
		"name": "Cold", "person": "p1", "start": "2024-01-01T10:00:00Z", "end": "",
	})
	require.NoError(t, err)
	past, err := s.Create(ctx, store.CollectionEpisode, store.Record{
		"name": "Flu", "person": "p1", "start": "2023-12-01T10:00:00Z", "end": "2023-12-05T10:00:00Z",
	})
	require.NoError(t, err)
	_, err = s.Create(ctx, store.CollectionEpisode, store.Record{
		"name": "Other", "person": "p2", "start": "2024-01-02T10:00:00Z",
	})
	require.NoError(t, err)

	active, err := s.List(ctx, store.CollectionEpisode, store.ListOptions{
		Filter: store.Filter{store.Eq("person", "p1"), store.NotEmpty("start"), store.Empty("end")},
	})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Cold", active[0].String("name"))

	done, err := s.List(ctx, store.CollectionEpisode, store.ListOptions{
		Filter: store.Filter{store.Eq("person", "p1"), store.NotEmpty("start"), store.NotEmpty("end")},
	})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, past.ID(), done[0].ID())
}

func TestSQLiteStore_UpdateMergesAndGetMissing(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, store.CollectionEpisode, store.Record{"name": "Cold", "sickness": "cold"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, store.CollectionEpisode, created.ID(), store.Record{"end": "2024-01-03T10:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, "Cold", updated.String("name"))
	assert.Equal(t, "2024-01-03T10:00:00Z", updated.String("end"))

	got, err := s.Get(ctx, store.CollectionEpisode, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "cold", got.String("sickness"))
	assert.Equal(t, "2024-01-03T10:00:00Z", got.String("end"))

	_, err = s.Get(ctx, store.CollectionEpisode, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Update(ctx, store.CollectionEpisode, "nope", store.Record{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLiteStore_EventsSortedAndDerivedView(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for _, when := range []string{"2024-01-01T10:00:00Z", "2024-01-01T12:00:00Z", "2024-01-01T11:00:00Z"} {
		_, err := s.Create(ctx, store.CollectionEvent, store.Record{
			"episode": "e1",
			"what":    "Temp",
			"when":    when,
			"data":    []any{map[string]any{"thing": "Celsius", "detail": "38.5"}},
		})
		require.NoError(t, err)
	}

	events, err := s.List(ctx, store.CollectionEvent, store.ListOptions{
		Filter: store.Filter{store.Eq("episode", "e1")},
		Sort:   store.ParseSort("-when"),
		Fields: []string{"when"},
	})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "2024-01-01T12:00:00Z", events[0].String("when"))
	assert.Equal(t, "2024-01-01T10:00:00Z", events[2].String("when"))
	assert.Len(t, events[0], 1)

	view, err := s.List(ctx, store.CollectionWhatsThingsDetails, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, view, 3)
	assert.Equal(t, "Celsius", view[0].String("thing"))

	_, err = s.Create(ctx, store.CollectionWhatsThingsDetails, store.Record{})
	assert.ErrorIs(t, err, store.ErrReadOnly)
}
