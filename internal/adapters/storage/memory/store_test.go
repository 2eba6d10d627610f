package memory

import (
	"context"
	"testing"
	"time"

	"household-illness-tracker/internal/ports/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateGetUpdate(t *testing.T) {
	s := New()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	created, err := s.Create(ctx, store.CollectionEpisode, store.Record{"name": "Cold", "end": ""})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID())
	assert.Equal(t, "2024-01-01 10:00:00.000Z", created.String(store.FieldCreated))

	now = now.Add(time.Hour)
	updated, err := s.Update(ctx, store.CollectionEpisode, created.ID(), store.Record{
		"end":              "2024-01-03T09:00:00Z",
		store.FieldID:      "hijack",
		store.FieldCreated: "never",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID(), updated.ID())
	assert.Equal(t, "Cold", updated.String("name"))
	assert.Equal(t, "2024-01-03T09:00:00Z", updated.String("end"))
	assert.Equal(t, created.String(store.FieldCreated), updated.String(store.FieldCreated))
	assert.Equal(t, "2024-01-01 11:00:00.000Z", updated.String(store.FieldUpdated))

	got, err := s.Get(ctx, store.CollectionEpisode, created.ID())
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = s.Get(ctx, store.CollectionEpisode, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Update(ctx, store.CollectionEpisode, "missing", store.Record{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ListFilterSortFields(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, ev := range []store.Record{
		{"episode": "e1", "what": "Temp", "when": "2024-01-01T10:00:00Z", "where": "Home"},
		{"episode": "e1", "what": "Dose", "when": "2024-01-01T12:00:00Z", "where": "School"},
		{"episode": "e2", "what": "Temp", "when": "2024-01-01T11:00:00Z", "where": ""},
		{"episode": "e1", "what": "Temp", "when": "2024-01-01T09:00:00Z"},
	} {
		_, err := s.Create(ctx, store.CollectionEvent, ev)
		require.NoError(t, err)
	}

	out, err := s.List(ctx, store.CollectionEvent, store.ListOptions{
		Filter: store.Filter{store.Eq("episode", "e1")},
		Sort:   store.ParseSort("-when"),
		Fields: []string{"what", "when"},
	})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "2024-01-01T12:00:00Z", out[0].String("when"))
	assert.Equal(t, "2024-01-01T09:00:00Z", out[2].String("when"))
	assert.NotContains(t, out[0], "episode")

	out, err = s.List(ctx, store.CollectionEvent, store.ListOptions{
		Filter: store.Filter{store.NotEmpty("where")},
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = s.List(ctx, store.CollectionEvent, store.ListOptions{
		Filter: store.Filter{store.Empty("where"), store.Eq("what", "Temp")},
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestStore_WhatsThingsDetailsViewFollowsEvents(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Create(ctx, store.CollectionEvent, store.Record{
		"episode": "e1",
		"what":    "Medicine",
		"data": []map[string]string{
			{"thing": "Ibuprofen", "detail": "200mg"},
			{"thing": "Paracetamol", "detail": ""},
		},
	})
	require.NoError(t, err)

	out, err := s.List(ctx, store.CollectionWhatsThingsDetails, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Medicine", out[0].String("what"))
	assert.Equal(t, "Ibuprofen", out[0].String("thing"))
	assert.Equal(t, "200mg", out[0].String("detail"))

	_, err = s.Create(ctx, store.CollectionWhatsThingsDetails, store.Record{})
	assert.ErrorIs(t, err, store.ErrReadOnly)
}
