package events

import (
	"context"
	"testing"
	"time"

	"household-illness-tracker/internal/adapters/storage/memory"
	"household-illness-tracker/internal/domain/episodes"
	"household-illness-tracker/internal/domain/persons"
	"household-illness-tracker/internal/platform/apierr"
	"household-illness-tracker/internal/ports/store"
	"household-illness-tracker/internal/querycache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	svc *Service
	eps *episodes.Service
	qc  *querycache.Client
	ep  episodes.Episode
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.New()
	qc := querycache.New(querycache.Options{Retry: -1})
	t.Cleanup(qc.Close)

	_, err := persons.Seed(ctx, st, []persons.Person{{ID: "ana", Name: "Ana"}})
	require.NoError(t, err)

	eps := episodes.NewService(st, qc, persons.NewService(st, qc))
	ep, err := eps.Create(ctx, episodes.CreateInput{Person: "ana", Name: "Cold", Sickness: "cold", Start: t0}, episodes.Callbacks{})
	require.NoError(t, err)

	return fixture{svc: NewService(st, qc, eps), eps: eps, qc: qc, ep: ep}
}

func (f fixture) create(t *testing.T, what string, when time.Time, where string, data ...DataPair) Event {
	t.Helper()
	e, err := f.svc.Create(context.Background(), CreateInput{
		Episode: f.ep.ID, What: what, When: when, Where: where, Data: data, RecordedBy: "mom",
	}, Callbacks{})
	require.NoError(t, err)
	return e
}

func TestService_CreateValidates(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), CreateInput{
		Episode: f.ep.ID,
		Data:    []DataPair{{Thing: "Temp"}},
	}, Callbacks{})
	require.ErrorIs(t, err, ErrInvalidInput)
	fields := apierr.FieldErrors(err)
	for _, k := range []string{"what", "when", "where", "recordedBy", "data[0].detail"} {
		assert.Equal(t, "required", fields[k], k)
	}
	assert.NotContains(t, fields, "data[0].thing")

	_, err = f.svc.Create(context.Background(), CreateInput{
		Episode: "ghost", What: "Temp", When: t0, Where: "Home", RecordedBy: "mom",
	}, Callbacks{})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "unknown episode", apierr.FieldErrors(err)["episode"])
}

func TestService_ListOrderFilterAndRefreshAfterCreate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.create(t, "Temperature", t0.Add(time.Hour), "Home", DataPair{Thing: "Celsius", Detail: "38.5"})
	f.create(t, "Medicine", t0.Add(2*time.Hour), "Home", DataPair{Thing: "Ibuprofen", Detail: "200mg"})

	all, err := f.svc.List(ctx, ListFilter{EpisodeID: f.ep.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Medicine", all[0].What)

	temps, err := f.svc.List(ctx, ListFilter{EpisodeID: f.ep.ID, What: "Temperature"})
	require.NoError(t, err)
	require.Len(t, temps, 1)
	assert.Equal(t, []DataPair{{Thing: "Celsius", Detail: "38.5"}}, temps[0].Data)

	whats, err := f.svc.ListTypes(ctx, f.ep.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Medicine", "Temperature"}, whats)

	f.create(t, "Temperature", t0.Add(3*time.Hour), "School", DataPair{Thing: "Celsius", Detail: "37.9"})

	all, err = f.svc.List(ctx, ListFilter{EpisodeID: f.ep.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-03-01T11:00:00Z", all[0].When)

	whats, err = f.svc.ListTypes(ctx, f.ep.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Temperature", "Medicine"}, whats)

	_, err = f.svc.List(ctx, ListFilter{})
	assert.ErrorIs(t, err, querycache.ErrDisabled)
}

func TestService_ObservedListRefetchesAfterCreate(t *testing.T) {
	f := setup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	obs := querycache.Observe(f.qc, f.svc.ListQuery(ListFilter{EpisodeID: f.ep.ID}))
	defer obs.Close()
	res, err := obs.Wait(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Data)

	f.create(t, "Temperature", t0.Add(time.Hour), "Home")

	require.Eventually(t, func() bool {
		r := obs.Result()
		return r.IsSuccess() && len(r.Data) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestService_UpdateInvalidatesDetail(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	e := f.create(t, "Temperature", t0.Add(time.Hour), "Home")
	got, err := f.svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", got.Where)

	where := "Grandma's"
	_, err = f.svc.Update(ctx, e.ID, UpdateInput{Where: &where}, Callbacks{})
	require.NoError(t, err)

	got, err = f.svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grandma's", got.Where)
	assert.Equal(t, "Temperature", got.What)

	empty := ""
	_, err = f.svc.Update(ctx, e.ID, UpdateInput{What: &empty}, Callbacks{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Update(ctx, "missing", UpdateInput{}, Callbacks{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_Suggestions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.svc.Suggestions(ctx)
	require.NoError(t, err)
	assert.Empty(t, first.What)

	f.create(t, "Medicine", t0, "Home", DataPair{Thing: "Ibuprofen", Detail: "200mg"}, DataPair{Thing: "Ibuprofen", Detail: "400mg"})
	f.create(t, "Medicine", t0.Add(time.Hour), "School", DataPair{Thing: "Ibuprofen", Detail: "200mg"})
	f.create(t, "Temperature", t0.Add(2*time.Hour), "Home", DataPair{Thing: "Celsius", Detail: "38"})

	s, err := f.svc.Suggestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Medicine", "Temperature"}, s.What)
	assert.Equal(t, []string{"Ibuprofen"}, s.ThingsByWhat["Medicine"])
	assert.Equal(t, []string{"200mg", "400mg"}, s.DetailsByThing["Medicine"]["Ibuprofen"])
	assert.Equal(t, []string{"Home", "School"}, s.Where)
}

func TestUniq(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniq([]string{"", "a", "b", "a", " "}))
}
