package persons

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"household-illness-tracker/internal/adapters/storage/memory"
	"household-illness-tracker/internal/ports/store"
	"household-illness-tracker/internal/querycache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	st := memory.New()
	qc := querycache.New(querycache.Options{Retry: -1})
	t.Cleanup(qc.Close)
	return NewService(st, qc), st
}

func TestService_ListAndGet(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	n, err := Seed(ctx, st, []Person{{ID: "ana", Name: "Ana"}, {ID: "leo", Name: "Leo", Photo: "leo.png"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana", all[0].Name)

	leo, err := svc.Get(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, "leo.png", leo.Photo)

	_, err = svc.Get(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Get(ctx, " ")
	assert.ErrorIs(t, err, querycache.ErrDisabled)
}

func TestSeed_SkipsExisting(t *testing.T) {
	_, st := newTestService(t)
	ctx := context.Background()

	_, err := Seed(ctx, st, []Person{{ID: "ana", Name: "Ana"}})
	require.NoError(t, err)

	n, err := Seed(ctx, st, []Person{{ID: "ana", Name: "Ana"}, {ID: "mia", Name: "Mia"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = Seed(ctx, st, []Person{{ID: "", Name: "Nameless"}})
	assert.Error(t, err)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persons:\n  - id: ana\n    name: Ana\n  - id: leo\n    name: Leo\n    photo: leo.png\n"), 0o600))

	people, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Person{{ID: "ana", Name: "Ana"}, {ID: "leo", Name: "Leo", Photo: "leo.png"}}, people)
}
