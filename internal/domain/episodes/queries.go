package episodes

import (
	"context"
	"strings"

	"household-illness-tracker/internal/ports/store"
	"household-illness-tracker/internal/querycache"
)

func ListPrefix() querycache.Key { return querycache.NewKey("episodes") }

func ListKey(f ListFilter) querycache.Key {
	return querycache.NewKey("episodes", strings.TrimSpace(f.PersonID), string(f.Status))
}

// Key es también el prefijo de las queries que cuelgan del episodio (whats).
func Key(id string) querycache.Key { return querycache.NewKey("episode", id) }

func storeFilter(f ListFilter) store.Filter {
	var out store.Filter
	if p := strings.TrimSpace(f.PersonID); p != "" {
		out = out.And(store.Eq("person", p))
	}
	switch f.Status {
	case StatusActive:
		out = out.And(store.NotEmpty("start"), store.Empty("end"))
	case StatusPast:
		out = out.And(store.NotEmpty("start"), store.NotEmpty("end"))
	}
	return out
}

// ListQuery lista episodios por persona y estado, más recientes primero.
// Mientras carga un filtro nuevo se sigue mostrando el resultado anterior.
func (s *Service) ListQuery(f ListFilter) querycache.Descriptor[[]Episode] {
	return querycache.Descriptor[[]Episode]{
		Key: ListKey(f),
		Fetch: func(ctx context.Context) ([]Episode, error) {
			recs, err := s.st.List(ctx, store.CollectionEpisode, store.ListOptions{
				Filter: storeFilter(f),
				Sort:   store.ParseSort("-start"),
			})
			if err != nil {
				return nil, err
			}
			return store.DecodeAll[Episode](recs)
		},
		KeepPrevious: true,
	}
}

// GetQuery trae un episodio. Deshabilitada si id está vacío.
func (s *Service) GetQuery(id string) querycache.Descriptor[Episode] {
	id = strings.TrimSpace(id)
	return querycache.Descriptor[Episode]{
		Key: Key(id),
		Fetch: func(ctx context.Context) (Episode, error) {
			rec, err := s.st.Get(ctx, store.CollectionEpisode, id)
			if err != nil {
				return Episode{}, err
			}
			return store.Decode[Episode](rec)
		},
		Enabled: func() bool { return id != "" },
	}
}
