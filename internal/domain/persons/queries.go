package persons

import (
	"context"
	"strings"

	"household-illness-tracker/internal/ports/store"
	"household-illness-tracker/internal/querycache"
)

func ListKey() querycache.Key { return querycache.NewKey("persons") }
func Key(id string) querycache.Key { return querycache.NewKey("person", id) }

// ListQuery lista todas las personas.
func (s *Service) ListQuery() querycache.Descriptor[[]Person] {
	return querycache.Descriptor[[]Person]{
		Key: ListKey(),
		Fetch: func(ctx context.Context) ([]Person, error) {
			recs, err := s.st.List(ctx, store.CollectionPerson, store.ListOptions{})
			if err != nil {
				return nil, err
			}
			return store.DecodeAll[Person](recs)
		},
	}
}

// GetQuery trae una persona. Deshabilitada si id está vacío; mantiene el dato
// anterior mientras carga el nuevo.
func (s *Service) GetQuery(id string) querycache.Descriptor[Person] {
	id = strings.TrimSpace(id)
	return querycache.Descriptor[Person]{
		Key: Key(id),
		Fetch: func(ctx context.Context) (Person, error) {
			rec, err := s.st.Get(ctx, store.CollectionPerson, id)
			if err != nil {
				return Person{}, err
			}
			return store.Decode[Person](rec)
		},
		Enabled:      func() bool { return id != "" },
		KeepPrevious: true,
	}
}
