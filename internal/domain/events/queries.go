package events

import (
	"context"
	"strings"

	"household-illness-tracker/internal/domain/episodes"
	"household-illness-tracker/internal/ports/store"
	"household-illness-tracker/internal/querycache"
)

func ListKey(f ListFilter) querycache.Key {
	return querycache.NewKey("events", strings.TrimSpace(f.EpisodeID), strings.TrimSpace(f.What))
}

func ListPrefix(episodeID string) querycache.Key { return querycache.NewKey("events", episodeID) }

func Key(id string) querycache.Key { return querycache.NewKey("event", id) }

// TypesKey cuelga del episodio: invalidar el episodio invalida sus tipos.
func TypesKey(episodeID string) querycache.Key {
	return querycache.NewKey("episode", episodeID, "whats")
}

func SuggestionsKey() querycache.Key { return querycache.NewKey("eventAutocompleteSuggestions") }

var byWhenDesc = store.ParseSort("-when")

// ListQuery lista los eventos de un episodio (opcionalmente de un tipo), más recientes primero.
func (s *Service) ListQuery(f ListFilter) querycache.Descriptor[[]Event] {
	ep := strings.TrimSpace(f.EpisodeID)
	what := strings.TrimSpace(f.What)
	return querycache.Descriptor[[]Event]{
		Key: ListKey(f),
		Fetch: func(ctx context.Context) ([]Event, error) {
			filter := store.Filter{store.Eq("episode", ep)}
			if what != "" {
				filter = filter.And(store.Eq("what", what))
			}
			recs, err := s.st.List(ctx, store.CollectionEvent, store.ListOptions{
				Filter: filter,
				Sort:   byWhenDesc,
			})
			if err != nil {
				return nil, err
			}
			return store.DecodeAll[Event](recs)
		},
		Enabled: func() bool { return ep != "" },
	}
}

// TypesQuery devuelve los "what" distintos de un episodio, en orden de aparición
// sobre la lista ordenada por when descendente.
func (s *Service) TypesQuery(episodeID string) querycache.Descriptor[[]string] {
	ep := strings.TrimSpace(episodeID)
	return querycache.Descriptor[[]string]{
		Key: TypesKey(ep),
		Fetch: func(ctx context.Context) ([]string, error) {
			recs, err := s.st.List(ctx, store.CollectionEvent, store.ListOptions{
				Filter: store.Filter{store.Eq("episode", ep)},
				Sort:   byWhenDesc,
				Fields: []string{"what"},
			})
			if err != nil {
				return nil, err
			}
			whats := make([]string, 0, len(recs))
			for _, r := range recs {
				whats = append(whats, r.String("what"))
			}
			return uniq(whats), nil
		},
		Enabled: func() bool { return ep != "" },
	}
}

func (s *Service) GetQuery(id string) querycache.Descriptor[Event] {
	id = strings.TrimSpace(id)
	return querycache.Descriptor[Event]{
		Key: Key(id),
		Fetch: func(ctx context.Context) (Event, error) {
			rec, err := s.st.Get(ctx, store.CollectionEvent, id)
			if err != nil {
				return Event{}, err
			}
			return store.Decode[Event](rec)
		},
		Enabled: func() bool { return id != "" },
	}
}

// SuggestionsQuery arma el autocompletado desde la vista what/thing/detail
// y los lugares ya usados.
func (s *Service) SuggestionsQuery() querycache.Descriptor[Suggestions] {
	return querycache.Descriptor[Suggestions]{
		Key: SuggestionsKey(),
		Fetch: func(ctx context.Context) (Suggestions, error) {
			triples, err := s.st.List(ctx, store.CollectionWhatsThingsDetails, store.ListOptions{})
			if err != nil {
				return Suggestions{}, err
			}
			wheres, err := s.st.List(ctx, store.CollectionEvent, store.ListOptions{
				Fields: []string{"where"},
			})
			if err != nil {
				return Suggestions{}, err
			}
			return buildSuggestions(triples, wheres), nil
		},
	}
}

func buildSuggestions(triples, wheres []store.Record) Suggestions {
	out := Suggestions{
		ThingsByWhat:   map[string][]string{},
		DetailsByThing: map[string]map[string][]string{},
	}

	var whats []string
	for _, r := range triples {
		what, thing, detail := r.String("what"), r.String("thing"), r.String("detail")
		whats = append(whats, what)
		if what == "" {
			continue
		}
		out.ThingsByWhat[what] = append(out.ThingsByWhat[what], thing)
		if thing == "" {
			continue
		}
		if out.DetailsByThing[what] == nil {
			out.DetailsByThing[what] = map[string][]string{}
		}
		out.DetailsByThing[what][thing] = append(out.DetailsByThing[what][thing], detail)
	}

	out.What = uniq(whats)
	for what, things := range out.ThingsByWhat {
		out.ThingsByWhat[what] = uniq(things)
	}
	for what, byThing := range out.DetailsByThing {
		for thing, details := range byThing {
			byThing[thing] = uniq(details)
		}
		out.DetailsByThing[what] = byThing
	}

	places := make([]string, 0, len(wheres))
	for _, r := range wheres {
		places = append(places, r.String("where"))
	}
	out.Where = uniq(places)
	return out
}

// uniq descarta vacíos y repetidos conservando el primer orden de aparición.
func uniq(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// invalidations de una escritura sobre un evento del episodio ep.
func invalidations(ep string, extra ...querycache.Key) []querycache.Key {
	keys := append([]querycache.Key{}, extra...)
	return append(keys, ListPrefix(ep), episodes.Key(ep), SuggestionsKey())
}
