package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"household-illness-tracker/internal/domain/episodes"
	"household-illness-tracker/internal/platform/apierr"
	"household-illness-tracker/internal/platform/timeutil"
	"household-illness-tracker/internal/ports/store"
	"household-illness-tracker/internal/querycache"
)

var (
	ErrInvalidInput = apierr.ErrInvalidInput
)

// EpisodeLookup resuelve episodios (normalmente episodes.Service, vía cache).
type EpisodeLookup interface {
	Get(ctx context.Context, id string) (episodes.Episode, error)
}

type Callbacks = querycache.Callbacks[Event]

type Service struct {
	st       store.Store
	qc       *querycache.Client
	episodes EpisodeLookup
}

func NewService(st store.Store, qc *querycache.Client, eps EpisodeLookup) *Service {
	return &Service{st: st, qc: qc, episodes: eps}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Event, error) {
	return querycache.Fetch(ctx, s.qc, s.ListQuery(f))
}

func (s *Service) ListTypes(ctx context.Context, episodeID string) ([]string, error) {
	return querycache.Fetch(ctx, s.qc, s.TypesQuery(episodeID))
}

func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	return querycache.Fetch(ctx, s.qc, s.GetQuery(id))
}

func (s *Service) Suggestions(ctx context.Context) (Suggestions, error) {
	return querycache.Fetch(ctx, s.qc, s.SuggestionsQuery())
}

type CreateInput struct {
	Episode    string
	What       string
	When       time.Time
	Where      string
	Data       []DataPair
	Note       string
	RecordedBy string
}

func (s *Service) Create(ctx context.Context, in CreateInput, cb Callbacks) (Event, error) {
	ep := strings.TrimSpace(in.Episode)
	return querycache.Mutate(ctx, s.qc, querycache.Mutation[Event]{
		Run: func(ctx context.Context) (Event, error) {
			var v apierr.Validator
			v.Required("episode", ep)
			v.Required("what", in.What)
			v.Required("where", in.Where)
			v.Required("recordedBy", in.RecordedBy)
			if in.When.IsZero() {
				v.Add("when", "required")
			}
			data := validateData(&v, in.Data)
			if err := s.checkEpisode(ctx, &v, ep); err != nil {
				return Event{}, err
			}
			if err := v.Err(); err != nil {
				return Event{}, err
			}

			out, err := s.st.Create(ctx, store.CollectionEvent, store.Record{
				"episode":    ep,
				"what":       strings.TrimSpace(in.What),
				"when":       timeutil.FormatStoreTime(in.When),
				"where":      strings.TrimSpace(in.Where),
				"data":       data,
				"note":       strings.TrimSpace(in.Note),
				"recordedBy": strings.TrimSpace(in.RecordedBy),
			})
			if err != nil {
				return Event{}, err
			}
			return store.Decode[Event](out)
		},
		Invalidates: func(e Event) []querycache.Key {
			return invalidations(e.Episode)
		},
	}, cb)
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	What       *string
	When       *time.Time
	Where      *string
	Data       *[]DataPair
	Note       *string
	RecordedBy *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput, cb Callbacks) (Event, error) {
	id = strings.TrimSpace(id)
	return querycache.Mutate(ctx, s.qc, querycache.Mutation[Event]{
		Run: func(ctx context.Context) (Event, error) {
			if id == "" {
				return Event{}, store.ErrNotFound
			}

			var v apierr.Validator
			patch := store.Record{}
			if in.What != nil {
				v.Required("what", *in.What)
				patch["what"] = strings.TrimSpace(*in.What)
			}
			if in.When != nil {
				if in.When.IsZero() {
					v.Add("when", "required")
				}
				patch["when"] = timeutil.FormatStoreTime(*in.When)
			}
			if in.Where != nil {
				v.Required("where", *in.Where)
				patch["where"] = strings.TrimSpace(*in.Where)
			}
			if in.RecordedBy != nil {
				v.Required("recordedBy", *in.RecordedBy)
				patch["recordedBy"] = strings.TrimSpace(*in.RecordedBy)
			}
			if in.Note != nil {
				patch["note"] = strings.TrimSpace(*in.Note)
			}
			if in.Data != nil {
				patch["data"] = validateData(&v, *in.Data)
			}
			if err := v.Err(); err != nil {
				return Event{}, err
			}

			out, err := s.st.Update(ctx, store.CollectionEvent, id, patch)
			if err != nil {
				return Event{}, err
			}
			return store.Decode[Event](out)
		},
		Invalidates: func(e Event) []querycache.Key {
			return invalidations(e.Episode, Key(id))
		},
	}, cb)
}

// validateData exige thing y detail en cada par y devuelve los pares normalizados.
func validateData(v *apierr.Validator, pairs []DataPair) []DataPair {
	out := make([]DataPair, 0, len(pairs))
	for i, p := range pairs {
		p.Thing = strings.TrimSpace(p.Thing)
		p.Detail = strings.TrimSpace(p.Detail)
		v.Required(fmt.Sprintf("data[%d].thing", i), p.Thing)
		v.Required(fmt.Sprintf("data[%d].detail", i), p.Detail)
		out = append(out, p)
	}
	return out
}

func (s *Service) checkEpisode(ctx context.Context, v *apierr.Validator, id string) error {
	if s.episodes == nil || id == "" {
		return nil
	}
	_, err := s.episodes.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		v.Add("episode", "unknown episode")
		return nil
	}
	return err
}
