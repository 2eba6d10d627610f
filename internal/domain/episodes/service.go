package episodes

import (
	"context"
	"errors"
	"strings"
	"time"

	"household-illness-tracker/internal/domain/persons"
	"household-illness-tracker/internal/platform/apierr"
	"household-illness-tracker/internal/platform/timeutil"
	"household-illness-tracker/internal/ports/store"
	"household-illness-tracker/internal/querycache"
)

var (
	ErrInvalidInput = apierr.ErrInvalidInput
)

// PersonLookup resuelve personas (normalmente persons.Service, vía cache).
type PersonLookup interface {
	Get(ctx context.Context, id string) (persons.Person, error)
}

type Callbacks = querycache.Callbacks[Episode]

type Service struct {
	st     store.Store
	qc     *querycache.Client
	people PersonLookup
	now    func() time.Time
}

func NewService(st store.Store, qc *querycache.Client, people PersonLookup) *Service {
	return &Service{
		st:     st,
		qc:     qc,
		people: people,
		now:    time.Now,
	}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Episode, error) {
	return querycache.Fetch(ctx, s.qc, s.ListQuery(f))
}

func (s *Service) Get(ctx context.Context, id string) (Episode, error) {
	return querycache.Fetch(ctx, s.qc, s.GetQuery(id))
}

type CreateInput struct {
	Person   string
	Name     string
	Sickness string
	Start    time.Time
	End      *time.Time // nil = sigue activo
	Note     string
}

func (s *Service) Create(ctx context.Context, in CreateInput, cb Callbacks) (Episode, error) {
	return querycache.Mutate(ctx, s.qc, querycache.Mutation[Episode]{
		Run: func(ctx context.Context) (Episode, error) {
			var v apierr.Validator
			v.Required("person", in.Person)
			v.Required("name", in.Name)
			v.Required("sickness", in.Sickness)
			if in.Start.IsZero() {
				v.Add("start", "required")
			}
			if in.End != nil && !in.Start.IsZero() && in.End.Before(in.Start) {
				v.Add("end", "must not be before start")
			}
			if err := s.checkPerson(ctx, &v, in.Person); err != nil {
				return Episode{}, err
			}
			if err := v.Err(); err != nil {
				return Episode{}, err
			}

			rec := store.Record{
				"person":   strings.TrimSpace(in.Person),
				"name":     strings.TrimSpace(in.Name),
				"sickness": strings.TrimSpace(in.Sickness),
				"start":    timeutil.FormatStoreTime(in.Start),
				"end":      "",
				"note":     strings.TrimSpace(in.Note),
			}
			if in.End != nil {
				rec["end"] = timeutil.FormatStoreTime(*in.End)
			}

			out, err := s.st.Create(ctx, store.CollectionEpisode, rec)
			if err != nil {
				return Episode{}, err
			}
			return store.Decode[Episode](out)
		},
		Invalidates: func(Episode) []querycache.Key {
			return []querycache.Key{ListPrefix()}
		},
	}, cb)
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name     *string
	Sickness *string
	Note     *string
	Start    *time.Time
	End      *time.Time
	// ClearEnd vuelve a marcar el episodio como activo.
	ClearEnd bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput, cb Callbacks) (Episode, error) {
	id = strings.TrimSpace(id)
	return querycache.Mutate(ctx, s.qc, querycache.Mutation[Episode]{
		Run: func(ctx context.Context) (Episode, error) {
			if id == "" {
				return Episode{}, store.ErrNotFound
			}
			rec, err := s.st.Get(ctx, store.CollectionEpisode, id)
			if err != nil {
				return Episode{}, err
			}
			current, err := store.Decode[Episode](rec)
			if err != nil {
				return Episode{}, err
			}

			var v apierr.Validator
			patch := store.Record{}
			if in.Name != nil {
				v.Required("name", *in.Name)
				patch["name"] = strings.TrimSpace(*in.Name)
			}
			if in.Sickness != nil {
				v.Required("sickness", *in.Sickness)
				patch["sickness"] = strings.TrimSpace(*in.Sickness)
			}
			if in.Note != nil {
				patch["note"] = strings.TrimSpace(*in.Note)
			}

			start, err := timeutil.Parse(current.Start)
			if err != nil {
				return Episode{}, err
			}
			if in.Start != nil {
				if in.Start.IsZero() {
					v.Add("start", "required")
				}
				start = *in.Start
				patch["start"] = timeutil.FormatStoreTime(start)
			}

			end, err := timeutil.Parse(current.End)
			if err != nil {
				return Episode{}, err
			}
			switch {
			case in.ClearEnd:
				end = time.Time{}
				patch["end"] = ""
			case in.End != nil:
				end = *in.End
				patch["end"] = timeutil.FormatStoreTime(end)
			}
			if !end.IsZero() && !start.IsZero() && end.Before(start) {
				v.Add("end", "must not be before start")
			}
			if err := v.Err(); err != nil {
				return Episode{}, err
			}

			out, err := s.st.Update(ctx, store.CollectionEpisode, id, patch)
			if err != nil {
				return Episode{}, err
			}
			return store.Decode[Episode](out)
		},
		Invalidates: func(Episode) []querycache.Key {
			return []querycache.Key{ListPrefix(), Key(id)}
		},
	}, cb)
}

// MarkRecovered cierra el episodio con end = ahora.
func (s *Service) MarkRecovered(ctx context.Context, id string, cb Callbacks) (Episode, error) {
	now := s.now().UTC().Truncate(time.Second)
	return s.Update(ctx, id, UpdateInput{End: &now}, cb)
}

// checkPerson valida que la persona exista. Errores del store se devuelven tal cual.
func (s *Service) checkPerson(ctx context.Context, v *apierr.Validator, id string) error {
	if s.people == nil || strings.TrimSpace(id) == "" {
		return nil
	}
	_, err := s.people.Get(ctx, strings.TrimSpace(id))
	if errors.Is(err, store.ErrNotFound) {
		v.Add("person", "unknown person")
		return nil
	}
	return err
}
