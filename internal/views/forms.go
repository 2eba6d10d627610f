package views

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"household-illness-tracker/internal/domain/episodes"
	"household-illness-tracker/internal/domain/events"
	"household-illness-tracker/internal/platform/apierr"
	"household-illness-tracker/internal/platform/timeutil"
	"household-illness-tracker/internal/ports/store"

	"github.com/go-chi/chi/v5"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	// Los formularios nuevos arrancan 10 minutos atrás: se suele cargar después de medir.
	defaultLag = 10 * time.Minute
)

type episodeForm struct {
	Person    string
	Name      string
	Sickness  string
	Note      string
	StartDate string
	StartTime string
	Recovered bool
	EndDate   string
	EndTime   string
}

type eventForm struct {
	What       string
	Date       string
	Time       string
	Where      string
	RecordedBy string
	Note       string
	Data       []events.DataPair
}

func newEpisodeForm(personID string, now time.Time, loc *time.Location) episodeForm {
	start := now.In(loc).Add(-defaultLag)
	end := now.In(loc)
	return episodeForm{
		Person:    personID,
		StartDate: start.Format(dateLayout),
		StartTime: start.Format(clockLayout),
		EndDate:   end.Format(dateLayout),
		EndTime:   end.Format(clockLayout),
	}
}

func editEpisodeForm(e episodes.Episode, now time.Time, loc *time.Location) episodeForm {
	f := newEpisodeForm(e.Person, now, loc)
	f.Name = e.Name
	f.Sickness = e.Sickness
	f.Note = e.Note
	if start, ok := timeutil.UTCToLocal(e.Start, loc); ok {
		f.StartDate = start.Format(dateLayout)
		f.StartTime = start.Format(clockLayout)
	}
	if end, ok := timeutil.UTCToLocal(e.End, loc); ok {
		f.Recovered = true
		f.EndDate = end.Format(dateLayout)
		f.EndTime = end.Format(clockLayout)
	}
	return f
}

// newEventForm precarga las filas de data con las cosas ya usadas para what.
func newEventForm(what string, sugg events.Suggestions, now time.Time, loc *time.Location) eventForm {
	when := now.In(loc).Add(-defaultLag)
	f := eventForm{
		What: what,
		Date: when.Format(dateLayout),
		Time: when.Format(clockLayout),
	}
	for _, thing := range sugg.ThingsByWhat[what] {
		f.Data = append(f.Data, events.DataPair{Thing: thing})
	}
	f.Data = append(f.Data, events.DataPair{})
	return f
}

func editEventForm(e events.Event, loc *time.Location) eventForm {
	f := eventForm{
		What:       e.What,
		Where:      e.Where,
		RecordedBy: e.RecordedBy,
		Note:       e.Note,
		Data:       append(append([]events.DataPair{}, e.Data...), events.DataPair{}),
	}
	if when, ok := timeutil.UTCToLocal(e.When, loc); ok {
		f.Date = when.Format(dateLayout)
		f.Time = when.Format(clockLayout)
	}
	return f
}

// combine arma el instante UTC desde los inputs date y time del form.
func (h *Handler) combine(v *apierr.Validator, field, date, clock string) time.Time {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(clock) == "" {
		v.Add(field, "required")
		return time.Time{}
	}
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), h.loc)
	if err != nil {
		v.Add(field, "invalid date")
		return time.Time{}
	}
	t, err := timeutil.CombineIntoUTC(d, clock, h.loc)
	if err != nil {
		v.Add(field, "invalid time")
		return time.Time{}
	}
	return t
}

// dataPairs empareja los inputs thing[i]/detail[i]; las filas vacías se ignoran.
func dataPairs(r *http.Request) []events.DataPair {
	things := r.PostForm["thing"]
	details := r.PostForm["detail"]
	out := make([]events.DataPair, 0, len(things))
	for i, thing := range things {
		detail := ""
		if i < len(details) {
			detail = details[i]
		}
		if strings.TrimSpace(thing) == "" && strings.TrimSpace(detail) == "" {
			continue
		}
		out = append(out, events.DataPair{Thing: thing, Detail: detail})
	}
	return out
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, q pageQuery) {
	http.Redirect(w, r, q.URL(nil), http.StatusSeeOther)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.addFlash(w, r, flashError, flashMessage(err))
}

func flashMessage(err error) string {
	switch {
	case errors.Is(err, apierr.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, store.ErrNotFound):
		return "Not found"
	default:
		return "Could not save, please try again"
	}
}

func (h *Handler) createEpisode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	q := parsePageQuery(r.PostForm)
	f := r.PostForm

	var v apierr.Validator
	in := episodes.CreateInput{
		Person:   f.Get("person"),
		Name:     f.Get("name"),
		Sickness: f.Get("sickness"),
		Note:     f.Get("note"),
		Start:    h.combine(&v, "start", f.Get("start_date"), f.Get("start_time")),
	}
	if f.Get("recovered") != "" {
		end := h.combine(&v, "end", f.Get("end_date"), f.Get("end_time"))
		in.End = &end
	}
	if err := v.Err(); err != nil {
		h.fail(w, r, err)
		h.redirect(w, r, q)
		return
	}

	_, _ = h.episodes.Create(r.Context(), in, episodes.Callbacks{
		OnSuccess: func(e episodes.Episode) {
			h.addFlash(w, r, flashSuccess, "Episode created")
			q.PersonID = e.Person
			q.EpisodeID = e.ID
			q.What = ""
		},
		OnError: func(err error) { h.fail(w, r, err) },
	})
	h.redirect(w, r, q)
}

func (h *Handler) updateEpisode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	q := parsePageQuery(r.PostForm)
	f := r.PostForm

	var v apierr.Validator
	name, sickness, note := f.Get("name"), f.Get("sickness"), f.Get("note")
	start := h.combine(&v, "start", f.Get("start_date"), f.Get("start_time"))
	in := episodes.UpdateInput{Name: &name, Sickness: &sickness, Note: &note, Start: &start}
	if f.Get("recovered") != "" {
		end := h.combine(&v, "end", f.Get("end_date"), f.Get("end_time"))
		in.End = &end
	} else {
		in.ClearEnd = true
	}
	if err := v.Err(); err != nil {
		h.fail(w, r, err)
		h.redirect(w, r, q)
		return
	}

	_, _ = h.episodes.Update(r.Context(), chi.URLParam(r, "episodeID"), in, episodes.Callbacks{
		OnSuccess: func(episodes.Episode) { h.addFlash(w, r, flashSuccess, "Episode updated") },
		OnError:   func(err error) { h.fail(w, r, err) },
	})
	h.redirect(w, r, q)
}

func (h *Handler) recoverEpisode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	q := parsePageQuery(r.PostForm)

	_, _ = h.episodes.MarkRecovered(r.Context(), chi.URLParam(r, "episodeID"), episodes.Callbacks{
		OnSuccess: func(episodes.Episode) { h.addFlash(w, r, flashSuccess, "Marked as recovered") },
		OnError:   func(err error) { h.fail(w, r, err) },
	})
	h.redirect(w, r, q)
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	q := parsePageQuery(r.PostForm)
	f := r.PostForm

	var v apierr.Validator
	in := events.CreateInput{
		Episode:    chi.URLParam(r, "episodeID"),
		What:       f.Get("what"),
		When:       h.combine(&v, "when", f.Get("date"), f.Get("time")),
		Where:      f.Get("where"),
		Data:       dataPairs(r),
		Note:       f.Get("note"),
		RecordedBy: f.Get("recordedBy"),
	}
	if err := v.Err(); err != nil {
		h.fail(w, r, err)
		h.redirect(w, r, q)
		return
	}

	_, _ = h.events.Create(r.Context(), in, events.Callbacks{
		OnSuccess: func(events.Event) { h.addFlash(w, r, flashSuccess, "Event recorded") },
		OnError:   func(err error) { h.fail(w, r, err) },
	})
	h.redirect(w, r, q)
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	q := parsePageQuery(r.PostForm)
	f := r.PostForm

	var v apierr.Validator
	what, where, note, by := f.Get("what"), f.Get("where"), f.Get("note"), f.Get("recordedBy")
	when := h.combine(&v, "when", f.Get("date"), f.Get("time"))
	data := dataPairs(r)
	if err := v.Err(); err != nil {
		h.fail(w, r, err)
		h.redirect(w, r, q)
		return
	}

	_, _ = h.events.Update(r.Context(), chi.URLParam(r, "eventID"), events.UpdateInput{
		What: &what, When: &when, Where: &where, Data: &data, Note: &note, RecordedBy: &by,
	}, events.Callbacks{
		OnSuccess: func(events.Event) { h.addFlash(w, r, flashSuccess, "Event updated") },
		OnError:   func(err error) { h.fail(w, r, err) },
	})
	h.redirect(w, r, q)
}
