package views

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"household-illness-tracker/internal/domain/episodes"
	"household-illness-tracker/internal/domain/events"
	"household-illness-tracker/internal/domain/persons"
	"household-illness-tracker/internal/platform/timeutil"
	"household-illness-tracker/internal/querycache"
)

// pageQuery es el estado de navegación; vive entero en la URL.
type pageQuery struct {
	PersonID  string
	EpisodeID string
	Status    episodes.Status
	What      string
}

func parsePageQuery(q url.Values) pageQuery {
	return pageQuery{
		PersonID:  strings.TrimSpace(q.Get("personId")),
		EpisodeID: strings.TrimSpace(q.Get("episodeId")),
		Status:    episodes.ParseStatus(q.Get("status"), episodes.StatusActive),
		What:      strings.TrimSpace(q.Get("what")),
	}
}

func (q pageQuery) values() url.Values {
	v := url.Values{}
	if q.PersonID != "" {
		v.Set("personId", q.PersonID)
	}
	if q.EpisodeID != "" {
		v.Set("episodeId", q.EpisodeID)
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.What != "" {
		v.Set("what", q.What)
	}
	return v
}

// URL devuelve "/?..." con los cambios aplicados por fn.
func (q pageQuery) URL(fn func(*pageQuery)) string {
	next := q
	if fn != nil {
		fn(&next)
	}
	enc := next.values().Encode()
	if enc == "" {
		return "/"
	}
	return "/?" + enc
}

// section es lo que ve el template de una query: dato, o Loading, o Error.
type section[T any] struct {
	Enabled     bool
	Loading     bool
	Error       bool
	Placeholder bool
	Data        T
}

func toSection[T any](r querycache.Result[T]) section[T] {
	return section[T]{
		Enabled:     r.Enabled,
		Loading:     r.Enabled && !r.HasData && !r.IsError(),
		Error:       r.IsError() && !r.HasData,
		Placeholder: r.IsPlaceholder,
		Data:        r.Data,
	}
}

type link struct {
	Label  string
	URL    string
	Active bool
}

type episodeRow struct {
	episodes.Episode
	URL       string
	StartDate string
	Active    bool
}

type episodeDetail struct {
	episodes.Episode
	StartText string
	EndText   string
	Active    bool
	Elapsed   string
	Form      episodeForm
}

type eventRow struct {
	events.Event
	WhenText string
	// Gap es el tiempo desde el evento anterior (el siguiente en la lista).
	Gap  string
	Form eventForm
}

type pageData struct {
	Flashes []flash
	Query   pageQuery

	Persons  section[[]persons.Person]
	Person   section[persons.Person]
	Episodes section[[]episodeRow]
	Tabs     []link

	Episode  section[episodeDetail]
	WhatTabs []link
	Events   section[[]eventRow]

	NewEpisode episodeForm
	NewEvent   eventForm
	// SuggestionsJSON alimenta el autocompletado de data rows del lado del navegador.
	SuggestionsJSON template.JS
	Suggestions     events.Suggestions
}

// index monta las queries de la página, espera hasta el render deadline y
// dibuja con lo que haya: dato, placeholder, "Loading..." o "Error".
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	q := parsePageQuery(r.URL.Query())

	personsObs := querycache.Observe(h.qc, h.persons.ListQuery())
	defer personsObs.Close()
	personObs := querycache.Observe(h.qc, h.persons.GetQuery(q.PersonID))
	defer personObs.Close()
	episodesObs := querycache.Observe(h.qc, h.episodes.ListQuery(episodes.ListFilter{PersonID: q.PersonID, Status: q.Status}))
	defer episodesObs.Close()
	episodeObs := querycache.Observe(h.qc, h.episodes.GetQuery(q.EpisodeID))
	defer episodeObs.Close()
	whatsObs := querycache.Observe(h.qc, h.events.TypesQuery(q.EpisodeID))
	defer whatsObs.Close()
	eventsObs := querycache.Observe(h.qc, h.events.ListQuery(events.ListFilter{EpisodeID: q.EpisodeID, What: q.What}))
	defer eventsObs.Close()
	suggestionsObs := querycache.Observe(h.qc, h.events.SuggestionsQuery())
	defer suggestionsObs.Close()

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	// Los errores de Wait son solo el deadline: lo que no llegó se muestra como Loading.
	personsRes, _ := personsObs.Wait(ctx)
	personRes, _ := personObs.Wait(ctx)
	episodesRes, _ := episodesObs.Wait(ctx)
	episodeRes, _ := episodeObs.Wait(ctx)
	whatsRes, _ := whatsObs.Wait(ctx)
	eventsRes, _ := eventsObs.Wait(ctx)
	suggestionsRes, _ := suggestionsObs.Wait(ctx)

	if querycache.AnyError(personsRes, episodesRes, episodeRes, eventsRes) {
		h.log.Warn("page rendered with query errors", map[string]any{
			"person_id":  q.PersonID,
			"episode_id": q.EpisodeID,
		})
	}

	now := h.now()
	data := pageData{
		Flashes:     h.popFlashes(w, r),
		Query:       q,
		Persons:     toSection(personsRes),
		Person:      toSection(personRes),
		Tabs:        statusTabs(q),
		Suggestions: suggestionsRes.Data,
		NewEpisode:  newEpisodeForm(q.PersonID, now, h.loc),
	}

	eps := toSection(episodesRes)
	data.Episodes = section[[]episodeRow]{
		Enabled: eps.Enabled, Loading: eps.Loading, Error: eps.Error, Placeholder: eps.Placeholder,
		Data: h.episodeRows(q, eps.Data),
	}
	h.prefetchEpisodes(eps.Data)

	ep := toSection(episodeRes)
	data.Episode = section[episodeDetail]{
		Enabled: ep.Enabled, Loading: ep.Loading, Error: ep.Error, Placeholder: ep.Placeholder,
	}
	if ep.Enabled && !ep.Loading && !ep.Error {
		data.Episode.Data = h.episodeDetail(ep.Data, now)
	}

	data.WhatTabs = whatTabs(q, whatsRes.Data)

	evs := toSection(eventsRes)
	data.Events = section[[]eventRow]{
		Enabled: evs.Enabled, Loading: evs.Loading, Error: evs.Error, Placeholder: evs.Placeholder,
		Data: h.eventRows(evs.Data),
	}

	data.NewEvent = newEventForm(q.What, suggestionsRes.Data, now, h.loc)
	if b, err := json.Marshal(suggestionsRes.Data); err == nil {
		data.SuggestionsJSON = template.JS(b)
	}

	h.render(w, http.StatusOK, data)
}

func statusTabs(q pageQuery) []link {
	out := make([]link, 0, 3)
	for _, s := range []episodes.Status{episodes.StatusActive, episodes.StatusPast, episodes.StatusAll} {
		s := s
		out = append(out, link{
			Label:  strings.ToUpper(string(s[:1])) + string(s[1:]),
			URL:    q.URL(func(n *pageQuery) { n.Status = s }),
			Active: q.Status == s,
		})
	}
	return out
}

func whatTabs(q pageQuery, whats []string) []link {
	if q.EpisodeID == "" {
		return nil
	}
	out := []link{{
		Label:  "All",
		URL:    q.URL(func(n *pageQuery) { n.What = "" }),
		Active: q.What == "",
	}}
	for _, w := range whats {
		w := w
		out = append(out, link{
			Label:  w,
			URL:    q.URL(func(n *pageQuery) { n.What = w }),
			Active: q.What == w,
		})
	}
	return out
}

func (h *Handler) episodeRows(q pageQuery, items []episodes.Episode) []episodeRow {
	out := make([]episodeRow, 0, len(items))
	for _, e := range items {
		e := e
		start, _ := timeutil.UTCToLocal(e.Start, h.loc)
		out = append(out, episodeRow{
			Episode:   e,
			URL:       q.URL(func(n *pageQuery) { n.EpisodeID = e.ID; n.What = "" }),
			StartDate: timeutil.PrettyDate(start),
			Active:    e.Active(),
		})
	}
	return out
}

// prefetchEpisodes calienta detalle, tipos y eventos de los episodios listados
// para que abrir uno no espere al store.
func (h *Handler) prefetchEpisodes(items []episodes.Episode) {
	for _, e := range items {
		querycache.Prefetch(h.qc, h.episodes.GetQuery(e.ID))
		querycache.Prefetch(h.qc, h.events.TypesQuery(e.ID))
		querycache.Prefetch(h.qc, h.events.ListQuery(events.ListFilter{EpisodeID: e.ID}))
	}
}

func (h *Handler) episodeDetail(e episodes.Episode, now time.Time) episodeDetail {
	d := episodeDetail{Episode: e, Active: e.Active(), Form: editEpisodeForm(e, now, h.loc)}
	if start, ok := timeutil.UTCToLocal(e.Start, h.loc); ok {
		d.StartText = timeutil.PrettyShortDate(start) + " " + timeutil.PrettyTime(start)
	}
	if end, ok := timeutil.UTCToLocal(e.End, h.loc); ok {
		d.EndText = timeutil.PrettyShortDate(end) + " " + timeutil.PrettyTime(end)
	}
	to := e.End
	if d.Active {
		to = timeutil.FormatStoreTime(now)
	}
	d.Elapsed = timeutil.FormatDuration(e.Start, to)
	return d
}

func (h *Handler) eventRows(items []events.Event) []eventRow {
	out := make([]eventRow, 0, len(items))
	for i, e := range items {
		row := eventRow{Event: e, Form: editEventForm(e, h.loc)}
		if when, ok := timeutil.UTCToLocal(e.When, h.loc); ok {
			row.WhenText = timeutil.PrettyShortDate(when) + " " + timeutil.PrettyTime(when)
		}
		// Orden descendente: el anterior en el tiempo es el siguiente en la lista.
		if i+1 < len(items) {
			row.Gap = timeutil.FormatDuration(items[i+1].When, e.When)
		}
		out = append(out, row)
	}
	return out
}
