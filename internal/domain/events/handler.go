package events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"household-illness-tracker/internal/platform/apierr"
	"household-illness-tracker/internal/platform/timeutil"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/episodes/{episodeID}/whats", listTypesHandler(svc))
	r.Get("/episodes/{episodeID}/events", listEventsHandler(svc))
	r.Post("/episodes/{episodeID}/events", createEventHandler(svc))

	r.Get("/events/{eventID}", getEventHandler(svc))
	r.Patch("/events/{eventID}", updateEventHandler(svc))

	r.Get("/suggestions", suggestionsHandler(svc))
}

// createEventRequest es el cuerpo para registrar un evento. when en RFC3339.
type createEventRequest struct {
	What       string     `json:"what"`
	When       string     `json:"when"`
	Where      string     `json:"where"`
	Data       []DataPair `json:"data"`
	Note       string     `json:"note"`
	RecordedBy string     `json:"recordedBy"`
}

// updateEventRequest: punteros para PATCH real.
type updateEventRequest struct {
	What       *string     `json:"what"`
	When       *string     `json:"when"`
	Where      *string     `json:"where"`
	Data       *[]DataPair `json:"data"`
	Note       *string     `json:"note"`
	RecordedBy *string     `json:"recordedBy"`
}

// listTypesHandler godoc
// @Summary Tipos de evento de un episodio
// @Description Valores distintos de "what" de los eventos del episodio, del más reciente al más viejo.
// @Tags events
// @Produce json
// @Param episodeID path string true "ID del episodio"
// @Success 200 {array} string
// @Failure 502 {object} apierr.ErrorResponse "store no disponible"
// @Router /episodes/{episodeID}/whats [get]
func listTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		whats, err := svc.ListTypes(r.Context(), chi.URLParam(r, "episodeID"))
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, whats)
	}
}

// listEventsHandler godoc
// @Summary Listar eventos de un episodio
// @Description Eventos del episodio ordenados por when descendente. Filtro opcional por tipo exacto.
// @Tags events
// @Produce json
// @Param episodeID path string true "ID del episodio"
// @Param what query string false "Tipo de evento"
// @Success 200 {array} Event
// @Failure 502 {object} apierr.ErrorResponse "store no disponible"
// @Router /episodes/{episodeID}/events [get]
func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{
			EpisodeID: chi.URLParam(r, "episodeID"),
			What:      r.URL.Query().Get("what"),
		})
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, items)
	}
}

// createEventHandler godoc
// @Summary Crear evento
// @Description Registra un evento en el episodio. Invalida la lista de eventos, el episodio y el autocompletado.
// @Tags events
// @Accept json
// @Produce json
// @Param episodeID path string true "ID del episodio"
// @Param payload body createEventRequest true "Datos del evento"
// @Success 201 {object} Event
// @Failure 400 {object} apierr.ErrorResponse "invalid json / validación por campo"
// @Failure 502 {object} apierr.ErrorResponse "store no disponible"
// @Router /episodes/{episodeID}/events [post]
func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierr.WriteError(w, fmt.Errorf("%w: invalid json", ErrInvalidInput))
			return
		}

		var v apierr.Validator
		when := parseTime(&v, "when", req.When)
		if err := v.Err(); err != nil {
			apierr.WriteError(w, err)
			return
		}

		e, err := svc.Create(r.Context(), CreateInput{
			Episode:    chi.URLParam(r, "episodeID"),
			What:       req.What,
			When:       when,
			Where:      req.Where,
			Data:       req.Data,
			Note:       req.Note,
			RecordedBy: req.RecordedBy,
		}, Callbacks{})
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusCreated, e)
	}
}

// getEventHandler godoc
// @Summary Obtener evento
// @Tags events
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} Event
// @Failure 404 {object} apierr.ErrorResponse "not found"
// @Router /events/{eventID} [get]
func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Get(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, e)
	}
}

// updateEventHandler godoc
// @Summary Actualizar evento
// @Description PATCH parcial de un evento.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "ID del evento"
// @Param payload body updateEventRequest true "Campos a modificar"
// @Success 200 {object} Event
// @Failure 400 {object} apierr.ErrorResponse "validación por campo"
// @Failure 404 {object} apierr.ErrorResponse "not found"
// @Router /events/{eventID} [patch]
func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierr.WriteError(w, fmt.Errorf("%w: invalid json", ErrInvalidInput))
			return
		}

		var v apierr.Validator
		in := UpdateInput{
			What:       req.What,
			Where:      req.Where,
			Data:       req.Data,
			Note:       req.Note,
			RecordedBy: req.RecordedBy,
		}
		if req.When != nil {
			t := parseTime(&v, "when", *req.When)
			in.When = &t
		}
		if err := v.Err(); err != nil {
			apierr.WriteError(w, err)
			return
		}

		e, err := svc.Update(r.Context(), chi.URLParam(r, "eventID"), in, Callbacks{})
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, e)
	}
}

// suggestionsHandler godoc
// @Summary Autocompletado de eventos
// @Description Tipos, cosas por tipo, detalles por cosa y lugares ya usados.
// @Tags events
// @Produce json
// @Success 200 {object} Suggestions
// @Failure 502 {object} apierr.ErrorResponse "store no disponible"
// @Router /suggestions [get]
func suggestionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.Suggestions(r.Context())
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, out)
	}
}

func parseTime(v *apierr.Validator, field, s string) time.Time {
	if strings.TrimSpace(s) == "" {
		return time.Time{}
	}
	t, err := timeutil.Parse(s)
	if err != nil {
		v.Add(field, "must be RFC3339")
		return time.Time{}
	}
	return t
}
