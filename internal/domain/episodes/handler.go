package episodes

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
	r.Get("/episodes", listEpisodesHandler(svc))
	r.Post("/episodes", createEpisodeHandler(svc))
	r.Get("/episodes/{episodeID}", getEpisodeHandler(svc))
	r.Patch("/episodes/{episodeID}", updateEpisodeHandler(svc))

	// Acción de la UI: end = ahora.
	r.Post("/episodes/{episodeID}/recover", recoverEpisodeHandler(svc))
}

// createEpisodeRequest es el cuerpo para registrar un episodio. Fechas en RFC3339.
type createEpisodeRequest struct {
	Person   string `json:"person"`
	Name     string `json:"name"`
	Sickness string `json:"sickness"`
	Start    string `json:"start"`
	End      string `json:"end"` // opcional; vacío = activo
	Note     string `json:"note"`
}

// updateEpisodeRequest: punteros para PATCH real. "end": "" vuelve a activo.
type updateEpisodeRequest struct {
	Name     *string `json:"name"`
	Sickness *string `json:"sickness"`
	Start    *string `json:"start"`
	End      *string `json:"end"`
	Note     *string `json:"note"`
}

// listEpisodesHandler godoc
// @Summary Listar episodios
// @Description Lista episodios filtrando por persona y estado (active: sin fin; past: con inicio y fin). Ordenados por inicio descendente.
// @Tags episodes
// @Produce json
// @Param personId query string false "ID de la persona"
// @Param status query string false "active | past | all (default all)"
// @Success 200 {array} Episode
// @Failure 502 {object} apierr.ErrorResponse "store no disponible"
// @Router /episodes [get]
func listEpisodesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListFilter{
			PersonID: q.Get("personId"),
			Status:   ParseStatus(q.Get("status"), StatusAll),
		})
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, items)
	}
}

// getEpisodeHandler godoc
// @Summary Obtener episodio
// @Tags episodes
// @Produce json
// @Param episodeID path string true "ID del episodio"
// @Success 200 {object} Episode
// @Failure 404 {object} apierr.ErrorResponse "not found"
// @Router /episodes/{episodeID} [get]
func getEpisodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Get(r.Context(), chi.URLParam(r, "episodeID"))
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, e)
	}
}

// createEpisodeHandler godoc
// @Summary Crear episodio
// @Description Crea un episodio. Invalida todas las listas de episodios.
// @Tags episodes
// @Accept json
// @Produce json
// @Param payload body createEpisodeRequest true "Datos del episodio"
// @Success 201 {object} Episode
// @Failure 400 {object} apierr.ErrorResponse "invalid json / validación por campo"
// @Failure 502 {object} apierr.ErrorResponse "store no disponible"
// @Router /episodes [post]
func createEpisodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEpisodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierr.WriteError(w, fmt.Errorf("%w: invalid json", ErrInvalidInput))
			return
		}

		var v apierr.Validator
		start := parseTime(&v, "start", req.Start)
		in := CreateInput{
			Person:   req.Person,
			Name:     req.Name,
			Sickness: req.Sickness,
			Start:    start,
			Note:     req.Note,
		}
		if strings.TrimSpace(req.End) != "" {
			end := parseTime(&v, "end", req.End)
			in.End = &end
		}
		if err := v.Err(); err != nil {
			apierr.WriteError(w, err)
			return
		}

		e, err := svc.Create(r.Context(), in, Callbacks{})
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusCreated, e)
	}
}

// updateEpisodeHandler godoc
// @Summary Actualizar episodio
// @Description PATCH parcial. Enviar "end": "" para reabrir el episodio.
// @Tags episodes
// @Accept json
// @Produce json
// @Param episodeID path string true "ID del episodio"
// @Param payload body updateEpisodeRequest true "Campos a modificar"
// @Success 200 {object} Episode
// @Failure 400 {object} apierr.ErrorResponse "validación por campo"
// @Failure 404 {object} apierr.ErrorResponse "not found"
// @Router /episodes/{episodeID} [patch]
func updateEpisodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEpisodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierr.WriteError(w, fmt.Errorf("%w: invalid json", ErrInvalidInput))
			return
		}

		var v apierr.Validator
		in := UpdateInput{Name: req.Name, Sickness: req.Sickness, Note: req.Note}
		if req.Start != nil {
			t := parseTime(&v, "start", *req.Start)
			in.Start = &t
		}
		if req.End != nil {
			if strings.TrimSpace(*req.End) == "" {
				in.ClearEnd = true
			} else {
				t := parseTime(&v, "end", *req.End)
				in.End = &t
			}
		}
		if err := v.Err(); err != nil {
			apierr.WriteError(w, err)
			return
		}

		e, err := svc.Update(r.Context(), chi.URLParam(r, "episodeID"), in, Callbacks{})
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, e)
	}
}

// recoverEpisodeHandler godoc
// @Summary Marcar episodio como recuperado
// @Description Cierra el episodio con end = ahora.
// @Tags episodes
// @Produce json
// @Param episodeID path string true "ID del episodio"
// @Success 200 {object} Episode
// @Failure 404 {object} apierr.ErrorResponse "not found"
// @Router /episodes/{episodeID}/recover [post]
func recoverEpisodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.MarkRecovered(r.Context(), chi.URLParam(r, "episodeID"), Callbacks{})
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, e)
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
