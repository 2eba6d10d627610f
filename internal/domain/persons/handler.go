package persons

import (
	"net/http"

	"household-illness-tracker/internal/platform/apierr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/persons", func(pr chi.Router) {
		pr.Get("/", listPersonsHandler(svc))
		pr.Get("/{personID}", getPersonHandler(svc))
	})
}

// listPersonsHandler godoc
// @Summary Listar personas
// @Description Lista las personas del hogar. Se sirve desde el cache de queries (key ["persons"]).
// @Tags persons
// @Produce json
// @Success 200 {array} Person
// @Failure 502 {object} apierr.ErrorResponse "store no disponible"
// @Router /persons [get]
func listPersonsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, items)
	}
}

// getPersonHandler godoc
// @Summary Obtener persona
// @Tags persons
// @Produce json
// @Param personID path string true "ID de la persona"
// @Success 200 {object} Person
// @Failure 404 {object} apierr.ErrorResponse "not found"
// @Failure 502 {object} apierr.ErrorResponse "store no disponible"
// @Router /persons/{personID} [get]
func getPersonHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "personID"))
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, p)
	}
}
