// Package views renderiza la UI HTML: lista de personas, episodios por estado,
// detalle de episodio con sus eventos, y los formularios que los modifican.
package views

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"household-illness-tracker/internal/domain/episodes"
	"household-illness-tracker/internal/domain/events"
	"household-illness-tracker/internal/domain/persons"
	"household-illness-tracker/internal/platform/logger"
	"household-illness-tracker/internal/querycache"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

//go:embed templates/*.html
var templatesFS embed.FS

const DefaultRenderTimeout = 2 * time.Second

type Config struct {
	// Location es la zona en la que se muestran y se cargan las fechas.
	Location *time.Location
	// RenderTimeout: cuánto espera una página por sus queries antes de mostrar "Loading...".
	RenderTimeout time.Duration
	SessionSecret string
	// SecureCookies exige HTTPS para la cookie de flashes.
	SecureCookies bool
}

type Deps struct {
	Cache    *querycache.Client
	Persons  *persons.Service
	Episodes *episodes.Service
	Events   *events.Service
	Logger   logger.Logger
}

type Handler struct {
	qc       *querycache.Client
	persons  *persons.Service
	episodes *episodes.Service
	events   *events.Service
	log      logger.Logger

	tmpl     *template.Template
	sessions sessions.Store
	loc      *time.Location
	timeout  time.Duration

	now func() time.Time
}

func New(cfg Config, deps Deps) (*Handler, error) {
	if deps.Cache == nil || deps.Persons == nil || deps.Episodes == nil || deps.Events == nil {
		return nil, errors.New("views: missing dependencies")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("views: session secret required")
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	timeout := cfg.RenderTimeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	tmpl, err := template.New("page.html").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		qc:       deps.Cache,
		persons:  deps.Persons,
		episodes: deps.Episodes,
		events:   deps.Events,
		log:      log.With(map[string]any{"component": "views"}),
		tmpl:     tmpl,
		sessions: newFlashStore(cfg.SessionSecret, cfg.SecureCookies),
		loc:      loc,
		timeout:  timeout,
		now:      time.Now,
	}, nil
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.index)

	r.Post("/episodes", h.createEpisode)
	r.Post("/episodes/{episodeID}", h.updateEpisode)
	r.Post("/episodes/{episodeID}/recover", h.recoverEpisode)
	r.Post("/episodes/{episodeID}/events", h.createEvent)
	r.Post("/events/{eventID}", h.updateEvent)
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, "page.html", data); err != nil {
		h.log.Error("render failed", map[string]any{"error": err})
	}
}
