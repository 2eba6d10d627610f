package router

import (
	"context"
	"errors"
	"net/http"

	_ "household-illness-tracker/internal/docs"
	"household-illness-tracker/internal/domain/episodes"
	"household-illness-tracker/internal/domain/events"
	"household-illness-tracker/internal/domain/persons"
	"household-illness-tracker/internal/middleware"
	"household-illness-tracker/internal/platform/httpclient"
	"household-illness-tracker/internal/platform/logger"
	"household-illness-tracker/internal/ports/auth"
	"household-illness-tracker/internal/ports/store"
	"household-illness-tracker/internal/querycache"
	"household-illness-tracker/internal/views"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Store store.Store

	// Cache: si viene nil se crea uno con defaults (útil en tests).
	Cache  *querycache.Client
	Logger logger.Logger

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	Views views.Config

	// Gatherer para /metrics. nil = prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// ShouldRetry descarta reintentos para errores que no van a cambiar al repetir el fetch.
func ShouldRetry(err error) bool {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrReadOnly),
		errors.Is(err, context.Canceled):
		return false
	}
	code := httpclient.StatusCode(err)
	if code >= 400 && code < 500 && code != http.StatusTooManyRequests && code != http.StatusRequestTimeout {
		return false
	}
	return true
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.Store == nil {
		return nil, errors.New("router: store required")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	qc := opts.Cache
	if qc == nil {
		qc = querycache.New(querycache.Options{Logger: log, ShouldRetry: ShouldRetry})
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Services por módulo
	personsSvc := persons.NewService(opts.Store, qc)
	episodesSvc := episodes.NewService(opts.Store, qc, personsSvc)
	eventsSvc := events.NewService(opts.Store, qc, episodesSvc)

	pages, err := views.New(opts.Views, views.Deps{
		Cache:    qc,
		Persons:  personsSvc,
		Episodes: episodesSvc,
		Events:   eventsSvc,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(pr chi.Router) {
		// con verifier real todo lo de la app exige usuario; en modo dev queda abierto
		if opts.AuthVerifier != nil {
			pr.Use(middleware.RequireAuth)
		}

		// Rutas por módulo
		pr.Route("/api", func(api chi.Router) {
			persons.RegisterRoutes(api, personsSvc)
			episodes.RegisterRoutes(api, episodesSvc)
			events.RegisterRoutes(api, eventsSvc)
		})

		pages.RegisterRoutes(pr)
	})

	return r, nil
}
