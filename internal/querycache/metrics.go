package querycache

import (
	"errors"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	fetches       prometheus.Counter
	fetchErrors   prometheus.Counter
	invalidations prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, items *cache.Cache) *metrics {
	m := &metrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tracker", Subsystem: "querycache", Name: "hits_total",
			Help: "Fetches served from a fresh cache entry.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tracker", Subsystem: "querycache", Name: "misses_total",
			Help: "Fetches that needed the store.",
		}),
		fetches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tracker", Subsystem: "querycache", Name: "store_fetches_total",
			Help: "Requests actually sent to the store (after single-flight).",
		}),
		fetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tracker", Subsystem: "querycache", Name: "store_fetch_errors_total",
			Help: "Store fetches that failed after retries.",
		}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tracker", Subsystem: "querycache", Name: "invalidations_total",
			Help: "Invalidate calls.",
		}),
	}
	if reg == nil {
		return m
	}

	m.hits = registerCounter(reg, m.hits)
	m.misses = registerCounter(reg, m.misses)
	m.fetches = registerCounter(reg, m.fetches)
	m.fetchErrors = registerCounter(reg, m.fetchErrors)
	m.invalidations = registerCounter(reg, m.invalidations)

	// Si ya hay un gauge registrado sigue reportando el cache del primer Client.
	entries := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "tracker", Subsystem: "querycache", Name: "entries",
		Help: "Entries currently held by the cache.",
	}, func() float64 { return float64(items.ItemCount()) })
	if err := reg.Register(entries); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(err)
		}
	}
	return m
}

// registerCounter registra c o, si ya existe, devuelve el contador registrado
// para que otro Client sobre el mismo registry sume en la misma serie.
func registerCounter(reg prometheus.Registerer, c prometheus.Counter) prometheus.Counter {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
