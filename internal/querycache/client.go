// Package querycache es el cache de queries del proceso: guarda resultados por Key,
// comparte un único request en vuelo por Key, y permite invalidar por prefijo
// refrescando solo lo que está siendo observado.
package querycache

import (
	"context"
	"errors"
	"sync"
	"time"

	"household-illness-tracker/internal/platform/logger"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultStaleTime  = 30 * time.Second
	DefaultGCTime     = 5 * time.Minute
	DefaultRetry      = 3
	DefaultRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

var ErrDisabled = errors.New("query disabled")

// errSuperseded: el fetch fue reemplazado por otro posterior a una invalidación.
// No sale del paquete: run lo resuelve esperando al fetch nuevo.
var errSuperseded = errors.New("querycache: fetch superseded")

type Options struct {
	// StaleTime: cuánto tiempo un resultado exitoso se sirve sin volver al store.
	StaleTime time.Duration
	// GCTime: cuánto vive una entrada sin observers.
	GCTime time.Duration
	// Retry: reintentos extra por fetch. 0 = DefaultRetry, negativo = sin reintentos.
	Retry      int
	RetryDelay time.Duration
	// ShouldRetry decide si un error se reintenta. nil = todos.
	ShouldRetry func(error) bool

	Logger     logger.Logger
	Registerer prometheus.Registerer
}

type fetchFn func(ctx context.Context) (any, error)

type entry struct {
	key Key

	status    Status
	data      any
	hasData   bool
	err       error
	updatedAt time.Time

	// gen sube con cada invalidación; dataGen es la gen del fetch que escribió data.
	gen     uint64
	dataGen uint64
	stale   bool

	fetch     fetchFn
	observers map[*observerLink]struct{}

	// inflight se cierra cuando el request actual al store termina; cancel lo aborta.
	inflight chan struct{}
	cancel   context.CancelFunc
}

type observerLink struct {
	ch chan struct{}
}

func (l *observerLink) signal() {
	select {
	case l.ch <- struct{}{}:
	default:
	}
}

// Client es el cache. Se crea una vez al arrancar y se pasa por referencia.
type Client struct {
	opts    Options
	log     logger.Logger
	metrics *metrics

	mu     sync.Mutex
	items  *cache.Cache
	group  singleflight.Group
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(opts Options) *Client {
	if opts.StaleTime == 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.GCTime <= 0 {
		opts.GCTime = DefaultGCTime
	}
	if opts.Retry == 0 {
		opts.Retry = DefaultRetry
	}
	if opts.Retry < 0 {
		opts.Retry = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		opts:   opts,
		log:    log.With(map[string]any{"component": "querycache"}),
		items:  cache.New(opts.GCTime, opts.GCTime),
		ctx:    ctx,
		cancel: cancel,
		now:    time.Now,
		sleep:  sleepCtx,
	}
	c.metrics = newMetrics(opts.Registerer, c.items)
	c.items.OnEvicted(func(k string, _ any) {
		c.log.Debug("entry collected", map[string]any{"key": parseKey(k)})
	})
	return c
}

// Close cancela los refetch en background y espera a que terminen.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

// getOrCreateLocked requiere c.mu.
func (c *Client) getOrCreateLocked(key Key) *entry {
	if v, ok := c.items.Get(key.String()); ok {
		if e, ok := v.(*entry); ok {
			return e
		}
	}
	e := &entry{
		key:       key,
		status:    StatusIdle,
		observers: map[*observerLink]struct{}{},
	}
	c.items.Set(key.String(), e, c.opts.GCTime)
	return e
}

func (c *Client) lookupLocked(key Key) (*entry, bool) {
	v, ok := c.items.Get(key.String())
	if !ok {
		return nil, false
	}
	e, ok := v.(*entry)
	return e, ok
}

// touchLocked renueva la expiración: las entradas observadas no expiran.
func (c *Client) touchLocked(e *entry) {
	exp := c.opts.GCTime
	if len(e.observers) > 0 {
		exp = cache.NoExpiration
	}
	c.items.Set(e.key.String(), e, exp)
}

func (c *Client) notifyLocked(e *entry) {
	for l := range e.observers {
		l.signal()
	}
}

func (c *Client) isStaleLocked(e *entry, staleTime time.Duration) bool {
	if e.stale || !e.hasData || e.status == StatusError {
		return true
	}
	if staleTime == 0 {
		staleTime = c.opts.StaleTime
	}
	if staleTime < 0 {
		return false
	}
	return c.now().Sub(e.updatedAt) > staleTime
}

// run ejecuta fn a lo sumo una vez en simultáneo por key. El fetch corre con el
// context del cliente: si el caller se va, los demás que esperan no lo pierden.
func (c *Client) run(ctx context.Context, key Key, fn fetchFn) (any, error) {
	for {
		ch := c.group.DoChan(key.String(), func() (any, error) {
			return c.execute(key, fn)
		})
		select {
		case res := <-ch:
			if errors.Is(res.Err, errSuperseded) && c.ctx.Err() == nil {
				// el resultado era de antes de la invalidación: esperar al fetch nuevo
				continue
			}
			return res.Val, res.Err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// execute hace el request al store. Si hay uno anterior en vuelo para la misma key
// (quedó afuera del group por Invalidate) lo cancela y espera a que termine antes de
// empezar: nunca hay dos requests simultáneos por key.
func (c *Client) execute(key Key, fn fetchFn) (any, error) {
	fctx, cancel := context.WithCancel(c.ctx)
	defer cancel()
	done := make(chan struct{})

	c.mu.Lock()
	e := c.getOrCreateLocked(key)
	prev := e.inflight
	if e.cancel != nil {
		e.cancel()
	}
	e.inflight, e.cancel = done, cancel
	gen := e.gen
	e.status = StatusLoading
	e.fetch = fn
	c.notifyLocked(e)
	c.mu.Unlock()

	if prev != nil {
		<-prev
	}

	var (
		data any
		err  error
	)
	if err = fctx.Err(); err == nil {
		c.metrics.fetches.Inc()
		data, err = c.withRetry(fctx, key, fn)
	}
	close(done)

	c.mu.Lock()
	defer c.mu.Unlock()

	e = c.getOrCreateLocked(key)
	if e.inflight != done || (fctx.Err() != nil && c.ctx.Err() == nil) {
		// Reemplazado: el estado lo escribe el fetch nuevo.
		return nil, errSuperseded
	}
	e.inflight, e.cancel = nil, nil
	if gen < e.dataGen {
		// Ya se aplicó el resultado de un fetch posterior a una invalidación.
		return data, err
	}
	e.dataGen = gen
	e.stale = gen < e.gen
	if err != nil {
		c.metrics.fetchErrors.Inc()
		e.status = StatusError
		e.err = err
		c.log.Warn("fetch failed", map[string]any{"key": key, "error": err})
	} else {
		e.status = StatusSuccess
		e.data = data
		e.hasData = true
		e.err = nil
		e.updatedAt = c.now()
	}
	c.touchLocked(e)
	c.notifyLocked(e)
	return data, err
}

func (c *Client) withRetry(ctx context.Context, key Key, fn fetchFn) (any, error) {
	var (
		data any
		err  error
	)
	for attempt := 0; ; attempt++ {
		data, err = fn(ctx)
		if err == nil {
			return data, nil
		}
		if attempt >= c.opts.Retry || ctx.Err() != nil {
			return nil, err
		}
		if c.opts.ShouldRetry != nil && !c.opts.ShouldRetry(err) {
			return nil, err
		}

		delay := c.opts.RetryDelay << attempt
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
		c.log.Debug("retrying fetch", map[string]any{"key": key, "attempt": attempt + 1, "delay": delay.String()})
		if serr := c.sleep(ctx, delay); serr != nil {
			return nil, err
		}
	}
}

// background lanza un fetch que nadie espera directamente (lo ven los observers).
func (c *Client) background(key Key, fn fetchFn) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		_, _ = c.run(c.ctx, key, fn)
	}()
}

// Invalidate marca como vencidas las entradas cuya key empieza con prefix
// (o es igual, si exact). Las observadas pasan a loading y se refrescan ya;
// las demás se descartan y se vuelven a pedir cuando alguien las lea.
// Devuelve cuántas entradas coincidieron.
func (c *Client) Invalidate(prefix Key, exact bool) int {
	c.metrics.invalidations.Inc()

	type job struct {
		key Key
		fn  fetchFn
	}
	var jobs []job
	matched := 0

	c.mu.Lock()
	for ks, item := range c.items.Items() {
		e, ok := item.Object.(*entry)
		if !ok || !e.key.match(prefix, exact) {
			continue
		}
		matched++
		e.gen++
		e.stale = true

		switch {
		case len(e.observers) > 0 && e.fetch != nil:
			e.status = StatusLoading
			c.notifyLocked(e)
			// Que el refetch no se cuelgue de un request anterior a la invalidación,
			// y que ese request no siga ocupando el store.
			c.group.Forget(ks)
			if e.cancel != nil {
				e.cancel()
			}
			jobs = append(jobs, job{key: e.key, fn: e.fetch})
		case e.status == StatusLoading:
			// Sin observers pero con fetch en vuelo: queda stale hasta el próximo acceso,
			// que lo cancela y pide de nuevo (ver execute).
			c.group.Forget(ks)
		default:
			c.items.Delete(ks)
		}
	}
	c.mu.Unlock()

	for _, j := range jobs {
		c.background(j.key, j.fn)
	}

	c.log.Debug("invalidated", map[string]any{
		"prefix":    prefix,
		"exact":     exact,
		"matched":   matched,
		"refetched": len(jobs),
	})
	return matched
}

// EntryInfo describe una entrada (debug y tests).
type EntryInfo struct {
	Status    Status
	Stale     bool
	HasData   bool
	Observers int
	UpdatedAt time.Time
}

func (c *Client) Inspect(key Key) (EntryInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lookupLocked(key)
	if !ok {
		return EntryInfo{}, false
	}
	return EntryInfo{
		Status:    e.status,
		Stale:     e.stale,
		HasData:   e.hasData,
		Observers: len(e.observers),
		UpdatedAt: e.updatedAt,
	}, true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
