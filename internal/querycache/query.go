package querycache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Descriptor describe una query sin ejecutarla: qué key, cómo traerla, si está
// habilitada y cuánto dura fresca. Los servicios los construyen; el Client los ejecuta.
type Descriptor[T any] struct {
	Key   Key
	Fetch func(ctx context.Context) (T, error)

	// Enabled nil = habilitada.
	Enabled func() bool
	// StaleTime 0 = el default del Client; negativo = nunca vence sola.
	StaleTime time.Duration
	// KeepPrevious: al cambiar de key, el observer sigue mostrando el dato anterior.
	KeepPrevious bool
}

func (d Descriptor[T]) IsEnabled() bool {
	return d.Fetch != nil && (d.Enabled == nil || d.Enabled())
}

func (d Descriptor[T]) erased() fetchFn {
	return func(ctx context.Context) (any, error) {
		return d.Fetch(ctx)
	}
}

// Fetch devuelve el dato cacheado si está fresco; si no, lo trae del store
// compartiendo el request con cualquier otro caller de la misma key.
func Fetch[T any](ctx context.Context, c *Client, d Descriptor[T]) (T, error) {
	var zero T
	if !d.IsEnabled() {
		return zero, ErrDisabled
	}

	c.mu.Lock()
	if e, ok := c.lookupLocked(d.Key); ok && !c.isStaleLocked(e, d.StaleTime) {
		if data, ok := e.data.(T); ok {
			c.touchLocked(e)
			c.mu.Unlock()
			c.metrics.hits.Inc()
			return data, nil
		}
	}
	c.mu.Unlock()
	c.metrics.misses.Inc()

	v, err := c.run(ctx, d.Key, d.erased())
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	data, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("querycache: key %v holds %T", d.Key, v)
	}
	return data, nil
}

// Prefetch calienta el cache en background. Los errores quedan en la entrada.
func Prefetch[T any](c *Client, d Descriptor[T]) {
	if !d.IsEnabled() {
		return
	}
	c.mu.Lock()
	e, ok := c.lookupLocked(d.Key)
	fresh := ok && !c.isStaleLocked(e, d.StaleTime)
	c.mu.Unlock()
	if fresh {
		return
	}
	c.background(d.Key, d.erased())
}

// Observer es una query "montada": mientras esté abierta, las invalidaciones
// de su key la refrescan automáticamente.
type Observer[T any] struct {
	c    *Client
	link *observerLink

	mu      sync.Mutex
	d       Descriptor[T]
	prev    T
	hasPrev bool
	closed  bool
}

func Observe[T any](c *Client, d Descriptor[T]) *Observer[T] {
	o := &Observer[T]{
		c:    c,
		link: &observerLink{ch: make(chan struct{}, 1)},
		d:    d,
	}
	o.attach(d)
	return o
}

func (o *Observer[T]) attach(d Descriptor[T]) {
	if !d.IsEnabled() {
		return
	}
	c := o.c

	c.mu.Lock()
	e := c.getOrCreateLocked(d.Key)
	e.observers[o.link] = struct{}{}
	if e.fetch == nil {
		e.fetch = d.erased()
	}
	// Un fetch en vuelo alcanza salvo que sea anterior a una invalidación:
	// ese resultado ya no sirve y hay que pedir de nuevo.
	need := c.isStaleLocked(e, d.StaleTime) && (e.status != StatusLoading || e.stale)
	c.touchLocked(e)
	c.mu.Unlock()

	if need {
		c.background(d.Key, d.erased())
	}
}

func (o *Observer[T]) detach(d Descriptor[T]) {
	if !d.IsEnabled() {
		return
	}
	c := o.c

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lookupLocked(d.Key)
	if !ok {
		return
	}
	delete(e.observers, o.link)
	c.touchLocked(e)
}

// Result devuelve el estado actual sin bloquear.
func (o *Observer[T]) Result() Result[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.resultLocked()
}

func (o *Observer[T]) resultLocked() Result[T] {
	d := o.d
	r := Result[T]{Status: StatusIdle, Enabled: d.IsEnabled()}

	if r.Enabled {
		c := o.c
		c.mu.Lock()
		if e, ok := c.lookupLocked(d.Key); ok {
			r.Status = e.status
			r.Err = e.err
			r.UpdatedAt = e.updatedAt
			if e.hasData {
				if data, ok := e.data.(T); ok {
					r.Data = data
					r.HasData = true
				}
			}
		}
		c.mu.Unlock()
		if r.Status == StatusIdle {
			// Montada y habilitada: el fetch ya fue pedido.
			r.Status = StatusLoading
		}
	}

	switch {
	case r.HasData:
		o.prev = r.Data
		o.hasPrev = true
	case d.KeepPrevious && o.hasPrev:
		r.Data = o.prev
		r.HasData = true
		r.IsPlaceholder = true
	}
	return r
}

// Wait bloquea hasta que la query termine (success o error), esté deshabilitada,
// o se cancele ctx. Siempre devuelve el último Result visto.
func (o *Observer[T]) Wait(ctx context.Context) (Result[T], error) {
	for {
		r := o.Result()
		if !r.Enabled || r.Status == StatusSuccess || r.Status == StatusError {
			return r, nil
		}
		select {
		case <-o.link.ch:
		case <-ctx.Done():
			return r, ctx.Err()
		}
	}
}

// Switch cambia la query observada (p.ej. cambió el filtro en la URL).
func (o *Observer[T]) Switch(d Descriptor[T]) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	_ = o.resultLocked() // guarda el dato actual como previo
	old := o.d
	o.d = d
	o.mu.Unlock()

	if old.IsEnabled() && d.IsEnabled() && old.Key.Equal(d.Key) {
		return
	}
	o.detach(old)
	o.attach(d)
}

func (o *Observer[T]) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	d := o.d
	o.mu.Unlock()

	o.detach(d)
}
