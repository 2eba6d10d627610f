package querycache

import "time"

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result es la foto de una query vista por un Observer.
type Result[T any] struct {
	Data    T
	HasData bool
	Err     error
	Status  Status

	// IsPlaceholder: Data es el valor previo del observer mientras carga la key nueva.
	IsPlaceholder bool
	Enabled       bool
	UpdatedAt     time.Time
}

// IsLoading: cargando sin nada que mostrar.
func (r Result[T]) IsLoading() bool { return r.Status == StatusLoading && !r.HasData }

// IsFetching: hay un request en vuelo (con o sin datos previos).
func (r Result[T]) IsFetching() bool { return r.Status == StatusLoading }

func (r Result[T]) IsError() bool   { return r.Status == StatusError }
func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }

// QueryState permite combinar resultados de distinto tipo.
type QueryState interface {
	IsLoading() bool
	IsError() bool
	IsSuccess() bool
}

func AnyLoading(states ...QueryState) bool {
	for _, s := range states {
		if s.IsLoading() {
			return true
		}
	}
	return false
}

func AnyError(states ...QueryState) bool {
	for _, s := range states {
		if s.IsError() {
			return true
		}
	}
	return false
}

func AllSuccess(states ...QueryState) bool {
	for _, s := range states {
		if !s.IsSuccess() {
			return false
		}
	}
	return true
}
