package store

import (
	"context"
	"errors"
)

// Colecciones del record store remoto.
const (
	CollectionPerson             = "person"
	CollectionEpisode            = "episode"
	CollectionEvent              = "event"
	CollectionWhatsThingsDetails = "whats_things_details"
)

// Campos de sistema que el store agrega a cada record.
const (
	FieldID      = "id"
	FieldCreated = "created"
	FieldUpdated = "updated"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrReadOnly se devuelve al escribir sobre una colección derivada (vista).
	ErrReadOnly = errors.New("collection is read-only")
)

// Store es el contrato del backend de records (PocketBase u otro equivalente).
// Filtros, orden y proyección se evalúan del lado del store.
type Store interface {
	List(ctx context.Context, collection string, opts ListOptions) ([]Record, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	Create(ctx context.Context, collection string, payload Record) (Record, error)
	Update(ctx context.Context, collection, id string, payload Record) (Record, error)
}

type ListOptions struct {
	Filter Filter
	Sort   []Sort
	// Fields limita los campos devueltos. Vacío = todos.
	Fields []string
}
