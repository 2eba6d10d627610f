package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"household-illness-tracker/internal/ports/store"

	"github.com/google/uuid"
)

// Store es un record store en memoria con la misma semántica que el remoto.
// Sirve para modo dev y tests.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]store.Record // collection -> id -> record
	seq  map[string]int64                   // orden de inserción, desempata sorts

	now func() time.Time
}

func New() *Store {
	return &Store{
		data: make(map[string]map[string]store.Record),
		seq:  make(map[string]int64),
		now:  time.Now,
	}
}

func (s *Store) List(ctx context.Context, collection string, opts store.ListOptions) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var source []store.Record
	if collection == store.CollectionWhatsThingsDetails {
		source = store.WhatsThingsDetails(s.sortedLocked(store.CollectionEvent))
	} else {
		source = s.sortedLocked(collection)
	}

	return store.ApplyOptions(source, opts), nil
}

// sortedLocked devuelve los records en orden de inserción.
func (s *Store) sortedLocked(collection string) []store.Record {
	byID := s.data[collection]
	out := make([]store.Record, 0, len(byID))
	for _, r := range byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.seq[collection+"/"+out[i].ID()] < s.seq[collection+"/"+out[j].ID()]
	})
	return out
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.data[collection][strings.TrimSpace(id)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return r.Clone(), nil
}

func (s *Store) Create(ctx context.Context, collection string, payload store.Record) (store.Record, error) {
	if collection == store.CollectionWhatsThingsDetails {
		return nil, store.ErrReadOnly
	}

	// Round-trip JSON: copia profunda y tipos iguales a los que devolvería el store remoto.
	r, err := store.Encode(payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(r.ID())
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := s.data[collection][id]; exists {
		return nil, errors.New("memory: record already exists")
	}

	now := s.stamp()
	r[store.FieldID] = id
	r[store.FieldCreated] = now
	r[store.FieldUpdated] = now

	if s.data[collection] == nil {
		s.data[collection] = make(map[string]store.Record)
	}
	s.data[collection][id] = r
	s.seq[collection+"/"+id] = int64(len(s.seq)) + 1
	return r.Clone(), nil
}

// Update aplica un merge de campos (PATCH): lo que no viene no se toca.
func (s *Store) Update(ctx context.Context, collection, id string, payload store.Record) (store.Record, error) {
	if collection == store.CollectionWhatsThingsDetails {
		return nil, store.ErrReadOnly
	}

	patch, err := store.Encode(payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.data[collection][strings.TrimSpace(id)]
	if !ok {
		return nil, store.ErrNotFound
	}

	r := current.Clone()
	for k, v := range patch {
		switch k {
		case store.FieldID, store.FieldCreated, store.FieldUpdated:
			continue
		}
		r[k] = v
	}
	r[store.FieldUpdated] = s.stamp()

	s.data[collection][current.ID()] = r
	return r.Clone(), nil
}

func (s *Store) stamp() string {
	return s.now().UTC().Format("2006-01-02 15:04:05.000Z")
}
