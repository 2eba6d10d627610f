package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"household-illness-tracker/internal/ports/store"

	"github.com/google/uuid"
)

// Store guarda los records como documentos JSON en una tabla única,
// con el mismo contrato que el store remoto.
type Store struct {
	db *sql.DB
	d  Dialect

	now func() time.Time
}

func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: d, now: time.Now}
}

// EnsureSchema crea la tabla si no existe.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.d.Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore(%s): ensure schema: %w", s.d.Name, err)
		}
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string, opts store.ListOptions) ([]store.Record, error) {
	// La vista se deriva de event.data; filtro y orden se aplican en memoria.
	if collection == store.CollectionWhatsThingsDetails {
		events, err := s.List(ctx, store.CollectionEvent, store.ListOptions{})
		if err != nil {
			return nil, err
		}
		return store.ApplyOptions(store.WhatsThingsDetails(events), opts), nil
	}

	q, args, err := s.d.listQuery(collection, opts)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]store.Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r.Project(opts.Fields))
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, store.ErrNotFound
	}
	if collection == store.CollectionWhatsThingsDetails {
		return nil, store.ErrNotFound
	}
	return s.get(ctx, s.db, collection, id)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) get(ctx context.Context, q queryer, collection, id string) (store.Record, error) {
	row := q.QueryRowContext(ctx,
		"SELECT id, data, created, updated FROM records WHERE collection = "+s.d.Placeholder(1)+" AND id = "+s.d.Placeholder(2),
		collection, id,
	)
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Store) Create(ctx context.Context, collection string, payload store.Record) (store.Record, error) {
	if collection == store.CollectionWhatsThingsDetails {
		return nil, store.ErrReadOnly
	}

	r, err := store.Encode(payload)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(r.ID())
	if id == "" {
		id = uuid.NewString()
	}
	now := s.stamp()

	data, err := marshalData(r)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO records (collection, id, data, created, updated) VALUES (%s, %s, %s, %s, %s)",
			s.d.Placeholder(1), s.d.Placeholder(2), s.d.Placeholder(3), s.d.Placeholder(4), s.d.Placeholder(5)),
		collection, id, data, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlstore(%s): insert %s: %w", s.d.Name, collection, err)
	}

	r[store.FieldID] = id
	r[store.FieldCreated] = now
	r[store.FieldUpdated] = now
	return r, nil
}

// Update aplica un merge de campos (PATCH) dentro de una transacción.
func (s *Store) Update(ctx context.Context, collection, id string, payload store.Record) (store.Record, error) {
	if collection == store.CollectionWhatsThingsDetails {
		return nil, store.ErrReadOnly
	}

	patch, err := store.Encode(payload)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	current, err := s.get(ctx, tx, collection, strings.TrimSpace(id))
	if err != nil {
		return nil, err
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

	data, err := marshalData(r)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		fmt.Sprintf("UPDATE records SET data = %s, updated = %s WHERE collection = %s AND id = %s",
			s.d.Placeholder(1), s.d.Placeholder(2), s.d.Placeholder(3), s.d.Placeholder(4)),
		data, r.String(store.FieldUpdated), collection, current.ID(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlstore(%s): update %s: %w", s.d.Name, collection, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) stamp() string {
	return s.now().UTC().Format("2006-01-02 15:04:05.000Z")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (store.Record, error) {
	var (
		id, created, updated string
		data                 []byte
	)
	if err := sc.Scan(&id, &data, &created, &updated); err != nil {
		return nil, err
	}

	r := store.Record{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("sqlstore: decode data of %s: %w", id, err)
		}
	}
	r[store.FieldID] = id
	r[store.FieldCreated] = created
	r[store.FieldUpdated] = updated
	return r, nil
}

// marshalData serializa el record sin los campos de sistema, que viven en columnas.
func marshalData(r store.Record) (string, error) {
	data := r.Clone()
	delete(data, store.FieldID)
	delete(data, store.FieldCreated)
	delete(data, store.FieldUpdated)

	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("sqlstore: encode data: %w", err)
	}
	return string(b), nil
}
