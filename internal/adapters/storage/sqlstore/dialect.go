package sqlstore

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"household-illness-tracker/internal/ports/store"
)

// ErrInvalidField se devuelve cuando un nombre de campo no es un identificador simple.
var ErrInvalidField = errors.New("sqlstore: invalid field name")

var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Dialect agrupa lo que cambia entre motores: placeholders, acceso a JSON y DDL.
type Dialect struct {
	Name string
	// Placeholder devuelve el marcador del argumento n (1-based).
	Placeholder func(n int) string
	// JSONText devuelve la expresión que extrae un campo de data como texto.
	JSONText func(field string) string
	Schema   []string
}

var Postgres = Dialect{
	Name:        "postgres",
	Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	JSONText:    func(field string) string { return "data->>'" + field + "'" },
	Schema: []string{`
		CREATE TABLE IF NOT EXISTS records (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			data       JSONB NOT NULL DEFAULT '{}'::jsonb,
			created    TEXT NOT NULL,
			updated    TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		)`,
	},
}

var SQLite = Dialect{
	Name:        "sqlite",
	Placeholder: func(int) string { return "?" },
	JSONText:    func(field string) string { return "json_extract(data, '$." + field + "')" },
	Schema: []string{`
		CREATE TABLE IF NOT EXISTS records (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			data       TEXT NOT NULL DEFAULT '{}',
			created    TEXT NOT NULL,
			updated    TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		)`,
	},
}

// column resuelve un campo a su expresión SQL: columnas de sistema o JSON.
func (d Dialect) column(field string) (string, error) {
	if !fieldName.MatchString(field) {
		return "", fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	switch field {
	case store.FieldID, store.FieldCreated, store.FieldUpdated:
		return field, nil
	}
	return d.JSONText(field), nil
}

// listQuery arma el SELECT de una colección con filtro y orden.
// La proyección de campos se aplica al decodificar.
func (d Dialect) listQuery(collection string, opts store.ListOptions) (string, []any, error) {
	sb := strings.Builder{}
	sb.WriteString("SELECT id, data, created, updated FROM records WHERE collection = " + d.Placeholder(1))

	args := []any{collection}
	argN := 2

	for _, c := range opts.Filter {
		col, err := d.column(c.Field)
		if err != nil {
			return "", nil, err
		}
		switch c.Op {
		case store.OpEq:
			sb.WriteString(fmt.Sprintf(" AND %s = %s", col, d.Placeholder(argN)))
			args = append(args, c.Value)
			argN++
		case store.OpEmpty:
			sb.WriteString(fmt.Sprintf(" AND COALESCE(%s, '') = ''", col))
		case store.OpNotEmpty:
			sb.WriteString(fmt.Sprintf(" AND COALESCE(%s, '') <> ''", col))
		default:
			return "", nil, fmt.Errorf("sqlstore: unsupported filter op %q", c.Op)
		}
	}

	order := make([]string, 0, len(opts.Sort)+2)
	for _, s := range opts.Sort {
		col, err := d.column(s.Field)
		if err != nil {
			return "", nil, err
		}
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		order = append(order, fmt.Sprintf("COALESCE(%s, '') %s", col, dir))
	}
	order = append(order, "created ASC", "id ASC")
	sb.WriteString(" ORDER BY " + strings.Join(order, ", "))

	return sb.String(), args, nil
}
