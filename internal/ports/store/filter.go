package store

import "strings"

type Op string

const (
	OpEq       Op = "eq"
	OpEmpty    Op = "empty"     // "= NULL" en PocketBase: nulo o string vacío
	OpNotEmpty Op = "not_empty" // "!= NULL"
)

// Cond es un predicado simple sobre un campo.
type Cond struct {
	Field string
	Op    Op
	Value string // solo para OpEq
}

// Filter es una conjunción de condiciones. Vacío = sin filtro.
type Filter []Cond

func Eq(field, value string) Cond { return Cond{Field: field, Op: OpEq, Value: value} }
func Empty(field string) Cond     { return Cond{Field: field, Op: OpEmpty} }
func NotEmpty(field string) Cond  { return Cond{Field: field, Op: OpNotEmpty} }

// And agrega condiciones y devuelve un filtro nuevo.
func (f Filter) And(conds ...Cond) Filter {
	out := make(Filter, 0, len(f)+len(conds))
	out = append(out, f...)
	return append(out, conds...)
}

// Match evalúa el filtro contra un record ya decodificado.
// Lo usan los stores que no delegan el filtrado (memory).
func (f Filter) Match(r Record) bool {
	for _, c := range f {
		v := r.String(c.Field)
		switch c.Op {
		case OpEq:
			if v != c.Value {
				return false
			}
		case OpEmpty:
			if v != "" {
				return false
			}
		case OpNotEmpty:
			if v == "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

type Sort struct {
	Field string
	Desc  bool
}

// ParseSort interpreta la notación "-when,name".
func ParseSort(s string) []Sort {
	out := make([]Sort, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		part = strings.TrimLeft(part, "+-")
		out = append(out, Sort{Field: part, Desc: desc})
	}
	return out
}

func (s Sort) String() string {
	if s.Desc {
		return "-" + s.Field
	}
	return s.Field
}
