package store

import (
	"encoding/json"
	"fmt"
)

// Record es la representación genérica de un registro del store.
type Record map[string]any

func (r Record) ID() string { return r.String(FieldID) }

// String devuelve el campo como texto; nil o ausente = "".
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Clone copia superficial (suficiente: los stores reemplazan valores, no los mutan).
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Project devuelve solo los campos pedidos.
func (r Record) Project(fields []string) Record {
	if len(fields) == 0 {
		return r.Clone()
	}
	out := make(Record, len(fields))
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

// Encode convierte un struct con tags json en Record.
func Encode(v any) (Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("store: encode record: %w", err)
	}
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("store: encode record: %w", err)
	}
	if r == nil {
		r = Record{}
	}
	return r, nil
}

// Decode convierte un Record en T.
func Decode[T any](r Record) (T, error) {
	var out T
	b, err := json.Marshal(r)
	if err != nil {
		return out, fmt.Errorf("store: decode record: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("store: decode record: %w", err)
	}
	return out, nil
}

func DecodeAll[T any](records []Record) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, r := range records {
		v, err := Decode[T](r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
