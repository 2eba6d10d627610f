package episodes

import "strings"

// Status filtra la lista de episodios.
// @Enum active, past, all
type Status string

const (
	StatusActive Status = "active"
	StatusPast   Status = "past"
	StatusAll    Status = "all"
)

// ParseStatus normaliza el valor de query string. Vacío o desconocido = def.
func ParseStatus(s string, def Status) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive
	case StatusPast:
		return StatusPast
	case StatusAll:
		return StatusAll
	}
	return def
}

type ListFilter struct {
	PersonID string
	Status   Status
}
