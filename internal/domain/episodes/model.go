package episodes

import "strings"

// Episode es un período de enfermedad de una persona.
// Activo mientras End esté vacío.
type Episode struct {
	ID       string `json:"id"`
	Person   string `json:"person"`
	Name     string `json:"name"`
	Sickness string `json:"sickness"`
	Start    string `json:"start"` // ISO-8601 UTC
	End      string `json:"end"`   // vacío = sigue activo
	Note     string `json:"note"`

	Created string `json:"created,omitempty"`
	Updated string `json:"updated,omitempty"`
}

func (e Episode) Active() bool { return strings.TrimSpace(e.End) == "" }
