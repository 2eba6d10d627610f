package events

// DataPair es un dato libre de un evento, p.ej. thing="Temperatura", detail="38.5".
type DataPair struct {
	Thing  string `json:"thing"`
	Detail string `json:"detail"`
}

// Event es una observación dentro de un episodio.
type Event struct {
	ID         string     `json:"id"`
	Episode    string     `json:"episode"`
	What       string     `json:"what"`
	When       string     `json:"when"` // ISO-8601 UTC
	Where      string     `json:"where"`
	Data       []DataPair `json:"data"`
	Note       string     `json:"note"`
	RecordedBy string     `json:"recordedBy"`

	Created string `json:"created,omitempty"`
	Updated string `json:"updated,omitempty"`
}

// Suggestions alimenta el autocompletado del formulario de eventos.
type Suggestions struct {
	What           []string                       `json:"what"`
	ThingsByWhat   map[string][]string            `json:"thingsByWhat"`
	DetailsByThing map[string]map[string][]string `json:"detailsByThing"`
	Where          []string                       `json:"where"`
}

type ListFilter struct {
	EpisodeID string
	What      string // vacío = todos
}
