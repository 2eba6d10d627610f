package persons

// Person es un miembro del hogar. Se administran fuera de la app (o con seed).
type Person struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Photo string `json:"photo,omitempty" yaml:"photo"`

	Created string `json:"created,omitempty" yaml:"-"`
	Updated string `json:"updated,omitempty" yaml:"-"`
}
