package persons

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"household-illness-tracker/internal/ports/store"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Persons []Person `yaml:"persons"`
}

// LoadSeedFile lee un YAML de la forma:
//
//	persons:
//	  - id: ana
//	    name: Ana
func LoadSeedFile(path string) ([]Person, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return f.Persons, nil
}

// Seed crea las personas que todavía no existen (por id). Devuelve cuántas creó.
// Escribe directo al store: corre antes de que haya observers.
func Seed(ctx context.Context, st store.Store, people []Person) (int, error) {
	created := 0
	for _, p := range people {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" || strings.TrimSpace(p.Name) == "" {
			return created, fmt.Errorf("seed person %q: id and name are required", p.Name)
		}

		_, err := st.Get(ctx, store.CollectionPerson, p.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return created, err
		}

		if _, err := st.Create(ctx, store.CollectionPerson, store.Record{
			store.FieldID: p.ID,
			"name":        strings.TrimSpace(p.Name),
			"photo":       strings.TrimSpace(p.Photo),
		}); err != nil {
			return created, fmt.Errorf("seed person %s: %w", p.ID, err)
		}
		created++
	}
	return created, nil
}
