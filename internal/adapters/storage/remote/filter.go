package remote

import (
	"strings"

	"household-illness-tracker/internal/ports/store"
)

// renderFilter traduce el filtro al lenguaje de PocketBase.
// Los valores van entre comillas simples escapadas, igual que el binding de pb.filter.
func renderFilter(f store.Filter) string {
	parts := make([]string, 0, len(f))
	for _, c := range f {
		switch c.Op {
		case store.OpEq:
			parts = append(parts, c.Field+" = "+quote(c.Value))
		case store.OpEmpty:
			parts = append(parts, c.Field+" = NULL")
		case store.OpNotEmpty:
			parts = append(parts, c.Field+" != NULL")
		}
	}
	return strings.Join(parts, " && ")
}

func quote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func renderSort(s []store.Sort) string {
	parts := make([]string, 0, len(s))
	for _, srt := range s {
		parts = append(parts, srt.String())
	}
	return strings.Join(parts, ",")
}
