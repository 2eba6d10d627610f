package store

import "sort"

// ApplyOptions evalúa filtro, orden y proyección en memoria.
// El orden es estable: a igualdad de claves se conserva el orden de entrada.
func ApplyOptions(records []Record, opts ListOptions) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if opts.Filter.Match(r) {
			out = append(out, r)
		}
	}

	if len(opts.Sort) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, srt := range opts.Sort {
				a, b := out[i].String(srt.Field), out[j].String(srt.Field)
				if a == b {
					continue
				}
				if srt.Desc {
					return a > b
				}
				return a < b
			}
			return false
		})
	}

	for i := range out {
		out[i] = out[i].Project(opts.Fields)
	}
	return out
}
