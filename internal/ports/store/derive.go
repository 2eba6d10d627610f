package store

import "strconv"

// WhatsThingsDetails deriva la vista (what, thing, detail) desde event.data.
// La usan los stores que no tienen la colección view materializada.
func WhatsThingsDetails(events []Record) []Record {
	out := make([]Record, 0)
	for _, ev := range events {
		what := ev.String("what")
		pairs, _ := ev["data"].([]any)
		for i, p := range pairs {
			pair, ok := p.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, Record{
				FieldID:  ev.ID() + "-" + strconv.Itoa(i),
				"what":   what,
				"thing":  Record(pair).String("thing"),
				"detail": Record(pair).String("detail"),
			})
		}
	}
	return out
}
