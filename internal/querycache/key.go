package querycache

import (
	"encoding/json"
	"strings"
)

// Key identifica una query por sus parámetros semánticos, p.ej. ["events", episodeID, what].
// La invalidación trabaja por prefijo de segmentos.
type Key []string

func NewKey(segments ...string) Key { return Key(segments) }

// String es la identidad en el cache. JSON evita ambigüedad con segmentos vacíos.
func (k Key) String() string {
	b, _ := json.Marshal([]string(k))
	return string(b)
}

func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	return k[:len(prefix)].Equal(prefix)
}

func (k Key) match(prefix Key, exact bool) bool {
	if exact {
		return k.Equal(prefix)
	}
	return k.HasPrefix(prefix)
}

func parseKey(s string) Key {
	var k []string
	if err := json.Unmarshal([]byte(s), &k); err != nil {
		return Key{strings.TrimSpace(s)}
	}
	return Key(k)
}
