// Package timeutil convierte entre los timestamps UTC que guarda el store
// y lo que se muestra en la zona horaria de quien mira.
package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// storeLayouts son los formatos que pueden venir del store.
// PocketBase usa espacio en vez de "T".
var storeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
}

var ErrInvalidClock = errors.New("time must be HH:MM")

// Parse interpreta un timestamp del store. "" devuelve zero time sin error.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range storeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("timeutil: parse %q: %w", s, lastErr)
}

// FormatStoreTime es el formato de escritura: siempre UTC.
func FormatStoreTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// CombineIntoUTC toma el día calendario de date (en loc) y la hora "HH:MM"
// y devuelve el instante en UTC, con segundos en cero.
func CombineIntoUTC(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	h, m, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	d := date.In(loc)
	local := time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc)
	return local.UTC(), nil
}

func parseClock(clock string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidClock
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, ErrInvalidClock
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, ErrInvalidClock
	}
	return h, m, nil
}

// UTCToLocal parsea un timestamp del store y lo pasa a loc.
// ok=false si viene vacío o no se puede parsear.
func UTCToLocal(s string, loc *time.Location) (time.Time, bool) {
	t, err := Parse(s)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc), true
}

// PrettyDate: "January 2nd, 2006".
func PrettyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %s, %d", t.Month(), ordinal(t.Day()), t.Year())
}

// PrettyTime: "3:04pm".
func PrettyTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("3:04pm")
}

// PrettyShortDate: "Monday, January 2nd".
func PrettyShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s, %s %s", t.Weekday(), t.Month(), ordinal(t.Day()))
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// FormatDuration devuelve la distancia absoluta entre dos timestamps del store
// en minutos enteros: "2 hours 5 minutes", "1 hour", "1 minute".
// Vacío si falta alguno de los dos o la distancia es menor a un minuto.
func FormatDuration(from, to string) string {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return ""
	}
	f, err := Parse(from)
	if err != nil {
		return ""
	}
	t, err := Parse(to)
	if err != nil {
		return ""
	}
	return HumanizeMinutes(t.Sub(f))
}

// HumanizeMinutes formatea |d| truncado a minutos.
func HumanizeMinutes(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	minutes := int64(d / time.Minute)
	hours := minutes / 60
	rest := minutes % 60

	parts := make([]string, 0, 2)
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if rest > 0 {
		parts = append(parts, plural(rest, "minute"))
	}
	return strings.Join(parts, " ")
}

func plural(n int64, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}
