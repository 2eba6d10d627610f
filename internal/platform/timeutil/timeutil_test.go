package timeutil

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     string
	}{
		{"empty from", "", "2024-01-01T10:00:00Z", ""},
		{"empty to", "2024-01-01T10:00:00Z", "", ""},
		{"under a minute", "2024-01-01T10:00:00Z", "2024-01-01T10:00:59Z", ""},
		{"one minute", "2024-01-01T10:00:00Z", "2024-01-01T10:01:00Z", "1 minute"},
		{"one hour", "2024-01-01T10:00:00Z", "2024-01-01T11:00:00Z", "1 hour"},
		{"hours and minutes", "2024-01-01T10:00:00Z", "2024-01-01T12:05:00Z", "2 hours 5 minutes"},
		{"descending order is absolute", "2024-01-01T12:05:00Z", "2024-01-01T10:00:00Z", "2 hours 5 minutes"},
		{"pocketbase layout", "2024-01-01 10:00:00.000Z", "2024-01-02 11:30:00.000Z", "25 hours 30 minutes"},
		{"garbage", "yesterday", "2024-01-01T10:00:00Z", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.from, tt.to))
		})
	}
}

func TestHumanizeMinutes_MatchesExactDifference(t *testing.T) {
	for _, mins := range []int{1, 59, 60, 61, 119, 120, 1439, 3001} {
		got := HumanizeMinutes(time.Duration(mins)*time.Minute + 30*time.Second)
		assert.Equal(t, mins, parseHumanized(t, got), "got %q", got)
	}
}

// parseHumanized invierte HumanizeMinutes para comparar contra la diferencia exacta.
func parseHumanized(t *testing.T, s string) int {
	t.Helper()
	fields := strings.Fields(s)
	require.Equal(t, 0, len(fields)%2, "unexpected format %q", s)

	total := 0
	for i := 0; i < len(fields); i += 2 {
		n, err := strconv.Atoi(fields[i])
		require.NoError(t, err)
		require.Positive(t, n, "zero components must be omitted")
		switch strings.TrimSuffix(fields[i+1], "s") {
		case "hour":
			total += n * 60
		case "minute":
			total += n
		default:
			t.Fatalf("unexpected unit in %q", s)
		}
		if n == 1 {
			assert.False(t, strings.HasSuffix(fields[i+1], "s"), "singular expected in %q", s)
		}
	}
	return total
}

func TestPrettyFormats(t *testing.T) {
	ts := time.Date(2024, time.March, 22, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "March 22nd, 2024", PrettyDate(ts))
	assert.Equal(t, "3:04pm", PrettyTime(ts))
	assert.Equal(t, "Friday, March 22nd", PrettyShortDate(ts))

	assert.Equal(t, "", PrettyDate(time.Time{}))
	assert.Equal(t, "11th", ordinal(11))
	assert.Equal(t, "101st", ordinal(101))
	assert.Equal(t, "113th", ordinal(113))
	assert.Equal(t, "3rd", ordinal(3))
}

func TestCombineIntoUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	day := time.Date(2024, time.January, 1, 0, 0, 0, 0, loc)

	got, err := CombineIntoUTC(day, "22:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 2, 3, 30, 0, 0, time.UTC), got)

	_, err = CombineIntoUTC(day, "25:00", loc)
	assert.ErrorIs(t, err, ErrInvalidClock)
	_, err = CombineIntoUTC(day, "noon", loc)
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestRoundTrip_AnyZone(t *testing.T) {
	stored := "2024-01-03T09:00:00Z"
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("plus14", 14*3600),
		time.FixedZone("minus12", -12*3600),
		time.FixedZone("plus0530", 5*3600+30*60),
	}
	for _, loc := range zones {
		local, ok := UTCToLocal(stored, loc)
		require.True(t, ok)
		assert.Equal(t, loc, local.Location())
		assert.Equal(t, stored, FormatStoreTime(local), "zone %s", loc)

		back, err := CombineIntoUTC(local, local.Format("15:04"), loc)
		require.NoError(t, err)
		assert.Equal(t, stored, FormatStoreTime(back), "zone %s", loc)
	}
}

func TestUTCToLocal_Empty(t *testing.T) {
	_, ok := UTCToLocal("", time.UTC)
	assert.False(t, ok)
}
