package biztime

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The business location is process-global, so pin it once for every test
// in this package. America/New_York observes DST, which is exactly the
// terrain where day counting goes wrong.
func TestMain(m *testing.M) {
	MustInit("America/New_York")
	os.Exit(m.Run())
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestStartOfDay(t *testing.T) {
	// Local midnight on Mar 8 is still EST (UTC-5); by Mar 9 the clocks
	// have sprung forward to EDT (UTC-4).
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"before spring forward", "2026-03-08T14:00:00Z", "2026-03-08T05:00:00Z"},
		{"after spring forward", "2026-03-09T14:00:00Z", "2026-03-09T04:00:00Z"},
		{"late evening local stays same date", "2026-03-10T03:30:00Z", "2026-03-09T04:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfDay(mustParse(t, tt.in))
			assert.Equal(t, mustParse(t, tt.want), got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		name string
		from string
		now  string
		want int
	}{
		{"same day", "2026-06-01T13:00:00Z", "2026-06-01T21:00:00Z", 0},
		{"one calendar day", "2026-06-01T23:00:00Z", "2026-06-02T12:00:00Z", 1},
		{"across spring forward", "2026-03-07T15:00:00Z", "2026-03-09T14:00:00Z", 2},
		{"across fall back", "2026-10-31T15:00:00Z", "2026-11-02T15:00:00Z", 2},
		{"now before t", "2026-06-02T12:00:00Z", "2026-06-01T12:00:00Z", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysSince(mustParse(t, tt.from), mustParse(t, tt.now))
			assert.Equal(t, tt.want, got)
		})
	}
}

// Two local midnights separated by the spring-forward transition are only
// 23 hours apart on the wall clock, yet they are still one calendar day.
func TestDaysSinceCountsCalendarDaysNotElapsedHours(t *testing.T) {
	from := mustParse(t, "2026-03-08T05:00:00Z") // Mar 8 00:00 EST
	now := mustParse(t, "2026-03-09T04:00:00Z")  // Mar 9 00:00 EDT
	require.Equal(t, 23*time.Hour, now.Sub(from))
	assert.Equal(t, 1, DaysSince(from, now))
}
