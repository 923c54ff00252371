package schedule_test

import (
	"testing"
	"time"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/schedule"
)

func TestActivityAtKnownTimes(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{
			"monday morning run",
			time.Date(2026, time.August, 24, 8, 15, 0, 0, time.UTC), // Monday
			"Morning run along the Embarcadero",
		},
		{
			"tuesday jazz night",
			time.Date(2026, time.August, 25, 19, 0, 0, 0, time.UTC), // Tuesday
			"Jazz night at a club in North Beach",
		},
		{
			"sunday midnight sleep",
			time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC), // Sunday
			"Sleeping in her apartment in San Francisco",
		},
		{
			"saturday market",
			time.Date(2026, time.August, 29, 9, 30, 0, 0, time.UTC), // Saturday
			"Farmers market at the Ferry Building",
		},
	}
	for _, tc := range cases {
		if got := schedule.ActivityAt(tc.at); got != tc.want {
			t.Errorf("%s: ActivityAt = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestEveryHourIsCovered(t *testing.T) {
	// Walk a full week hour by hour; no gap may return an empty activity.
	start := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24*7; h++ {
		at := start.Add(time.Duration(h) * time.Hour)
		if schedule.ActivityAt(at) == "" {
			t.Fatalf("no activity scheduled at %s", at)
		}
	}
}

func TestActivityIsPureFunctionOfTime(t *testing.T) {
	at := time.Date(2026, time.August, 26, 14, 0, 0, 0, time.UTC)
	first := schedule.ActivityAt(at)
	second := schedule.ActivityAt(at)
	if first != second {
		t.Errorf("same instant produced %q then %q", first, second)
	}
}

func TestGeneratorUsesClock(t *testing.T) {
	fixed := time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC) // Monday
	g := schedule.NewWithClock(func() time.Time { return fixed })

	want := "Working on machine learning research at the lab"
	if got := g.CurrentActivity(); got != want {
		t.Errorf("CurrentActivity = %q, want %q", got, want)
	}
}
