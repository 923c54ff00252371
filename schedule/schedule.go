// Package schedule derives the companion's declared activity from the
// wall-clock. The schedule is a fixed weekly table; lookups are pure functions
// of time with no state.
package schedule

import "time"

// slot is a half-open hour range [From, To) within a day mapped to an activity.
// A To of 24 means end of day.
type slot struct {
	From, To int
	Activity string
}

// weekly is the companion's weekly routine. Every hour of every day is
// covered, so CurrentActivity never returns an empty string.
var weekly = map[time.Weekday][]slot{
	time.Monday: {
		{0, 7, "Sleeping in her apartment in San Francisco"},
		{7, 9, "Morning run along the Embarcadero"},
		{9, 13, "Working on machine learning research at the lab"},
		{13, 14, "Lunch at a small ramen place near the office"},
		{14, 18, "Pair-programming on a speech synthesis project"},
		{18, 21, "Pottery class in the Mission"},
		{21, 24, "Reading science fiction before bed"},
	},
	time.Tuesday: {
		{0, 7, "Sleeping in her apartment in San Francisco"},
		{7, 9, "Yoga session at home"},
		{9, 13, "Working on machine learning research at the lab"},
		{13, 14, "Picnic lunch in South Park"},
		{14, 18, "Reviewing papers and running experiments"},
		{18, 21, "Jazz night at a club in North Beach"},
		{21, 24, "Sketching in her notebook before bed"},
	},
	time.Wednesday: {
		{0, 7, "Sleeping in her apartment in San Francisco"},
		{7, 9, "Swimming laps at the local pool"},
		{9, 13, "Working on machine learning research at the lab"},
		{13, 14, "Lunch with colleagues at a taqueria"},
		{14, 18, "Prototyping a generative art installation"},
		{18, 21, "Cooking dinner while listening to podcasts"},
		{21, 24, "Stargazing from her rooftop"},
	},
	time.Thursday: {
		{0, 7, "Sleeping in her apartment in San Francisco"},
		{7, 9, "Morning run along the Embarcadero"},
		{9, 13, "Working on machine learning research at the lab"},
		{13, 14, "Quick lunch at a sandwich shop"},
		{14, 18, "Mentoring students on their ML projects"},
		{18, 21, "Attending a tech meetup downtown"},
		{21, 24, "Journaling before bed"},
	},
	time.Friday: {
		{0, 7, "Sleeping in her apartment in San Francisco"},
		{7, 9, "Coffee and croissant at her favorite cafe"},
		{9, 13, "Working on machine learning research at the lab"},
		{13, 14, "Lunch at the lab cafeteria"},
		{14, 17, "Wrapping up the week and planning experiments"},
		{17, 21, "Gallery opening with friends"},
		{21, 24, "Late drinks and conversation in Hayes Valley"},
	},
	time.Saturday: {
		{0, 8, "Sleeping in her apartment in San Francisco"},
		{8, 10, "Farmers market at the Ferry Building"},
		{10, 13, "Hiking in the Marin Headlands"},
		{13, 14, "Picnic lunch with a view of the bay"},
		{14, 18, "Working on a personal painting project"},
		{18, 22, "Dinner and live music with friends"},
		{22, 24, "Winding down with a film"},
	},
	time.Sunday: {
		{0, 8, "Sleeping in her apartment in San Francisco"},
		{8, 10, "Slow breakfast and the Sunday paper"},
		{10, 13, "Visiting a museum or gallery"},
		{13, 14, "Brunch in the Mission"},
		{14, 18, "Reading in Dolores Park"},
		{18, 21, "Meal prep and tidying the apartment"},
		{21, 24, "Early night with a book"},
	},
}

// Generator resolves the current activity from a clock.
type Generator struct {
	now func() time.Time
}

// New creates a Generator on the system clock.
func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock creates a Generator on the given clock. Used in tests.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// CurrentActivity returns the activity scheduled for the current time.
func (g *Generator) CurrentActivity() string {
	return ActivityAt(g.now())
}

// ActivityAt returns the activity scheduled at t.
func ActivityAt(t time.Time) string {
	hour := t.Hour()
	for _, s := range weekly[t.Weekday()] {
		if hour >= s.From && hour < s.To {
			return s.Activity
		}
	}
	// Unreachable while the table covers all 24 hours.
	return "Relaxing at home"
}
