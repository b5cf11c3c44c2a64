package board

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/clubboard/core"
)

const day = 24 * time.Hour

// DefaultDocument seeds a board with demo students and objectives; week zero is the Monday of now's week.
func DefaultDocument(now time.Time, conf core.BoardConfig, newID func() string) Document {
	student := func(name, email, team string) Student {
		return Student{ID: newID(), Name: name, Email: null.StringFrom(email), Team: null.StringFrom(team)}
	}
	objective := func(title, details string, week int, due time.Time) Objective {
		return Objective{ID: newID(), Title: title, Details: details, WeekIndex: week, DueDate: due}
	}

	return Document{
		Meta: Meta{
			ClubName:      conf.ClubName,
			EventName:     conf.EventName,
			AdminPasscode: conf.AdminPasscode,
			WeekZero:      StartOfWeek(now),
		},
		Students: []Student{
			student("A. Perera", "aperera@sttoms.edu", "Logistics"),
			student("B. Silva", "bsilva@sttoms.edu", "Sponsorships"),
			student("C. Fernando", "cfernando@sttoms.edu", "Media"),
		},
		Objectives: []Objective{
			objective("Confirm venue & route permissions (2 km)", "Obtain approval; sketch 1 km up/1 km down route.", 0, now),
			objective("Water & first-aid coordination", "Quotations, assign water points and first-aid volunteers.", 0, now.Add(3*day)),
			objective("Sponsorship letter & outreach", "Draft letter, list 20 sponsors, begin outreach.", 1, now.Add(7*day)),
		},
		Submissions: []Submission{},
	}
}

// optional maps an empty string to a missing value.
func optional(s string) null.String {
	return null.NewString(s, s != "")
}
