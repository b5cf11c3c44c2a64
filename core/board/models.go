package board

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/clubboard/core"
)

type Status string

// Statuses
const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusDone}

func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

type Impact string

// Impact levels
const (
	ImpactLow      Impact = "Low"
	ImpactMedium   Impact = "Medium"
	ImpactHigh     Impact = "High"
	ImpactCritical Impact = "Critical"
)

var Impacts = []Impact{ImpactLow, ImpactMedium, ImpactHigh, ImpactCritical}

func (i Impact) Valid() bool {
	for _, imp := range Impacts {
		if i == imp {
			return true
		}
	}
	return false
}

// Meta holds the board settings.
// AdminPasscode is compared in plaintext to toggle the admin view; it is not a security boundary.
type Meta struct {
	ClubName      string    `json:"clubName"`
	EventName     string    `json:"eventName"`
	AdminPasscode string    `json:"adminPasscode"`
	WeekZero      time.Time `json:"academicWeekZeroISO"`
}

type Student struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email null.String `json:"email"`
	Team  null.String `json:"team"`
}

type Objective struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Details   string    `json:"details"`
	WeekIndex int       `json:"weekIndex"`
	DueDate   time.Time `json:"dueDate"`
}

type Extra struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Desc     string `json:"desc"`
	Impact   Impact `json:"impact"`
	Verified bool   `json:"verified"`
}

type Submission struct {
	ID          string  `json:"id"`
	StudentID   string  `json:"studentId"`
	ObjectiveID string  `json:"objectiveId"`
	Status      Status  `json:"status"`
	Notes       string  `json:"notes"`
	EvidenceURL string  `json:"evidenceUrl"`
	Extras      []Extra `json:"extra"`
}

func (sub Submission) VerifiedExtras() int {
	var n int
	for _, e := range sub.Extras {
		if e.Verified {
			n++
		}
	}
	return n
}

// Document is the whole board state; it is always persisted in one piece.
type Document struct {
	Meta        Meta         `json:"meta"`
	Students    []Student    `json:"students"`
	Objectives  []Objective  `json:"objectives"`
	Submissions []Submission `json:"submissions"`
}

// clone deep copies doc so that transitions never touch a document readers may hold.
func (doc Document) clone() Document {
	next := Document{
		Meta:        doc.Meta,
		Students:    append(make([]Student, 0, len(doc.Students)), doc.Students...),
		Objectives:  append(make([]Objective, 0, len(doc.Objectives)), doc.Objectives...),
		Submissions: make([]Submission, 0, len(doc.Submissions)),
	}
	for _, sub := range doc.Submissions {
		sub.Extras = append(make([]Extra, 0, len(sub.Extras)), sub.Extras...)
		next.Submissions = append(next.Submissions, sub)
	}
	return next
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email"`
	Team  string `json:"team"`
}

func (ns *NewStudent) clean() {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email)
	ns.Team = core.CleanString(ns.Team)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// nil fields are left untouched.
type UpdateStudent struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Team  *string `json:"team"`
}

func (us *UpdateStudent) clean() {
	cleanPtr(us.Name)
	cleanPtr(us.Email)
	cleanPtr(us.Team)
	// an emptied name keeps the current one
	if us.Name != nil && *us.Name == "" {
		us.Name = nil
	}
}

// NewObjective contains information needed to create a new Objective.
// WeekIndex defaults to the current week.
type NewObjective struct {
	Title     string    `json:"title" validate:"required"`
	Details   string    `json:"details"`
	WeekIndex *int      `json:"weekIndex"`
	DueDate   time.Time `json:"dueDate"`
}

func (no *NewObjective) clean() {
	no.Title = core.CleanString(no.Title)
	no.Details = core.CleanString(no.Details)
}

// UpdateObjective defines what information may be provided to modify an existing Objective.
type UpdateObjective struct {
	Title     *string    `json:"title"`
	Details   *string    `json:"details"`
	WeekIndex *int       `json:"weekIndex"`
	DueDate   *time.Time `json:"dueDate"`
}

func (uo *UpdateObjective) clean() {
	cleanPtr(uo.Title)
	cleanPtr(uo.Details)
	if uo.Title != nil && *uo.Title == "" {
		uo.Title = nil
	}
}

// NewExtra contains information needed to log an extra contribution; Impact defaults to Low.
type NewExtra struct {
	Title  string `json:"title" validate:"required"`
	Desc   string `json:"desc"`
	Impact Impact `json:"impact" validate:"omitempty,impact"`
}

func (ne *NewExtra) clean() {
	ne.Title = core.CleanString(ne.Title)
	ne.Desc = core.CleanString(ne.Desc)
	if ne.Impact == "" {
		ne.Impact = ImpactLow
	}
}

// UpdateMeta holds the settings that may change; nil fields are left untouched.
type UpdateMeta struct {
	ClubName      *string    `json:"clubName"`
	EventName     *string    `json:"eventName"`
	AdminPasscode *string    `json:"adminPasscode"`
	WeekZero      *time.Time `json:"academicWeekZeroISO"`
}

type statusUpdate struct {
	Status Status `json:"status" validate:"required,status"`
}

func cleanPtr(s *string) {
	if s != nil {
		*s = core.CleanString(*s)
	}
}
