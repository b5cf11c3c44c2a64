package board

import (
	"crypto/subtle"
	"math"
	"sort"
	"strings"
)

type Completion struct {
	Done  int `json:"done"`
	Total int `json:"total"`
	Pct   int `json:"pct"`
}

// CompletionForStudent counts the objectives the student marked done.
func CompletionForStudent(doc Document, studentID string) Completion {
	c := Completion{Total: len(doc.Objectives)}
	for _, obj := range doc.Objectives {
		if doc.StatusOf(studentID, obj.ID) == StatusDone {
			c.Done++
		}
	}
	if c.Total > 0 {
		c.Pct = int(math.Round(float64(c.Done) * 100 / float64(c.Total)))
	}
	return c
}

// ObjectivesByWeek buckets objectives by WeekIndex, keeping their relative order.
func ObjectivesByWeek(objectives []Objective) map[int][]Objective {
	m := make(map[int][]Objective)
	for _, obj := range objectives {
		m[obj.WeekIndex] = append(m[obj.WeekIndex], obj)
	}
	return m
}

type WeekBucket struct {
	Week       int         `json:"week"`
	Objectives []Objective `json:"objectives"`
}

// WeekBuckets is ObjectivesByWeek sorted ascending by week.
func WeekBuckets(objectives []Objective) []WeekBucket {
	m := ObjectivesByWeek(objectives)
	weeks := make([]int, 0, len(m))
	for w := range m {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	buckets := make([]WeekBucket, 0, len(weeks))
	for _, w := range weeks {
		buckets = append(buckets, WeekBucket{Week: w, Objectives: m[w]})
	}
	return buckets
}

// FilterStudents does a case-insensitive match of query on name, email and team.
func FilterStudents(students []Student, query string) []Student {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return students
	}
	matches := make([]Student, 0, len(students))
	for _, s := range students {
		if strings.Contains(searchText(s), q) {
			matches = append(matches, s)
		}
	}
	return matches
}

func searchText(s Student) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Name, s.Email.String, s.Team.String} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

type OverviewRow struct {
	Student
	Completion
}

// Overview lists every student with their completion, best first.
func Overview(doc Document) []OverviewRow {
	rows := make([]OverviewRow, 0, len(doc.Students))
	for _, s := range doc.Students {
		rows = append(rows, OverviewRow{Student: s, Completion: CompletionForStudent(doc, s.ID)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Pct > rows[j].Pct })
	return rows
}

type Task struct {
	Objective  Objective   `json:"objective"`
	Status     Status      `json:"status"`
	Submission *Submission `json:"submission"`
}

// StudentTasks lists the objectives by week with the student's progress on each.
func StudentTasks(doc Document, studentID string) []Task {
	objs := append(make([]Objective, 0, len(doc.Objectives)), doc.Objectives...)
	sort.SliceStable(objs, func(i, j int) bool { return objs[i].WeekIndex < objs[j].WeekIndex })

	tasks := make([]Task, 0, len(objs))
	for _, obj := range objs {
		task := Task{Objective: obj, Status: doc.StatusOf(studentID, obj.ID)}
		if sub, ok := doc.GetSubmission(studentID, obj.ID); ok {
			task.Submission = &sub
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// CheckPasscode compares the entered secret to the stored plaintext passcode.
// It only toggles the admin view of the UI.
func CheckPasscode(meta Meta, entered string) bool {
	return subtle.ConstantTimeCompare([]byte(entered), []byte(meta.AdminPasscode)) == 1
}
