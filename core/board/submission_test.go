package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func testDocument() Document {
	return Document{
		Meta: Meta{ClubName: "Club", EventName: "Run", AdminPasscode: "pass", WeekZero: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		Students: []Student{
			{ID: "A", Name: "Ann", Email: null.StringFrom("ann@club.org"), Team: null.StringFrom("Media")},
			{ID: "B", Name: "Ben"},
		},
		Objectives: []Objective{
			{ID: "O1", Title: "Permit", WeekIndex: 0, DueDate: time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)},
			{ID: "O2", Title: "Water", WeekIndex: 1, DueDate: time.Date(2024, time.January, 12, 12, 0, 0, 0, time.UTC)},
		},
		Submissions: []Submission{},
	}
}

func TestUpsertSubmission(t *testing.T) {
	doc := testDocument()
	first := newSubmission("s1", "A", "O1")

	doc = upsertSubmission(doc, first)
	require.Len(t, doc.Submissions, 1)

	t.Run("same pair replaces", func(t *testing.T) {
		other := newSubmission("s2", "A", "O1")
		other.Status = StatusDone
		next := upsertSubmission(doc, other)
		require.Len(t, next.Submissions, 1)
		assert.Equal(t, StatusDone, next.Submissions[0].Status)
		assert.Equal(t, StatusInProgress, doc.Submissions[0].Status, "previous document is untouched")
	})

	t.Run("same id replaces", func(t *testing.T) {
		moved := first
		moved.Notes = "moved"
		next := upsertSubmission(doc, moved)
		require.Len(t, next.Submissions, 1)
		assert.Equal(t, "moved", next.Submissions[0].Notes)
	})

	t.Run("new pair appends", func(t *testing.T) {
		next := upsertSubmission(doc, newSubmission("s3", "B", "O1"))
		assert.Len(t, next.Submissions, 2)
	})

	t.Run("repeated id: pair wins", func(t *testing.T) {
		dup := testDocument()
		dup.Submissions = []Submission{newSubmission("dup", "A", "O1"), newSubmission("dup", "B", "O1")}

		next, got := setNotes(dup, "s9", "B", "O1", "ben's notes")
		assert.Equal(t, "dup", got.ID)
		require.Len(t, next.Submissions, 2)
		assert.Equal(t, "A", next.Submissions[0].StudentID)
		assert.Empty(t, next.Submissions[0].Notes)
		assert.Equal(t, "B", next.Submissions[1].StudentID)
		assert.Equal(t, "ben's notes", next.Submissions[1].Notes)
	})
}

func TestPatchSubmission_keepsOtherFields(t *testing.T) {
	doc := testDocument()
	doc, _ = markStatus(doc, "s1", "A", "O1", StatusDone)
	doc, _ = setNotes(doc, "s2", "A", "O1", "called the council")
	doc, _ = setEvidenceURL(doc, "s3", "A", "O1", "https://example.org/permit")
	doc, _ = addExtra(doc, "s4", "A", "O1", Extra{ID: "e1", Title: "Bake sale", Impact: ImpactHigh})

	require.Len(t, doc.Submissions, 1)
	sub := doc.Submissions[0]
	assert.Equal(t, "s1", sub.ID)
	assert.Equal(t, StatusDone, sub.Status)
	assert.Equal(t, "called the council", sub.Notes)
	assert.Equal(t, "https://example.org/permit", sub.EvidenceURL)
	assert.Equal(t, []Extra{{ID: "e1", Title: "Bake sale", Impact: ImpactHigh}}, sub.Extras)
}

func TestAddExtra_materialisesSubmission(t *testing.T) {
	doc := testDocument()
	extra := newExtra("e1", NewExtra{Title: "Bake sale", Impact: ImpactHigh})

	doc, sub := addExtra(doc, "s1", "A", "O1", extra)
	assert.Equal(t, StatusInProgress, sub.Status)
	require.Len(t, sub.Extras, 1)
	assert.False(t, sub.Extras[0].Verified)
	assert.Equal(t, doc.Submissions, []Submission{sub})
}

func TestVerifyExtra(t *testing.T) {
	doc := testDocument()
	doc, _ = addExtra(doc, "s1", "A", "O1", newExtra("e1", NewExtra{Title: "One"}))
	doc, _ = addExtra(doc, "s2", "A", "O1", newExtra("e2", NewExtra{Title: "Two"}))

	tests := []struct {
		name        string
		sid, oid    string
		eid         string
		wantOK      bool
		wantChanged bool
	}{
		{name: "no submission", sid: "B", oid: "O1", eid: "e1"},
		{name: "no such extra", sid: "A", oid: "O1", eid: "e9"},
		{name: "verify", sid: "A", oid: "O1", eid: "e2", wantOK: true, wantChanged: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, sub, ok := verifyExtra(doc, tt.sid, tt.oid, tt.eid, true)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantChanged {
				assert.Equal(t, doc, next)
				return
			}
			assert.Equal(t, []bool{false, true}, []bool{sub.Extras[0].Verified, sub.Extras[1].Verified})
			assert.Equal(t, "e1", sub.Extras[0].ID, "order is kept")
			assert.False(t, doc.Submissions[0].Extras[1].Verified, "previous document is untouched")
		})
	}
	assert.Len(t, doc.Submissions, 1)
}

func TestStatusOf(t *testing.T) {
	doc := testDocument()
	assert.Equal(t, StatusNotStarted, doc.StatusOf("A", "O1"))
	doc, _ = setNotes(doc, "s1", "A", "O1", "x")
	assert.Equal(t, StatusInProgress, doc.StatusOf("A", "O1"))
}

func TestDeleteCascades(t *testing.T) {
	doc := testDocument()
	doc, _ = markStatus(doc, "s1", "A", "O1", StatusDone)
	doc, _ = markStatus(doc, "s2", "A", "O2", StatusDone)
	doc, _ = markStatus(doc, "s3", "B", "O1", StatusDone)

	t.Run("student", func(t *testing.T) {
		next, ok := deleteStudent(doc, "A")
		require.True(t, ok)
		require.Len(t, next.Submissions, 1)
		assert.Equal(t, "B", next.Submissions[0].StudentID)
		assert.Len(t, next.Students, 1)
	})

	t.Run("objective", func(t *testing.T) {
		next, ok := deleteObjective(doc, "O1")
		require.True(t, ok)
		require.Len(t, next.Submissions, 1)
		assert.Equal(t, "O2", next.Submissions[0].ObjectiveID)
	})

	t.Run("unknown", func(t *testing.T) {
		next, ok := deleteStudent(doc, "Z")
		assert.False(t, ok)
		assert.Equal(t, doc, next)
	})
}
