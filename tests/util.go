package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trezcool/clubboard/core"
	"github.com/trezcool/clubboard/core/board"
	logsvc "github.com/trezcool/clubboard/services/logger"
	inmemdb "github.com/trezcool/clubboard/storage/database/inmem"
)

// Now is the fixed clock of test services: Wednesday, 2024-01-10 09:30 UTC.
var Now = time.Date(2024, time.January, 10, 9, 30, 0, 0, time.UTC)

// NewBoardService returns a board service over an in-memory store, with the demo document loaded.
func NewBoardService(t *testing.T) (*board.Service, *inmemdb.DB) {
	t.Helper()
	store := inmemdb.Open()
	svc := board.NewServiceMock(store, logsvc.NewNopLogger(), core.NewTestConfig(), Now)
	svc.Load(context.Background())
	return svc, store
}

// NewEmptyBoardService is NewBoardService with every student and objective removed.
func NewEmptyBoardService(t *testing.T) (*board.Service, *inmemdb.DB) {
	t.Helper()
	svc, store := NewBoardService(t)
	ctx := context.Background()
	for _, st := range svc.Document().Students {
		require.True(t, svc.DeleteStudent(ctx, st.ID))
	}
	for _, obj := range svc.Document().Objectives {
		require.True(t, svc.DeleteObjective(ctx, obj.ID))
	}
	return svc, store
}

func CreateStudent(t *testing.T, svc *board.Service, name, email, team string) board.Student {
	t.Helper()
	st, err := svc.AddStudent(context.Background(), board.NewStudent{Name: name, Email: email, Team: team})
	require.NoError(t, err, "CreateStudent()")
	return st
}

func CreateObjective(t *testing.T, svc *board.Service, title string, week int, due time.Time) board.Objective {
	t.Helper()
	obj, err := svc.AddObjective(context.Background(), board.NewObjective{Title: title, WeekIndex: &week, DueDate: due})
	require.NoError(t, err, "CreateObjective()")
	return obj
}

func MarkStatus(t *testing.T, svc *board.Service, studentID, objectiveID string, status board.Status) board.Submission {
	t.Helper()
	sub, ok, err := svc.MarkStatus(context.Background(), studentID, objectiveID, status)
	require.NoError(t, err, "MarkStatus()")
	require.True(t, ok, "MarkStatus(): unknown pair")
	return sub
}
