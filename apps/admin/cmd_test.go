package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/clubboard/core"
	"github.com/trezcool/clubboard/core/board"
	emailsvc "github.com/trezcool/clubboard/services/email"
	logsvc "github.com/trezcool/clubboard/services/logger"
	sqlxdb "github.com/trezcool/clubboard/storage/database/sqlx"
	"github.com/trezcool/clubboard/tests"
)

func setup(t *testing.T) (*commandLine, *board.Service, *bytes.Buffer, *emailsvc.ConsoleService) {
	svc, _ := testutil.NewBoardService(t)
	out := new(bytes.Buffer)
	mailSvc := emailsvc.NewConsoleService(new(bytes.Buffer), core.NewTestConfig())
	return &commandLine{svc: svc, mailSvc: mailSvc, out: out}, svc, out, mailSvc
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func runCliTests(t *testing.T, cli *commandLine, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.wantErrStr != "":
				if assert.Error(t, err) {
					assert.Contains(t, err.Error(), tt.wantErrStr)
				}
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli, _, out, _ := setup(t)
	runCliTests(t, cli, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "unknown flag", args: []string{"export", "-lol"}, wantErr: errHelp},
		{name: "import: no file", args: []string{"import"}, wantErr: errHelp},
		{name: "addstudent: no name", args: []string{"addstudent"}, wantErr: errHelp},
		{name: "addobjective: no title", args: []string{"addobjective"}, wantErr: errHelp},
		{name: "mailreport: no recipient", args: []string{"mailreport"}, wantErr: errHelp},
	})
	assert.Contains(t, out.String(), "Usage:")
}

func Test_commandLine_export(t *testing.T) {
	cli, svc, out, _ := setup(t)
	dir := t.TempDir()

	runCliTests(t, cli, []cliTest{
		{name: "unknown format", args: []string{"export", "-format", "pdf"}, wantErrStr: "unknown export format"},
		{name: "xlsx needs a file", args: []string{"export", "-format", "xlsx"}, wantErrStr: "needs -out"},
		{name: "xlsx", args: []string{"export", "-format", "xlsx", "-out", filepath.Join(dir, "progress.xlsx")}},
		{name: "json", args: []string{"export", "-format", "json", "-out", filepath.Join(dir, "board.json")}},
	})

	t.Run("csv to stdout", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cli.run([]string{"admin", "export"}))
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		assert.Len(t, lines, 1+9)
	})

	t.Run("json file is the board", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, "board.json"))
		require.NoError(t, err)
		doc, err := board.FromJSON(data)
		require.NoError(t, err)
		assert.Equal(t, svc.Document().Students, doc.Students)
	})

	t.Run("xlsx file is a workbook", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, "progress.xlsx"))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("PK")))
	})
}

func Test_commandLine_import(t *testing.T) {
	cli, svc, out, _ := setup(t)
	dir := t.TempDir()

	snapshot := filepath.Join(dir, "board.json")
	require.NoError(t, cli.run([]string{"admin", "export", "-format", "json", "-out", snapshot}))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"meta":{},"students":"not-an-array","objectives":[],"submissions":[]}`), 0o644))

	runCliTests(t, cli, []cliTest{
		{name: "missing file", args: []string{"import", "-in", filepath.Join(dir, "nope.json")}, wantErrStr: "reading"},
		{name: "wrong shape", args: []string{"import", "-in", bad}, wantErrStr: "invalid document"},
	})

	st := svc.Document().Students[0]
	obj := svc.Document().Objectives[0]
	t.Run("diff previews without importing", func(t *testing.T) {
		_, _ = svc.SetNotes(context.Background(), st.ID, obj.ID, "Seen on site")
		before := svc.Document()

		out.Reset()
		require.NoError(t, cli.run([]string{"admin", "import", "-in", snapshot, "-diff"}))
		assert.Contains(t, out.String(), "--- current")
		assert.Contains(t, out.String(), "+++ "+snapshot)
		assert.Contains(t, out.String(), `-      "notes": "Seen on site",`)
		assert.Equal(t, before, svc.Document())
	})

	t.Run("import", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cli.run([]string{"admin", "import", "-in", snapshot}))
		assert.Equal(t, "imported 3 students, 3 objectives, 0 submissions\n", out.String())
		assert.Empty(t, svc.Document().Submissions)
	})

	t.Run("diff without changes", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cli.run([]string{"admin", "import", "-in", snapshot, "-diff"}))
		assert.Equal(t, "no changes\n", out.String())
	})
}

func Test_commandLine_edits(t *testing.T) {
	cli, svc, out, _ := setup(t)

	runCliTests(t, cli, []cliTest{
		{name: "addstudent: blank name", args: []string{"addstudent", "-name", "   "}, wantErrStr: "name"},
		{name: "addstudent", args: []string{"addstudent", "-name", "D. Jay", "-email", "dj at club", "-team", "Media"}},
		{name: "addobjective: bad week", args: []string{"addobjective", "-title", "Brief", "-week", "two"}, wantErrStr: "invalid -week"},
		{name: "addobjective: bad due", args: []string{"addobjective", "-title", "Brief", "-due", "10/01/2024"}, wantErrStr: "invalid -due"},
		{name: "addobjective", args: []string{"addobjective", "-title", "Brief", "-week", "2", "-due", "2024-01-20"}},
	})

	doc := svc.Document()
	require.Len(t, doc.Students, 4)
	assert.Equal(t, "D. Jay", doc.Students[3].Name)
	assert.Equal(t, "dj at club", doc.Students[3].Email.String)
	require.Len(t, doc.Objectives, 4)
	assert.Equal(t, 2, doc.Objectives[3].WeekIndex)
	assert.Equal(t, "Jan 20, 2024", doc.Objectives[3].DueDate.Format(board.DueDateLayout))

	t.Run("setpasscode", func(t *testing.T) {
		readPasswordFunc = func(fd int) ([]byte, error) { return nil, nil }
		assert.Equal(t, errHelp, cli.run([]string{"admin", "setpasscode"}))

		readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }
		require.NoError(t, cli.run([]string{"admin", "setpasscode"}))
		assert.True(t, svc.Unlock("s3cret"))
		assert.False(t, svc.Unlock("admin123"))
	})

	t.Run("overview", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cli.run([]string{"admin", "overview"}))
		assert.Contains(t, out.String(), "week 0")
		assert.Contains(t, out.String(), "D. Jay")
		assert.Contains(t, out.String(), "0/4")
	})

	t.Run("reset", func(t *testing.T) {
		require.NoError(t, cli.run([]string{"admin", "reset"}))
		assert.Len(t, svc.Document().Students, 3)
	})
}

func Test_commandLine_mailReport(t *testing.T) {
	cli, svc, _, mailSvc := setup(t)

	runCliTests(t, cli, []cliTest{
		{name: "invalid recipient", args: []string{"mailreport", "-to", "nope"}, wantErrStr: "invalid -to"},
		{name: "send", args: []string{"mailreport", "-to", "Coach <coach@sttoms.edu>"}},
	})

	require.Len(t, mailSvc.Sent, 1)
	msg := mailSvc.Sent[0]
	assert.Equal(t, "coach@sttoms.edu", msg.To[0].Address)
	assert.Equal(t, svc.Meta().EventName+" progress report", msg.Subject)
	require.Len(t, msg.Attachments, 2)
	assert.Equal(t, "progress.csv", msg.Attachments[0].Filename)
	assert.Equal(t, "progress.xlsx", msg.Attachments[1].Filename)
}

func Test_commandLine_overviewLastSaved(t *testing.T) {
	conf := core.NewTestConfig()
	store, err := sqlxdb.Open(filepath.Join(t.TempDir(), "board.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := board.NewService(store, logsvc.NewNopLogger(), conf)
	svc.Load(context.Background())

	out := new(bytes.Buffer)
	cli := &commandLine{svc: svc, store: store, key: conf.Storage.Key, out: out}
	require.NoError(t, cli.run([]string{"admin", "overview"}))
	assert.Contains(t, out.String(), "last saved ")
}
