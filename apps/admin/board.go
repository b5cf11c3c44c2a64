package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/clubboard/core/board"
)

const dateLayout = "2006-01-02"

func (cli *commandLine) reset(ctx context.Context) error {
	doc := cli.svc.Reset(ctx)
	_, _ = fmt.Fprintf(cli.out, "board reset: %d students, %d objectives\n", len(doc.Students), len(doc.Objectives))
	return nil
}

func (cli *commandLine) setPasscode(ctx context.Context, code string) error {
	cli.svc.UpdateMeta(ctx, board.UpdateMeta{AdminPasscode: &code})
	_, _ = fmt.Fprintln(cli.out, "passcode updated")
	return nil
}

func (cli *commandLine) addStudent(ctx context.Context, ns board.NewStudent) error {
	st, err := cli.svc.AddStudent(ctx, ns)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "added student %s (%s)\n", st.Name, st.ID)
	return nil
}

func (cli *commandLine) addObjective(ctx context.Context, no board.NewObjective, due string) error {
	if due != "" {
		t, err := time.ParseInLocation(dateLayout, due, cli.svc.Location())
		if err != nil {
			return errors.Wrapf(err, "invalid -due %q", due)
		}
		no.DueDate = t
	}
	obj, err := cli.svc.AddObjective(ctx, no)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "added objective %s for week %d (%s)\n", obj.Title, obj.WeekIndex, obj.ID)
	return nil
}

// timestamped stores know when a key was last written.
type timestamped interface {
	UpdatedAt(ctx context.Context, key string) (null.Time, error)
}

func (cli *commandLine) overview(ctx context.Context) error {
	_, _ = fmt.Fprintf(cli.out, "week %d\n", cli.svc.CurrentWeek())
	if ts, ok := cli.store.(timestamped); ok {
		if saved, err := ts.UpdatedAt(ctx, cli.key); err == nil && saved.Valid {
			_, _ = fmt.Fprintf(cli.out, "last saved %s\n", saved.Time.In(cli.svc.Location()).Format(time.RFC1123))
		}
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STUDENT\tTEAM\tDONE\tPCT")
	for _, row := range cli.svc.Overview() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d%%\n", row.Name, row.Team.String, row.Done, row.Total, row.Pct)
	}
	return w.Flush()
}
