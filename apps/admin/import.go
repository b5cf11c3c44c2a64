package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/clubboard/core/board"
)

// importJSON replaces the board with the export at path.
// With preview set, it prints a unified diff against the current board and changes nothing.
func (cli *commandLine) importJSON(ctx context.Context, path string, preview bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	if preview {
		incoming, err := board.FromJSON(data)
		if err != nil {
			return err
		}
		diff, err := documentDiff(cli.svc.Document(), incoming, path)
		if err != nil {
			return err
		}
		if diff == "" {
			_, _ = fmt.Fprintln(cli.out, "no changes")
			return nil
		}
		_, _ = fmt.Fprint(cli.out, diff)
		return nil
	}

	doc, err := cli.svc.Replace(ctx, data)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "imported %d students, %d objectives, %d submissions\n",
		len(doc.Students), len(doc.Objectives), len(doc.Submissions))
	return nil
}

func documentDiff(current, incoming board.Document, incomingName string) (string, error) {
	a, err := board.ToJSON(current)
	if err != nil {
		return "", err
	}
	b, err := board.ToJSON(incoming)
	if err != nil {
		return "", err
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a) + "\n"),
		B:        difflib.SplitLines(string(b) + "\n"),
		FromFile: "current",
		ToFile:   incomingName,
		Context:  3,
	})
}
