package main

import (
	"bytes"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/trezcool/clubboard/core"
	"github.com/trezcool/clubboard/core/board"
)

// mailReport sends the progress report to `to`, as CSV and XLSX attachments.
func (cli *commandLine) mailReport(to string) error {
	addr, err := mail.ParseAddress(to)
	if err != nil {
		return errors.Wrapf(err, "invalid -to %q", to)
	}

	rows := cli.svc.Report()
	csv, err := board.ToCSV(rows)
	if err != nil {
		return err
	}
	var xlsx bytes.Buffer
	if err := board.WriteXLSX(&xlsx, rows); err != nil {
		return err
	}

	meta := cli.svc.Meta()
	msg := &core.EmailMessage{
		To:      []mail.Address{*addr},
		Subject: meta.EventName + " progress report",
		Body: fmt.Sprintf("Progress report for %s, week %d.\n%d rows attached.",
			meta.ClubName, cli.svc.CurrentWeek(), len(rows)),
	}
	msg.Attach([]byte(csv), "progress.csv", "text/csv")
	msg.Attach(xlsx.Bytes(), "progress.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := cli.mailSvc.Send(msg); err != nil {
		return errors.Wrap(err, "sending report")
	}
	_, _ = fmt.Fprintf(cli.out, "report sent to %s\n", addr.Address)
	return nil
}
