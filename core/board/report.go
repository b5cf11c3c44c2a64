package board

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const DueDateLayout = "Jan 2, 2006"

// ReportRow is one (student, objective) line of the progress report.
type ReportRow struct {
	Student       string `json:"student"`
	Team          string `json:"team"`
	Objective     string `json:"objective"`
	Week          int    `json:"week"`
	DueDate       string `json:"dueDate"`
	Status        Status `json:"status"`
	Notes         string `json:"notes"`
	EvidenceURL   string `json:"evidenceUrl"`
	ExtraCount    int    `json:"extraCount"`
	ExtraVerified int    `json:"extraVerified"`
}

var reportHeader = []string{
	"student", "team", "objective", "week", "dueDate",
	"status", "notes", "evidenceUrl", "extraCount", "extraVerified",
}

func (r ReportRow) values() []interface{} {
	return []interface{}{
		r.Student, r.Team, r.Objective, r.Week, r.DueDate,
		string(r.Status), r.Notes, r.EvidenceURL, r.ExtraCount, r.ExtraVerified,
	}
}

// FlatReport crosses every student with every objective, students first; due dates are formatted in loc.
func FlatReport(doc Document, loc *time.Location) []ReportRow {
	if loc == nil {
		loc = time.Local
	}
	rows := make([]ReportRow, 0, len(doc.Students)*len(doc.Objectives))
	for _, stu := range doc.Students {
		for _, obj := range doc.Objectives {
			row := ReportRow{
				Student:   stu.Name,
				Team:      stu.Team.String,
				Objective: obj.Title,
				Week:      obj.WeekIndex,
				DueDate:   obj.DueDate.In(loc).Format(DueDateLayout),
				Status:    StatusNotStarted,
			}
			if sub, ok := doc.GetSubmission(stu.ID, obj.ID); ok {
				if sub.Status != "" {
					row.Status = sub.Status
				}
				row.Notes = sub.Notes
				row.EvidenceURL = sub.EvidenceURL
				row.ExtraCount = len(sub.Extras)
				row.ExtraVerified = sub.VerifiedExtras()
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// ToCSV renders rows with a header line; every value is JSON encoded so commas, quotes and newlines stay escaped.
func ToCSV(rows []ReportRow) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(reportHeader, ","))
	for _, r := range rows {
		vals := r.values()
		fields := make([]string, 0, len(vals))
		for _, v := range vals {
			f, err := encodeField(v)
			if err != nil {
				return "", errors.Wrap(err, "encoding csv field")
			}
			fields = append(fields, f)
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n"), nil
}

func encodeField(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

const reportSheet = "Progress"

// WriteXLSX writes rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []ReportRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	setRow := func(rowNum int, vals []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		return f.SetSheetRow(reportSheet, cell, &vals)
	}

	header := make([]interface{}, 0, len(reportHeader))
	for _, h := range reportHeader {
		header = append(header, h)
	}
	if err := setRow(1, header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for i, r := range rows {
		if err := setRow(i+2, r.values()); err != nil {
			return errors.Wrapf(err, "writing row %d", i+2)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}
