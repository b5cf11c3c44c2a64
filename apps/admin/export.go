package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/clubboard/core/board"
)

var errUnknownFormat = errors.New("unknown export format")

// export writes the board in format to path, or to the CLI output when path is empty.
func (cli *commandLine) export(format, path string) error {
	var buf bytes.Buffer
	switch format {
	case "csv":
		csv, err := board.ToCSV(cli.svc.Report())
		if err != nil {
			return err
		}
		buf.WriteString(csv)
	case "json":
		data, err := cli.svc.ExportJSON()
		if err != nil {
			return err
		}
		buf.Write(data)
	case "xlsx":
		if path == "" {
			return errors.New("xlsx export needs -out")
		}
		if err := board.WriteXLSX(&buf, cli.svc.Report()); err != nil {
			return err
		}
	default:
		return errors.Wrapf(errUnknownFormat, "%q", format)
	}

	if path == "" {
		_, err := io.Copy(cli.out, &buf)
		if err == nil {
			_, _ = fmt.Fprintln(cli.out)
		}
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	_, _ = fmt.Fprintf(cli.out, "exported %s to %s\n", format, path)
	return nil
}
