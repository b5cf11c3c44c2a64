package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/clubboard/core"
	"github.com/trezcool/clubboard/core/board"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	svc     *board.Service
	mailSvc core.EmailService
	store   core.BlobStore
	key     string
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  export -format csv|json|xlsx [-out FILE] - export the board (stdout by default)")
	_, _ = fmt.Fprintln(cli.out, "  import -in FILE [-diff] - replace the board with a JSON export, or preview the change")
	_, _ = fmt.Fprintln(cli.out, "  reset - reinstall the demo board")
	_, _ = fmt.Fprintln(cli.out, "  setpasscode - change the admin passcode (prompted)")
	_, _ = fmt.Fprintln(cli.out, "  addstudent -name NAME [-email EMAIL] [-team TEAM] - add a student")
	_, _ = fmt.Fprintln(cli.out, "  addobjective -title TITLE [-details TEXT] [-week N] [-due YYYY-MM-DD] - add an objective")
	_, _ = fmt.Fprintln(cli.out, "  overview - print everyone's completion")
	_, _ = fmt.Fprintln(cli.out, "  mailreport -to EMAIL - mail the progress report")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	exportCmd := cli.newFlagSet("export")
	exportFormat := exportCmd.String("format", "csv", "csv, json or xlsx")
	exportOut := exportCmd.String("out", "", "Destination file; stdout when empty.")

	importCmd := cli.newFlagSet("import")
	importIn := importCmd.String("in", "", "A JSON export of the board.")
	importDiff := importCmd.Bool("diff", false, "Print what would change instead of importing.")

	resetCmd := cli.newFlagSet("reset")
	passcodeCmd := cli.newFlagSet("setpasscode")

	studentCmd := cli.newFlagSet("addstudent")
	studentName := studentCmd.String("name", "", "The student's name.")
	studentEmail := studentCmd.String("email", "", "The student's email (optional).")
	studentTeam := studentCmd.String("team", "", "The student's team (optional).")

	objectiveCmd := cli.newFlagSet("addobjective")
	objectiveTitle := objectiveCmd.String("title", "", "The objective's title.")
	objectiveDetails := objectiveCmd.String("details", "", "What has to be done.")
	objectiveWeek := objectiveCmd.String("week", "", "Week index; the current week when empty.")
	objectiveDue := objectiveCmd.String("due", "", "Due date as YYYY-MM-DD; today when empty.")

	overviewCmd := cli.newFlagSet("overview")

	mailCmd := cli.newFlagSet("mailreport")
	mailTo := mailCmd.String("to", "", "Recipient email address.")

	switch args[1] {
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.export(*exportFormat, *exportOut)
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *importIn == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importJSON(ctx, *importIn, *importDiff)
	case "reset":
		if err := resetCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.reset(ctx)
	case "setpasscode":
		if err := passcodeCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		_, _ = fmt.Fprint(cli.out, "Enter passcode:")
		code, err := readPasswordFunc(int(syscall.Stdin))
		_, _ = fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(code) == 0 {
			passcodeCmd.Usage()
			return errHelp
		}
		return cli.setPasscode(ctx, string(code))
	case "addstudent":
		if err := studentCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *studentName == "" {
			studentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(ctx, board.NewStudent{Name: *studentName, Email: *studentEmail, Team: *studentTeam})
	case "addobjective":
		if err := objectiveCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *objectiveTitle == "" {
			objectiveCmd.Usage()
			return errHelp
		}
		no := board.NewObjective{Title: *objectiveTitle, Details: *objectiveDetails}
		if *objectiveWeek != "" {
			week, err := strconv.Atoi(*objectiveWeek)
			if err != nil {
				return fmt.Errorf("invalid -week %q: %w", *objectiveWeek, err)
			}
			no.WeekIndex = &week
		}
		return cli.addObjective(ctx, no, *objectiveDue)
	case "overview":
		if err := overviewCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.overview(ctx)
	case "mailreport":
		if err := mailCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *mailTo == "" {
			mailCmd.Usage()
			return errHelp
		}
		return cli.mailReport(*mailTo)
	default:
		cli.printUsage()
		return errHelp
	}
}
