package main

import (
	"context"
	"fmt"
	"os"

	"github.com/trezcool/clubboard/core"
	"github.com/trezcool/clubboard/core/board"
	emailsvc "github.com/trezcool/clubboard/services/email"
	logsvc "github.com/trezcool/clubboard/services/logger"
	"github.com/trezcool/clubboard/storage/database"
)

func main() {
	os.Exit(run())
}

func run() int {
	conf, err := core.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		return 1
	}
	logger := logsvc.New(logsvc.NewConsoleLogger(os.Stderr, "ADMIN", conf.Debug), conf)

	// set up storage
	store, err := database.Open(conf)
	if err != nil {
		logger.Error("opening storage", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("closing storage", err)
		}
	}()

	boardSvc := board.NewService(store, logger, conf)
	boardSvc.Load(context.Background())

	// start CLI
	cli := commandLine{
		svc:     boardSvc,
		mailSvc: emailsvc.New(conf, emailsvc.NewConsoleService(os.Stdout, conf)),
		store:   store,
		key:     conf.Storage.Key,
		out:     os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		return 1
	}
	return 0
}
