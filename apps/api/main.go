package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	echoapi "github.com/trezcool/clubboard/apps/api/echo"
	"github.com/trezcool/clubboard/core"
	"github.com/trezcool/clubboard/core/board"
	logsvc "github.com/trezcool/clubboard/services/logger"
	"github.com/trezcool/clubboard/storage/database"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "api: %+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	logger := logsvc.New(logsvc.NewConsoleLogger(os.Stdout, "API", conf.Debug), conf)

	store, err := database.Open(conf)
	if err != nil {
		return errors.Wrap(err, "opening storage")
	}
	defer func() {
		if cErr := store.Close(); cErr != nil {
			logger.Error("closing storage", cErr)
		}
	}()

	boardSvc := board.NewService(store, logger, conf)
	boardSvc.Load(context.Background())

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Address:        conf.Server.Address,
		DisableReqLogs: conf.Server.DisableReqLogs,
		Debug:          conf.Debug,
		TestMode:       conf.TestMode,
		AppName:        conf.AppName,
		BoardSvc:       boardSvc,
		Logger:         logger,
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-serverErrors:
		if errors.Cause(err) != http.ErrServerClosed {
			return errors.Wrap(err, "server error")
		}
	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err = server.Stop(ctx); err != nil {
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}
	return nil
}
