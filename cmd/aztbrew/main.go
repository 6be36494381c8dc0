package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/shuntaka9576/aztbrew"
	"github.com/shuntaka9576/aztbrew/cli"
	"github.com/shuntaka9576/aztbrew/ui"
	"go.uber.org/zap"
)

var version = "dev"

type Globals struct {
	Version  cli.VersionFlag `short:"v" name:"version" help:"print the version."`
	LogLevel string          `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	LogFile  string          `name:"log-file" type:"path" help:"Write logs to the specified file instead of stderr."`
}

var CLI struct {
	Globals
	Delete struct {
		ConnectionString string `name:"connection-string" env:"AZURE_STORAGE_CONNECTION_STRING" help:"Azure Storage connection string (prompted when empty)."`
		ServiceURL       string `name:"service-url" help:"Table service endpoint (ex: https://account.table.core.windows.net). Authenticates with DefaultAzureCredential instead of a connection string."`
		Table            string `short:"t" name:"table" help:"Specify table name to delete records from (prompted when empty)."`
		NoProgress       bool   `name:"no-progress" help:"Disable the progress spinner."`
	} `cmd:"" default:"1" help:"Interactively delete records from an Azure Storage table."`
}

func main() {
	kontext := kong.Parse(&CLI,
		kong.Name("aztbrew"),
		kong.Description("Simple Azure Table Storage utility"),
		kong.Vars{"version": version},
	)

	showProgress := !CLI.Delete.NoProgress && isatty.IsTerminal(os.Stderr.Fd())

	logger, err := newLogger(quietLevel(CLI.LogLevel, CLI.LogFile, showProgress), CLI.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	cmdErrCh := make(chan error)

	go func() {
		switch kontext.Command() {
		case "delete":
			orchestrator := aztbrew.NewDeleteOrchestrator(aztbrew.TableOpenerFunc(aztbrew.OpenTable), logger)

			opt := &cli.DeleteOption{
				ConnectionString: CLI.Delete.ConnectionString,
				ServiceURL:       CLI.Delete.ServiceURL,
				TableName:        CLI.Delete.Table,
				Console:          ui.NewConsole(os.Stdin, os.Stdout),
				Deleter:          orchestrator,
			}

			if showProgress {
				progress := ui.NewProgress(os.Stderr)
				orchestrator.OnBatch = func(p aztbrew.BatchProgress) {
					progress.Send(ui.BatchMsg{
						Matched:      p.Matched,
						Batches:      p.Batches,
						DeletedCount: p.Deleted,
						FailedCount:  p.Failed,
					})
				}
				opt.Progress = progress
			}

			cmdErrCh <- cli.Delete(ctx, opt)
		default:
			cmdErrCh <- fmt.Errorf("unknown command %s", kontext.Command())
		}
	}()

	select {
	case err := <-cmdErrCh:
		if err != nil {
			switch {
			case errors.Is(err, cli.ErrorDeleteRecords):
				// already shown by the console
			case errors.Is(err, ui.ErrInputClosed):
				fmt.Fprintln(os.Stderr, "input closed before all values were entered")
			default:
				fmt.Fprintf(os.Stderr, "%s\n", err)
			}

			logger.Sync()
			os.Exit(1)
		}
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "interrupted")
		logger.Sync()
		os.Exit(130)
	}
}
