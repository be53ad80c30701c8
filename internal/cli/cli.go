package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/graphsync/internal/app"
	"github.com/specialistvlad/graphsync/internal/pages"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("graphsync", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
graphsync - Keeps node-graph documents and their editable graphs in sync.

Usage:
  graphsync [options] PROJECT_PATH...

Arguments:
  PROJECT_PATH
    Path to a single .hcl file or a directory containing .hcl files with
    data types, classes and documents.

Options:
`)
		flagSet.PrintDefaults()
	}

	pagesFlag := flagSet.String("pages", "", "Path to the .hcl file with the project and page settings.")
	pFlag := flagSet.String("p", "", "Path to the page settings file (shorthand).")
	watchFlag := flagSet.Bool("watch", false, "Keep running and re-apply page settings when the pages file changes.")
	debounceFlag := flagSet.Duration("debounce", pages.DefaultDebounce, "Delay before a changed pages file is reloaded.")
	publishURLFlag := flagSet.String("publish-url", "", "socket.io server that receives synchronization reports. Empty is disabled.")
	publishNSFlag := flagSet.String("publish-namespace", "", "socket.io namespace for synchronization reports.")
	outFlag := flagSet.String("out", "", "Directory the synchronized documents are written to. Empty is disabled.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	pagesPath := *pagesFlag
	if pagesPath == "" {
		pagesPath = *pFlag
	}
	projectPaths := flagSet.Args()
	slog.Debug("Project paths determined.", "paths", projectPaths, "pages", pagesPath)

	if len(projectPaths) == 0 && pagesPath == "" {
		slog.Debug("No project path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProjectPaths:     projectPaths,
		PagesPath:        pagesPath,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		HealthcheckPort:  *healthPortFlag,
		Watch:            *watchFlag,
		WatchDebounce:    *debounceFlag,
		PublishURL:       *publishURLFlag,
		PublishNamespace: *publishNSFlag,
		OutputDir:        *outFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
