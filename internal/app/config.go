package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectPaths []string // hcl files: data types, classes, documents
	PagesPath    string   // hcl file with the project and page blocks

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// Watch keeps the app running and re-applies the page settings whenever
	// PagesPath changes.
	Watch         bool
	WatchDebounce time.Duration

	// PublishURL is the socket.io server synchronization reports are sent to.
	PublishURL       string
	PublishNamespace string

	// OutputDir receives the synchronized documents, one file per document.
	OutputDir string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ProjectPaths) == 0 && cfg.PagesPath == "" {
		return nil, errors.New("at least one project path is required")
	}
	if cfg.Watch && cfg.PagesPath == "" {
		return nil, errors.New("watch mode requires a page settings file")
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	if cfg.HealthcheckPort < 0 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}

	return &cfg, nil
}

// paths is every file or directory the loader reads.
func (c *Config) paths() []string {
	out := append([]string(nil), c.ProjectPaths...)
	if c.PagesPath != "" {
		out = append(out, c.PagesPath)
	}
	return out
}
