package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional project paths", func(t *testing.T) {
		cfg, exit, err := Parse([]string{"-log-level", "DEBUG", "classes", "docs"}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, []string{"classes", "docs"}, cfg.ProjectPaths)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.False(t, cfg.Watch)
	})

	t.Run("watch with pages shorthand", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-p", "pages.hcl", "-watch", "-debounce", "1s", "-out", "build", "docs"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "pages.hcl", cfg.PagesPath)
		assert.True(t, cfg.Watch)
		assert.Equal(t, time.Second, cfg.WatchDebounce)
		assert.Equal(t, "build", cfg.OutputDir)
	})

	t.Run("publisher", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-publish-url", "http://localhost:3000/socket.io/", "-publish-namespace", "/graphs", "docs"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000/socket.io/", cfg.PublishURL)
		assert.Equal(t, "/graphs", cfg.PublishNamespace)
	})

	t.Run("no paths prints usage", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(nil, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("help", func(t *testing.T) {
		_, exit, err := Parse([]string{"-h"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.True(t, exit)
	})
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"-nope"}, "flag provided but not defined"},
		{"bad log format", []string{"-log-format", "xml", "docs"}, "invalid log-format"},
		{"bad log level", []string{"-log-level", "trace", "docs"}, "invalid log-level"},
		{"watch without pages", []string{"-watch", "docs"}, "watch mode requires a page settings file"},
		{"negative port", []string{"-healthcheck-port", "-1", "docs"}, "invalid healthcheck port"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
