package cmd

import (
	"encoding/json"
	"io"
	"os"

	"svcparams/internal/config"
	"svcparams/internal/params"
	paramstore "svcparams/internal/params/yamlstore"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// App holds application state shared across commands.
type App struct {
	Params      *paramstore.Store
	Settings    config.Store
	Paths       config.Paths
	ImportGroup params.Group // resolved import.group, used by --service
	Logger      *zap.Logger
	In          io.Reader
	Out         io.Writer
	Err         io.Writer
	JSON        bool // output in JSON format
}

// log returns the app logger, or a no-op logger if none is set.
func (a *App) log() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// writeJSON encodes v as one JSON document on stdout.
func (a *App) writeJSON(v any) error {
	return json.NewEncoder(a.Out).Encode(v)
}

// SuccessColor returns the string wrapped in green ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) SuccessColor(s string) string {
	if a.isTerminal() {
		return "\033[32m" + s + "\033[0m"
	}
	return s
}

// WarnColor returns the string wrapped in orange ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) WarnColor(s string) string {
	if a.isTerminal() {
		return "\033[38;5;214m" + s + "\033[0m"
	}
	return s
}

func (a *App) isTerminal() bool {
	f, ok := a.Out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
