// Package logging builds the zap logger used by the svcparams CLI.
//
// Diagnostics go to stderr by default, or to a size-rotated file when a
// log file is configured. Command output never goes through the logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Levels accepted by ParseLevel, lowest first.
var Levels = []string{"debug", "info", "warn", "error"}

// Options configures New.
type Options struct {
	Level string    // one of Levels; empty means "warn"
	File  string    // rotate into this file instead of writing to Out
	Out   io.Writer // defaults to os.Stderr
}

// ParseLevel converts a level name into a zapcore.Level.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.WarnLevel, nil
	}
	var lvl zapcore.Level
	name := strings.ToLower(s)
	if !slices.Contains(Levels, name) {
		return lvl, fmt.Errorf("invalid log level %q (valid: %s)", s, strings.Join(Levels, ", "))
	}
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// New returns a logger configured by opts.
func New(opts Options) (*zap.Logger, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var (
		sink    zapcore.WriteSyncer
		encoder zapcore.Encoder
	)
	if opts.File != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		out := opts.Out
		if out == nil {
			out = os.Stderr
		}
		sink = zapcore.AddSync(out)
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	return zap.New(zapcore.NewCore(encoder, sink, lvl)), nil
}
