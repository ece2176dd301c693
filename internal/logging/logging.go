// SPDX-License-Identifier:Apache-2.0

// Package logging sets up structured logging in a uniform way.
package logging

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	LevelAll   = "all"
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelNone  = "none"
)

// Levels is the list of log levels accepted by Init, in order of
// increasing severity.
var Levels = []string{LevelAll, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelNone}

// Init returns a logger configured with common settings like
// timestamping and source code locations, filtered at the given level.
func Init(lvl string) (log.Logger, error) {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))
	l = log.With(l, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	opt, err := parseLevel(lvl)
	if err != nil {
		return nil, err
	}
	return level.NewFilter(l, opt), nil
}

func parseLevel(lvl string) (level.Option, error) {
	switch lvl {
	case LevelAll:
		return level.AllowAll(), nil
	case LevelDebug:
		return level.AllowDebug(), nil
	case LevelInfo:
		return level.AllowInfo(), nil
	case LevelWarn:
		return level.AllowWarn(), nil
	case LevelError:
		return level.AllowError(), nil
	case LevelNone:
		return level.AllowNone(), nil
	}
	return nil, fmt.Errorf("invalid logging level: %q", lvl)
}
