// Package logging builds the slog loggers used by ipactl. Records are
// filtered per component: a logger created with
// logger.With("component", "manager") is held to the level the log spec
// gives "manager", everything else to the base level.
package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level extends slog's levels with trace, used for per-register
// traffic from the hardware backends.
type Level int

const (
	LevelTrace Level = -8
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

var levelNames = map[Level]string{
	LevelTrace: "trace",
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

// ParseLevel parses trace, debug, info, warn or error, ignoring case.
// "warning" and "err" are accepted as aliases.
func ParseLevel(s string) (Level, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "warning":
		return LevelWarn, nil
	case "err":
		return LevelError, nil
	default:
		for l, name := range levelNames {
			if name == v {
				return l, nil
			}
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level: %q", s)
}

// ToSlog converts l to a slog.Level.
func (l Level) ToSlog() slog.Level {
	return slog.Level(l)
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}
