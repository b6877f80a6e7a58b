// Package logging wraps zerolog to produce "[UIC] [LEVEL] message
// {context}" lines on stderr.
package logging

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/uicontracts/uic/internal/uicerr"
)

// New builds the process-wide logger. verbose enables debug level with
// timestamps; quiet raises the level to error. Neither may be set together
// (verbose wins if both are passed true).
func New(verbose, quiet bool) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case verbose:
		level = zerolog.DebugLevel
	case quiet:
		level = zerolog.ErrorLevel
	}

	w := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    true,
		TimeFormat: time.RFC3339,
		FormatTimestamp: func(i any) string {
			if !verbose {
				return ""
			}
			return fmt.Sprintf("%v", i)
		},
		FormatLevel: func(i any) string {
			lvl, _ := i.(string)
			return fmt.Sprintf("[UIC] [%s]", strings.ToUpper(lvl))
		},
		FormatMessage: func(i any) string {
			return fmt.Sprintf("%v", i)
		},
		FormatFieldName: func(i any) string {
			return fmt.Sprintf("%v=", i)
		},
		FormatFieldValue: func(i any) string {
			return fmt.Sprintf("%v", i)
		},
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// LogWarning writes a recovered-locally warning carrying a fixed code and
// context map, sorted for deterministic output.
func LogWarning(l zerolog.Logger, code uicerr.Code, message string, ctx map[string]any) {
	ev := l.Warn()
	for _, k := range sortedKeys(ctx) {
		ev = ev.Interface(k, ctx[k])
	}
	ev.Str("code", string(code)).Msg(message)
}

// LogError writes a fatal-to-the-command error.
func LogError(l zerolog.Logger, err error) {
	ev := l.Error()
	if e, ok := err.(*uicerr.Error); ok {
		for _, k := range sortedKeys(e.Context) {
			ev = ev.Interface(k, e.Context[k])
		}
		ev.Str("code", string(e.Code)).Msg(e.Message)
		return
	}
	ev.Msg(err.Error())
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
