// Package logging configures the global zerolog logger of the soundshift
// commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var levelMapping = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warning": zerolog.WarnLevel,
	"warn":    zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
}

// Levels lists the accepted level names.
const Levels = "debug,info,warning,warn,error"

// Setup sets the global level and output. An empty path logs to stderr
// in console format; otherwise JSON lines are appended to the file, which
// stays open for the life of the process.
func Setup(path, level string) error {
	lev, ok := levelMapping[level]
	if !ok {
		return fmt.Errorf("invalid logging level: %s", level)
	}
	zerolog.SetGlobalLevel(lev)
	if path != "" {
		logf, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to initialize log. File: %s: %w", path, err)
		}
		log.Logger = log.Output(logf)
		return nil
	}
	log.Logger = log.Output(console(os.Stderr))
	return nil
}

func console(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
}
