// Package logger configures the global zerolog logger from command-line options.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger holds logging options, meant to be embedded in go-flags option structs.
type Logger struct {
	Level  string `long:"log-level"  env:"LOG_LEVEL"  description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"disabled" default:"info"`
	Format string `long:"log-format" env:"LOG_FORMAT" description:"Log format" choice:"text" choice:"json" default:"text"`
	Output string `long:"log-output" env:"LOG_OUTPUT" description:"Log output: stderr, stdout or a file path" default:"stderr"`
}

// Setup applies the options to the global logger.
// An unusable output file falls back to stderr.
func (l Logger) Setup() {
	zerolog.SetGlobalLevel(ParseLevel(l.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	out, err := l.writer()
	if err != nil {
		out = os.Stderr
	}

	if strings.EqualFold(l.Format, "json") {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}).With().Timestamp().Logger()
	}

	if err != nil {
		log.Warn().Err(err).Str("output", l.Output).Msg("Failed to open log output, using stderr")
	}
}

func (l Logger) writer() (io.Writer, error) {
	switch strings.ToLower(l.Output) {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		return os.OpenFile(l.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
