package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. format is "json" or "console".
func Init(level, format string) {
	Setup(os.Stderr, level, format)
}

func Setup(out io.Writer, level, format string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: out}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		log.Warn().Str("configured_level", level).Msg("invalid log level configured, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// Writer adapts zerolog to the Printf-style logger interfaces of gorm and goose.
type Writer struct {
	component string
	level     zerolog.Level
}

func NewWriter(component string, level zerolog.Level) Writer {
	return Writer{component: component, level: level}
}

func (w Writer) Printf(format string, args ...interface{}) {
	log.WithLevel(w.level).
		Str("component", w.component).
		Msgf(strings.TrimSpace(format), args...)
}

func (w Writer) Fatalf(format string, args ...interface{}) {
	log.Fatal().
		Str("component", w.component).
		Msgf(strings.TrimSpace(format), args...)
}
