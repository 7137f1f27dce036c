package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/doeshing/investigator-go/internal/ports"
)

// ZeroLogger adapts zerolog to ports.Logger.
type ZeroLogger struct {
	log zerolog.Logger
}

// New creates a console logger on stderr. When verbose is false only errors are emitted.
func New(verbose bool) *ZeroLogger {
	return NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, verbose)
}

// NewWithWriter creates a logger writing JSON (or console) events to w.
func NewWithWriter(w io.Writer, verbose bool) *ZeroLogger {
	level := zerolog.ErrorLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return &ZeroLogger{
		log: zerolog.New(w).Level(level).With().Timestamp().Str("component", "investigator").Logger(),
	}
}

// NewNop returns a logger that discards everything.
func NewNop() *ZeroLogger {
	return &ZeroLogger{log: zerolog.Nop()}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.log.Error().Err(err).Fields(fields).Msg(msg)
}

var _ ports.Logger = (*ZeroLogger)(nil)
