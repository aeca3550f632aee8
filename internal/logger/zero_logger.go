package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// ZeroLogger is the zerolog-backed Logger used by the API process.
type ZeroLogger struct {
	log zerolog.Logger
}

// NewZeroLogger returns a configured instance of ZeroLogger writing
// structured JSON to the given writer, tagged with the default fields.
func NewZeroLogger(writer io.Writer, level Level, defaultFields Fields) *ZeroLogger {
	props := make(map[string]interface{}, len(defaultFields))
	for k, v := range defaultFields {
		props[k] = v
	}
	log := zerolog.New(writer).With().Fields(props).Timestamp().Logger().Level(zerologLevel(level))
	return &ZeroLogger{log: log}
}

func zerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	case LevelOff:
		return zerolog.Disabled
	case LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZeroLogger) Info(message string, properties map[string]interface{}) {
	l.log.Info().Fields(properties).Msg(message)
}

func (l *ZeroLogger) Error(err error, properties map[string]interface{}) {
	l.log.Error().Fields(properties).Err(err).Msg(err.Error())
}

func (l *ZeroLogger) Fatal(err error, properties map[string]interface{}) {
	l.log.Fatal().Fields(properties).Err(err).Msg(err.Error())
}

func (l *ZeroLogger) Debug(message string, properties map[string]interface{}) {
	l.log.Debug().Fields(properties).Msg(message)
}

func (l *ZeroLogger) SetLevel(level Level) {
	l.log = l.log.Level(zerologLevel(level))
}
