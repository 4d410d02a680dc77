package util

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	jww "github.com/spf13/jwalterweatherman"
)

var (
	loggers = map[string]*Logger{}
	levels  = map[string]jww.Threshold{}

	// OutThreshold is the default console log level
	OutThreshold = jww.LevelError

	// LogThreshold is the default log file level
	LogThreshold = jww.LevelWarn
)

// Logger wraps a jww notepad to avoid leaking implementation detail
type Logger struct {
	*jww.Notepad
	name string
}

// NewLogger creates a logger with the given log area and adds it to the registry
func NewLogger(area string) *Logger {
	if logger, ok := loggers[area]; ok {
		return logger
	}

	padded := area
	for len(padded) < 6 {
		padded += " "
	}

	notepad := jww.NewNotepad(OutThreshold, LogThreshold, os.Stdout, io.Discard, padded, log.Ldate|log.Ltime)

	logger := &Logger{
		Notepad: notepad,
		name:    area,
	}
	loggers[area] = logger

	if threshold, ok := levels[area]; ok {
		logger.SetStdoutThreshold(threshold)
	}

	return logger
}

// Name returns the log area
func (l *Logger) Name() string {
	return l.name
}

// Loggers invokes callback for each registered logger
func Loggers(cb func(string, *Logger)) {
	for name, logger := range loggers {
		cb(name, logger)
	}
}

// LogLevelToThreshold converts a level string to a jww threshold
func LogLevelToThreshold(level string) jww.Threshold {
	switch strings.ToUpper(level) {
	case "FATAL":
		return jww.LevelFatal
	case "ERROR":
		return jww.LevelError
	case "WARN":
		return jww.LevelWarn
	case "INFO":
		return jww.LevelInfo
	case "DEBUG":
		return jww.LevelDebug
	case "TRACE":
		return jww.LevelTrace
	default:
		panic(fmt.Sprintf("invalid log level %s", level))
	}
}

// LogLevel sets the default log level and optional area overrides
func LogLevel(defaultLevel string, areaLevels map[string]string) {
	OutThreshold = LogLevelToThreshold(defaultLevel)

	for area, level := range areaLevels {
		levels[strings.ToLower(area)] = LogLevelToThreshold(level)
	}

	Loggers(func(name string, logger *Logger) {
		logger.SetStdoutThreshold(OutThreshold)

		if threshold, ok := levels[name]; ok {
			logger.SetStdoutThreshold(threshold)
		}
	})
}
