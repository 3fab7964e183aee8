/*
Example --
To log to the base logger
Base().Info("treasury opened")

To log to a new logger
logger = NewLogger()
logger.With("op", "vote").Info("vote cast")
*/

package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Level refers to the log logging level
type Level uint32

var (
	baseLogger Logger
	once       sync.Once
)

const (
	// Panic Level level, highest level of severity.
	Panic Level = iota
	// Fatal Level level. Logs and then calls `os.Exit(1)`.
	Fatal
	// Error Level level. Used for errors that should definitely be noted.
	Error
	// Warn Level level. Non-critical entries that deserve eyes.
	Warn
	// Info Level level. General operational entries.
	Info
	// Debug Level level. Very verbose logging.
	Debug
)

// Init needs to be called to ensure our logging has been initialized
func Init() {
	once.Do(func() {
		baseLogger = NewLogger()
		baseLogger.SetLevel(Info)
	})
}

func init() {
	Init()
}

// Fields maps logrus fields
type Fields = logrus.Fields

// Logger is the interface for loggers.
type Logger interface {
	Debug(...interface{})
	Debugf(string, ...interface{})

	Info(...interface{})
	Infof(string, ...interface{})

	Warn(...interface{})
	Warnf(string, ...interface{})

	Error(...interface{})
	Errorf(string, ...interface{})

	Fatal(...interface{})
	Fatalf(string, ...interface{})

	// Add one key-value to log
	With(key string, value interface{}) Logger

	// WithFields logs a message with specific fields
	WithFields(Fields) Logger

	SetLevel(Level)
	SetOutput(io.Writer)
	SetJSONFormatter()
	IsLevelEnabled(level Level) bool
}

type logger struct {
	entry *logrus.Entry
}

// Base returns the process-wide logger.
func Base() Logger {
	return baseLogger
}

// NewLogger returns a new Logger writing text to stderr at Info level.
func NewLogger() Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return logger{entry: logrus.NewEntry(l)}
}

// TestingLog returns a logger that discards everything below Warn, for tests.
func TestingLog() Logger {
	l := NewLogger()
	l.SetOutput(io.Discard)
	l.SetLevel(Warn)
	return l
}

func (l logger) With(key string, value interface{}) Logger {
	return logger{l.entry.WithField(key, value)}
}

func (l logger) WithFields(fields Fields) Logger {
	return logger{l.entry.WithFields(fields)}
}

func (l logger) Debug(args ...interface{}) { l.entry.Debug(args...) }

func (l logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }

func (l logger) Info(args ...interface{}) { l.entry.Info(args...) }

func (l logger) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }

func (l logger) Warn(args ...interface{}) { l.entry.Warn(args...) }

func (l logger) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

func (l logger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func (l logger) Fatal(args ...interface{}) { l.entry.Fatal(args...) }

func (l logger) Fatalf(format string, args ...interface{}) { l.entry.Fatalf(format, args...) }

func (l logger) SetLevel(lvl Level) {
	l.entry.Logger.SetLevel(logrus.Level(lvl))
}

func (l logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

func (l logger) SetJSONFormatter() {
	l.entry.Logger.SetFormatter(&logrus.JSONFormatter{})
}

func (l logger) IsLevelEnabled(level Level) bool {
	return l.entry.Logger.IsLevelEnabled(logrus.Level(level))
}

// ParseLevel maps a config string (debug, info, warn, error) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "", "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return Info, fmt.Errorf("unknown log level %q", s)
	}
}
