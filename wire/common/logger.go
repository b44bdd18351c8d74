package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/lni/dragonboat/v4/logger"
)

// --------------------------------------------------------------------------
// Client Logger (implements logger.ILogger)
// --------------------------------------------------------------------------

var levelTags = map[logger.LogLevel]string{
	logger.CRITICAL: "CRIT",
	logger.ERROR:    "ERROR",
	logger.WARNING:  "WARN",
	logger.INFO:     "INFO",
	logger.DEBUG:    "DEBUG",
}

// lynxLogger writes bracketed single-line records, one subsystem per logger.
// Output goes to stderr so piped command output stays clean.
type lynxLogger struct {
	name string
	lvl  logger.LogLevel
	out  *log.Logger
}

func newLynxLogger(name string, lvl logger.LogLevel, w io.Writer) *lynxLogger {
	return &lynxLogger{
		name: name,
		lvl:  lvl,
		out:  log.New(w, "", log.LstdFlags|log.Lmsgprefix),
	}
}

func (l *lynxLogger) SetLevel(lvl logger.LogLevel) { l.lvl = lvl }

func (l *lynxLogger) Debugf(format string, args ...interface{}) {
	l.emit(logger.DEBUG, format, args...)
}

func (l *lynxLogger) Infof(format string, args ...interface{}) {
	l.emit(logger.INFO, format, args...)
}

func (l *lynxLogger) Warningf(format string, args ...interface{}) {
	l.emit(logger.WARNING, format, args...)
}

func (l *lynxLogger) Errorf(format string, args ...interface{}) {
	l.emit(logger.ERROR, format, args...)
}

// Panicf always logs the message before panicking, even when the level
// would otherwise filter it.
func (l *lynxLogger) Panicf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.out.Printf("[%s] %s: %s", levelTags[logger.CRITICAL], l.name, msg)
	panic(msg)
}

func (l *lynxLogger) emit(lvl logger.LogLevel, format string, args ...interface{}) {
	if lvl > l.lvl {
		return
	}
	l.out.Printf("[%s] %s: %s", levelTags[lvl], l.name, fmt.Sprintf(format, args...))
}

// --------------------------------------------------------------------------
// Factory and initialization
// --------------------------------------------------------------------------

// CreateLogger implements the logger Factory interface
func CreateLogger(pkgName string) logger.ILogger {
	return newLynxLogger(pkgName, logger.INFO, os.Stderr)
}

// ParseLogLevel maps a level name to its logger.LogLevel. Unknown names
// fall back to INFO so a typo in configuration does not abort the client.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG
	case "", "info":
		return logger.INFO
	case "warning", "warn":
		return logger.WARNING
	case "error":
		return logger.ERROR
	default:
		return logger.INFO
	}
}

// clientSubsystems names the loggers the client library emits on.
var clientSubsystems = []string{"transport", "protocol", "engine", "keyspace"}

// InitLoggers installs the client logger factory and applies the configured
// level to every client subsystem.
func InitLoggers(config ClientConfig) {
	logger.SetLoggerFactory(CreateLogger)

	lvl := ParseLogLevel(config.LogLevel)
	for _, name := range clientSubsystems {
		logger.GetLogger(name).SetLevel(lvl)
	}
}
