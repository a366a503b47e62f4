package hci

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logging seam used throughout this module.
// Components log through this interface rather than fmt.Println, so a
// caller embedding the client in a larger host application can route HCI
// diagnostics into its own logging pipeline.
type Logger interface {
	Info(...interface{})
	Debug(...interface{})
	Warn(...interface{})
	Error(...interface{})

	Infof(string, ...interface{})
	Debugf(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})

	// ChildLogger returns a logger that annotates every entry with the
	// given fields in addition to whatever the parent already carries.
	ChildLogger(fields map[string]interface{}) Logger
}

var (
	pkgLogger   Logger
	pkgLoggerMu sync.Mutex
)

// SetLogger installs the default logger used when a Host is constructed
// without an explicit OptLogger option.
func SetLogger(l Logger) {
	pkgLoggerMu.Lock()
	defer pkgLoggerMu.Unlock()
	pkgLogger = l
}

// GetLogger returns the current default logger, constructing the
// logrus-backed default on first use.
func GetLogger() Logger {
	pkgLoggerMu.Lock()
	defer pkgLoggerMu.Unlock()
	if pkgLogger == nil {
		pkgLogger = newDefaultLogger()
	}
	return pkgLogger
}

// SetLogLevelMax raises the default logger to trace level, useful when
// debugging a desynchronized transport.
func SetLogLevelMax() {
	l := GetLogger()
	if dl, ok := l.(*defaultLogger); ok {
		dl.Entry.Logger.SetLevel(logrus.TraceLevel)
		return
	}
	l.Warn("SetLogLevelMax: non-default logger, can't change level")
}

type defaultLogger struct {
	*logrus.Entry
}

func newDefaultLogger() Logger {
	l := &logrus.Logger{
		Formatter: &logrus.TextFormatter{DisableTimestamp: true},
		Level:     logrus.InfoLevel,
		Out:       os.Stderr,
		Hooks:     make(logrus.LevelHooks),
	}
	return &defaultLogger{Entry: l.WithFields(logrus.Fields{"pkg": "hci"})}
}

func (d *defaultLogger) ChildLogger(fields map[string]interface{}) Logger {
	return &defaultLogger{Entry: d.Entry.WithFields(fields)}
}
