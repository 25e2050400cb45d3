package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with a key-value call style so call sites stay free of
// logrus types.
type Logger struct {
	log *logrus.Logger
}

func NewLogger() *Logger {
	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
	return &Logger{log: log}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.log.WithFields(fields(args)).Info(msg)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log.WithFields(fields(args)).Warn(msg)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.log.WithFields(fields(args)).Error(msg)
}

// fields converts alternating key/value args into logrus fields. A trailing
// key with no value is kept with a nil value rather than dropped.
func fields(args []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		if i+1 < len(args) {
			f[key] = args[i+1]
		} else {
			f[key] = nil
		}
	}
	return f
}
