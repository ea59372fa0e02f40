package logs

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
			logrus.FieldKeyTime:  "time",
		},
	})
	return l
}

// SetLevel règle le niveau minimum ("debug", "info", "warn"...)
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
}

// LogJSON écrit une entrée JSON ; level vaut "DEBUG", "INFO", "WARN", "ERROR" ou "FATAL"
// et se retrouve tel quel dans "severity". Le filtrage suit SetLevel.
// FATAL n'arrête pas le process, c'est à l'appelant de le faire.
func LogJSON(level, message string, fields map[string]interface{}) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.WithFields(logrus.Fields(fields)).
		WithField("severity", strings.ToUpper(level)).
		Log(lvl, message)
}
