package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// global accessible logger
var Log *logrus.Entry

// Packages log during startup and inside tests, so configure eagerly rather
// than from main only.
func init() {
	InitLogger()
}

func InitLogger() {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	if os.Getenv("PILINKS_ENV") == "production" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetLevel(logrus.DebugLevel)
	}

	Log = l.WithField("service", "pilinks")
}
