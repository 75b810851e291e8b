package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger writing to out at the given level. Unknown
// levels fall back to warning.
func New(out io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.SetLevel(logrus.WarnLevel)
		log.WithField("requested", level).Warn("unknown log level, using warning")
		return log
	}
	log.SetLevel(lvl)
	return log
}
