// Package logging configures the process-wide logger: human-readable lines
// on stderr, optionally mirrored to a log file in the work directory.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger. logFile may be empty to log
// to stderr only; a file that cannot be opened is reported and skipped.
func Setup(debug bool, logFile string) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.InfoLevel)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	out := io.Writer(os.Stderr)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logrus.WithError(err).Warn("cannot open log file, logging to stderr only")
		} else {
			out = io.MultiWriter(os.Stderr, f)
		}
	}
	logrus.SetOutput(out)
}
