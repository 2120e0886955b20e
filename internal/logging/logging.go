// internal/logging/logging.go
// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Setup sets the log level and output of the standard logrus logger.
func Setup(level string, out io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if out != nil {
		log.SetOutput(out)
	}
	return nil
}
