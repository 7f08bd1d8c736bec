// Package logging configures the logrus logger used by the blockdsp command.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to w at the named level. An empty
// level means info.
func New(w io.Writer, level string) (*logrus.Logger, error) {
	lvl := logrus.InfoLevel
	if level != "" {
		var err error
		lvl, err = logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
		QuoteEmptyFields: true,
	})
	return log, nil
}

// Operation returns an entry tagged with the operation name and any extra
// fields.
func Operation(log logrus.FieldLogger, op string, fields logrus.Fields) *logrus.Entry {
	entry := log.WithField("op", op)
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	return entry
}
