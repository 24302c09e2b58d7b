package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// NewLogger returns a logger configured from LOG_LEVEL and LOG_FILE. Without
// LOG_FILE it writes to fallback. The returned close func releases the log
// file, if one was opened.
func NewLogger(prefix string, fallback io.Writer) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, nil, errors.Wrap(err, "LOG_LEVEL")
	}

	w := fallback
	closeFn := func() error { return nil }
	if path := GetEnv("LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}
		w = f
		closeFn = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}
