// Package logging configures the application logger: structured events go to
// a flat file per severity (info.log / warn.log / error.log), each capped at
// 5MB before rotation. In development everything is mirrored to the console.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// levelRouter dispatches each event to the file matching its severity.
// Fatal and panic events land in error.log.
type levelRouter struct {
	info io.Writer
	warn io.Writer
	err  io.Writer
}

func (r *levelRouter) Write(p []byte) (int, error) {
	return r.info.Write(p)
}

func (r *levelRouter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	switch {
	case level >= zerolog.ErrorLevel:
		return r.err.Write(p)
	case level == zerolog.WarnLevel:
		return r.warn.Write(p)
	default:
		return r.info.Write(p)
	}
}

// New builds the logger writing into dir. env selects console mirroring:
// "development" adds a human-readable stdout stream.
func New(dir, env string) (zerolog.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), err
	}

	router := &levelRouter{}
	for _, f := range []struct {
		name string
		dst  *io.Writer
	}{
		{"info.log", &router.info},
		{"warn.log", &router.warn},
		{"error.log", &router.err},
	} {
		rf, err := newRotatingFile(filepath.Join(dir, f.name))
		if err != nil {
			return zerolog.Nop(), err
		}
		*f.dst = rf
	}

	var w zerolog.LevelWriter = router
	if env == "development" {
		w = zerolog.MultiLevelWriter(router, zerolog.ConsoleWriter{Out: os.Stdout})
	}

	logger := zerolog.New(w).With().Timestamp().Logger()

	// Redirect zerolog's global logger for any library that uses it.
	log.Logger = logger

	return logger, nil
}
