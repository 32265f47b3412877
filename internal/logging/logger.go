package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
)

// Init routes the default slog logger to a file under the given directory.
// The TUI owns the terminal, so nothing may log to stdout or stderr while
// the program runs.
func Init(dir string, verbose bool) (io.Closer, error) {
	f, err := os.OpenFile(filepath.Join(dir, "tether.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(tint.NewHandler(f, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	})))
	return f, nil
}
