// Package logging wires structured logging for the fdskit daemons and
// tools: slog text output on stderr, optionally duplicated to a
// rotating local file.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs the default slog logger. When path is non-empty, log
// records are also appended to a rotating file there; the returned
// closer (nil otherwise) flushes and closes it.
func Setup(debug bool, path string) (io.Closer, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	var closer io.Closer
	if path != "" {
		fw, err := NewFileWriter(FileConfig{Path: path})
		if err != nil {
			return nil, err
		}
		out = io.MultiWriter(os.Stderr, fw)
		closer = fw
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})))
	return closer, nil
}
