package main

import (
	"io"
	"log/slog"

	ssslog "github.com/fwojciec/sitescrape/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger returns the indented stderr logger, teed into a rotated JSON
// file when logFile is set. The returned func flushes and closes the file.
func newLogger(stderr io.Writer, verbose bool, logFile string) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	var h slog.Handler = ssslog.NewIndentHandler(stderr, level)

	if logFile == "" {
		return slog.New(h), func() {}
	}

	lj := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    20, // megabytes
		MaxBackups: 3,
		LocalTime:  true,
		Compress:   true,
	}
	file := slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(ssslog.NewTeeHandler(h, file)), func() { _ = lj.Close() }
}
