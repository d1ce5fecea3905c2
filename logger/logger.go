// Package logger provides the process-wide leveled logger. Output goes to
// the console, a log file, or both, depending on configuration. Before
// Init is called everything falls through to the standard logger, so
// packages can log during early startup and in tests without setup.
package logger

import (
	"io"
	"log"
	"os"
)

const (
	DEBUG = "debug"
	INFO  = "info"
	WARN  = "warn"
	ERROR = "error"
)

var (
	out      *log.Logger
	errOut   *log.Logger
	logFile  *os.File
	logLevel = INFO
)

// Init wires the logger to the configured destinations. file may be empty
// (console only); toConsole=false with a file writes to the file only.
func Init(file string, toConsole bool, level string) error {
	if level != "" {
		logLevel = level
	}

	var w io.Writer = os.Stdout
	var ew io.Writer = os.Stderr

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		logFile = f
		if toConsole {
			w = io.MultiWriter(os.Stdout, f)
			ew = io.MultiWriter(os.Stderr, f)
		} else {
			w = f
			ew = f
		}
	}

	out = log.New(w, "", log.LstdFlags)
	errOut = log.New(ew, "", log.LstdFlags)
	return nil
}

// Close closes the log file if one was opened.
func Close() error {
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}

func enabled(level string) bool {
	rank := map[string]int{DEBUG: 0, INFO: 1, WARN: 2, ERROR: 3}
	cur, ok := rank[logLevel]
	if !ok {
		cur = rank[INFO]
	}
	return rank[level] >= cur
}

func infoLogger() *log.Logger {
	if out != nil {
		return out
	}
	return log.Default()
}

func errLogger() *log.Logger {
	if errOut != nil {
		return errOut
	}
	return log.Default()
}

func Debugf(format string, v ...interface{}) {
	if enabled(DEBUG) {
		infoLogger().Printf("DEBUG: "+format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if enabled(INFO) {
		infoLogger().Printf(format, v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if enabled(WARN) {
		infoLogger().Printf("WARN: "+format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	errLogger().Printf("ERROR: "+format, v...)
}

func Fatalf(format string, v ...interface{}) {
	errLogger().Printf("FATAL: "+format, v...)
	Close()
	os.Exit(1)
}
