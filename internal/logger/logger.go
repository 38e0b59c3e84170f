// Package logger exposes the shared application loggers. Info and error
// streams are separated so operational noise and failures can be rotated
// and shipped independently.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InfoLogger records request flow and lifecycle events.
var InfoLogger = logrus.New()

// ErrorLogger records failures: broker outages, storage errors, rejected
// transitions that indicate bugs in callers.
var ErrorLogger = logrus.New()

// Init configures both loggers to write JSON lines to rotating files
// under logs/ while mirroring to stdout/stderr. env selects verbosity:
// anything but "prod" enables debug logging.
func Init(env string) {
	level := logrus.DebugLevel
	if env == "prod" {
		level = logrus.InfoLevel
	}

	InfoLogger.SetLevel(level)
	InfoLogger.SetFormatter(&logrus.JSONFormatter{})
	InfoLogger.SetOutput(io.MultiWriter(os.Stdout, rotatingFile("logs/info.log")))

	ErrorLogger.SetLevel(logrus.WarnLevel)
	ErrorLogger.SetFormatter(&logrus.JSONFormatter{})
	ErrorLogger.SetOutput(io.MultiWriter(os.Stderr, rotatingFile("logs/error.log")))
}

func rotatingFile(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
}
