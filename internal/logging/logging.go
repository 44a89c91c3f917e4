// Package logging configures the process-wide standard logger.
//
// Logs go to stderr by default (stdout carries MCP protocol traffic), or to a
// size-rotated file when a path is configured.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables read by FromEnv.
const (
	EnvLevel = "PRINTAREA_LOG_LEVEL"
	EnvFile  = "PRINTAREA_LOG_FILE"
)

// Options controls Setup.
type Options struct {
	// Debug enables Debugf output.
	Debug bool

	// File, when non-empty, is the path of a rotating log file.
	File string
}

var debug atomic.Bool

// FromEnv returns Options built from PRINTAREA_LOG_LEVEL and
// PRINTAREA_LOG_FILE.
func FromEnv() Options {
	return Options{
		Debug: strings.EqualFold(os.Getenv(EnvLevel), "debug"),
		File:  os.Getenv(EnvFile),
	}
}

// Setup points the standard logger at stderr or a rotating file. The returned
// Closer releases the file; it is a no-op for stderr.
func Setup(opts Options) io.Closer {
	debug.Store(opts.Debug)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if opts.File == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}

	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // MB
		MaxBackups: 2,
		MaxAge:     28, // days
		Compress:   true,
	}
	log.SetOutput(lj)
	return lj
}

// DebugEnabled reports whether debug logging is on.
func DebugEnabled() bool {
	return debug.Load()
}

// Debugf logs with a [DEBUG] prefix when debug logging is on.
func Debugf(format string, v ...interface{}) {
	if !debug.Load() {
		return
	}
	_ = log.Output(2, "[DEBUG] "+fmt.Sprintf(format, v...))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
