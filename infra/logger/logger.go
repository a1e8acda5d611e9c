package logger

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	corelogger "github.com/kilianp07/prosumption/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger discards everything.
type NopLogger = corelogger.NopLogger

var (
	levelMu sync.RWMutex
	level   = zerolog.InfoLevel
)

// SetLevel changes the minimum level of loggers created afterwards.
// Unknown names fall back to info.
func SetLevel(name string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	levelMu.Lock()
	level = lvl
	levelMu.Unlock()
}

func currentLevel() zerolog.Level {
	levelMu.RLock()
	defer levelMu.RUnlock()
	return level
}

// New returns a Logger for the given component. The output format is
// selected through the APP_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
