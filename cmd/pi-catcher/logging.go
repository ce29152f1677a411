package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/lixenwraith/pi-catcher/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging routes the standard logger to a size-rotated file in debug mode
// and discards output otherwise so the terminal stays clean
// Returns nil when logging is disabled
func setupLogging(cfg config.Log) *lumberjack.Logger {
	if !cfg.Debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	out := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, cfg.File),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return out
}
