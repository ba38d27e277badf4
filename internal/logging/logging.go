// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/salonflow/salonflow-admin/internal/config"
)

// Setup applies level and output settings to the global logger. When a log
// file is configured, output goes to both stderr and a size-rotated file.
func Setup(cfg config.LogConfig) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(parseLevel(cfg.Level))

	if strings.TrimSpace(cfg.File) == "" {
		log.SetOutput(os.Stderr)
		return
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSizeMB(cfg.MaxSizeMB),
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}

func parseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(strings.TrimSpace(strings.ToLower(level)))
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

func maxSizeMB(configured int) int {
	if configured <= 0 {
		return 100
	}
	return configured
}
