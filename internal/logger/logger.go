// Package logger создает логгер приложения по конфигурации.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"note-manager/internal/config"
)

// New создает logrus-логгер с уровнем из конфигурации.
// Неизвестный уровень заменяется на info с предупреждением.
func New(cfg *config.ConfigLogger) *logrus.Logger {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput как New, но пишет в out
func NewWithOutput(cfg *config.ConfigLogger, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})

	level := logrus.InfoLevel
	if cfg != nil && cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			log.Warnf("⚠️  Unknown log level %q, using %s", cfg.Level, level)
		} else {
			level = parsed
		}
	}
	log.SetLevel(level)

	return log
}
