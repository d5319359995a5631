package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/vancomm/minesweeper/internal/config"
)

// Setup configures level and formatting of every logger in loggers and, when
// cfg.Log.File is set, makes all of them also write JSON entries to that file,
// rotated by size and age.
func Setup(cfg config.Config, loggers ...*logrus.Logger) error {
	level := logrus.InfoLevel
	if cfg.Development() {
		level = logrus.DebugLevel
	}

	var hook logrus.Hook
	if cfg.Log.File != "" {
		var err error
		hook, err = rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to create log file hook: %w", err)
		}
	}

	for _, log := range loggers {
		log.SetLevel(level)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
		if hook != nil {
			log.AddHook(hook)
		}
	}
	return nil
}
