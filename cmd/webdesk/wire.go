package main

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"webdesk/pkg/apps"
	"webdesk/pkg/desktop"
	"webdesk/pkg/prefs"
	"webdesk/pkg/widgets"
)

func newLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	return log, nil
}

// newDesktop assembles a desktop from cfg.
func newDesktop(cfg config, log logrus.FieldLogger) (*desktop.Desktop, error) {
	registry := apps.Default()
	if cfg.Apps.File != "" {
		var err error
		if registry, err = apps.LoadFile(cfg.Apps.File); err != nil {
			return nil, err
		}
	}

	var store prefs.Store = prefs.NewMemoryStore()
	if cfg.Prefs.Path != "" {
		fs, err := prefs.NewFileStore(cfg.Prefs.Path, log)
		if err != nil {
			return nil, err
		}
		store = fs
	}

	var source widgets.MetricsSource = widgets.NewRandomSource(time.Now().UnixNano())
	if cfg.Metrics.Source == metricsHost {
		source = widgets.NewHostSource()
	}

	return desktop.New(desktop.Config{
		ScreenWidth:  cfg.Screen.Width,
		ScreenHeight: cfg.Screen.Height,
		Registry:     registry,
		Prefs:        store,
		Metrics:      source,
		Logger:       log,
	})
}
