package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/tocview/internal/app"
	"github.com/kk-code-lab/tocview/internal/config"
	"github.com/kk-code-lab/tocview/internal/logging"
	"github.com/kk-code-lab/tocview/internal/prefs"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, config.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "tocview: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args, os.Getenv, os.Stderr)
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputPath: cfg.LogFile,
	}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() {
		_ = logging.Sync()
	}()
	log := logging.Named("main")

	prefsPath := cfg.PrefsPath
	if prefsPath == "" {
		if prefsPath, err = prefs.DefaultPath(); err != nil {
			// Preferences then live for this session only.
			log.Warn("no preferences location", zap.Error(err))
		}
	}
	store, err := prefs.Open(prefsPath)
	if err != nil {
		return err
	}

	log.Info("starting",
		zap.String("server", cfg.Server),
		zap.String("codec", cfg.Codec),
		zap.String("extract_policy", string(cfg.ExtractPolicy)),
		zap.String("prefs", store.Path()))

	// Set UTF-8 as fallback encoding so asset names render on minimal terminals.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app, err := apppkg.NewApplication(cfg, store)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	return nil
}
