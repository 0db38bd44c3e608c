package cli

import (
	"context"
	"fmt"

	"github.com/martinnjensen/MetalWatch/internal/bus"
	"github.com/martinnjensen/MetalWatch/internal/config"
	"github.com/martinnjensen/MetalWatch/internal/crypto"
	"github.com/martinnjensen/MetalWatch/internal/notify"
	"github.com/martinnjensen/MetalWatch/internal/scraper"
	"github.com/martinnjensen/MetalWatch/internal/storage"
	"github.com/martinnjensen/MetalWatch/internal/workflow"
)

// app holds the wired-up pipeline shared by the run and serve commands.
type app struct {
	cfg   *config.Config
	store *storage.FileStore
	orch  *workflow.Orchestrator
}

// buildApp loads configuration, reconciles sources into the store, and
// wires scrapers, bus, notification handler and orchestrator together.
func buildApp(ctx context.Context, cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}

	enc := crypto.NewEncryptor(cfg.Passphrase)
	store, err := storage.New(cfg.DataDir, enc)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	if err := store.EnsureSources(ctx, cfg.SourceList()); err != nil {
		return nil, fmt.Errorf("reconciling sources: %w", err)
	}

	registry := scraper.NewRegistry()
	registry.Register(scraper.KeyHeavyMetal, "heavymetal.dk",
		scraper.NewHeavyMetal(scraper.NewHTTPFetcher()))

	b := bus.New()

	notifier, err := buildNotifier(ctx, cfg, store)
	if err != nil {
		return nil, err
	}
	notify.NewHandler(b, store, notifier)

	return &app{
		cfg:   cfg,
		store: store,
		orch:  workflow.New(store, registry, b),
	}, nil
}

// buildNotifier selects the notification channel. For email, the recipient
// from the stored preference profile takes precedence over the config
// fallback.
func buildNotifier(ctx context.Context, cfg *config.Config, store *storage.FileStore) (notify.Notifier, error) {
	switch cfg.Notify.Channel {
	case "email":
		to := cfg.Notify.Email.To
		if profile, err := store.Profile(ctx); err == nil && profile != nil && profile.NotifyAddress != "" {
			to = profile.NotifyAddress
		}
		return notify.NewEmailNotifier(notify.EmailConfig{
			Host:     cfg.Notify.Email.Host,
			Port:     cfg.Notify.Email.Port,
			Username: cfg.Notify.Email.Username,
			Password: cfg.Notify.Email.Password,
			From:     cfg.Notify.Email.From,
		}, to), nil
	case "console":
		return notify.NewConsoleNotifier(), nil
	default:
		return nil, fmt.Errorf("unknown notify channel: %s", cfg.Notify.Channel)
	}
}
