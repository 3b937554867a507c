package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/tui"
)

// UI is the part of the terminal interface the app drives.
type UI interface {
	UnlockFlow(ctx context.Context, open tui.Opener) (service.EntryManager, *store.LoadReport, error)
	SetFormat(format string)
	MainLoop(ctx context.Context, entries service.EntryManager, report *store.LoadReport) error
}

type App struct {
	cfg *config.ClientConfig
	ui  UI
	log *logger.Logger

	vault *store.VaultStore
}

func NewApp(cfg *config.ClientConfig, ui UI, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("nil client config")
	}
	if ui == nil {
		return nil, errors.New("nil ui")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &App{cfg: cfg, ui: ui, log: log}, nil
}

// Run unlocks the vault and runs the main loop. A user who quits at the
// password prompt is not an error.
func (a *App) Run(ctx context.Context) error {
	entries, report, err := a.ui.UnlockFlow(ctx, a.open)
	if errors.Is(err, tui.ErrUserQuit) {
		a.log.Info().Msg("quit before unlock")
		return nil
	}
	if err != nil {
		return fmt.Errorf("unlock flow: %w", err)
	}
	defer func() {
		if cerr := entries.Close(); cerr != nil {
			a.log.Err(cerr).Msg("close vault")
		}
	}()

	if f, ok := a.vault.Format(); ok {
		a.ui.SetFormat(f.String())
	} else {
		a.ui.SetFormat("new vault")
	}

	if err = a.ui.MainLoop(ctx, entries, report); err != nil {
		return fmt.Errorf("main loop: %w", err)
	}
	return nil
}

// open is the [tui.Opener] handed to the unlock screen. Each attempt opens a
// fresh store; a failed attempt releases its lock before returning.
func (a *App) open(masterSecret string) (service.EntryManager, *store.LoadReport, error) {
	vault, err := store.Open(a.cfg.Vault.Path, masterSecret, a.storeOptions()...)
	if err != nil {
		return nil, nil, err
	}

	entries := service.NewEntryService(vault, a.log)
	report, err := entries.Unlock()
	if err != nil {
		if cerr := entries.Close(); cerr != nil {
			a.log.Err(cerr).Msg("close vault after failed unlock")
		}
		return nil, nil, err
	}

	a.vault = vault
	a.log.Info().
		Str("path", vault.Path()).
		Int("entries", len(report.Entries)).
		Int("skipped", report.Skipped).
		Msg("vault loaded")
	return entries, report, nil
}

func (a *App) storeOptions() []store.Option {
	opts := []store.Option{
		store.WithKDF(a.cfg.Vault.KDF),
		store.WithCipher(a.cfg.Vault.Cipher),
		store.WithLogger(a.log),
	}
	if a.cfg.Vault.DisableLock {
		opts = append(opts, store.WithoutLock())
	}
	return opts
}
