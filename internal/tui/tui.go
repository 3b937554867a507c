package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// Options configures the terminal UI.
type Options struct {
	VaultPath    string
	Format       string
	ClipboardTTL time.Duration
	BuildInfo    models.AppBuildInfo
}

type TUI struct {
	opts Options
	log  *logger.Logger
}

func New(opts Options, log *logger.Logger) *TUI {
	if log == nil {
		log = logger.Nop()
	}
	return &TUI{opts: opts, log: log}
}

// SetFormat sets the vault format shown in the info overlay.
func (t *TUI) SetFormat(format string) {
	t.opts.Format = format
}

// UnlockFlow asks for the master password until open succeeds or the user
// quits, in which case [ErrUserQuit] is returned.
func (t *TUI) UnlockFlow(ctx context.Context, open Opener) (service.EntryManager, *store.LoadReport, error) {
	model := newUnlockModel(open, t.opts.VaultPath)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		return nil, nil, runErr
	}

	result, ok := finalModel.(unlockModel)
	if !ok {
		return nil, nil, tea.ErrProgramKilled
	}
	if result.quitByUser || result.entries == nil {
		return nil, nil, ErrUserQuit
	}

	t.log.Info().Str("vault", t.opts.VaultPath).Msg("vault unlocked")
	return result.entries, result.report, nil
}

// MainLoop runs the entry browser until the user quits.
func (t *TUI) MainLoop(ctx context.Context, entries service.EntryManager, report *store.LoadReport) error {
	model := newVaultModel(entries, report, t.opts)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
