// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

// Opener opens the vault with a master password and loads it. It is called
// from a Bubble Tea command, off the UI goroutine, because key derivation
// takes a noticeable amount of time.
type Opener func(masterSecret string) (service.EntryManager, *store.LoadReport, error)

// unlockModel is the master password screen. It renders one masked input
// and dispatches an async unlock command on enter. The program quits once
// the vault is open, or when the user gives up.
type unlockModel struct {
	open      Opener
	vaultPath string

	input      textinput.Model
	submitting bool
	errMsg     string

	entries    service.EntryManager
	report     *store.LoadReport
	quitByUser bool
}

func newUnlockModel(open Opener, vaultPath string) unlockModel {
	input := textinput.New()
	input.Placeholder = "master password"
	input.CharLimit = 1024
	input.Width = 40
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.Focus()

	return unlockModel{
		open:      open,
		vaultPath: vaultPath,
		input:     input,
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation.
func (m unlockModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - unlockDoneMsg: on success stores the opened vault and quits; on error
//     shows the reason and clears the input.
//   - esc / ctrl+c: quits without opening the vault.
//   - enter: dispatches the async unlock command.
//
// All other key events are forwarded to the input widget.
func (m unlockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case unlockDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeVaultError(msg.err)
			m.input.Reset()
			return m, nil
		}
		m.entries = msg.entries
		m.report = msg.report
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.forceQuit), key.Matches(msg, keys.esc):
			m.quitByUser = true
			return m, tea.Quit
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}
			// Surrounding whitespace is not part of the master password.
			secret := strings.TrimSpace(m.input.Value())
			if secret == "" {
				m.errMsg = humanizeVaultError(store.ErrEmptySecret)
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdUnlock(secret)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m unlockModel) View() string {
	var b strings.Builder
	b.WriteString("Vault     │ " + m.vaultPath + "\n")
	b.WriteString("──────────┼──────────────────────────────────────────\n")
	b.WriteString("Password  │ [" + m.input.View() + "]\n")

	if m.submitting {
		b.WriteString("\n[Unlocking...]\n")
	} else {
		b.WriteString("\n[Unlock]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg) + "\n")
	}

	return appStyle.Render(renderPage("UNLOCK VAULT", strings.TrimRight(b.String(), "\n"), "enter: unlock │ esc: quit"))
}

func (m unlockModel) cmdUnlock(secret string) tea.Cmd {
	open := m.open
	return func() tea.Msg {
		entries, report, err := open(secret)
		return unlockDoneMsg{entries: entries, report: report, err: err}
	}
}
