package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/renameio/v2"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	defaultCSVPath = "passwords.csv"
	exportFilePerm = 0o600
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenForm
	screenPath
)

type pathAction int

const (
	pathImport pathAction = iota
	pathExport
)

type vaultModel struct {
	entries      service.EntryManager
	clipboardTTL time.Duration
	info         models.AppBuildInfo
	vaultPath    string
	format       string

	currentScreen screen

	items     models.Entries
	visible   []int
	idx       int
	loading   bool
	readOnly  bool
	skipped   int
	searching bool
	search    textinput.Model
	reveal    bool

	form       entryFormModel
	pathInput  textinput.Model
	pathAction pathAction

	status        string
	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete int
	showInfo      bool
}

func newVaultModel(entries service.EntryManager, report *store.LoadReport, opts Options) vaultModel {
	search := textinput.New()
	search.Placeholder = "username or place"
	search.Prompt = "/ "
	search.Width = 40

	pathInput := textinput.New()
	pathInput.Width = 54

	m := vaultModel{
		entries:       entries,
		clipboardTTL:  opts.ClipboardTTL,
		info:          opts.BuildInfo,
		vaultPath:     opts.VaultPath,
		format:        opts.Format,
		loading:       true,
		readOnly:      entries.ReadOnly(),
		search:        search,
		pathInput:     pathInput,
		pendingDelete: -1,
	}
	if report != nil {
		m.skipped = report.Skipped
	}
	return m
}

func (m vaultModel) Init() tea.Cmd {
	return m.cmdLoadItems()
}

func (m vaultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.forceQuit) {
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				index := m.pendingDelete
				m.pendingDelete = -1
				return m, m.cmdDelete(index)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = -1
			}
			return m, nil
		}
		if m.showInfo {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
				m.showInfo = false
			}
			return m, nil
		}
	case listLoadedMsg:
		if msg.term != m.search.Value() {
			// results for a term the user has since edited
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.showErrorf(humanizeVaultError(msg.err))
			return m, nil
		}
		m.items = msg.items
		m.visible = msg.visible
		m.clampCursor()
		return m, nil
	case itemSavedMsg:
		m.form.submitting = false
		if msg.err != nil {
			var vErr *models.ValidationError
			if errors.As(msg.err, &vErr) {
				m.form.errMsg = vErr.Error()
				m.form.focusField(vErr.Field)
				return m, nil
			}
			m.showErrorf(humanizeVaultError(msg.err))
			return m, nil
		}
		if m.form.editing() {
			m.status = "Entry updated"
		} else {
			m.status = "Entry added"
		}
		m.currentScreen = screenList
		return m, tea.Batch(m.cmdLoadItems(), cmdClearStatus())
	case itemDeletedMsg:
		if msg.err != nil {
			m.showErrorf(humanizeVaultError(msg.err))
			return m, nil
		}
		m.status = "Entry deleted"
		m.currentScreen = screenList
		return m, tea.Batch(m.cmdLoadItems(), cmdClearStatus())
	case importDoneMsg:
		if msg.err != nil {
			m.showErrorf(humanizeVaultError(msg.err))
			return m, nil
		}
		m.status = fmt.Sprintf("Imported %d entries from %s (%d rejected)", msg.imported, msg.path, msg.rejected)
		return m, tea.Batch(m.cmdLoadItems(), cmdClearStatus())
	case exportDoneMsg:
		if msg.err != nil {
			m.showErrorf(humanizeVaultError(msg.err))
			return m, nil
		}
		m.status = fmt.Sprintf("Exported %d entries to %s (unencrypted)", msg.count, msg.path)
		return m, cmdClearStatus()
	case copiedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.status = "Copied " + msg.what
		if m.clipboardTTL > 0 {
			m.status += fmt.Sprintf(", clipboard clears in %s", m.clipboardTTL)
		}
		return m, cmdClearStatus()
	case clipboardClearedMsg:
		return m, nil
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenDetail:
		return m.updateDetail(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenPath:
		return m.updatePath(msg)
	default:
		return m.updateList(msg)
	}
}

func (m vaultModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.visible)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.search):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.esc):
		if m.search.Value() != "" {
			m.search.Reset()
			return m, m.cmdLoadItems()
		}
	case key.Matches(keyMsg, keys.enter):
		if _, _, ok := m.current(); !ok {
			m.status = "No entries"
			return m, nil
		}
		m.reveal = false
		m.currentScreen = screenDetail
	case key.Matches(keyMsg, keys.newItem):
		if m.readOnly {
			m.showErrorf(humanizeVaultError(service.ErrVaultUnreadable))
			return m, nil
		}
		m.form = newEntryFormModel(-1, nil)
		m.currentScreen = screenForm
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.importCSV):
		if m.readOnly {
			m.showErrorf(humanizeVaultError(service.ErrVaultUnreadable))
			return m, nil
		}
		return m.startPathPrompt(pathImport)
	case key.Matches(keyMsg, keys.exportCSV):
		return m.startPathPrompt(pathExport)
	case key.Matches(keyMsg, keys.info):
		m.showInfo = true
	default:
		return m.updateItemAction(keyMsg)
	}

	return m, nil
}

// updateItemAction handles the keys that act on the entry under the cursor;
// they behave the same in the list and the detail screen.
func (m vaultModel) updateItemAction(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	index, item, ok := m.current()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.edit):
		if m.readOnly {
			m.showErrorf(humanizeVaultError(service.ErrVaultUnreadable))
			return m, nil
		}
		m.form = newEntryFormModel(index, &item)
		m.currentScreen = screenForm
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.delete):
		if m.readOnly {
			m.showErrorf(humanizeVaultError(service.ErrVaultUnreadable))
			return m, nil
		}
		m.pendingDelete = index
		m.confirm = confirmModel{message: item.Username() + " @ " + item.Place()}
		m.showConfirm = true
	case key.Matches(keyMsg, keys.copy):
		return m, tea.Batch(cmdCopy("password", item.Password()), cmdClearClipboard(item.Password(), m.clipboardTTL))
	case key.Matches(keyMsg, keys.copyUser):
		return m, tea.Batch(cmdCopy("username", item.Username()), cmdClearClipboard(item.Username(), m.clipboardTTL))
	}

	return m, nil
}

func (m vaultModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.searching = false
			m.search.Blur()
			m.search.Reset()
			return m, m.cmdLoadItems()
		case key.Matches(keyMsg, keys.enter):
			m.searching = false
			m.search.Blur()
			return m, nil
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.idx = 0
		return m, tea.Batch(cmd, m.cmdLoadItems())
	}
	return m, cmd
}

func (m vaultModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.reveal = false
		m.currentScreen = screenList
		return m, nil
	case key.Matches(keyMsg, keys.reveal):
		m.reveal = !m.reveal
		return m, nil
	}

	return m.updateItemAction(keyMsg)
}

func (m vaultModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.form.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.form.submitting {
				return m, nil
			}
			m.form.submitting = true
			m.form.errMsg = ""
			if m.form.editing() {
				return m, m.cmdUpdate(m.form.index, m.form.toUpdate())
			}
			return m, m.cmdAdd(m.form.values())
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m vaultModel) startPathPrompt(action pathAction) (tea.Model, tea.Cmd) {
	m.pathAction = action
	m.pathInput.Reset()
	m.pathInput.SetValue(defaultCSVPath)
	m.pathInput.CursorEnd()
	m.pathInput.Focus()
	m.currentScreen = screenPath
	return m, textinput.Blink
}

func (m vaultModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.pathInput.Blur()
			m.currentScreen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				return m, nil
			}
			m.pathInput.Blur()
			m.currentScreen = screenList
			if m.pathAction == pathImport {
				return m, m.cmdImport(path)
			}
			return m, m.cmdExport(path)
		}
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m vaultModel) View() string {
	var body string
	switch m.currentScreen {
	case screenDetail:
		body = m.viewDetail()
	case screenForm:
		body = m.form.View()
	case screenPath:
		body = m.viewPath()
	default:
		body = m.viewList()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}
	if m.showInfo {
		body += "\n\n" + renderBuildInfoWindow(m.info, m.vaultPath, m.format)
	}

	return appStyle.Render(body)
}

func (m vaultModel) viewList() string {
	var b strings.Builder

	if m.readOnly {
		b.WriteString(warnStyle.Render(fmt.Sprintf("READ-ONLY: none of %d records could be decrypted. Wrong master password?", m.skipped)))
		b.WriteString("\n\n")
	} else if m.skipped > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d damaged records were skipped; they will be dropped on the next save.", m.skipped)))
		b.WriteString("\n\n")
	}

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(m.visible) == 0 && m.search.Value() != "":
		b.WriteString("No matches\n")
	case len(m.visible) == 0:
		b.WriteString("No entries yet. Press n to add one.\n")
	default:
		b.WriteString("  #   │ Place                    │ Username                 │ Password\n")
		b.WriteString("──────┼──────────────────────────┼──────────────────────────┼──────────\n")
		for row, index := range m.visible {
			item := m.items[index]
			cursor := " "
			if row == m.idx {
				cursor = ">"
			}
			fmt.Fprintf(&b, "%s %-4d│ %s │ %s │ %s\n",
				cursor,
				index+1,
				fitText(item.Place(), 24),
				fitText(item.Username(), 24),
				maskSecret(item.Password(), false),
			)
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	title := fmt.Sprintf("VAULT %s (%d entries)", m.vaultPath, len(m.items))
	hotKeys := "n: new │ enter: open │ e: edit │ d: delete │ c/u: copy pass/user │ /: search │ i/x: import/export csv │ ?: info │ q: quit"
	if m.searching {
		hotKeys = "enter: keep filter │ esc: clear filter"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m vaultModel) viewDetail() string {
	_, item, ok := m.current()
	if !ok {
		return renderPage("ENTRY", "Entry not found", "esc: back")
	}

	var b strings.Builder
	b.WriteString("Place     │ " + item.Place() + "\n")
	b.WriteString("Username  │ " + item.Username() + "\n")
	b.WriteString("Password  │ " + maskSecret(item.Password(), m.reveal) + "\n")
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("ENTRY", strings.TrimRight(b.String(), "\n"),
		"esc: back │ space: show/hide │ c: copy password │ u: copy username │ e: edit │ d: delete")
}

func (m vaultModel) viewPath() string {
	title := "IMPORT CSV"
	note := "Rows: username,password,place. A header row is detected and skipped."
	if m.pathAction == pathExport {
		title = "EXPORT CSV"
		note = "The exported file is NOT encrypted. Delete it when you are done."
	}

	out := "File  │ [" + m.pathInput.View() + "]\n\n" + note
	return renderPage(title, out, "enter: confirm │ esc: back")
}

// current returns the vault index and entry under the cursor.
func (m vaultModel) current() (int, models.Entry, bool) {
	if m.idx < 0 || m.idx >= len(m.visible) {
		return -1, models.Entry{}, false
	}
	index := m.visible[m.idx]
	if index < 0 || index >= len(m.items) {
		return -1, models.Entry{}, false
	}
	return index, m.items[index], true
}

func (m *vaultModel) clampCursor() {
	if m.idx >= len(m.visible) {
		m.idx = len(m.visible) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
	if m.currentScreen == screenDetail {
		if _, _, ok := m.current(); !ok {
			m.currentScreen = screenList
		}
	}
}

func (m *vaultModel) showErrorf(message string) {
	m.errorOverlay.message = message
	m.showError = true
}

func (m vaultModel) cmdLoadItems() tea.Cmd {
	entries := m.entries
	term := m.search.Value()

	return func() tea.Msg {
		items, err := entries.List()
		if err != nil {
			return listLoadedMsg{term: term, err: err}
		}
		visible, err := entries.Search(term)
		if err != nil {
			return listLoadedMsg{term: term, err: err}
		}
		return listLoadedMsg{term: term, items: items, visible: visible}
	}
}

func (m vaultModel) cmdAdd(username, password, place string) tea.Cmd {
	entries := m.entries
	return func() tea.Msg {
		_, err := entries.Add(username, password, place)
		return itemSavedMsg{err: err}
	}
}

func (m vaultModel) cmdUpdate(index int, upd models.EntryUpdate) tea.Cmd {
	entries := m.entries
	return func() tea.Msg {
		_, err := entries.Update(index, upd)
		return itemSavedMsg{err: err}
	}
}

func (m vaultModel) cmdDelete(index int) tea.Cmd {
	entries := m.entries
	return func() tea.Msg {
		return itemDeletedMsg{err: entries.Delete(index)}
	}
}

func (m vaultModel) cmdImport(path string) tea.Cmd {
	entries := m.entries
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{path: path, err: fmt.Errorf("open %s: %w", path, err)}
		}
		defer f.Close()

		imported, rejected, err := entries.ImportCSV(f)
		return importDoneMsg{path: path, imported: imported, rejected: rejected, err: err}
	}
}

func (m vaultModel) cmdExport(path string) tea.Cmd {
	entries := m.entries
	count := len(m.items)
	return func() tea.Msg {
		// Rows go straight to the temp file; the export never sits whole in memory.
		f, err := renameio.NewPendingFile(path, renameio.WithPermissions(exportFilePerm))
		if err != nil {
			return exportDoneMsg{path: path, err: fmt.Errorf("create %s: %w", path, err)}
		}
		defer f.Cleanup()

		if err = entries.ExportCSV(f); err != nil {
			return exportDoneMsg{path: path, err: err}
		}
		if err = f.CloseAtomicallyReplace(); err != nil {
			return exportDoneMsg{path: path, err: fmt.Errorf("write %s: %w", path, err)}
		}
		return exportDoneMsg{path: path, count: count}
	}
}
