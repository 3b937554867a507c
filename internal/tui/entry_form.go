package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	formUsername = iota
	formPassword
	formPlace
)

// entryFormModel edits the three fields of an entry. index is -1 for a new
// entry, otherwise the position of the entry being edited.
type entryFormModel struct {
	inputs     []textinput.Model
	focus      int
	index      int
	submitting bool
	errMsg     string
}

func newEntryFormModel(index int, item *models.Entry) entryFormModel {
	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].CharLimit = 512
	}
	inputs[formUsername].Placeholder = "username"
	inputs[formPassword].Placeholder = "password"
	inputs[formPassword].EchoMode = textinput.EchoPassword
	inputs[formPassword].EchoCharacter = '*'
	inputs[formPlace].Placeholder = "place (site, service, host)"
	inputs[formUsername].Focus()

	m := entryFormModel{inputs: inputs, index: -1}
	if item == nil {
		return m
	}

	m.index = index
	m.inputs[formUsername].SetValue(item.Username())
	m.inputs[formPassword].SetValue(item.Password())
	m.inputs[formPlace].SetValue(item.Place())
	return m
}

func (m entryFormModel) editing() bool {
	return m.index >= 0
}

func (m entryFormModel) values() (username, password, place string) {
	return m.inputs[formUsername].Value(), m.inputs[formPassword].Value(), m.inputs[formPlace].Value()
}

func (m entryFormModel) toUpdate() models.EntryUpdate {
	username, password, place := m.values()
	return models.EntryUpdate{Username: &username, Password: &password, Place: &place}
}

// focusField moves focus to the input of the named field.
func (m *entryFormModel) focusField(field string) {
	target := m.focus
	switch field {
	case models.FieldUsername:
		target = formUsername
	case models.FieldPassword:
		target = formPassword
	case models.FieldPlace:
		target = formPlace
	}
	m.inputs[m.focus].Blur()
	m.focus = target
	m.inputs[m.focus].Focus()
}

func (m *entryFormModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *entryFormModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m entryFormModel) update(msg tea.Msg) (entryFormModel, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m entryFormModel) View() string {
	title := "NEW ENTRY"
	if m.editing() {
		title = "EDIT ENTRY"
	}

	var b strings.Builder
	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼──────────────────────────────────────────\n")
	b.WriteString("Username  │ [" + m.inputs[formUsername].View() + "]\n")
	b.WriteString("Password  │ [" + m.inputs[formPassword].View() + "]\n")
	b.WriteString("Place     │ [" + m.inputs[formPlace].View() + "]\n")
	if m.submitting {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg) + "\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: save")
}
