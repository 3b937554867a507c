package tui

import (
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

type unlockDoneMsg struct {
	entries service.EntryManager
	report  *store.LoadReport
	err     error
}

// listLoadedMsg carries the search term the results were computed for.
type listLoadedMsg struct {
	term    string
	items   models.Entries
	visible []int
	err     error
}

type itemSavedMsg struct {
	err error
}

type itemDeletedMsg struct {
	err error
}

type importDoneMsg struct {
	path     string
	imported int
	rejected int
	err      error
}

type exportDoneMsg struct {
	path  string
	count int
	err   error
}

type copiedMsg struct {
	what string
	err  error
}

type clipboardClearedMsg struct{}

type clearStatusMsg struct{}
