// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"sync"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// EntryService keeps the unlocked vault in memory and writes the whole
// collection back through [store.VaultStorage] after every mutation. When a
// save fails the in-memory collection is restored, so memory and disk never
// disagree.
type EntryService struct {
	storage store.VaultStorage
	log     *logger.Logger

	mu       sync.RWMutex
	entries  models.Entries
	report   store.LoadReport
	unlocked bool
}

// NewEntryService builds a service over storage. A nil log discards output.
func NewEntryService(storage store.VaultStorage, log *logger.Logger) *EntryService {
	if log == nil {
		log = logger.Nop()
	}
	return &EntryService{
		storage: storage,
		log:     log,
	}
}

func (s *EntryService) Unlock() (*store.LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize vault: %w", err)
	}

	report, err := s.storage.LoadWithReport()
	if err != nil {
		return nil, fmt.Errorf("load vault: %w", err)
	}

	s.entries = report.Entries.Clone()
	s.report = *report
	s.report.Entries = s.entries.Clone()
	s.unlocked = true

	if s.readOnly() {
		s.log.Warn().Int("skipped", report.Skipped).Msg("no record could be decoded; vault opened read-only")
	}
	return report, nil
}

func (s *EntryService) List() (models.Entries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.unlocked {
		return nil, ErrVaultLocked
	}
	return s.entries.Clone(), nil
}

func (s *EntryService) Search(term string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.unlocked {
		return nil, ErrVaultLocked
	}
	return s.entries.Search(term), nil
}

func (s *EntryService) Add(username, password, place string) (models.Entry, error) {
	entry, err := models.NewEntry(username, password, place)
	if err != nil {
		return models.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.writable(); err != nil {
		return models.Entry{}, err
	}

	next := append(s.entries.Clone(), entry)
	if err = s.commit(next); err != nil {
		return models.Entry{}, fmt.Errorf("save new entry: %w", err)
	}

	s.log.Info().Int("entries", len(s.entries)).Msg("entry added")
	return entry, nil
}

func (s *EntryService) Update(index int, upd models.EntryUpdate) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable(); err != nil {
		return models.Entry{}, err
	}
	if err := s.checkIndex(index); err != nil {
		return models.Entry{}, err
	}

	updated, err := s.entries[index].Update(upd)
	if err != nil {
		return models.Entry{}, err
	}

	next := s.entries.Clone()
	next[index] = updated
	if err = s.commit(next); err != nil {
		return models.Entry{}, fmt.Errorf("save updated entry: %w", err)
	}

	s.log.Info().Int("index", index).Msg("entry updated")
	return updated, nil
}

func (s *EntryService) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable(); err != nil {
		return err
	}
	if err := s.checkIndex(index); err != nil {
		return err
	}

	next := make(models.Entries, 0, len(s.entries)-1)
	next = append(next, s.entries[:index]...)
	next = append(next, s.entries[index+1:]...)
	if err := s.commit(next); err != nil {
		return fmt.Errorf("save after delete: %w", err)
	}

	s.log.Info().Int("index", index).Int("entries", len(s.entries)).Msg("entry deleted")
	return nil
}

func (s *EntryService) Report() store.LoadReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := s.report
	r.Entries = s.report.Entries.Clone()
	r.SkippedLines = append([]int(nil), s.report.SkippedLines...)
	return r
}

func (s *EntryService) ReadOnly() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.readOnly()
}

func (s *EntryService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.report = store.LoadReport{}
	s.unlocked = false
	return s.storage.Close()
}

// commit saves next and makes it the current collection. On failure the
// current collection is left untouched.
func (s *EntryService) commit(next models.Entries) error {
	if err := s.storage.Save(next); err != nil {
		s.log.Err(err).Msg("vault save failed; changes rolled back")
		return err
	}
	s.entries = next
	return nil
}

func (s *EntryService) writable() error {
	if !s.unlocked {
		return ErrVaultLocked
	}
	if s.readOnly() {
		return ErrVaultUnreadable
	}
	return nil
}

func (s *EntryService) readOnly() bool {
	return s.report.Skipped > 0 && len(s.report.Entries) == 0
}

func (s *EntryService) checkIndex(index int) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("%w: index %d", ErrEntryNotFound, index)
	}
	return nil
}
