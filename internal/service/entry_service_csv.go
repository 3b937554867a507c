package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-pass-vault/models"
)

var csvHeader = []string{models.FieldUsername, models.FieldPassword, models.FieldPlace}

func (s *EntryService) ImportCSV(r io.Reader) (imported, rejected int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var batch models.Entries
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %w", ErrImport, err)
		}
		if row == 0 && isCSVHeader(record) {
			continue
		}

		entry, err := entryFromRecord(record)
		if err != nil {
			rejected++
			s.log.Debug().Int("row", row+1).Err(err).Msg("csv row rejected")
			continue
		}
		batch = append(batch, entry)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.writable(); err != nil {
		return 0, rejected, err
	}
	if len(batch) == 0 {
		return 0, rejected, nil
	}

	next := append(s.entries.Clone(), batch...)
	if err = s.commit(next); err != nil {
		return 0, rejected, fmt.Errorf("save imported entries: %w", err)
	}

	s.log.Info().Int("imported", len(batch)).Int("rejected", rejected).Msg("csv import finished")
	return len(batch), rejected, nil
}

func (s *EntryService) ExportCSV(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.unlocked {
		return ErrVaultLocked
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range s.entries {
		if err := writer.Write([]string{e.Username(), e.Password(), e.Place()}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	s.log.Info().Int("exported", len(s.entries)).Msg("csv export finished")
	return nil
}

// entryFromRecord builds an entry from the first three columns. Missing
// columns read as empty and fail validation.
func entryFromRecord(record []string) (models.Entry, error) {
	fields := make([]string, len(csvHeader))
	copy(fields, record)
	return models.NewEntry(fields[0], fields[1], fields[2])
}

func isCSVHeader(record []string) bool {
	if len(record) < len(csvHeader) {
		return false
	}
	for i, name := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(record[i]), name) {
			return false
		}
	}
	return true
}
