// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/awnumar/memguard"
	"github.com/google/renameio/v2"

	"github.com/MKhiriev/go-pass-vault/internal/codec"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	vaultFilePerm = 0o600
	vaultDirPerm  = 0o700
)

// LoadReport is the result of a best-effort load.
type LoadReport struct {
	// Entries are the records that decoded successfully, in file order.
	Entries models.Entries

	// Skipped counts non-blank record lines that failed to decode.
	Skipped int

	// SkippedLines holds the 1-based file line numbers of skipped records.
	SkippedLines []int
}

// VaultStore owns one vault file on disk. It is the only component that
// touches the file.
//
// Key material is derived once, the first time the store needs it (the
// file's header decides the KDF parameters), and the master secret is wiped
// right after. A VaultStore is safe for use by one goroutine at a time; calls
// are serialized internally, and an advisory lock file guards against other
// processes.
type VaultStore struct {
	path         string
	preferred    Format
	lockDisabled bool
	lock         *vaultLock
	log          *logger.Logger

	mu     sync.Mutex
	secret *memguard.LockedBuffer
	format *Format
	engine *crypto.Engine
	codec  *codec.RecordCodec
	closed bool
}

// Open prepares a store for the vault at path. It does not touch the
// filesystem. The master secret is copied into protected memory.
func Open(path, masterSecret string, opts ...Option) (*VaultStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}
	if masterSecret == "" {
		return nil, ErrEmptySecret
	}

	s := &VaultStore{
		path:      filepath.Clean(path),
		preferred: DefaultFormat(),
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.preferred.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vault format: %w", err)
	}
	if !s.lockDisabled {
		s.lock = newVaultLock(s.path)
	}

	s.secret = memguard.NewBufferFromBytes([]byte(masterSecret))
	return s, nil
}

// Path returns the vault file path.
func (s *VaultStore) Path() string {
	return s.path
}

// Format returns the resolved vault format. ok is false until the store has
// read or written a non-empty vault.
func (s *VaultStore) Format() (f Format, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == nil {
		return Format{}, false
	}
	return *s.format, true
}

// Initialize creates an empty vault file (and missing parent directories)
// if the file does not exist. Existing content is never touched.
func (s *VaultStore) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: stat %s: %w", ErrIO, s.path, err)
	}

	if err := s.ensureDir(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, vaultFilePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("%w: create %s: %w", ErrIO, s.path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, s.path, err)
	}

	s.log.Info().Str("path", s.path).Msg("created empty vault file")
	return nil
}

// Load returns every decodable record in file order. See [VaultStore.LoadWithReport].
func (s *VaultStore) Load() (models.Entries, error) {
	report, err := s.LoadWithReport()
	if err != nil {
		return nil, err
	}
	return report.Entries, nil
}

// LoadWithReport reads the whole vault file and decodes it line by line.
//
// An absent or empty file is an empty vault. Lines that fail to decode (bad
// base64, failed authentication, wrong field count, invalid entry) are
// skipped and counted, as are lines that are not valid UTF-8; they never fail
// the load. Only file-level problems are returned: I/O errors, a file with no
// text line at all and a malformed header.
func (s *VaultStore) LoadWithReport() (*LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	report := &LoadReport{Entries: models.Entries{}}

	// Nothing to read (or lock) when the directory itself is missing.
	if _, err := os.Stat(filepath.Dir(s.path)); errors.Is(err, fs.ErrNotExist) {
		return report, nil
	}

	release, err := s.lock.acquire(false)
	if err != nil {
		return nil, err
	}
	defer s.release(release)

	data, err := s.readFile()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		s.log.Debug().Str("path", s.path).Msg("vault is empty")
		return report, nil
	}

	lines, err := splitText(data)
	if err != nil {
		return nil, err
	}
	first := 0

	format := LegacyFormat()
	if isHeader(lines[0]) {
		if format, err = parseHeader(lines[0]); err != nil {
			return nil, err
		}
		first = 1
	}

	if err = s.unlock(format); err != nil {
		return nil, err
	}

	for i := first; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if !utf8.ValidString(line) {
			report.Skipped++
			report.SkippedLines = append(report.SkippedLines, i+1)
			s.log.Debug().Str("path", s.path).Int("line", i+1).Msg("skipping record that is not text")
			continue
		}

		entry, err := s.codec.Decode(line)
		if err != nil {
			report.Skipped++
			report.SkippedLines = append(report.SkippedLines, i+1)
			s.log.Debug().Str("path", s.path).Int("line", i+1).Err(err).Msg("skipping undecodable record")
			continue
		}
		report.Entries = append(report.Entries, entry)
	}

	event := s.log.Info()
	if report.Skipped > 0 {
		event = s.log.Warn()
	}
	event.Str("path", s.path).
		Int("loaded", len(report.Entries)).
		Int("skipped", report.Skipped).
		Msg("vault loaded")

	return report, nil
}

// Save encodes every entry and atomically replaces the vault file with the
// result (temporary file in the same directory, fsync, rename). A crash
// leaves either the previous or the new version on disk, never a mix.
func (s *VaultStore) Save(entries models.Entries) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if err := s.ensureDir(); err != nil {
		return err
	}

	release, err := s.lock.acquire(true)
	if err != nil {
		return err
	}
	defer s.release(release)

	if s.engine == nil {
		format, err := s.resolveFormat()
		if err != nil {
			return err
		}
		if err = s.unlock(format); err != nil {
			return err
		}
	}

	var b strings.Builder
	if s.format.HasHeader() {
		b.WriteString(s.format.header())
		b.WriteByte('\n')
	}
	for i, e := range entries {
		line, err := s.codec.Encode(e)
		if err != nil {
			return fmt.Errorf("encode entry %d: %w", i, err)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if err = renameio.WriteFile(s.path, []byte(b.String()), vaultFilePerm); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, s.path, err)
	}

	s.log.Info().Str("path", s.path).Int("records", len(entries)).Msg("vault saved")
	return nil
}

// Close wipes the derived key and, if still held, the master secret.
// Every later call on the store returns [ErrStoreClosed].
func (s *VaultStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.engine != nil {
		s.engine.Destroy()
		s.engine = nil
	}
	if s.secret != nil {
		s.secret.Destroy()
		s.secret = nil
	}
	s.codec = nil
	return nil
}

// resolveFormat decides the format for the first write: the existing file's
// header, the legacy format for a non-empty headerless file, or the preferred
// format with a fresh salt for a new vault.
func (s *VaultStore) resolveFormat() (Format, error) {
	data, err := s.readFile()
	if err != nil {
		return Format{}, err
	}

	if len(data) > 0 {
		lines, err := splitText(data)
		if err != nil {
			return Format{}, err
		}
		if isHeader(lines[0]) {
			return parseHeader(lines[0])
		}
		return LegacyFormat(), nil
	}

	f := s.preferred
	if f.KDF.Salted() {
		salt, err := crypto.GenerateSalt()
		if err != nil {
			return Format{}, err
		}
		f.KDF = f.KDF.WithSalt(salt)
	}
	return f, nil
}

// unlock derives the key for format, builds the engine and codec, and wipes
// the master secret. It runs at most once per store.
func (s *VaultStore) unlock(format Format) error {
	if s.engine != nil {
		if s.format.header() != format.header() {
			s.log.Warn().Str("path", s.path).Msg("vault header changed since unlock; records may fail to decode")
		}
		return nil
	}

	start := time.Now()
	key, err := crypto.DeriveKey(s.secret.Bytes(), format.KDF)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}

	engine, err := crypto.NewEngine(format.Cipher, key)
	if err != nil {
		return fmt.Errorf("create encryption engine: %w", err)
	}

	s.secret.Destroy()
	s.secret = nil

	s.engine = engine
	s.codec = codec.NewRecordCodec(engine)
	s.format = &format

	s.log.Debug().
		Str("kdf", format.KDF.Algorithm).
		Str("cipher", format.Cipher).
		Dur("took", time.Since(start)).
		Msg("vault key derived")
	return nil
}

// readFile returns the vault file content; a missing file reads as empty.
func (s *VaultStore) readFile() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, s.path, err)
	}
	return data, nil
}

// splitText splits the vault content into lines. A single line that is not
// valid UTF-8 is left to the record loop to skip; the file as a whole is
// rejected only when the header is not text or when no line is.
func splitText(data []byte) ([]string, error) {
	lines := strings.Split(string(data), "\n")
	if isHeader(lines[0]) && !utf8.ValidString(lines[0]) {
		return nil, fmt.Errorf("%w: header line", ErrNotText)
	}

	var text, binary int
	for _, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
		case utf8.ValidString(line):
			text++
		default:
			binary++
		}
	}
	if binary > 0 && text == 0 {
		return nil, ErrNotText
	}
	return lines, nil
}

func (s *VaultStore) ensureDir() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, vaultDirPerm); err != nil {
		return fmt.Errorf("%w: create directory %s: %w", ErrIO, dir, err)
	}
	return nil
}

func (s *VaultStore) release(release func() error) {
	if err := release(); err != nil {
		s.log.Err(err).Str("path", s.path).Msg("failed to release vault lock")
	}
}
