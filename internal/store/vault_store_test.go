// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/codec"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/models"
)

// cheapKDF keeps Argon2id fast in tests.
var cheapKDF = crypto.KDFParams{Algorithm: crypto.KDFArgon2id, Time: 1, Memory: 64, Threads: 1}

func vaultPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "passwords.enc")
}

func openStore(t *testing.T, path, secret string, opts ...Option) *VaultStore {
	t.Helper()
	opts = append([]Option{WithKDF(cheapKDF)}, opts...)
	s, err := Open(path, secret, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustEntry(t *testing.T, u, p, place string) models.Entry {
	t.Helper()
	e, err := models.NewEntry(u, p, place)
	require.NoError(t, err)
	return e
}

func sampleEntries(t *testing.T) models.Entries {
	return models.Entries{
		mustEntry(t, "alice", "pw1", "mail"),
		mustEntry(t, "bob", "pw2", "bank"),
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open("", "S1")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Open(vaultPath(t), "")
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = Open(vaultPath(t), "S1", WithCipher("des"))
	assert.ErrorIs(t, err, crypto.ErrUnsupportedCipher)

	_, err = Open(vaultPath(t), "S1", WithKDF(crypto.KDFParams{Algorithm: "bcrypt"}))
	assert.ErrorIs(t, err, crypto.ErrUnsupportedKDF)
}

func TestOpen_DoesNotTouchFilesystem(t *testing.T) {
	path := vaultPath(t)
	openStore(t, path, "S1")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestVaultStore_EmptyVault(t *testing.T) {
	path := vaultPath(t)
	s := openStore(t, path, "S1")

	require.NoError(t, s.Initialize())

	entries, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
	assert.Equal(t, os.FileMode(vaultFilePerm), info.Mode().Perm())
}

func TestVaultStore_LoadMissingFile(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "nested", "dir", "vault.enc"), "S1")

	report, err := s.LoadWithReport()
	require.NoError(t, err)
	assert.Empty(t, report.Entries)
	assert.Zero(t, report.Skipped)
}

func TestVaultStore_InitializeCreatesParentsAndNeverTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "vault.enc")
	s := openStore(t, path, "S1")

	require.NoError(t, s.Initialize())
	require.NoError(t, s.Initialize())

	require.NoError(t, os.WriteFile(path, []byte("not a record\n"), 0o600))
	require.NoError(t, s.Initialize())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not a record\n", string(data))
}

func TestVaultStore_EndToEnd(t *testing.T) {
	formats := map[string][]Option{
		"argon2id aes-gcm": nil,
		"argon2id xchacha": {WithCipher(crypto.CipherXChaCha20Poly1305)},
		"legacy":           {WithLegacyFormat()},
		"sha256 xchacha":   {WithKDF(crypto.LegacyKDFParams()), WithCipher(crypto.CipherXChaCha20Poly1305)},
		"argon2id no lock": {WithoutLock()},
	}

	for name, opts := range formats {
		t.Run(name, func(t *testing.T) {
			path := vaultPath(t)
			want := sampleEntries(t)

			s1 := openStore(t, path, "S1", opts...)
			require.NoError(t, s1.Initialize())
			require.NoError(t, s1.Save(want))
			require.NoError(t, s1.Close())

			reopened := openStore(t, path, "S1", opts...)
			got, err := reopened.Load()
			require.NoError(t, err)
			assert.Equal(t, want, got)

			wrong := openStore(t, path, "S2", opts...)
			report, err := wrong.LoadWithReport()
			require.NoError(t, err)
			assert.Empty(t, report.Entries)
			assert.Equal(t, 2, report.Skipped)
		})
	}
}

func TestVaultStore_SaveIsFullRewrite(t *testing.T) {
	path := vaultPath(t)
	s := openStore(t, path, "S1")

	require.NoError(t, s.Save(sampleEntries(t)))

	only := models.Entries{mustEntry(t, "carol", "pw3", "github")}
	require.NoError(t, s.Save(only))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, only, got)

	require.NoError(t, s.Save(nil))
	got, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVaultStore_SaveLeavesNoTempFiles(t *testing.T) {
	path := vaultPath(t)
	s := openStore(t, path, "S1", WithoutLock())

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Save(sampleEntries(t)))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(vaultFilePerm), info.Mode().Perm())
}

func TestVaultStore_LockFile(t *testing.T) {
	path := vaultPath(t)
	s := openStore(t, path, "S1")

	require.NoError(t, s.Save(sampleEntries(t)))

	_, err := os.Stat(path + lockSuffix)
	assert.NoError(t, err, "advisory lock file expected next to the vault")
}

func TestVaultStore_PartialCorruption(t *testing.T) {
	path := vaultPath(t)
	s := openStore(t, path, "S1")

	want := models.Entries{
		mustEntry(t, "alice", "pw1", "mail"),
		mustEntry(t, "bob", "pw2", "bank"),
		mustEntry(t, "carol", "pw3", "github"),
	}
	require.NoError(t, s.Save(want))

	lines := readLines(t, path)
	require.Len(t, lines, 4) // header + 3 records

	// Tamper with a copy of bob's record.
	env, err := base64.StdEncoding.DecodeString(lines[2])
	require.NoError(t, err)
	env[len(env)/2] ^= 0xFF
	tampered := base64.StdEncoding.EncodeToString(env)

	notText := []byte(lines[1])
	notText[3] |= 0x80

	corrupted := strings.Join([]string{
		lines[0],
		"garbage-that-is-not-base64!",
		lines[1],
		tampered,
		"",
		lines[2],
		base64.StdEncoding.EncodeToString([]byte("short")),
		lines[3],
		"AAAA",
		string(notText),
	}, "\r\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(corrupted), 0o600))

	reopened := openStore(t, path, "S1")
	report, err := reopened.LoadWithReport()
	require.NoError(t, err)

	assert.Equal(t, want, report.Entries)
	assert.Equal(t, 5, report.Skipped)
	assert.Equal(t, []int{2, 4, 7, 9, 10}, report.SkippedLines)
}

func TestVaultStore_NonTextRecordIsSkipped(t *testing.T) {
	path := vaultPath(t)
	s := openStore(t, path, "S1")
	require.NoError(t, s.Save(sampleEntries(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-5] |= 0x80 // inside the last record line
	require.NoError(t, os.WriteFile(path, data, 0o600))

	reopened := openStore(t, path, "S1")
	report, err := reopened.LoadWithReport()
	require.NoError(t, err)
	assert.Equal(t, models.Entries{mustEntry(t, "alice", "pw1", "mail")}, report.Entries)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, []int{3}, report.SkippedLines)

	require.NoError(t, reopened.Save(report.Entries))
	again, err := openStore(t, path, "S1").LoadWithReport()
	require.NoError(t, err)
	assert.Len(t, again.Entries, 1)
	assert.Zero(t, again.Skipped)
}

func TestVaultStore_HeaderFormat(t *testing.T) {
	path := vaultPath(t)
	s := openStore(t, path, "S1")

	_, ok := s.Format()
	assert.False(t, ok)

	require.NoError(t, s.Save(sampleEntries(t)))

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "$gpv$1$argon2id$m=64,t=1,p=1$aes-256-gcm$"), lines[0])

	f, ok := s.Format()
	require.True(t, ok)
	assert.Len(t, f.KDF.Salt, crypto.SaltSize)
	assert.Equal(t, crypto.CipherAES256GCM, f.Cipher)

	// The header (and so the salt) survives later saves.
	require.NoError(t, s.Save(sampleEntries(t)[:1]))
	assert.Equal(t, lines[0], readLines(t, path)[0])
}

func TestVaultStore_DifferentVaultsGetDifferentSalts(t *testing.T) {
	p1, p2 := vaultPath(t), vaultPath(t)

	require.NoError(t, openStore(t, p1, "S1").Save(sampleEntries(t)))
	require.NoError(t, openStore(t, p2, "S1").Save(sampleEntries(t)))

	assert.NotEqual(t, readLines(t, p1)[0], readLines(t, p2)[0])
}

func TestVaultStore_LegacyFileIsReadAndKeptLegacy(t *testing.T) {
	path := vaultPath(t)

	// Build a baseline vault by hand: SHA-256 key, AES-256-GCM, no header.
	sum := sha256.Sum256([]byte("S1"))
	engine, err := crypto.NewEngine(crypto.CipherAES256GCM, sum[:])
	require.NoError(t, err)
	defer engine.Destroy()

	line, err := codec.NewRecordCodec(engine).Encode(mustEntry(t, "alice", "pw1", "mail"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0o600))

	// Default options prefer Argon2id, but the existing file decides.
	s := openStore(t, path, "S1")
	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Username())

	require.NoError(t, s.Save(append(got, mustEntry(t, "bob", "pw2", "bank"))))

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.False(t, isHeader(lines[0]))

	f, ok := s.Format()
	require.True(t, ok)
	assert.Equal(t, LegacyFormat(), f)
}

func TestVaultStore_SaveWithoutLoadRespectsExistingHeader(t *testing.T) {
	path := vaultPath(t)
	require.NoError(t, openStore(t, path, "S1").Save(sampleEntries(t)))
	header := readLines(t, path)[0]

	// A fresh store with a different preference must keep the file's format.
	s := openStore(t, path, "S1", WithCipher(crypto.CipherXChaCha20Poly1305))
	require.NoError(t, s.Save(sampleEntries(t)))
	assert.Equal(t, header, readLines(t, path)[0])

	got, err := openStore(t, path, "S1").Load()
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(t), got)
}

func TestVaultStore_HeaderOnlyVault(t *testing.T) {
	path := vaultPath(t)
	require.NoError(t, openStore(t, path, "S1").Save(models.Entries{}))

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.True(t, isHeader(lines[0]))

	report, err := openStore(t, path, "S1").LoadWithReport()
	require.NoError(t, err)
	assert.Empty(t, report.Entries)
	assert.Zero(t, report.Skipped)
}

func TestVaultStore_FileLevelErrors(t *testing.T) {
	t.Run("malformed header", func(t *testing.T) {
		path := vaultPath(t)
		require.NoError(t, os.WriteFile(path, []byte("$gpv$9$argon2id$m=64,t=1,p=1$aes-256-gcm$AAAAAAAAAAAAAAAAAAAAAA\n"), 0o600))

		_, err := openStore(t, path, "S1").Load()
		assert.ErrorIs(t, err, ErrMalformedHeader)
	})

	t.Run("not text", func(t *testing.T) {
		path := vaultPath(t)
		require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x81}, 0o600))

		_, err := openStore(t, path, "S1").Load()
		assert.ErrorIs(t, err, ErrNotText)

		err = openStore(t, path, "S1").Save(sampleEntries(t))
		assert.ErrorIs(t, err, ErrNotText)
	})

	t.Run("header not text", func(t *testing.T) {
		path := vaultPath(t)
		require.NoError(t, os.WriteFile(path, []byte("$gpv$1$argon2id$m=64,t=1,p=1$aes-256-gcm$\xffAAAA\nAAAA\n"), 0o600))

		_, err := openStore(t, path, "S1").Load()
		assert.ErrorIs(t, err, ErrNotText)
	})

	t.Run("path is a directory", func(t *testing.T) {
		path := t.TempDir()
		s := openStore(t, path, "S1", WithoutLock())

		_, err := s.Load()
		assert.ErrorIs(t, err, ErrIO)

		err = s.Save(sampleEntries(t))
		assert.ErrorIs(t, err, ErrIO)
	})
}

func TestVaultStore_Closed(t *testing.T) {
	s := openStore(t, vaultPath(t), "S1")
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Initialize(), ErrStoreClosed)
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, s.Save(nil), ErrStoreClosed)
}

func TestVaultStore_FileDoesNotLeakPlaintext(t *testing.T) {
	path := vaultPath(t)
	entries := models.Entries{mustEntry(t, "alice.liddell", "hunter2-correct-horse", "mailbox.example.org")}
	require.NoError(t, openStore(t, path, "master-secret-S1").Save(entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, needle := range []string{"alice.liddell", "hunter2-correct-horse", "mailbox.example.org", "master-secret-S1"} {
		assert.False(t, bytes.Contains(data, []byte(needle)), "found %q in vault file", needle)
	}
}
