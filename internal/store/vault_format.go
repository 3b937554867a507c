// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
)

// Vault header layout (first line of a hardened vault file):
//
//	$gpv$<version>$<kdf>$<kdf params>$<cipher>$<base64 salt>
//
// e.g. $gpv$1$argon2id$m=65536,t=1,p=4$aes-256-gcm$3q2+7wAAAAAAAAAAAAAAAA
//
// Base64 record lines never contain '$', so a leading "$gpv$" is unambiguous.
const (
	headerPrefix  = "$gpv$"
	headerVersion = 1
	headerParts   = 7
	noParams      = "-"

	// maxArgonMemory caps the memory a header may request (4 GiB in KiB) so a
	// forged header cannot exhaust the host on open.
	maxArgonMemory = 4 * 1024 * 1024
)

// Format describes how a vault file derives its key and seals its records.
type Format struct {
	KDF    crypto.KDFParams
	Cipher string
}

// LegacyFormat is the baseline layout: unsalted SHA-256 key, AES-256-GCM
// records and no header line.
func LegacyFormat() Format {
	return Format{KDF: crypto.LegacyKDFParams(), Cipher: crypto.CipherAES256GCM}
}

// DefaultFormat is used for brand-new vaults unless overridden: Argon2id with
// the OWASP parameters and AES-256-GCM.
func DefaultFormat() Format {
	return Format{KDF: crypto.DefaultArgon2idParams(), Cipher: crypto.CipherAES256GCM}
}

// HasHeader reports whether files in this format start with a header line.
func (f Format) HasHeader() bool {
	return f.KDF.Algorithm != crypto.KDFSHA256 || f.Cipher != crypto.CipherAES256GCM
}

// String describes the format for display, without the salt.
func (f Format) String() string {
	kdf := f.KDF.Algorithm
	if f.KDF.Algorithm == crypto.KDFArgon2id {
		kdf = fmt.Sprintf("%s(m=%d,t=%d,p=%d)", kdf, f.KDF.Memory, f.KDF.Time, f.KDF.Threads)
	}
	if !f.HasHeader() {
		return kdf + "/" + f.Cipher + " (legacy)"
	}
	return kdf + "/" + f.Cipher
}

// Validate checks the KDF (without salt) and the cipher name.
func (f Format) Validate() error {
	if err := f.KDF.Validate(); err != nil {
		return err
	}
	return crypto.ValidateCipher(f.Cipher)
}

func (f Format) header() string {
	params := noParams
	if f.KDF.Algorithm == crypto.KDFArgon2id {
		params = fmt.Sprintf("m=%d,t=%d,p=%d", f.KDF.Memory, f.KDF.Time, f.KDF.Threads)
	}

	return headerPrefix + strings.Join([]string{
		strconv.Itoa(headerVersion),
		f.KDF.Algorithm,
		params,
		f.Cipher,
		base64.RawStdEncoding.EncodeToString(f.KDF.Salt),
	}, "$")
}

func isHeader(line string) bool {
	return strings.HasPrefix(line, headerPrefix)
}

func parseHeader(line string) (Format, error) {
	parts := strings.Split(strings.TrimSpace(line), "$")
	if len(parts) != headerParts {
		return Format{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedHeader, headerParts-1, len(parts)-1)
	}

	version, err := strconv.Atoi(parts[2])
	if err != nil || version != headerVersion {
		return Format{}, fmt.Errorf("%w: unsupported version %q", ErrMalformedHeader, parts[2])
	}

	f := Format{
		KDF:    crypto.KDFParams{Algorithm: parts[3]},
		Cipher: parts[5],
	}

	switch f.KDF.Algorithm {
	case crypto.KDFArgon2id:
		if _, err = fmt.Sscanf(parts[4], "m=%d,t=%d,p=%d", &f.KDF.Memory, &f.KDF.Time, &f.KDF.Threads); err != nil {
			return Format{}, fmt.Errorf("%w: argon2id params: %w", ErrMalformedHeader, err)
		}
		if f.KDF.Memory > maxArgonMemory {
			return Format{}, fmt.Errorf("%w: argon2id memory %d KiB exceeds limit", ErrMalformedHeader, f.KDF.Memory)
		}
	case crypto.KDFSHA256:
		if parts[4] != noParams {
			return Format{}, fmt.Errorf("%w: unexpected params for sha256", ErrMalformedHeader)
		}
	}

	if err = f.Validate(); err != nil {
		return Format{}, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[6])
	if err != nil {
		return Format{}, fmt.Errorf("%w: salt: %w", ErrMalformedHeader, err)
	}
	if f.KDF.Salted() && len(salt) < 8 {
		return Format{}, fmt.Errorf("%w: salt too short", ErrMalformedHeader)
	}
	f.KDF.Salt = salt

	return f, nil
}
