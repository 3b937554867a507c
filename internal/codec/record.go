// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec turns a credential [models.Entry] into one storable line and
// back.
//
// Encoding pipeline:
//
//	entry -> JSON ["username","password","place"] -> Sealer.Encrypt -> base64
//
// The JSON array is self-delimiting, so field content may contain any
// character. All three fields share one authentication tag, which prevents
// splicing a username from one record onto a password from another.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/models"
)

// recordFields is the number of fields every record payload must carry.
const recordFields = 3

var (
	// ErrEncoding covers bad base64, non-UTF-8 plaintext, payloads that are
	// not a JSON array of strings and entries that cannot be encoded.
	ErrEncoding = errors.New("record encoding error")

	// ErrFieldCount is returned when a payload does not hold exactly three
	// fields.
	ErrFieldCount = errors.New("record must have exactly three fields")
)

// RecordCodec encodes and decodes single vault records using a [crypto.Sealer].
type RecordCodec struct {
	sealer crypto.Sealer
}

// NewRecordCodec returns a codec sealing records with sealer.
func NewRecordCodec(sealer crypto.Sealer) *RecordCodec {
	return &RecordCodec{sealer: sealer}
}

// Encode serializes e, seals it and returns the base64 line (without a
// trailing newline).
//
// An invalid entry is refused before sealing, so a field that is not UTF-8
// can never be stored in a lossy form.
func (c *RecordCodec) Encode(e models.Entry) (string, error) {
	if err := e.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	plaintext, err := json.Marshal([recordFields]string{e.Username(), e.Password(), e.Place()})
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	defer memguard.WipeBytes(plaintext)

	envelope, err := c.sealer.Encrypt(plaintext)
	if err != nil {
		return "", fmt.Errorf("encrypt record: %w", err)
	}

	return base64.StdEncoding.EncodeToString(envelope), nil
}

// Decode reverses [RecordCodec.Encode]. Every failure (bad encoding,
// authentication, field count, validation) is returned as an error for this
// line only; callers loading a vault skip the line and continue.
func (c *RecordCodec) Decode(line string) (models.Entry, error) {
	envelope, err := base64.StdEncoding.DecodeString(strings.TrimSpace(line))
	if err != nil {
		return models.Entry{}, fmt.Errorf("%w: decode base64: %w", ErrEncoding, err)
	}

	plaintext, err := c.sealer.Decrypt(envelope)
	if err != nil {
		return models.Entry{}, fmt.Errorf("decrypt record: %w", err)
	}
	defer memguard.WipeBytes(plaintext)

	if !utf8.Valid(plaintext) {
		return models.Entry{}, fmt.Errorf("%w: plaintext is not valid UTF-8", ErrEncoding)
	}

	var fields []string
	if err = json.Unmarshal(plaintext, &fields); err != nil {
		return models.Entry{}, fmt.Errorf("%w: unmarshal record: %w", ErrEncoding, err)
	}
	if len(fields) != recordFields {
		return models.Entry{}, fmt.Errorf("%w: got %d", ErrFieldCount, len(fields))
	}

	entry, err := models.NewEntry(fields[0], fields[1], fields[2])
	if err != nil {
		return models.Entry{}, fmt.Errorf("invalid record: %w", err)
	}
	return entry, nil
}
