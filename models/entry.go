// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Entry field names. They identify the offending field in a [ValidationError].
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldPlace    = "place"
)

// ErrValidation is matched by every [ValidationError] via [errors.Is].
var ErrValidation = errors.New("entry validation failed")

// Field-specific validation errors. A [ValidationError] for a field matches
// the corresponding sentinel via [errors.Is].
var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrEmptyPlace    = errors.New("place cannot be empty")

	// ErrNotUTF8 is the reason of a [ValidationError] for a field holding
	// bytes that are not valid UTF-8.
	ErrNotUTF8 = errors.New("field is not valid UTF-8 text")
)

// ValidationError reports which field of an [Entry] failed validation.
// Reason is nil for an empty field.
type ValidationError struct {
	Field  string
	Reason error
}

func (e *ValidationError) Error() string {
	if e.Reason != nil {
		return e.Field + ": " + e.Reason.Error()
	}
	return e.sentinel().Error()
}

// Is reports whether target is [ErrValidation], the Reason, or (for an empty
// field) the sentinel of e.Field.
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	if e.Reason != nil {
		return target == e.Reason
	}
	return target == e.sentinel()
}

func (e *ValidationError) sentinel() error {
	switch e.Field {
	case FieldUsername:
		return ErrEmptyUsername
	case FieldPassword:
		return ErrEmptyPassword
	case FieldPlace:
		return ErrEmptyPlace
	default:
		return ErrValidation
	}
}

// Entry is a single credential record: who (username), what (password) and
// where (place). All fields are stored trimmed and are never empty.
//
// The zero value is not a valid Entry; use [NewEntry].
type Entry struct {
	username string
	password string
	place    string
}

// EntryUpdate carries optional replacement values for [Entry.Update].
// A nil field leaves the corresponding value unchanged.
type EntryUpdate struct {
	Username *string
	Password *string
	Place    *string
}

// NewEntry trims surrounding whitespace from every field and returns the
// resulting Entry, or a *[ValidationError] naming the first empty or
// non-UTF-8 field.
func NewEntry(username, password, place string) (Entry, error) {
	e := Entry{
		username: strings.TrimSpace(username),
		password: strings.TrimSpace(password),
		place:    strings.TrimSpace(place),
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Update returns a copy of e with the supplied fields replaced (and trimmed).
// The whole record is re-validated; on failure e is returned unchanged along
// with the validation error.
func (e Entry) Update(upd EntryUpdate) (Entry, error) {
	next := e
	if upd.Username != nil {
		next.username = strings.TrimSpace(*upd.Username)
	}
	if upd.Password != nil {
		next.password = strings.TrimSpace(*upd.Password)
	}
	if upd.Place != nil {
		next.place = strings.TrimSpace(*upd.Place)
	}

	if err := next.Validate(); err != nil {
		return e, err
	}
	return next, nil
}

// Validate checks that every field is non-empty UTF-8 text. Fields are
// checked in username, password, place order.
func (e Entry) Validate() error {
	fields := [...]struct{ name, value string }{
		{FieldUsername, e.username},
		{FieldPassword, e.password},
		{FieldPlace, e.place},
	}
	for _, f := range fields {
		if f.value == "" {
			return &ValidationError{Field: f.name}
		}
		if !utf8.ValidString(f.value) {
			return &ValidationError{Field: f.name, Reason: ErrNotUTF8}
		}
	}
	return nil
}

// Username returns the account name.
func (e Entry) Username() string {
	return e.username
}

// Password returns the secret.
func (e Entry) Password() string {
	return e.password
}

// Place returns where the credential is used (site, service, device).
func (e Entry) Place() string {
	return e.place
}

// Matches reports whether term occurs, case-insensitively, in the username
// or the place. An empty term matches every entry.
func (e Entry) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.username), term) ||
		strings.Contains(strings.ToLower(e.place), term)
}

// Entries is an ordered in-memory collection of credential records.
type Entries []Entry

// Clone returns an independent copy of the collection.
func (es Entries) Clone() Entries {
	if es == nil {
		return nil
	}
	out := make(Entries, len(es))
	copy(out, es)
	return out
}

// Search returns the indexes of entries matching term, in collection order.
func (es Entries) Search(term string) []int {
	idx := make([]int, 0, len(es))
	for i, e := range es {
		if e.Matches(term) {
			idx = append(idx, i)
		}
	}
	return idx
}
