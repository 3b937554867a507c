// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
)

const maxClipboardTTL = 24 * time.Hour

// validate checks source-independent invariants of the merged
// [StructuredConfig]. Runtime-specific rules live in [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.UI.ClipboardTTL > maxClipboardTTL {
		return fmt.Errorf("%w: clipboard ttl %s exceeds %s", ErrInvalidUIConfigs, cfg.UI.ClipboardTTL, maxClipboardTTL)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if strings.TrimSpace(cfg.Vault.Path) == "" {
		return fmt.Errorf("%w: empty vault path", ErrInvalidVaultConfigs)
	}

	if err := cfg.Vault.KDF.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidVaultConfigs, err)
	}

	if err := crypto.ValidateCipher(cfg.Vault.Cipher); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidVaultConfigs, err)
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err)
	}

	if cfg.UI.ClipboardTTL < 0 || cfg.UI.ClipboardTTL > maxClipboardTTL {
		return fmt.Errorf("%w: clipboard ttl %s out of range", ErrInvalidUIConfigs, cfg.UI.ClipboardTTL)
	}

	return nil
}
