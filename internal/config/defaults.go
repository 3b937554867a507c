package config

import "time"

const (
	defaultVaultPath    = "passwords.enc"
	defaultKDF          = "argon2id"
	defaultCipher       = "aes-256-gcm"
	defaultArgonTime    = 1
	defaultArgonMemory  = 64 * 1024
	defaultArgonThreads = 4
	defaultLogLevel     = "info"
	defaultLogFile      = "vault.log"
	defaultClipboardTTL = 30 * time.Second
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Vault: Vault{
			Path:         defaultVaultPath,
			KDF:          defaultKDF,
			Cipher:       defaultCipher,
			ArgonTime:    defaultArgonTime,
			ArgonMemory:  defaultArgonMemory,
			ArgonThreads: defaultArgonThreads,
		},
		Log: Log{
			Level: defaultLogLevel,
			File:  defaultLogFile,
		},
		UI: UI{
			ClipboardTTL: defaultClipboardTTL,
		},
	}
}
