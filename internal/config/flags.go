package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// ParseFlags parses configuration flags from args (normally os.Args[1:]).
//
// Flags:
//
//	-f vault file path
//	-kdf key derivation for new vaults (argon2id, sha256)
//	-cipher cipher for new vaults (aes-256-gcm, xchacha20-poly1305)
//	-no-lock disable the advisory lock file
//	-log-level log level (debug, info, warn, error)
//	-log-file log file path
//	-clipboard-ttl how long copied secrets stay on the clipboard (e.g. "30s")
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	var vaultPath, kdf, cipher string
	var noLock bool
	var logLevel, logFile string
	var jsonConfigPath string
	var clipboardTTL Duration

	fs := flag.NewFlagSet("vault", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&vaultPath, "f", "", "Vault file path")
	fs.StringVar(&kdf, "kdf", "", "Key derivation for new vaults (argon2id, sha256)")
	fs.StringVar(&cipher, "cipher", "", "Cipher for new vaults (aes-256-gcm, xchacha20-poly1305)")
	fs.BoolVar(&noLock, "no-lock", false, "Disable the advisory lock file")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.Var(&clipboardTTL, "clipboard-ttl", "Clipboard clear delay (e.g., 30s, 1m; negative disables)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Vault: Vault{
			Path:        vaultPath,
			KDF:         kdf,
			Cipher:      cipher,
			DisableLock: noLock,
		},
		Log: Log{
			Level: logLevel,
			File:  logFile,
		},
		UI: UI{
			ClipboardTTL: time.Duration(clipboardTTL),
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
