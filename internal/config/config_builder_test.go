package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func builderWithArgs(args ...string) *configBuilder {
	b := newConfigBuilder()
	b.args = args
	return b
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstSourceWins verifies that earlier configs take precedence and
// later ones only fill unset fields.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Vault: Vault{Path: "env.enc"}},
		&StructuredConfig{Vault: Vault{Path: "flag.enc", KDF: "sha256"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env.enc", cfg.Vault.Path)
	assert.Equal(t, "sha256", cfg.Vault.KDF)
}

// TestBuild_TTLTooLong verifies that structural validation runs on build.
func TestBuild_TTLTooLong(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{UI: UI{ClipboardTTL: 48 * time.Hour}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidUIConfigs)
}

// A negative TTL survives the merge with defaults and turns clearing off.
func TestBuild_NegativeTTLDisablesClearing(t *testing.T) {
	tests := []struct {
		name string
		b    func(t *testing.T) *configBuilder
	}{
		{
			name: "flag",
			b: func(t *testing.T) *configBuilder {
				return builderWithArgs("-clipboard-ttl", "-1s").withFlags().withDefaults()
			},
		},
		{
			name: "env",
			b: func(t *testing.T) *configBuilder {
				setEnvVars(t, map[string]string{"UI_CLIPBOARD_TTL": "-1s"})
				return builderWithArgs().withEnv().withFlags().withDefaults()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.b(t).build()
			require.NoError(t, err)
			assert.Equal(t, -time.Second, cfg.UI.ClipboardTTL)

			clientCfg, err := newClientConfig(cfg)
			require.NoError(t, err)
			assert.Zero(t, clientCfg.UI.ClipboardTTL)
		})
	}
}

// ── withEnv / withFlags ───────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{"VAULT_PATH": "env.enc", "LOG_LEVEL": "error"})

	b := newConfigBuilder().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env.enc", b.configs[0].Vault.Path)
	assert.Equal(t, "error", b.configs[0].Log.Level)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"UI_CLIPBOARD_TTL": "never"})

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFlags_UsesBuilderArgs(t *testing.T) {
	b := builderWithArgs("-f", "flag.enc").withFlags()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "flag.enc", b.configs[0].Vault.Path)
}

func TestWithFlags_SetsErrorOnUnknownFlag(t *testing.T) {
	b := builderWithArgs("-grpc-address", ":9090").withFlags()
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"vault": map[string]any{"path": "json.enc"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})

	b.withJSON()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json.enc", b.configs[1].Vault.Path)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	b.withJSON()
	assert.Error(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := writeTempJSONConfig(t, map[string]any{"log": map[string]any{"level": "debug"}})
	second := writeTempJSONConfig(t, map[string]any{"log": map[string]any{"level": "error"}})

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: first},
		&StructuredConfig{JSONFilePath: second},
	)

	b.withJSON()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "debug", b.configs[2].Log.Level)
}

// ── end to end ────────────────────────────────────────────────────────────────

func TestGetStructuredConfig_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := builderWithArgs().withEnv().withFlags().withJSON().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestGetStructuredConfig_Priority(t *testing.T) {
	jsonPath := writeTempJSONConfig(t, map[string]any{
		"vault": map[string]any{"path": "json.enc", "kdf": "sha256", "cipher": "xchacha20-poly1305"},
		"log":   map[string]any{"level": "warn", "file": "json.log"},
	})
	setEnvVars(t, map[string]string{"VAULT_PATH": "env.enc", "CONFIG": jsonPath})

	cfg, err := builderWithArgs("-f", "flag.enc", "-kdf", "argon2id").
		withEnv().withFlags().withJSON().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "env.enc", cfg.Vault.Path)
	assert.Equal(t, "argon2id", cfg.Vault.KDF)
	assert.Equal(t, "xchacha20-poly1305", cfg.Vault.Cipher)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json.log", cfg.Log.File)
	assert.Equal(t, uint32(defaultArgonMemory), cfg.Vault.ArgonMemory)
	assert.Equal(t, defaultClipboardTTL, cfg.UI.ClipboardTTL)
}

// ── client config ─────────────────────────────────────────────────────────────

func TestNewClientConfig(t *testing.T) {
	cfg, err := newClientConfig(defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, defaultVaultPath, cfg.Vault.Path)
	assert.Equal(t, crypto.DefaultArgon2idParams(), cfg.Vault.KDF)
	assert.Equal(t, crypto.CipherAES256GCM, cfg.Vault.Cipher)
	assert.Equal(t, defaultLogLevel, cfg.Log.Level)
	assert.Equal(t, defaultClipboardTTL, cfg.UI.ClipboardTTL)
}

func TestNewClientConfig_LegacyKDFDropsArgonParams(t *testing.T) {
	base := defaultConfig()
	base.Vault.KDF = crypto.KDFSHA256

	cfg, err := newClientConfig(base)
	require.NoError(t, err)
	assert.Equal(t, crypto.LegacyKDFParams(), cfg.Vault.KDF)
}

func TestNewClientConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *StructuredConfig)
		wantErr error
	}{
		{name: "empty path", mutate: func(c *StructuredConfig) { c.Vault.Path = "  " }, wantErr: ErrInvalidVaultConfigs},
		{name: "unknown kdf", mutate: func(c *StructuredConfig) { c.Vault.KDF = "scrypt" }, wantErr: ErrInvalidVaultConfigs},
		{name: "unknown cipher", mutate: func(c *StructuredConfig) { c.Vault.Cipher = "rot13" }, wantErr: ErrInvalidVaultConfigs},
		{name: "argon memory too low", mutate: func(c *StructuredConfig) { c.Vault.ArgonMemory = 8 }, wantErr: crypto.ErrInvalidKDFParams},
		{name: "argon time too high", mutate: func(c *StructuredConfig) { c.Vault.ArgonTime = crypto.MaxArgonTime + 1 }, wantErr: crypto.ErrInvalidKDFParams},
		{name: "zero argon threads", mutate: func(c *StructuredConfig) { c.Vault.ArgonThreads = 0 }, wantErr: ErrInvalidVaultConfigs},
		{name: "bad log level", mutate: func(c *StructuredConfig) { c.Log.Level = "loud" }, wantErr: ErrInvalidLogConfigs},
		{name: "ttl too long", mutate: func(c *StructuredConfig) { c.UI.ClipboardTTL = 25 * time.Hour }, wantErr: ErrInvalidUIConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := defaultConfig()
			tt.mutate(base)

			_, err := newClientConfig(base)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
