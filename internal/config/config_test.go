package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, Config{
		DB:               "providers.db",
		Key:              "proveedores",
		Addr:             "localhost:8080",
		Lang:             "en",
		SuccessTTLMillis: 2000,
		ErrorTTLMillis:   4000,
	}, cfg)
	assert.Equal(t, 2*time.Second, cfg.SuccessTTL())
	assert.Equal(t, 4*time.Second, cfg.ErrorTTL())
}

func TestParse_CUEOverrides(t *testing.T) {
	cfg, err := Parse("test.cue", []byte(`
db:   "/var/lib/providers.db"
lang: "es"
error_ttl_ms: 6000
`))
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/providers.db", cfg.DB)
	assert.Equal(t, "es", cfg.Lang)
	assert.Equal(t, 6000, cfg.ErrorTTLMillis)
	assert.Equal(t, "proveedores", cfg.Key, "unset fields keep defaults")
	assert.Equal(t, 2000, cfg.SuccessTTLMillis)
}

func TestParse_JSON(t *testing.T) {
	cfg, err := Parse("test.json", []byte(`{"key": "vendors", "addr": ":9090"}`))
	require.NoError(t, err)
	assert.Equal(t, "vendors", cfg.Key)
	assert.Equal(t, ":9090", cfg.Addr)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unsupported language", `lang: "fr"`},
		{"empty key", `key: ""`},
		{"zero ttl", `success_ttl_ms: 0`},
		{"wrong type", `error_ttl_ms: "long"`},
		{"unknown field", `port: 8080`},
		{"syntax error", `db: {{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.cue", []byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.cue")
	require.NoError(t, os.WriteFile(path, []byte(`addr: "0.0.0.0:8000"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestCheck(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	require.NoError(t, Check(cfg))

	cfg.Lang = "es"
	cfg.DB = "/tmp/other.db"
	assert.NoError(t, Check(cfg))

	bad := cfg
	bad.Lang = "fr"
	assert.Error(t, Check(bad))

	bad = cfg
	bad.ErrorTTLMillis = -1
	assert.Error(t, Check(bad))

	bad = cfg
	bad.Addr = ""
	assert.Error(t, Check(bad))
}
