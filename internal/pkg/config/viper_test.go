package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  server:
    cors:
      - http://a.test
      - " "
      - http://b.test
  maintenance:
    endpoints: "/v1/a, /v1/b,,"
modules:
  twofa:
    enabled: true
    session_cache_ttl_seconds: 300
mfa:
  totp:
    period: 30
instrument:
  trace_sample_ratio: 0.25
database:
  pool:
    max_conns: 8
`

func TestViper_Getters(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.True(t, cfg.GetBool("modules.twofa.enabled"))
	assert.Equal(t, 5*time.Minute, cfg.GetSecond("modules.twofa.session_cache_ttl_seconds"))
	assert.Equal(t, uint(30), cfg.GetUint("mfa.totp.period"))
	assert.Equal(t, int32(8), cfg.GetInt32("database.pool.max_conns"))
	assert.InDelta(t, 0.25, cfg.GetFloat64("instrument.trace_sample_ratio"), 1e-9)
	assert.Empty(t, cfg.GetString("missing.key"))
	assert.Zero(t, cfg.GetInt("missing.key"))
	assert.NoError(t, cfg.Close())
}

func TestViper_GetArray(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.GetArray("app.server.cors"))
	assert.Equal(t, []string{"/v1/a", "/v1/b"}, cfg.GetArray("app.maintenance.endpoints"))
	assert.Empty(t, cfg.GetArray("missing.key"))
}

func TestViper_EnvOverride(t *testing.T) {
	t.Setenv("TWOFA_DATABASE_URL", "postgres://env")
	t.Setenv("TWOFA_MODULES_TWOFA_ENABLED", "false")

	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "postgres://env", cfg.GetString("database.url"))
	assert.False(t, cfg.GetBool("modules.twofa.enabled"))
}

func TestNewViper(t *testing.T) {
	_, err := NewViperFromBytes("", nil)
	require.ErrorIs(t, err, ErrConfigType)

	_, err = NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := NewViper(path)
	require.NoError(t, err)
	assert.True(t, cfg.GetBool("modules.twofa.enabled"))
}
