package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	require.NoError(t, err)
	assert.Equal(t, Default().API.Timeout, c.API.Timeout)
	assert.Equal(t, Default().TICKET.Footer, c.TICKET.Footer)
}

func TestLoadIniAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
[API]
URL = http://pos.local/api
RPS = 3

[TICKET]
Name = Casa Pepe

[TELEGRAM]
ChatID = 42
`), 0600))

	t.Setenv("RESTOPOS_SESSION_DB", "/tmp/other.db")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://pos.local/api", c.API.URL)
	assert.Equal(t, 3, c.API.RPS)
	assert.Equal(t, 15, c.API.Timeout)
	assert.Equal(t, "Casa Pepe", c.TICKET.Name)
	assert.Equal(t, int64(42), c.TELEGRAM.ChatID)
	assert.Equal(t, "/tmp/other.db", c.SESSION.DB)

	t.Setenv("RESTOPOS_API_URL", "http://override/api")
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://override/api", c.API.URL)
}

func TestLoadRejectsBadIni(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[API]\nRPS = many\n"), 0600))
	_, err := Load(path)
	assert.Error(t, err)
}
