package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, StoreSQLite, c.Store)
	assert.Equal(t, "rapidblood.db", c.DatabasePath)
	assert.Equal(t, "admin@rapidblood.com", c.AdminEmail)
	assert.Equal(t, "admin123", c.AdminPassword)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.NotEmpty(t, c.SessionSecret)
}

func TestLoadConfig_FlagsWinOverJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"store":         "postgres",
		"database_path": "from-json.db",
	})
	os.Args = []string{"testbin", "-c", path, "-s", "memory"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "from-json.db", cfg.DatabasePath)
	assert.Equal(t, "admin@rapidblood.com", cfg.AdminEmail)
}
