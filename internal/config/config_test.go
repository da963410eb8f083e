package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	req := require.New(t)

	cfg, err := LoadFrom(t.TempDir())
	req.NoError(err)

	req.Equal("0.0.0.0:2022", cfg.Server.Address())
	req.False(cfg.GRPC.Enabled)
	req.Equal("postgres", cfg.Database.Driver)
	req.False(cfg.Cache.Enabled)
	req.Equal(10*time.Minute, cfg.Cache.TTL)
	req.Equal([]string{"*"}, cfg.CORS.AllowedOrigins)
	req.Equal("amigos-chat", cfg.Log.ServiceName)
}

func TestLoadFrom_FileAndEnv(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	yaml := `
database:
  driver: sqlite
  file_path: /tmp/amigos.db
cache:
  enabled: true
  ttl: 30s
`
	req.NoError(os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GRPC_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadFrom(dir)
	req.NoError(err)

	req.Equal(9090, cfg.Server.Port)
	req.True(cfg.GRPC.Enabled)
	req.Equal("sqlite", cfg.Database.Driver)
	req.Equal("/tmp/amigos.db", cfg.Database.ToDatabaseConfig().FilePath)
	req.True(cfg.Cache.Enabled)
	req.Equal(30*time.Second, cfg.Cache.TTL)
	req.Equal([]string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
