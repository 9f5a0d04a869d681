package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("VIZREPORT_ENV_FILE", t.TempDir()+"/missing.env")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "vizreport_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "5")
	t.Setenv("RATE_LIMIT_RPS", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017/testdb", cfg.MongoDB.URI)
	require.Equal(t, "vizreport_test", cfg.MongoDB.Database)
	require.Equal(t, "visualizations", cfg.MongoDB.Collection)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
	require.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	require.Equal(t, 7, cfg.RateLimit.RPS)
	require.False(t, cfg.TLS.Enabled())
	require.False(t, cfg.MinIO.Enabled())
}

func TestLoadConfigWithoutMongo(t *testing.T) {
	t.Setenv("VIZREPORT_ENV_FILE", t.TempDir()+"/missing.env")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("MONGODB_CONNECT_ATTEMPTS", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Empty(t, cfg.MongoDB.URI)
	require.Empty(t, cfg.Redis.Addr())
	require.Equal(t, 1, cfg.MongoDB.ConnectAttempts)
}

func TestTLSEnabled(t *testing.T) {
	require.True(t, TLSConfig{CertFile: "c.pem", KeyFile: "k.pem"}.Enabled())
	require.False(t, TLSConfig{CertFile: "c.pem"}.Enabled())
}
