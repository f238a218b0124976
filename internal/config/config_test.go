package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 0, cfg.BcryptCost)
	assert.Equal(t, 10*time.Minute, cfg.FeedCursorSkew)
	assert.Equal(t, 800*time.Millisecond, cfg.NotifyTick)
}

func TestLoadTunables(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("FEED_CURSOR_SKEW", "5m")
	t.Setenv("NOTIFY_TICK", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 5*time.Minute, cfg.FeedCursorSkew)
	assert.Equal(t, 2*time.Second, cfg.NotifyTick)
}

func TestLoadBadTunablesFallBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("BCRYPT_COST", "twelve")
	t.Setenv("FEED_CURSOR_SKEW", "-5m")
	t.Setenv("NOTIFY_TICK", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.BcryptCost)
	assert.Equal(t, 10*time.Minute, cfg.FeedCursorSkew)
	assert.Equal(t, 800*time.Millisecond, cfg.NotifyTick)
}
