package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfig_FlagsOverrideEnv(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--addr", ":9999", "--session-ttl", "2m"}))

	env := map[string]string{"PORT": "3000", "ARCADE_CATALOG": "games.json"}
	cfg, err := resolveConfig(cmd, &options{addr: ":9999", sessionTTL: 2 * time.Minute}, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "games.json", cfg.Catalog)
	assert.Equal(t, 2*time.Minute, cfg.SessionTTL)
}

func TestResolveConfig_RejectsInvalid(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--log-level", "loud"}))
	_, err := resolveConfig(cmd, &options{logLevel: "loud"}, func(string) string { return "" })
	assert.Error(t, err)
}

func TestStaticAssetsEmbedded(t *testing.T) {
	for _, name := range []string{"static/app.js", "static/app.css"} {
		_, err := embeddedStatic.Open(name)
		assert.NoError(t, err, name)
	}
}
