package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meridian.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"store":{"kind":"azblob","container_name":"logs"}}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "azblob", cfg.Store.Kind)
	require.Equal(t, "logs", cfg.Store.ContainerName)
	// untouched fields keep their defaults
	require.Equal(t, Default().RPC.ListenAddr, cfg.RPC.ListenAddr)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meridian.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rpc":{"listen_addr":"0.0.0.0:9000"}}`), 0644))

	t.Setenv("MERIDIAN_RPC_ADDR", "127.0.0.1:1234")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:1234", cfg.RPC.ListenAddr)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meridian.json")
	cfg := Default()
	cfg.Node.DataDir = "/var/lib/meridian"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Node.DataDir, loaded.Node.DataDir)
}
