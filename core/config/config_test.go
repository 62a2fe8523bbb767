package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "memory", cfg.Cluster.Registry)
	assert.Equal(t, 500, cfg.Cluster.Capacity)
	assert.Equal(t, 0.8, cfg.Cluster.FairnessCeiling)
	assert.Equal(t, 1000, cfg.Cluster.CoalesceWindowMs)
	assert.Equal(t, "Advanced Blocking", cfg.Cluster.BlockingAppName)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CLUSTER_CAPACITY", "120")
	t.Setenv("CLUSTER_FAIRNESS_CEILING", "0.6")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 120, cfg.Cluster.Capacity)
	assert.Equal(t, 0.6, cfg.Cluster.FairnessCeiling)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	content := "CLUSTER_NODES=ns1=http://10.0.0.2:5380|tok\nLOG_FORMAT=console\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("CLUSTER_NODES")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "ns1=http://10.0.0.2:5380|tok", cfg.Cluster.Nodes)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("CLUSTER_REGISTRY", "etcd")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
