package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "protos", cfg.ProtoDir)
	assert.Equal(t, "pyproject.toml", cfg.Manifest)
	assert.Equal(t, "mysingle-protos", cfg.Package.ID)
	assert.Equal(t, "mysingle_protos", cfg.Package.ImportName)
	assert.Equal(t, "git+https://github.com/Br0therDan/grpc-protos.git", cfg.Package.Source)
	assert.Equal(t, "origin", cfg.Remote)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "missing package id",
			mutate:  func(c *Config) { c.Package.ID = "" },
			wantErr: true,
			errMsg:  "package.id is required",
		},
		{
			name:    "blank python",
			mutate:  func(c *Config) { c.Python = "  " },
			wantErr: true,
			errMsg:  "python is required",
		},
		{
			name:    "source with ref",
			mutate:  func(c *Config) { c.Package.Source = "git+https://github.com/acme/protos.git@v1.0.0" },
			wantErr: true,
			errMsg:  "must not carry a ref",
		},
		{
			name:   "ssh source with user",
			mutate: func(c *Config) { c.Package.Source = "git+ssh://git@github.com/acme/protos.git" },
		},
		{
			name:    "nested proto dir",
			mutate:  func(c *Config) { c.ProtoDir = filepath.Join("a", "b") },
			wantErr: true,
			errMsg:  "single directory name",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "TRACE" },
			wantErr: true,
			errMsg:  "invalid log level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
			errMsg:  "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.ErrorIs(t, err, perrors.ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PROTOSYNC_CONFIG", "")
	t.Setenv("PROTOSYNC_SERVICES_ROOT", "")
	t.Setenv("PROTOSYNC_PYTHON", "")
	t.Setenv("PROTOSYNC_LOG_LEVEL", "")
	t.Setenv("PROTOSYNC_METRICS_FILE", "")

	t.Run("defaults without a file", func(t *testing.T) {
		cfg, source, err := Load(LoadOptions{RepoRoot: t.TempDir()})
		require.NoError(t, err)
		assert.Contains(t, source, "built-in defaults")
		assert.Equal(t, "python3", cfg.Python)
	})

	t.Run("repo root file", func(t *testing.T) {
		root := t.TempDir()
		content := "services_root: /srv/services\npackage:\n  id: acme-protos\n  import_name: acme_protos\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644))

		cfg, source, err := Load(LoadOptions{RepoRoot: root})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, FileName), source)
		assert.Equal(t, "/srv/services", cfg.ServicesRoot)
		assert.Equal(t, "acme-protos", cfg.Package.ID)
		// Unset keys keep their defaults.
		assert.Equal(t, "git+https://github.com/Br0therDan/grpc-protos.git", cfg.Package.Source)
	})

	t.Run("config subdirectory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "config", FileName), []byte("remote: upstream\n"), 0o644))

		cfg, _, err := Load(LoadOptions{RepoRoot: root})
		require.NoError(t, err)
		assert.Equal(t, "upstream", cfg.Remote)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, _, err := Load(LoadOptions{ConfigPath: filepath.Join(t.TempDir(), "missing.yml")})
		require.Error(t, err)
		assert.True(t, perrors.IsNotFoundError(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yml")
		require.NoError(t, os.WriteFile(path, []byte("package: [unclosed\n"), 0o644))

		_, _, err := Load(LoadOptions{ConfigPath: path})
		require.Error(t, err)
		assert.ErrorIs(t, err, perrors.ErrInvalidConfig)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PROTOSYNC_SERVICES_ROOT", "/env/services")
		t.Setenv("PROTOSYNC_PYTHON", "/usr/bin/python3.12")
		t.Setenv("PROTOSYNC_LOG_LEVEL", "debug")
		t.Setenv("PROTOSYNC_METRICS_FILE", "/tmp/protosync.prom")
		t.Setenv("NO_COLOR", "1")

		cfg, _, err := Load(LoadOptions{RepoRoot: t.TempDir()})
		require.NoError(t, err)
		assert.Equal(t, "/env/services", cfg.ServicesRoot)
		assert.Equal(t, "/usr/bin/python3.12", cfg.Python)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "/tmp/protosync.prom", cfg.MetricsFile)
		assert.True(t, cfg.NoColor)
	})
}

func TestPaths(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, filepath.Join("/repo", "..", "services"), cfg.ServicesRootFor("/repo"))
	assert.Equal(t, "/repo/protos", cfg.CentralProtoRoot("/repo"))
	assert.Equal(t, "/repo/pyproject.toml", cfg.CentralManifest("/repo"))

	cfg.ServicesRoot = "/abs/services/"
	assert.Equal(t, "/abs/services", cfg.ServicesRootFor("/repo"))
}

func TestProbeStatement(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "from mysingle_protos.protos.common import metadata_pb2", cfg.ProbeStatement())
}

func TestFindRepoRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "protos", "common"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "buf.yaml"), []byte("version: v2\n"), 0o644))

	assert.Equal(t, root, FindRepoRoot(filepath.Join(root, "protos", "common"), "protos"))

	other := t.TempDir()
	assert.Equal(t, other, FindRepoRoot(other, "protos"))
}
