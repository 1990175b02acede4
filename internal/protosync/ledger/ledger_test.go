package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grpc-protos/protosync/internal/protosync/catalog"
	"github.com/grpc-protos/protosync/internal/protosync/report"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

const source = "git+https://github.com/Br0therDan/grpc-protos.git"

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type env struct {
	root     string
	central  string
	services []catalog.Service
	ledger   *Ledger
	rec      *report.Recorder
}

func newEnv(t *testing.T, centralVersion string) *env {
	t.Helper()
	root := t.TempDir()
	e := &env{
		root:    root,
		central: filepath.Join(root, "grpc-protos", "pyproject.toml"),
		rec:     &report.Recorder{},
	}
	write(t, e.central, "[project]\nname = \"mysingle-protos\"\nversion = \""+centralVersion+"\"\n")
	e.ledger = New(Config{
		CentralManifest: e.central,
		PackageID:       "mysingle-protos",
		Source:          source,
	}, e.rec)
	return e
}

func (e *env) service(t *testing.T, name, manifest string) catalog.Service {
	t.Helper()
	svc := catalog.Service{Name: name, Root: filepath.Join(e.root, "services", name)}
	require.NoError(t, os.MkdirAll(svc.Root, 0o755))
	if manifest != "" {
		write(t, filepath.Join(svc.Root, "pyproject.toml"), manifest)
	}
	e.services = append(e.services, svc)
	return svc
}

func (e *env) catalog() *catalog.Catalog {
	return &catalog.Catalog{Services: e.services}
}

func deps(lines ...string) string {
	out := "[project]\nname = \"svc\"\ndependencies = [\n"
	for _, l := range lines {
		out += "    \"" + l + "\",\n"
	}
	return out + "]\n"
}

func TestCurrentVersion(t *testing.T) {
	e := newEnv(t, "2.0.3")
	v, err := e.ledger.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, "2.0.3", v)
}

func TestCurrentVersion_PoetryFallback(t *testing.T) {
	e := newEnv(t, "0.0.0")
	write(t, e.central, "[tool.poetry]\nname = \"mysingle-protos\"\nversion = \"1.4.0\"\n")

	v, err := e.ledger.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", v)
}

func TestCurrentVersion_MissingField(t *testing.T) {
	e := newEnv(t, "0.0.0")
	write(t, e.central, "[project]\nname = \"mysingle-protos\"\n")

	_, err := e.ledger.CurrentVersion()
	require.Error(t, err)
	assert.ErrorIs(t, err, perrors.ErrManifestField)
	assert.True(t, perrors.IsStructuralError(err))
}

func TestSetVersion(t *testing.T) {
	e := newEnv(t, "2.0.2")
	before := read(t, e.central)

	require.NoError(t, e.ledger.SetVersion("v2.0.3", true))
	assert.Equal(t, before, read(t, e.central), "dry-run leaves the manifest untouched")
	assert.Equal(t, []string{"preview: mysingle-protos version 2.0.2 -> 2.0.3"}, e.rec.Messages(report.Info))

	require.NoError(t, e.ledger.SetVersion("2.0.3", false))
	assert.Equal(t, "[project]\nname = \"mysingle-protos\"\nversion = \"2.0.3\"\n", read(t, e.central))

	v, err := e.ledger.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, "2.0.3", v)
}

func TestSetVersion_Invalid(t *testing.T) {
	e := newEnv(t, "2.0.2")

	err := e.ledger.SetVersion("2.0", false)
	assert.ErrorIs(t, err, perrors.ErrInvalidVersion)

	write(t, e.central, "project = { name = \"x\", version = \"1.0.0\" }\n")
	err = e.ledger.SetVersion("1.0.1", false)
	assert.ErrorIs(t, err, perrors.ErrManifestRewrite)
}

func TestServicePin(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     Pin
	}{
		{
			name:     "released pin",
			manifest: deps("fastapi>=0.110", "mysingle-protos @ "+source+"@v2.0.2"),
			want:     Pin{Declared: true, Version: "2.0.2", Ref: "v2.0.2", Raw: "mysingle-protos @ " + source + "@v2.0.2"},
		},
		{
			name:     "branch pin",
			manifest: deps("mysingle-protos @ " + source + "@main"),
			want:     Pin{Declared: true, Ref: "main", Raw: "mysingle-protos @ " + source + "@main"},
		},
		{
			name:     "normalized name with extras and marker",
			manifest: deps("Mysingle_Protos[grpc] @ " + source + "@v1.0.0 ; python_version >= '3.11'"),
			want:     Pin{Declared: true, Version: "1.0.0", Ref: "v1.0.0", Raw: "Mysingle_Protos[grpc] @ " + source + "@v1.0.0 ; python_version >= '3.11'"},
		},
		{
			name:     "other source is not a match",
			manifest: deps("mysingle-protos @ git+https://github.com/fork/grpc-protos.git@v9.9.9"),
			want:     Pin{},
		},
		{
			name:     "registry requirement is not a match",
			manifest: deps("mysingle-protos>=2.0"),
			want:     Pin{},
		},
		{
			name:     "optional dependency",
			manifest: "[project]\nname = \"svc\"\n[project.optional-dependencies]\ngrpc = [\"mysingle-protos @ " + source + "@v2.0.3\"]\n",
			want:     Pin{Declared: true, Version: "2.0.3", Ref: "v2.0.3", Raw: "mysingle-protos @ " + source + "@v2.0.3"},
		},
		{
			name:     "dependency group",
			manifest: "[dependency-groups]\ndev = [{ include-group = \"test\" }, \"mysingle-protos @ " + source + "@v2.0.1\"]\ntest = []\n",
			want:     Pin{Declared: true, Version: "2.0.1", Ref: "v2.0.1", Raw: "mysingle-protos @ " + source + "@v2.0.1"},
		},
		{
			name:     "uv dev dependency",
			manifest: "[project]\nname = \"svc\"\n\n[tool.uv]\ndev-dependencies = [\"mysingle-protos @ " + source + "@v2.0.2\"]\n",
			want:     Pin{Declared: true, Version: "2.0.2", Ref: "v2.0.2", Raw: "mysingle-protos @ " + source + "@v2.0.2"},
		},
		{
			name:     "poetry group table",
			manifest: "[tool.poetry.group.dev]\ndependencies = { protos = \"mysingle-protos @ " + source + "@v1.2.0\" }\n",
			want:     Pin{Declared: true, Version: "1.2.0", Ref: "v1.2.0", Raw: "mysingle-protos @ " + source + "@v1.2.0"},
		},
		{
			name:     "no manifest",
			manifest: "",
			want:     Pin{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, "2.0.3")
			svc := e.service(t, "alpha", tt.manifest)

			pin, err := e.ledger.ServicePin(svc)
			require.NoError(t, err)

			tt.want.Service = "alpha"
			tt.want.Manifest = filepath.Join(svc.Root, "pyproject.toml")
			assert.Equal(t, tt.want, pin)
		})
	}
}

func TestCheckConsistency_ReportsAllMismatches(t *testing.T) {
	e := newEnv(t, "2.0.3")
	e.service(t, "alpha", deps("mysingle-protos @ "+source+"@v2.0.2"))
	e.service(t, "beta", deps("mysingle-protos @ "+source+"@main"))
	e.service(t, "delta", deps("mysingle-protos @ "+source+"@v2.0.3"))
	e.service(t, "gamma", deps("mysingle-protos @ "+source+"@v1.9.0"))
	e.service(t, "omega", "")

	rep, err := e.ledger.CheckConsistency(e.catalog())
	require.Error(t, err)
	assert.True(t, perrors.IsConsistencyError(err))

	var ce *perrors.ConsistencyError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "2.0.3", ce.RepositoryVersion)
	assert.Equal(t, []string{"alpha pins v2.0.2", "gamma pins v1.9.0"}, ce.Mismatches)

	require.NotNil(t, rep)
	assert.Len(t, rep.Pins, 5)
	assert.Equal(t, []string{"beta tracks main instead of a release"}, e.rec.Messages(report.Warning))
}

func TestCheckConsistency_BranchPinIsNotAMismatch(t *testing.T) {
	e := newEnv(t, "2.0.3")
	e.service(t, "alpha", deps("mysingle-protos @ "+source+"@v2.0.3"))
	e.service(t, "beta", deps("mysingle-protos @ "+source+"@main"))

	rep, err := e.ledger.CheckConsistency(e.catalog())
	require.NoError(t, err)
	assert.Empty(t, rep.Mismatches)
	assert.True(t, rep.Pins[1].Branch())
}

func TestPinOutsideProjectTable(t *testing.T) {
	e := newEnv(t, "2.0.3")
	manifest := "[project]\nname = \"svc\"\n\n[tool.uv]\n# dev only\ndev-dependencies = [\"mysingle-protos @ " + source + "@v2.0.2\"]\n"
	svc := e.service(t, "alpha", manifest)

	_, err := e.ledger.CheckConsistency(e.catalog())
	require.Error(t, err)
	var ce *perrors.ConsistencyError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"alpha pins v2.0.2"}, ce.Mismatches)

	updated, err := e.ledger.Repin(e.services, "2.0.3", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, updated)
	assert.Equal(t,
		"[project]\nname = \"svc\"\n\n[tool.uv]\n# dev only\ndev-dependencies = [\"mysingle-protos @ "+source+"@v2.0.3\"]\n",
		read(t, filepath.Join(svc.Root, "pyproject.toml")))

	_, err = e.ledger.CheckConsistency(e.catalog())
	assert.NoError(t, err)
}

func TestRepin(t *testing.T) {
	e := newEnv(t, "2.0.3")
	alphaManifest := "# alpha service\n" + deps("fastapi>=0.110", "mysingle-protos @ "+source+"@v2.0.2") +
		"\n[dependency-groups]\ndev = [\"mysingle-protos @ " + source + "@v2.0.2\"]\n"
	alpha := e.service(t, "alpha", alphaManifest)
	beta := e.service(t, "beta", deps("mysingle-protos @ "+source+"@main"))
	current := e.service(t, "current", deps("mysingle-protos @ "+source+"@v2.0.3"))
	e.service(t, "plain", deps("fastapi>=0.110"))
	e.service(t, "nomanifest", "")

	alphaPath := filepath.Join(alpha.Root, "pyproject.toml")
	currentPath := filepath.Join(current.Root, "pyproject.toml")
	currentInfo, err := os.Stat(currentPath)
	require.NoError(t, err)

	t.Run("dry-run", func(t *testing.T) {
		updated, err := e.ledger.Repin(e.services, "2.0.3", true)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "beta", "current"}, updated)
		assert.Equal(t, alphaManifest, read(t, alphaPath))
	})

	t.Run("apply", func(t *testing.T) {
		updated, err := e.ledger.Repin(e.services, "v2.0.3", false)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "beta", "current"}, updated)

		want := "# alpha service\n" + deps("fastapi>=0.110", "mysingle-protos @ "+source+"@v2.0.3") +
			"\n[dependency-groups]\ndev = [\"mysingle-protos @ " + source + "@v2.0.3\"]\n"
		assert.Equal(t, want, read(t, alphaPath))

		pin, err := e.ledger.ServicePin(beta)
		require.NoError(t, err)
		assert.Equal(t, "2.0.3", pin.Version)

		info, err := os.Stat(currentPath)
		require.NoError(t, err)
		assert.Equal(t, currentInfo.ModTime(), info.ModTime(), "unchanged manifest is not rewritten")
	})

	t.Run("consistent afterwards", func(t *testing.T) {
		_, err := e.ledger.CheckConsistency(e.catalog())
		assert.NoError(t, err)
	})
}
