package tools_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grpc-protos/protosync/internal/protosync/report"
	"github.com/grpc-protos/protosync/internal/protosync/tools"
	"github.com/grpc-protos/protosync/internal/protosync/tools/toolsfakes"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

type response struct {
	stdout string
	stderr string
	code   int
}

// scriptedRunner answers commands by their joined "name args..." line and
// records every line it saw. Unknown commands succeed with no output.
func scriptedRunner(responses map[string]response) (*toolsfakes.FakeRunner, *[]string) {
	var seen []string
	fake := &toolsfakes.FakeRunner{}
	fake.RunCalls(func(_ context.Context, dir, name string, args ...string) ([]byte, []byte, int, error) {
		line := strings.Join(append([]string{name}, args...), " ")
		seen = append(seen, line)
		resp, ok := responses[line]
		if !ok {
			return nil, nil, 0, nil
		}
		var err error
		if resp.code != 0 {
			err = errors.New("exit status")
		}
		return []byte(resp.stdout), []byte(resp.stderr), resp.code, err
	})
	return fake, &seen
}

func TestBufValidator_Validate(t *testing.T) {
	runner, seen := scriptedRunner(nil)
	rec := &report.Recorder{}
	v := &tools.BufValidator{Runner: runner, RepoRoot: "/repo", Against: ".git#branch=main", Reporter: rec}

	require.NoError(t, v.Validate(context.Background()))

	assert.Equal(t, []string{
		"buf format -w",
		"buf lint",
		"buf breaking --against .git#branch=main",
	}, *seen)
	_, dir, _, _ := runner.RunArgsForCall(0)
	assert.Equal(t, "/repo", dir)
	assert.Equal(t, []string{"buf validation passed"}, rec.Messages(report.Success))
}

func TestBufValidator_LintFailureStops(t *testing.T) {
	runner, seen := scriptedRunner(map[string]response{
		"buf lint": {stdout: "a.proto:3:1:Field name should be lower_snake_case.", code: 100},
	})
	v := &tools.BufValidator{Runner: runner, RepoRoot: "/repo", Against: ".git#branch=main", Reporter: report.Discard}

	err := v.Validate(context.Background())

	var toolErr *perrors.ExternalToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "buf", toolErr.Tool)
	assert.Equal(t, 100, toolErr.ExitCode)
	assert.Contains(t, toolErr.Output, "lower_snake_case")
	assert.Equal(t, 100, perrors.ExitCode(err))
	assert.Len(t, *seen, 2, "breaking must not run after a lint failure")
}

func TestBufValidator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fake := &toolsfakes.FakeRunner{}
	fake.RunReturns(nil, nil, -1, context.Canceled)

	err := (&tools.BufValidator{Runner: fake, Reporter: report.Discard}).Breaking(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, perrors.IsExternalToolError(err))
}

func TestBufGenerator_Generate(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, "buf.gen.yaml"), []byte("version: v2\n"), 0o644))
	pkg := filepath.Join(repo, "generated", "mysingle_protos", "protos", "common")
	require.NoError(t, os.MkdirAll(pkg, 0o755))
	pb := filepath.Join(pkg, "metadata_pb2_grpc.py")
	require.NoError(t, os.WriteFile(pb, []byte("from protos.common import metadata_pb2 as m\nimport protos.common.types_pb2\n"), 0o644))

	runner, seen := scriptedRunner(nil)
	g := &tools.BufGenerator{
		Runner:       runner,
		RepoRoot:     repo,
		Template:     "buf.gen.yaml",
		GeneratedDir: "generated",
		ImportName:   "mysingle_protos",
		Reporter:     report.Discard,
	}

	dir, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(repo, "generated", "mysingle_protos"), dir)
	assert.Equal(t, []string{"buf generate --template " + filepath.Join(repo, "buf.gen.yaml")}, *seen)
	data, err := os.ReadFile(pb)
	require.NoError(t, err)
	assert.Equal(t, "from mysingle_protos.protos.common import metadata_pb2 as m\nimport mysingle_protos.protos.common.types_pb2\n", string(data))
}

func TestBufGenerator_MissingTemplate(t *testing.T) {
	runner, _ := scriptedRunner(nil)
	g := &tools.BufGenerator{Runner: runner, RepoRoot: t.TempDir(), Template: "buf.gen.yaml", Reporter: report.Discard}

	_, err := g.Generate(context.Background())

	assert.True(t, perrors.IsNotFoundError(err))
	assert.Zero(t, runner.RunCallCount())
}

func TestRewriteImports_Idempotent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x_pb2.py")
	other := filepath.Join(dir, "helpers.py")
	require.NoError(t, os.WriteFile(file, []byte("from protos.a import b\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("from protos.a import b\n"), 0o644))

	modified, err := tools.RewriteImports(dir, "pkg")
	require.NoError(t, err)
	assert.Equal(t, []string{file}, modified)

	modified, err = tools.RewriteImports(dir, "pkg")
	require.NoError(t, err)
	assert.Empty(t, modified)

	untouched, err := os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "from protos.a import b\n", string(untouched))
}

func TestDetectPackageDir(t *testing.T) {
	tests := []struct {
		name    string
		layout  []string
		want    string
		wantErr bool
	}{
		{name: "import name", layout: []string{"mysingle_protos/"}, want: "mysingle_protos"},
		{name: "legacy python dir", layout: []string{"python/mysingle_protos/"}, want: "python/mysingle_protos"},
		{name: "first with protos", layout: []string{"aaa/", "other/protos/"}, want: "other"},
		{name: "first with setup.py", layout: []string{"pkg/setup.py"}, want: "pkg"},
		{name: "nothing", layout: []string{"empty/"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, p := range tt.layout {
				full := filepath.Join(root, filepath.FromSlash(p))
				if strings.HasSuffix(p, "/") {
					require.NoError(t, os.MkdirAll(full, 0o755))
					continue
				}
				require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
				require.NoError(t, os.WriteFile(full, nil, 0o644))
			}

			got, err := tools.DetectPackageDir(root, "mysingle_protos")
			if tt.wantErr {
				assert.True(t, perrors.IsNotFoundError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(root, filepath.FromSlash(tt.want)), got)
		})
	}
}

func TestPipInstaller_Flags(t *testing.T) {
	tests := []struct {
		name       string
		pipVersion string
		env        map[string]string
		want       []string
	}{
		{name: "new pip outside venv", pipVersion: "pip 24.0 from /usr/lib/python3 (python 3.12)", want: []string{"--break-system-packages", "--user"}},
		{name: "exact threshold", pipVersion: "pip 23.3 from /x (python 3.11)", env: map[string]string{"VIRTUAL_ENV": "/venv"}, want: []string{"--break-system-packages"}},
		{name: "old pip in conda", pipVersion: "pip 22.0.4 from /x (python 3.9)", env: map[string]string{"CONDA_PREFIX": "/conda"}, want: nil},
		{name: "unparseable version", pipVersion: "pip unknown", want: []string{"--user"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, _ := scriptedRunner(map[string]response{
				"python3 -m pip --version": {stdout: tt.pipVersion},
			})
			p := &tools.PipInstaller{
				Runner:   runner,
				Python:   "python3",
				Reporter: report.Discard,
				Getenv:   func(k string) string { return tt.env[k] },
			}

			got, err := p.Flags(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPipInstaller_Install(t *testing.T) {
	dir := t.TempDir()
	runner, seen := scriptedRunner(map[string]response{
		"python3 -m pip --version": {stdout: "pip 24.0 from /x (python 3.12)"},
	})
	p := &tools.PipInstaller{
		Runner:     runner,
		Python:     "python3",
		ImportName: "mysingle_protos",
		Reporter:   report.Discard,
		Getenv:     func(string) string { return "/venv" },
	}

	require.NoError(t, p.Install(context.Background(), dir))

	assert.Equal(t, "python3 -m pip install --break-system-packages -e "+dir, (*seen)[len(*seen)-1])
	initData, err := os.ReadFile(filepath.Join(dir, "__init__.py"))
	require.NoError(t, err)
	assert.Equal(t, "# auto-generated init\n", string(initData))
	setup, err := os.ReadFile(filepath.Join(dir, "setup.py"))
	require.NoError(t, err)
	assert.Contains(t, string(setup), `name="mysingle_protos"`)
	assert.Contains(t, string(setup), `version="0.0.0"`)
}

func TestPipInstaller_KeepsExistingMetadata(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[project]\n"), 0o644))
	runner, _ := scriptedRunner(nil)
	p := &tools.PipInstaller{Runner: runner, Python: "python3", Reporter: report.Discard, Getenv: func(string) string { return "" }}

	require.NoError(t, p.Install(context.Background(), dir))

	_, err := os.Stat(filepath.Join(dir, "setup.py"))
	assert.True(t, os.IsNotExist(err))
}

func TestPipInstaller_EnsurePipBootstraps(t *testing.T) {
	runner, seen := scriptedRunner(map[string]response{
		"python3 -m pip --version": {stderr: "No module named pip", code: 1},
	})
	rec := &report.Recorder{}
	p := &tools.PipInstaller{Runner: runner, Python: "python3", Reporter: rec}

	require.NoError(t, p.EnsurePip(context.Background()))

	assert.Equal(t, []string{"python3 -m pip --version", "python3 -m ensurepip --upgrade"}, *seen)
	assert.Len(t, rec.Messages(report.Warning), 1)
}

func TestPipInstaller_InstallService(t *testing.T) {
	runner, seen := scriptedRunner(map[string]response{
		"python3 -m pip --version": {stdout: "pip 21.0 from /x (python 3.8)"},
	})
	p := &tools.PipInstaller{Runner: runner, Python: "python3", Reporter: report.Discard, Getenv: func(string) string { return "" }}

	require.NoError(t, p.InstallService(context.Background(), "/svc/alpha"))

	last := runner.RunCallCount() - 1
	_, dir, _, _ := runner.RunArgsForCall(last)
	assert.Equal(t, "/svc/alpha", dir)
	assert.Equal(t, "python3 -m pip install --user -e .", (*seen)[last])
}

func TestUvSyncer(t *testing.T) {
	withManifest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(withManifest, "pyproject.toml"), nil, 0o644))
	runner, seen := scriptedRunner(nil)
	u := &tools.UvSyncer{Runner: runner, Reporter: report.Discard}

	require.NoError(t, u.Sync(context.Background(), t.TempDir()))
	require.NoError(t, u.Sync(context.Background(), withManifest))

	assert.Equal(t, []string{"uv sync"}, *seen)
	_, dir, _, _ := runner.RunArgsForCall(0)
	assert.Equal(t, withManifest, dir)
}

func TestGitVCS(t *testing.T) {
	ctx := context.Background()

	t.Run("status", func(t *testing.T) {
		runner, _ := scriptedRunner(map[string]response{
			"git status --porcelain": {stdout: " M protos/a.proto\n"},
		})
		status, err := (&tools.GitVCS{Runner: runner, RepoRoot: "/repo"}).Status(ctx)
		require.NoError(t, err)
		assert.Equal(t, "M protos/a.proto", status)
	})

	t.Run("tag exists", func(t *testing.T) {
		runner, _ := scriptedRunner(map[string]response{
			"git rev-parse --verify --quiet refs/tags/v1.0.0": {stdout: "abc123\n"},
			"git rev-parse --verify --quiet refs/tags/v2.0.0": {code: 1},
			"git rev-parse --verify --quiet refs/tags/v3.0.0": {stderr: "fatal: not a git repository", code: 128},
		})
		vcs := &tools.GitVCS{Runner: runner, RepoRoot: "/repo"}

		exists, err := vcs.TagExists(ctx, "v1.0.0")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = vcs.TagExists(ctx, "v2.0.0")
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = vcs.TagExists(ctx, "v3.0.0")
		assert.True(t, perrors.IsExternalToolError(err))
	})

	t.Run("commit tag push", func(t *testing.T) {
		runner, seen := scriptedRunner(nil)
		vcs := &tools.GitVCS{Runner: runner, RepoRoot: "/repo"}

		require.NoError(t, vcs.CommitAll(ctx, "chore(release): v1.2.3"))
		require.NoError(t, vcs.Tag(ctx, "v1.2.3", "Release v1.2.3"))
		require.NoError(t, vcs.Push(ctx, "origin", "HEAD"))

		assert.Equal(t, []string{
			"git add -A",
			"git commit -m chore(release): v1.2.3",
			"git tag -a v1.2.3 -m Release v1.2.3",
			"git push origin HEAD",
		}, *seen)
	})

	t.Run("branch and remotes", func(t *testing.T) {
		runner, _ := scriptedRunner(map[string]response{
			"git rev-parse --abbrev-ref HEAD": {stdout: "main\n"},
			"git remote":                      {stdout: "origin\nupstream\n"},
		})
		vcs := &tools.GitVCS{Runner: runner, RepoRoot: "/repo"}

		branch, err := vcs.CurrentBranch(ctx)
		require.NoError(t, err)
		assert.Equal(t, "main", branch)

		remotes, err := vcs.Remotes(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"origin", "upstream"}, remotes)
	})
}

func TestImportProbe(t *testing.T) {
	statement := "from mysingle_protos.protos.common import metadata_pb2"

	t.Run("http only service is skipped", func(t *testing.T) {
		svc := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(svc, "app"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(svc, "app", "main.py"), []byte("import fastapi\n"), 0o644))
		runner, _ := scriptedRunner(nil)
		rec := &report.Recorder{}
		p := &tools.ImportProbe{Runner: runner, Python: "python3", ImportName: "mysingle_protos", Statement: statement, Reporter: rec}

		require.NoError(t, p.Probe(context.Background(), svc))

		assert.Zero(t, runner.RunCallCount())
		require.Len(t, rec.Messages(report.Info), 1)
		assert.Contains(t, rec.Messages(report.Info)[0], "HTTP-only")
	})

	t.Run("grpc service runs the probe", func(t *testing.T) {
		svc := t.TempDir()
		nested := filepath.Join(svc, "app", "clients")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(nested, "grpc.py"), []byte("from mysingle_protos.protos.services import x\n"), 0o644))
		runner, seen := scriptedRunner(map[string]response{
			"python3 -c " + statement: {stderr: "ModuleNotFoundError: No module named 'mysingle_protos'", code: 1},
		})
		p := &tools.ImportProbe{Runner: runner, Python: "python3", ImportName: "mysingle_protos", Statement: statement, Reporter: report.Discard}

		err := p.Probe(context.Background(), svc)

		var toolErr *perrors.ExternalToolError
		require.ErrorAs(t, err, &toolErr)
		assert.Contains(t, toolErr.Output, "ModuleNotFoundError")
		assert.Equal(t, []string{"python3 -c " + statement}, *seen)
		_, dir, _, _ := runner.RunArgsForCall(0)
		assert.Equal(t, svc, dir)
	})
}

func TestToolVersion(t *testing.T) {
	runner, _ := scriptedRunner(map[string]response{
		"buf --version": {stdout: "1.47.2\n"},
	})
	v, err := tools.ToolVersion(context.Background(), runner, "buf")
	require.NoError(t, err)
	assert.Equal(t, "1.47.2", v)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, _, code, err := tools.ExecRunner{}.Run(context.Background(), "", "protosync-no-such-binary")
	assert.Error(t, err)
	assert.Equal(t, tools.ExitNotFound, code)
}
