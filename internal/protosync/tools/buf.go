package tools

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/grpc-protos/protosync/internal/protosync/fsutil"
	"github.com/grpc-protos/protosync/internal/protosync/report"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

const bufBinary = "buf"

// BufValidator runs buf format, lint and breaking in the repository root.
type BufValidator struct {
	Runner   Runner
	RepoRoot string
	// Against is the buf breaking baseline, e.g. ".git#branch=main".
	Against  string
	Reporter report.Reporter
}

func (v *BufValidator) Validate(ctx context.Context) error {
	steps := []struct {
		label string
		args  []string
	}{
		{"format (buf format -w)", []string{"format", "-w"}},
		{"lint (buf lint)", []string{"lint"}},
		{"breaking (buf breaking)", []string{"breaking", "--against", v.Against}},
	}
	for i, s := range steps {
		report.Emitf(v.Reporter, report.Info, "%d/%d %s", i+1, len(steps), s.label)
		if _, err := run(ctx, v.Runner, v.RepoRoot, bufBinary, s.args...); err != nil {
			return err
		}
	}
	v.Reporter.Emit(report.Success, "buf validation passed")
	return nil
}

func (v *BufValidator) Breaking(ctx context.Context) error {
	if _, err := run(ctx, v.Runner, v.RepoRoot, bufBinary, "breaking", "--against", v.Against); err != nil {
		return err
	}
	v.Reporter.Emit(report.Success, "no breaking changes")
	return nil
}

// BufGenerator runs buf generate and prepares the generated Python package.
type BufGenerator struct {
	Runner       Runner
	RepoRoot     string
	Template     string
	GeneratedDir string
	ImportName   string
	Reporter     report.Reporter
}

func (g *BufGenerator) Generate(ctx context.Context) (string, error) {
	template := g.path(g.Template)
	if _, err := os.Stat(template); err != nil {
		return "", perrors.NewNotFoundError("buf generate template", template)
	}

	g.Reporter.Emit(report.Step, "generating code with buf")
	if _, err := run(ctx, g.Runner, g.RepoRoot, bufBinary, "generate", "--template", template); err != nil {
		return "", err
	}

	generated := g.path(g.GeneratedDir)
	modified, err := RewriteImports(generated, g.ImportName)
	if err != nil {
		return "", err
	}
	if len(modified) > 0 {
		report.Emitf(g.Reporter, report.Success, "rewrote imports in %d generated files", len(modified))
	} else {
		g.Reporter.Emit(report.Info, "no generated imports needed rewriting")
	}

	pkgDir, err := DetectPackageDir(generated, g.ImportName)
	if err != nil {
		return "", err
	}
	report.Emitf(g.Reporter, report.Success, "generated package at %s", pkgDir)
	return pkgDir, nil
}

func (g *BufGenerator) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(g.RepoRoot, p)
}

var generatedSuffixes = []string{"_pb2.py", "_pb2_grpc.py"}

// RewriteImports points generated modules at the installed package name:
// "from protos." becomes "from <importName>.protos." and likewise for
// "import protos.". It returns the files it changed.
func RewriteImports(generatedDir, importName string) ([]string, error) {
	if _, err := os.Stat(generatedDir); os.IsNotExist(err) {
		return nil, nil
	}

	replacer := strings.NewReplacer(
		"from protos.", "from "+importName+".protos.",
		"import protos.", "import "+importName+".protos.",
	)

	var modified []string
	err := filepath.WalkDir(generatedDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasAnySuffix(d.Name(), generatedSuffixes) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		updated := replacer.Replace(string(data))
		if updated == string(data) {
			return nil
		}
		if err := fsutil.WriteFile(path, []byte(updated), 0o644); err != nil {
			return err
		}
		modified = append(modified, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rewrite generated imports: %w", err)
	}
	return modified, nil
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// DetectPackageDir finds the generated package: <root>/<importName>, then
// the legacy <root>/python/<importName>, then the first directory holding a
// protos directory or packaging metadata.
func DetectPackageDir(root, importName string) (string, error) {
	for _, candidate := range []string{
		filepath.Join(root, importName),
		filepath.Join(root, "python", importName),
	} {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}

	entries, err := os.ReadDir(root)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		for _, marker := range []string{"protos", "setup.py", "pyproject.toml"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
	}
	return "", perrors.NewNotFoundError("generated python package", root)
}
