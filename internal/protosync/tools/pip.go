package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grpc-protos/protosync/internal/protosync/fsutil"
	"github.com/grpc-protos/protosync/internal/protosync/report"
	"github.com/grpc-protos/protosync/pkg/logger"
	"github.com/grpc-protos/protosync/pkg/semver"
)

// breakSystemPackagesSince is the first pip release that understands
// --break-system-packages.
var breakSystemPackagesSince, _ = semver.NewVersion("23.3.0")

// PipInstaller installs directories in editable mode with the configured
// interpreter.
type PipInstaller struct {
	Runner Runner
	Python string
	// ImportName names the generated package in the setup.py written for
	// packages that ship without packaging metadata.
	ImportName string
	Reporter   report.Reporter
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Install runs "pip install <flags> -e <dir>". Generated package directories
// without packaging metadata get a minimal __init__.py and setup.py first.
func (p *PipInstaller) Install(ctx context.Context, dir string) error {
	if err := p.EnsurePip(ctx); err != nil {
		return err
	}
	flags, err := p.Flags(ctx)
	if err != nil {
		return err
	}
	if err := p.ensureMetadata(dir); err != nil {
		return err
	}

	args := append([]string{"-m", "pip", "install"}, flags...)
	args = append(args, "-e", dir)
	report.Emitf(p.Reporter, report.Info, "installing %s with %s", dir, p.Python)
	if _, err := run(ctx, p.Runner, "", p.Python, args...); err != nil {
		return err
	}
	report.Emitf(p.Reporter, report.Success, "installed %s", dir)
	return nil
}

// InstallService installs a service checkout ("pip install -e .").
func (p *PipInstaller) InstallService(ctx context.Context, serviceDir string) error {
	if err := p.EnsurePip(ctx); err != nil {
		return err
	}
	flags, err := p.Flags(ctx)
	if err != nil {
		return err
	}
	args := append([]string{"-m", "pip", "install"}, flags...)
	args = append(args, "-e", ".")
	_, err = run(ctx, p.Runner, serviceDir, p.Python, args...)
	return err
}

// EnsurePip bootstraps pip through ensurepip when the interpreter lacks it.
func (p *PipInstaller) EnsurePip(ctx context.Context) error {
	if _, err := run(ctx, p.Runner, "", p.Python, "-m", "pip", "--version"); err == nil {
		return nil
	} else if ctx.Err() != nil {
		return err
	}

	report.Emitf(p.Reporter, report.Warning, "pip not found for %s, bootstrapping with ensurepip", p.Python)
	if _, err := run(ctx, p.Runner, "", p.Python, "-m", "ensurepip", "--upgrade"); err != nil {
		return err
	}
	p.Reporter.Emit(report.Success, "bootstrapped pip via ensurepip")
	return nil
}

// Flags returns the pip install flags for the current interpreter and
// environment.
func (p *PipInstaller) Flags(ctx context.Context) ([]string, error) {
	var flags []string

	out, err := run(ctx, p.Runner, "", p.Python, "-m", "pip", "--version")
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err == nil {
		// "pip 24.0 from /usr/lib/python3/dist-packages/pip (python 3.12)"
		fields := strings.Fields(out)
		if len(fields) >= 2 {
			if v, perr := semver.ParseLoose(fields[1]); perr == nil && v.AtLeast(breakSystemPackagesSince) {
				flags = append(flags, "--break-system-packages")
			}
		}
	} else {
		logger.Debug("could not read pip version", "python", p.Python, "error", err)
	}

	getenv := p.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if getenv("VIRTUAL_ENV") == "" && getenv("CONDA_PREFIX") == "" {
		flags = append(flags, "--user")
	}
	return flags, nil
}

const setupTemplate = `from pathlib import Path
from setuptools import find_packages, setup

package_root = Path(__file__).parent
packages = [pkg for pkg in find_packages(where=str(package_root)) if pkg.startswith(%[1]q)]

setup(
    name=%[1]q,
    version="0.0.0",
    packages=packages,
    package_dir={"": "."},
    include_package_data=True,
)
`

func (p *PipInstaller) ensureMetadata(dir string) error {
	initPath := filepath.Join(dir, "__init__.py")
	if _, err := os.Stat(initPath); os.IsNotExist(err) {
		if err := fsutil.WriteFile(initPath, []byte("# auto-generated init\n"), 0o644); err != nil {
			return err
		}
	}

	for _, marker := range []string{"setup.py", "pyproject.toml"} {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return nil
		}
	}
	name := p.ImportName
	if name == "" {
		name = filepath.Base(dir)
	}
	return fsutil.WriteFile(filepath.Join(dir, "setup.py"), []byte(fmt.Sprintf(setupTemplate, name)), 0o644)
}
