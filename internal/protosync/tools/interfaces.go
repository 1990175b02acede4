// Package tools wraps the external programs the release process drives:
// buf for validation and code generation, pip and uv for installation, git
// for publishing. Each collaborator is an opaque blocking step that either
// succeeds or returns an *errors.ExternalToolError with the tool output.
package tools

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

import "context"

// Validator runs schema checks over the central protocol tree.
//
//counterfeiter:generate . Validator
type Validator interface {
	// Validate formats, lints and checks for breaking changes.
	Validate(ctx context.Context) error
	// Breaking runs only the breaking-change check.
	Breaking(ctx context.Context) error
}

// CodeGenerator produces the importable package and returns its directory.
//
//counterfeiter:generate . CodeGenerator
type CodeGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// Installer installs a directory as an editable package.
//
//counterfeiter:generate . Installer
type Installer interface {
	Install(ctx context.Context, dir string) error
}

// DependencySyncer refreshes a service's locked dependencies.
//
//counterfeiter:generate . DependencySyncer
type DependencySyncer interface {
	Sync(ctx context.Context, dir string) error
}

// VCS is the version control surface used by publish and init.
//
//counterfeiter:generate . VCS
type VCS interface {
	// Status returns the porcelain status; empty means a clean tree.
	Status(ctx context.Context) (string, error)
	TagExists(ctx context.Context, tag string) (bool, error)
	CommitAll(ctx context.Context, message string) error
	Tag(ctx context.Context, tag, message string) error
	Push(ctx context.Context, remote, ref string) error
	CurrentBranch(ctx context.Context) (string, error)
	Remotes(ctx context.Context) ([]string, error)
}

// ServiceInstaller installs a service checkout into the interpreter.
//
//counterfeiter:generate . ServiceInstaller
type ServiceInstaller interface {
	InstallService(ctx context.Context, serviceDir string) error
}

// ImportChecker verifies that a service can import the generated package.
//
//counterfeiter:generate . ImportChecker
type ImportChecker interface {
	Probe(ctx context.Context, serviceDir string) error
}
