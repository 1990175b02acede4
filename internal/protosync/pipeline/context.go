package pipeline

import (
	"fmt"
	"strings"

	perrors "github.com/grpc-protos/protosync/pkg/errors"
	"github.com/grpc-protos/protosync/pkg/semver"
)

// ReleaseParams are the raw release options collected from flags or the
// interactive driver.
type ReleaseParams struct {
	Version         string
	DryRun          bool
	SkipValidation  bool
	SkipCodegen     bool
	SkipStubInstall bool
	DependencySync  bool
	CommitMessage   string
}

// ReleaseContext is a validated set of release options. It is built once per
// run and never modified afterwards.
type ReleaseContext struct {
	Version         string
	DryRun          bool
	SkipValidation  bool
	SkipCodegen     bool
	SkipStubInstall bool
	DependencySync  bool
	CommitMessage   string
}

// NewReleaseContext validates params. The version must be X.Y.Z; a leading
// "v" is accepted and stripped.
func NewReleaseContext(params ReleaseParams) (*ReleaseContext, error) {
	raw := strings.TrimSpace(params.Version)
	if raw == "" {
		return nil, perrors.NewUserInputError("a release version is required (X.Y.Z)")
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, perrors.NewUserInputError(fmt.Sprintf("invalid release version %q: expected X.Y.Z", raw))
	}

	return &ReleaseContext{
		Version:         v.String(),
		DryRun:          params.DryRun,
		SkipValidation:  params.SkipValidation,
		SkipCodegen:     params.SkipCodegen,
		SkipStubInstall: params.SkipStubInstall,
		DependencySync:  params.DependencySync,
		CommitMessage:   strings.TrimSpace(params.CommitMessage),
	}, nil
}

// Tag returns the version control tag for the release.
func (rc *ReleaseContext) Tag() string {
	return "v" + rc.Version
}

// Message returns the commit message, defaulting to chore(release): v<version>.
func (rc *ReleaseContext) Message() string {
	if rc.CommitMessage != "" {
		return rc.CommitMessage
	}
	return "chore(release): " + rc.Tag()
}
