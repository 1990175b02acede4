package tools

import (
	"context"
	"errors"
	"strings"

	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

const gitBinary = "git"

// GitVCS drives the git CLI in RepoRoot.
type GitVCS struct {
	Runner   Runner
	RepoRoot string
}

func (g *GitVCS) Status(ctx context.Context) (string, error) {
	out, err := run(ctx, g.Runner, g.RepoRoot, gitBinary, "status", "--porcelain")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// TagExists reports whether refs/tags/<tag> resolves. rev-parse exits 1 for
// a missing ref; any other failure is returned.
func (g *GitVCS) TagExists(ctx context.Context, tag string) (bool, error) {
	_, err := run(ctx, g.Runner, g.RepoRoot, gitBinary, "rev-parse", "--verify", "--quiet", "refs/tags/"+tag)
	if err == nil {
		return true, nil
	}
	var toolErr *perrors.ExternalToolError
	if errors.As(err, &toolErr) && toolErr.ExitCode == 1 {
		return false, nil
	}
	return false, err
}

// CommitAll stages every change and records a commit.
func (g *GitVCS) CommitAll(ctx context.Context, message string) error {
	if _, err := run(ctx, g.Runner, g.RepoRoot, gitBinary, "add", "-A"); err != nil {
		return err
	}
	_, err := run(ctx, g.Runner, g.RepoRoot, gitBinary, "commit", "-m", message)
	return err
}

// Tag creates an annotated tag on HEAD.
func (g *GitVCS) Tag(ctx context.Context, tag, message string) error {
	_, err := run(ctx, g.Runner, g.RepoRoot, gitBinary, "tag", "-a", tag, "-m", message)
	return err
}

func (g *GitVCS) Push(ctx context.Context, remote, ref string) error {
	_, err := run(ctx, g.Runner, g.RepoRoot, gitBinary, "push", remote, ref)
	return err
}

func (g *GitVCS) CurrentBranch(ctx context.Context) (string, error) {
	out, err := run(ctx, g.Runner, g.RepoRoot, gitBinary, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (g *GitVCS) Remotes(ctx context.Context) ([]string, error) {
	out, err := run(ctx, g.Runner, g.RepoRoot, gitBinary, "remote")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}
