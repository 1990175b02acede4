package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grpc-protos/protosync/internal/protosync/report"
	"github.com/grpc-protos/protosync/internal/protosync/tools"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Check the environment protosync needs",
		Long: `Check the git repository, current branch and remotes, the buf and python
tools, and the directories and files a release reads. Missing tools are
reported as warnings; missing directories fail the check.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd.Context())
		},
	}
}

func (a *app) runInit(ctx context.Context) error {
	c := a.console
	c.Header("environment check")

	c.Emit(report.Step, "git")
	vcs := a.newVCS()
	if branch, err := vcs.CurrentBranch(ctx); err != nil {
		report.Emitf(c, report.Warning, "%s is not a git repository: publish will not work", a.repoRoot)
	} else {
		report.Emitf(c, report.Success, "branch: %s", branch)
		remotes, err := vcs.Remotes(ctx)
		switch {
		case err != nil:
			report.Emitf(c, report.Warning, "cannot list remotes: %v", err)
		case len(remotes) == 0:
			c.Emit(report.Warning, "no remotes configured: publish cannot push")
		default:
			report.Emitf(c, report.Success, "remotes: %s", strings.Join(remotes, ", "))
		}
	}

	c.Emit(report.Step, "tools")
	for _, tool := range []string{"buf", a.cfg.Python, "uv"} {
		version, err := tools.ToolVersion(ctx, a.runner, tool)
		if err != nil {
			if perrors.IsContextError(err) {
				return err
			}
			report.Emitf(c, report.Warning, "%s not available", tool)
			continue
		}
		report.Emitf(c, report.Success, "%s: %s", tool, version)
	}

	c.Emit(report.Step, "layout")
	required := []struct {
		what string
		path string
		dir  bool
	}{
		{"central protocol directory", a.cfg.CentralProtoRoot(a.repoRoot), true},
		{"central manifest", a.cfg.CentralManifest(a.repoRoot), false},
		{"services root", a.servicesRoot, true},
	}
	var missing error
	for _, r := range required {
		info, err := os.Stat(r.path)
		if err != nil || info.IsDir() != r.dir {
			report.Emitf(c, report.Error, "%s missing: %s", r.what, r.path)
			if missing == nil {
				missing = perrors.NewNotFoundError(r.what, r.path)
			}
			continue
		}
		report.Emitf(c, report.Success, "%s: %s", r.what, r.path)
	}
	template := a.cfg.BufTemplate
	if !filepath.IsAbs(template) {
		template = filepath.Join(a.repoRoot, template)
	}
	if _, err := os.Stat(template); err != nil {
		report.Emitf(c, report.Warning, "%s not found: codegen will fail", a.cfg.BufTemplate)
	}

	if missing != nil {
		return missing
	}
	c.Emit(report.Success, "environment ready")
	return nil
}
