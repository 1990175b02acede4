package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/grpc-protos/protosync/internal/protosync/pipeline"
	"github.com/grpc-protos/protosync/internal/protosync/report"
)

// releaseFlags are shared by release and publish.
type releaseFlags struct {
	version     string
	dryRun      bool
	skipBuf     bool
	skipCodegen bool
	uvSync      bool
}

func (f *releaseFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("release", pflag.ContinueOnError)
	fs.StringVar(&f.version, "version", "", "Release version X.Y.Z (required)")
	fs.BoolVar(&f.dryRun, "dry-run", false, "Preview every stage without writing")
	fs.BoolVar(&f.skipBuf, "skip-buf", false, "Skip buf format, lint and breaking")
	fs.BoolVar(&f.skipCodegen, "skip-codegen", false, "Skip code generation")
	fs.BoolVar(&f.uvSync, "uv-sync", false, "Run 'uv sync' in every service afterwards")
	return fs
}

func (f *releaseFlags) params() pipeline.ReleaseParams {
	return pipeline.ReleaseParams{
		Version:        f.version,
		DryRun:         f.dryRun,
		SkipValidation: f.skipBuf,
		SkipCodegen:    f.skipCodegen,
		DependencySync: f.uvSync,
	}
}

func newReleaseCmd(a *app) *cobra.Command {
	var (
		flags           releaseFlags
		skipStubInstall bool
	)

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Run the release pipeline",
		Long: `Sync, validate with buf, generate code, write release notes, bump the
repository version and re-pin every service.

Examples:
  protosync release --version 2.0.3
  protosync release --version 2.0.3 --dry-run
  protosync release --version 2.0.3 --skip-buf --uv-sync`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := flags.params()
			params.SkipStubInstall = skipStubInstall
			rc, err := pipeline.NewReleaseContext(params)
			if err != nil {
				return err
			}
			return a.runRelease(cmd, rc)
		},
	}

	cmd.Flags().AddFlagSet(flags.flagSet())
	cmd.Flags().BoolVar(&skipStubInstall, "skip-stub-install", false, "Do not pip install the generated package")
	return cmd
}

func (a *app) runRelease(cmd *cobra.Command, rc *pipeline.ReleaseContext) error {
	a.console.Header("release v" + rc.Version)
	_, err := a.newPipeline().Release(cmd.Context(), rc)
	return err
}

func newPublishCmd(a *app) *cobra.Command {
	var (
		flags         releaseFlags
		installStubs  bool
		commitMessage string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Release, then commit, tag and push",
		Long: `Run the release pipeline and record it in git: commit everything, create an
annotated tag v<version> and push the branch and the tag. The working tree
must be clean and the tag must not exist yet.

Examples:
  protosync publish --version 2.0.3
  protosync publish --version 2.0.3 --dry-run
  protosync publish --version 2.0.3 --commit-message "feat: billing v2 protos"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := flags.params()
			params.SkipStubInstall = !installStubs
			params.CommitMessage = commitMessage
			rc, err := pipeline.NewReleaseContext(params)
			if err != nil {
				return err
			}
			return a.runPublish(cmd, rc)
		},
	}

	cmd.Flags().AddFlagSet(flags.flagSet())
	cmd.Flags().BoolVar(&installStubs, "install-stubs", false, "pip install the generated package")
	cmd.Flags().StringVar(&commitMessage, "commit-message", "", "Commit message (default chore(release): v<version>)")
	return cmd
}

func (a *app) runPublish(cmd *cobra.Command, rc *pipeline.ReleaseContext) error {
	a.console.Header("publish " + rc.Tag())
	p := a.newPipeline()
	if _, err := a.newPublisher(p).Publish(cmd.Context(), rc); err != nil {
		return err
	}
	if !rc.DryRun {
		report.Emitf(a.console, report.Info, "services can now depend on %s", rc.Tag())
	}
	return nil
}
