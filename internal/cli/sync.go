package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/grpc-protos/protosync/internal/protosync/pipeline"
	"github.com/grpc-protos/protosync/internal/protosync/watch"
)

func newSyncCmd(a *app) *cobra.Command {
	var (
		dryRun  bool
		service string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy changed protocol files into the central repository",
		Long: `Copy every protocol file that differs from its central copy and append an
"unreleased" entry to the release notes of each service that contributed.

Examples:
  protosync sync --dry-run
  protosync sync --service billing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSync(cmd.Context(), dryRun, service)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the changes without writing")
	cmd.Flags().StringVar(&service, "service", "", "Sync only this service")
	return cmd
}

func (a *app) runSync(ctx context.Context, dryRun bool, service string) error {
	a.console.Header("sync protocol files")
	_, err := a.newPipeline().Sync(ctx, pipeline.SyncOptions{DryRun: dryRun, Service: service})
	return err
}

func newCodegenCmd(a *app) *cobra.Command {
	var dryRun, skipInstall bool

	cmd := &cobra.Command{
		Use:   "codegen",
		Short: "Generate code with buf and install the generated package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.console.Header("code generation")
			_, err := a.newPipeline().Codegen(cmd.Context(), dryRun, !skipInstall)
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without running buf")
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Do not pip install the generated package")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sync whenever protocol files change",
		Long: `Watch every service's protocol directory and run a sync after each burst of
changes. Runs preview only unless --apply is given. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.newPipeline()
			w := watch.New(a.servicesRoot, watch.Options{ProtoDir: a.cfg.ProtoDir},
				func(ctx context.Context) error {
					_, err := p.Sync(ctx, pipeline.SyncOptions{DryRun: !apply})
					return err
				}, a.console)
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Write changes instead of previewing them")
	return cmd
}
