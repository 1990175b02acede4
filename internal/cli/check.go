package cli

import (
	"github.com/spf13/cobra"

	"github.com/grpc-protos/protosync/internal/protosync/catalog"
	"github.com/grpc-protos/protosync/internal/protosync/ledger"
	"github.com/grpc-protos/protosync/internal/protosync/report"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

func newCheckVersionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-versions",
		Short: "Compare every service pin with the repository version",
		Long: `List the version of the protocol package each service pins and compare it
with the central repository version. Exits 1 when any released pin differs.
Services tracking a branch are listed but never count as mismatches.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.console.Header("version consistency")
			rep, err := a.newPipeline().CheckVersions()
			if rep != nil {
				report.Emitf(a.console, report.Info, "repository version: v%s", rep.RepositoryVersion)
				a.console.Table([]string{"Service", "Version", "Status"}, pinRows(rep))
			}
			return err
		},
	}
}

func pinRows(rep *ledger.ConsistencyReport) [][]string {
	rows := make([][]string, 0, len(rep.Pins))
	for _, pin := range rep.Pins {
		switch {
		case !pin.Declared:
			rows = append(rows, []string{pin.Service, "-", "not pinned"})
		case pin.Branch():
			rows = append(rows, []string{pin.Service, pin.Ref, "~ branch"})
		case pin.Version == rep.RepositoryVersion:
			rows = append(rows, []string{pin.Service, "v" + pin.Version, "✓"})
		default:
			rows = append(rows, []string{pin.Service, "v" + pin.Version, "✗"})
		}
	}
	return rows
}

func newBreakingCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "breaking",
		Short: "Check the protocol definitions for breaking changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.newPipeline().Breaking(cmd.Context(), dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only show what would be checked")
	return cmd
}

func newValidateImportsCmd(a *app) *cobra.Command {
	var (
		service     string
		installDeps bool
	)

	cmd := &cobra.Command{
		Use:   "validate-imports",
		Short: "Check that a service can import the generated package",
		Long: `Check that a service imports the generated protocol package correctly by
running a python import probe in the service directory. Services whose app/
code never references the package are skipped.

Examples:
  protosync validate-imports --service billing
  protosync validate-imports --service billing --install-deps`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if service == "" {
				var names []string
				cat, err := catalog.Discover(a.servicesRoot, catalog.Options{ProtoDir: a.cfg.ProtoDir}, report.Discard)
				if err == nil {
					names = cat.Suggestions()
				}
				return perrors.NewUserInputError("--service is required", names...)
			}
			return a.newPipeline().ValidateImports(cmd.Context(), service, installDeps)
		},
	}

	cmd.Flags().StringVar(&service, "service", "", "Service to check (required)")
	cmd.Flags().BoolVar(&installDeps, "install-deps", false, "pip install -e . in the service first")
	return cmd
}
