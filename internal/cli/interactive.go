package cli

import (
	"github.com/spf13/cobra"

	"github.com/grpc-protos/protosync/internal/protosync/interactive"
	"github.com/grpc-protos/protosync/internal/protosync/report"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

// runInteractive shows the menu until the operator exits. A failing action
// is reported and the menu comes back; interruption ends the loop.
func (a *app) runInteractive(cmd *cobra.Command) error {
	ctx := cmd.Context()
	for {
		sel, err := a.choose(ctx, a.in, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		switch sel.Action {
		case interactive.ActionExit:
			return nil
		case interactive.ActionStatus:
			err = a.runStatus()
		case interactive.ActionSync:
			err = a.runSync(ctx, sel.DryRun, "")
		case interactive.ActionRelease:
			err = a.runRelease(cmd, sel.Release)
		case interactive.ActionPublish:
			err = a.runPublish(cmd, sel.Release)
		}

		if err == nil {
			continue
		}
		if perrors.IsContextError(err) {
			return err
		}
		report.Emitf(a.console, report.Error, "%s failed: %v", sel.Action, err)
		if hint := perrors.GetUserMessage(err); hint != "" {
			a.console.Emit(report.Info, hint)
		}
	}
}
