package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grpc-protos/protosync/internal/protosync/report"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show discovered services and the changes a sync would make",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus()
		},
	}
}

func (a *app) runStatus() error {
	p := a.newPipeline()
	c := a.console

	c.Header("protosync status")
	st, err := p.Status()
	if err != nil {
		return err
	}

	report.Emitf(c, report.Info, "repository: %s", a.repoRoot)
	report.Emitf(c, report.Info, "services:   %s", a.servicesRoot)
	report.Emitf(c, report.Info, "config:     %s", a.configSource)
	if st.Version != "" {
		report.Emitf(c, report.Info, "version:    v%s", st.Version)
	} else {
		c.Emit(report.Warning, "version:    no version field in "+a.cfg.Manifest)
	}

	rows := make([][]string, 0, len(st.Catalog.Services))
	for _, svc := range st.Catalog.Services {
		rows = append(rows, []string{svc.Name, strconv.Itoa(len(svc.Files)), svc.ProtoRoot})
	}
	c.Table([]string{"Service", "Proto files", "Path"}, rows)

	if st.Plan.Empty() {
		c.Emit(report.Success, "central repository is up to date")
		return nil
	}
	c.Emit(report.Step, "pending changes")
	p.Preview(st.Plan)
	return nil
}
