package tools

import (
	"context"
	"os"
	"path/filepath"

	"github.com/grpc-protos/protosync/internal/protosync/report"
)

// UvSyncer runs "uv sync" in service directories that carry a pyproject.toml.
type UvSyncer struct {
	Runner   Runner
	Reporter report.Reporter
}

func (u *UvSyncer) Sync(ctx context.Context, dir string) error {
	if _, err := os.Stat(filepath.Join(dir, "pyproject.toml")); err != nil {
		report.Emitf(u.Reporter, report.Debug, "no pyproject.toml in %s, skipping uv sync", dir)
		return nil
	}
	if _, err := run(ctx, u.Runner, dir, "uv", "sync"); err != nil {
		return err
	}
	report.Emitf(u.Reporter, report.Success, "uv sync: %s", filepath.Base(dir))
	return nil
}
