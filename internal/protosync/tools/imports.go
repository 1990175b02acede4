package tools

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/grpc-protos/protosync/internal/protosync/report"
)

// errFound stops the app/ walk at the first match.
var errFound = errors.New("found")

// ImportProbe checks that a service can import the generated package.
type ImportProbe struct {
	Runner     Runner
	Python     string
	ImportName string
	// Statement is the python statement executed by Probe, for example
	// "from mysingle_protos.protos.common import metadata_pb2".
	Statement string
	Reporter  report.Reporter
}

// HasImports reports whether any python file under <serviceDir>/app mentions
// the import name.
func (p *ImportProbe) HasImports(serviceDir string) (bool, error) {
	appDir := filepath.Join(serviceDir, "app")
	if _, err := os.Stat(appDir); os.IsNotExist(err) {
		return false, nil
	}

	needle := []byte(p.ImportName)
	err := filepath.WalkDir(appDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if bytes.Contains(data, needle) {
			return errFound
		}
		return nil
	})
	if errors.Is(err, errFound) {
		return true, nil
	}
	return false, err
}

// Probe runs the import statement with the configured interpreter in the
// service directory. Services without imports are skipped.
func (p *ImportProbe) Probe(ctx context.Context, serviceDir string) error {
	has, err := p.HasImports(serviceDir)
	if err != nil {
		return err
	}
	if !has {
		report.Emitf(p.Reporter, report.Info, "no gRPC proto imports in %s (HTTP-only service), skipping", filepath.Base(serviceDir))
		return nil
	}

	report.Emitf(p.Reporter, report.Info, "importing %s", p.Statement)
	if _, err := run(ctx, p.Runner, serviceDir, p.Python, "-c", p.Statement); err != nil {
		return err
	}
	report.Emitf(p.Reporter, report.Success, "%s imports %s", filepath.Base(serviceDir), p.ImportName)
	return nil
}
