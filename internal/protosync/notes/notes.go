// Package notes appends release-note entries to each service's protocol
// directory.
package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/grpc-protos/protosync/internal/protosync/catalog"
	"github.com/grpc-protos/protosync/internal/protosync/fsutil"
	"github.com/grpc-protos/protosync/internal/protosync/report"
	"github.com/grpc-protos/protosync/internal/protosync/syncer"
)

const (
	DefaultFileName = "RELEASE.md"
	header          = "# Proto Release Notes\n\n"
	// Unreleased labels entries written without a target version.
	Unreleased = "unreleased"
)

type Writer struct {
	fileName  string
	packageID string
	reporter  report.Reporter
}

func New(fileName, packageID string, r report.Reporter) *Writer {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &Writer{fileName: fileName, packageID: packageID, reporter: r}
}

// Path returns the notes file of svc.
func (w *Writer) Path(svc catalog.Service) string {
	return filepath.Join(svc.ProtoRoot, w.fileName)
}

// Label renders the version label of an entry.
func Label(version string) string {
	if version == "" {
		return Unreleased
	}
	return "v" + strings.TrimPrefix(version, "v")
}

// Entry renders one note entry.
func (w *Writer) Entry(version string, changes []syncer.Change, now time.Time) string {
	files := make([]string, 0, len(changes))
	for _, c := range changes {
		files = append(files, c.RelPath)
	}
	return fmt.Sprintf("- %s — %s %s synced\n  - files: %s\n",
		now.UTC().Format(time.RFC3339), w.packageID, Label(version), strings.Join(files, ", "))
}

// Append adds an entry for changes to the notes of svc. Nothing happens when
// changes is empty.
func (w *Writer) Append(svc catalog.Service, version string, changes []syncer.Change, dryRun bool, now time.Time) error {
	if len(changes) == 0 {
		return nil
	}
	path := w.Path(svc)

	if dryRun {
		report.Emitf(w.reporter, report.Info, "preview: %s release notes (%s, %d files)", svc.Name, Label(version), len(changes))
		return nil
	}

	existing, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		existing = []byte(header)
	case err != nil:
		return fmt.Errorf("read %s: %w", path, err)
	case len(existing) > 0 && existing[len(existing)-1] != '\n':
		existing = append(existing, '\n')
	}

	content := append(existing, w.Entry(version, changes, now)...)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := fsutil.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	report.Emitf(w.reporter, report.Success, "%s release notes updated", svc.Name)
	return nil
}

// AppendPlan writes one entry per service of plan that received changes.
func (w *Writer) AppendPlan(cat *catalog.Catalog, plan *syncer.Plan, version string, dryRun bool, now time.Time) error {
	for _, sp := range plan.Services {
		svc, err := cat.Lookup(sp.Service)
		if err != nil {
			return err
		}
		if err := w.Append(svc, version, sp.Changes, dryRun, now); err != nil {
			return err
		}
	}
	return nil
}
