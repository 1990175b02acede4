// Package ledger reads and writes the repository version and the version
// each service pins the protocol package to.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grpc-protos/protosync/internal/protosync/catalog"
	"github.com/grpc-protos/protosync/internal/protosync/manifest"
	"github.com/grpc-protos/protosync/internal/protosync/report"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
	"github.com/grpc-protos/protosync/pkg/logger"
	"github.com/grpc-protos/protosync/pkg/semver"
)

// versionFields are the manifest locations of the repository version, in
// lookup order.
var versionFields = [][]string{
	{"project"},
	{"tool", "poetry"},
}

type Config struct {
	// CentralManifest is the manifest holding the repository version.
	CentralManifest string
	// PackageID is the distribution name services depend on.
	PackageID string
	// Source is the dependency URL without a ref.
	Source string
	// ManifestName is the manifest file name inside each service.
	ManifestName string
}

// Pin is one service's declared dependency on the protocol package.
type Pin struct {
	Service  string
	Manifest string
	Declared bool
	// Version is empty when the service tracks a branch.
	Version string
	Ref     string
	Raw     string
}

// Branch reports whether the pin follows a branch instead of a release.
func (p Pin) Branch() bool {
	return p.Declared && p.Version == ""
}

type ConsistencyReport struct {
	RepositoryVersion string
	Pins              []Pin
	Mismatches        []string
}

type Ledger struct {
	cfg      Config
	reporter report.Reporter
	logger   *logger.Logger
}

func New(cfg Config, r report.Reporter) *Ledger {
	if cfg.ManifestName == "" {
		cfg.ManifestName = "pyproject.toml"
	}
	return &Ledger{
		cfg:      cfg,
		reporter: r,
		logger:   logger.WithField("component", "ledger"),
	}
}

// CurrentVersion returns the repository version.
func (l *Ledger) CurrentVersion() (string, error) {
	doc, err := manifest.Load(l.cfg.CentralManifest)
	if err != nil {
		return "", err
	}
	_, version, err := findVersion(doc)
	return version, err
}

func findVersion(doc *manifest.Document) ([]string, string, error) {
	for _, table := range versionFields {
		if v, ok := doc.StringAt(append(append([]string{}, table...), "version")...); ok {
			return table, v, nil
		}
	}
	return nil, "", perrors.WrapStructural(doc.Path, "read version", perrors.ErrManifestField)
}

// SetVersion rewrites the repository version in place.
func (l *Ledger) SetVersion(version string, dryRun bool) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %v", perrors.ErrInvalidVersion, err)
	}

	doc, err := manifest.Load(l.cfg.CentralManifest)
	if err != nil {
		return err
	}
	table, current, err := findVersion(doc)
	if err != nil {
		return err
	}

	if err := doc.SetString(table, "version", v.String()); err != nil {
		return err
	}

	if dryRun {
		report.Emitf(l.reporter, report.Info, "preview: %s version %s -> %s", l.cfg.PackageID, current, v)
		return nil
	}
	if current == v.String() {
		report.Emitf(l.reporter, report.Info, "%s version already %s", l.cfg.PackageID, v)
		return nil
	}
	if err := doc.Save(); err != nil {
		return fmt.Errorf("write %s: %w", doc.Path, err)
	}
	report.Emitf(l.reporter, report.Success, "%s version updated: %s -> %s", l.cfg.PackageID, current, v)
	return nil
}

func (l *Ledger) serviceManifest(svc catalog.Service) string {
	return filepath.Join(svc.Root, l.cfg.ManifestName)
}

// declarations returns every matching declaration in doc, in manifest order.
// Any string value can carry one: project dependencies, optional extras,
// dependency groups and tool tables such as tool.uv.dev-dependencies.
func (l *Ledger) declarations(doc *manifest.Document) []declaration {
	want := normalizeName(l.cfg.PackageID)
	var out []declaration
	for _, raw := range doc.Strings() {
		d, ok := parseDeclaration(raw)
		if !ok || normalizeName(d.name) != want || d.source != l.cfg.Source {
			continue
		}
		out = append(out, d)
	}
	return out
}

// ServicePin reads the pin declared by svc. A missing manifest or a manifest
// without a matching declaration yields an undeclared pin.
func (l *Ledger) ServicePin(svc catalog.Service) (Pin, error) {
	path := l.serviceManifest(svc)
	pin := Pin{Service: svc.Name, Manifest: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return pin, nil
	}
	doc, err := manifest.Load(path)
	if err != nil {
		return pin, err
	}

	decls := l.declarations(doc)
	if len(decls) == 0 {
		return pin, nil
	}

	d := decls[0]
	pin.Declared = true
	pin.Raw = d.raw
	pin.Ref = d.ref
	if v, ok := tagVersion(d.ref); ok {
		pin.Version = v
	}
	if len(decls) > 1 {
		l.logger.Debug("multiple declarations, using the first", "service", svc.Name, "count", len(decls))
	}
	return pin, nil
}

// Repin points every matching declaration at v<version>. Services without a
// matching declaration are skipped. It returns the services that declare the
// package; manifests are written only when their bytes change.
func (l *Ledger) Repin(services []catalog.Service, version string, dryRun bool) ([]string, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", perrors.ErrInvalidVersion, err)
	}
	tag := v.Tag()

	var updated []string
	for _, svc := range services {
		path := l.serviceManifest(svc)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			report.Emitf(l.reporter, report.Debug, "%s: no %s, skipped", svc.Name, l.cfg.ManifestName)
			continue
		}
		doc, err := manifest.Load(path)
		if err != nil {
			return updated, err
		}

		decls := l.declarations(doc)
		if len(decls) == 0 {
			report.Emitf(l.reporter, report.Debug, "%s: does not depend on %s, skipped", svc.Name, l.cfg.PackageID)
			continue
		}

		changed := false
		seen := map[string]bool{}
		for _, d := range decls {
			if d.ref == tag || seen[d.raw] {
				continue
			}
			seen[d.raw] = true
			// ReplaceString rewrites every identical literal at once.
			if _, err := doc.ReplaceString(d.raw, d.withRef(tag)); err != nil {
				return updated, err
			}
			changed = true
		}
		updated = append(updated, svc.Name)

		switch {
		case !changed:
			report.Emitf(l.reporter, report.Debug, "%s already pins %s", svc.Name, tag)
		case dryRun:
			report.Emitf(l.reporter, report.Info, "preview: %s -> %s %s", svc.Name, l.cfg.PackageID, tag)
		default:
			if err := doc.Save(); err != nil {
				return updated, fmt.Errorf("write %s: %w", path, err)
			}
			report.Emitf(l.reporter, report.Success, "%s -> %s", svc.Name, tag)
		}
	}

	if len(updated) > 0 {
		report.Emitf(l.reporter, report.Success, "%d service dependencies pinned to %s", len(updated), tag)
	}
	return updated, nil
}

// CheckConsistency compares every released pin with the repository version.
// Branch pins are reported but never count as mismatches. When mismatches
// exist the report is returned together with a *errors.ConsistencyError
// listing all of them.
func (l *Ledger) CheckConsistency(cat *catalog.Catalog) (*ConsistencyReport, error) {
	current, err := l.CurrentVersion()
	if err != nil {
		return nil, err
	}

	rep := &ConsistencyReport{RepositoryVersion: current}
	for _, svc := range cat.Services {
		pin, err := l.ServicePin(svc)
		if err != nil {
			return nil, err
		}
		rep.Pins = append(rep.Pins, pin)

		switch {
		case !pin.Declared:
			report.Emitf(l.reporter, report.Debug, "%s does not depend on %s", svc.Name, l.cfg.PackageID)
		case pin.Branch():
			report.Emitf(l.reporter, report.Warning, "%s tracks %s instead of a release", svc.Name, pin.Ref)
		case pin.Version != current:
			rep.Mismatches = append(rep.Mismatches, fmt.Sprintf("%s pins v%s", svc.Name, pin.Version))
		}
	}

	if len(rep.Mismatches) > 0 {
		return rep, &perrors.ConsistencyError{
			RepositoryVersion: current,
			Mismatches:        rep.Mismatches,
		}
	}
	report.Emitf(l.reporter, report.Success, "all pinned services use v%s", current)
	return rep, nil
}
