// Package pipeline runs the release stages in their fixed order and the
// publish workflow on top of them.
//
// Stages are linear:
//
//	sync -> validate? -> codegen? -> release-notes -> version-bump -> repin -> dependency-sync?
//
// Validation and code generation run before any manifest is touched, so a
// failing external tool leaves the repository version unchanged. Nothing is
// rolled back: files synced before a failure stay synced.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/grpc-protos/protosync/internal/protosync/catalog"
	"github.com/grpc-protos/protosync/internal/protosync/ledger"
	"github.com/grpc-protos/protosync/internal/protosync/metrics"
	"github.com/grpc-protos/protosync/internal/protosync/notes"
	"github.com/grpc-protos/protosync/internal/protosync/report"
	"github.com/grpc-protos/protosync/internal/protosync/syncer"
	"github.com/grpc-protos/protosync/internal/protosync/tools"
	"github.com/grpc-protos/protosync/pkg/logger"
)

// Stage names, also used as metric labels.
const (
	StageSync           = "sync"
	StageValidate       = "validate"
	StageCodegen        = "codegen"
	StageReleaseNotes   = "release-notes"
	StageVersionBump    = "version-bump"
	StageRepin          = "repin"
	StageDependencySync = "dependency-sync"
)

// Deps are the collaborators a Pipeline drives. Validator, Generator,
// Installer and DependencySyncer are only required by the stages that use
// them.
type Deps struct {
	ServicesRoot string
	ProtoDir     string
	// ManifestName is the service manifest that marks a service for
	// dependency sync.
	ManifestName string

	Syncer *syncer.Engine
	Ledger *ledger.Ledger
	Notes  *notes.Writer

	Validator        tools.Validator
	Generator        tools.CodeGenerator
	Installer        tools.Installer
	DependencySyncer tools.DependencySyncer
	ServiceInstaller tools.ServiceInstaller
	ImportChecker    tools.ImportChecker

	Reporter report.Reporter
	Metrics  *metrics.Recorder
	Now      func() time.Time
}

type Pipeline struct {
	deps   Deps
	logger *logger.Logger
}

func New(deps Deps) *Pipeline {
	if deps.Reporter == nil {
		deps.Reporter = report.Discard
	}
	if deps.ManifestName == "" {
		deps.ManifestName = "pyproject.toml"
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Pipeline{
		deps:   deps,
		logger: logger.WithField("component", "pipeline"),
	}
}

// Result describes what a run did.
type Result struct {
	Version    string
	DryRun     bool
	Catalog    *catalog.Catalog
	Plan       *syncer.Plan
	Applied    []syncer.Change
	Stages     []string
	Repinned   []string
	PackageDir string
}

// Discover scans the services root.
func (p *Pipeline) Discover() (*catalog.Catalog, error) {
	return catalog.Discover(p.deps.ServicesRoot, catalog.Options{ProtoDir: p.deps.ProtoDir}, p.deps.Reporter)
}

// stage runs fn as the named stage, recording its duration and outcome.
func (p *Pipeline) stage(ctx context.Context, res *Result, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.logger.Debug("stage started", "stage", name, "dry_run", res.DryRun)
	start := time.Now()
	err := fn()
	p.deps.Metrics.ObserveStage(name, time.Since(start), err)
	if err != nil {
		p.logger.Debug("stage failed", "stage", name, "error", err)
		return err
	}
	res.Stages = append(res.Stages, name)
	return nil
}

// Release runs every release stage for rc. The repository version is read
// before any stage so a manifest without a version field fails before files
// are synced.
func (p *Pipeline) Release(ctx context.Context, rc *ReleaseContext) (*Result, error) {
	if rc == nil {
		return nil, errors.New("release context is required")
	}

	current, err := p.deps.Ledger.CurrentVersion()
	if err != nil {
		return nil, err
	}
	p.logger.Debug("release pre-flight", "current", current, "target", rc.Version)

	cat, err := p.Discover()
	if err != nil {
		return nil, err
	}
	res := &Result{Version: rc.Version, DryRun: rc.DryRun, Catalog: cat}

	if err := p.stage(ctx, res, StageSync, func() error {
		return p.syncFiles(cat, res)
	}); err != nil {
		return res, err
	}

	if !rc.SkipValidation {
		if err := p.stage(ctx, res, StageValidate, func() error {
			return p.validate(ctx, rc.DryRun)
		}); err != nil {
			return res, err
		}
	}

	if !rc.SkipCodegen {
		if err := p.stage(ctx, res, StageCodegen, func() error {
			dir, err := p.codegen(ctx, rc.DryRun, !rc.SkipStubInstall)
			res.PackageDir = dir
			return err
		}); err != nil {
			return res, err
		}
	}

	if err := p.stage(ctx, res, StageReleaseNotes, func() error {
		p.deps.Reporter.Emit(report.Step, "updating release notes")
		return p.deps.Notes.AppendPlan(cat, res.Plan, rc.Version, rc.DryRun, p.deps.Now())
	}); err != nil {
		return res, err
	}

	if err := p.stage(ctx, res, StageVersionBump, func() error {
		return p.deps.Ledger.SetVersion(rc.Version, rc.DryRun)
	}); err != nil {
		return res, err
	}

	if err := p.stage(ctx, res, StageRepin, func() error {
		repinned, err := p.deps.Ledger.Repin(cat.Services, rc.Version, rc.DryRun)
		res.Repinned = repinned
		return err
	}); err != nil {
		return res, err
	}

	if rc.DependencySync {
		if err := p.stage(ctx, res, StageDependencySync, func() error {
			return p.syncDependencies(ctx, cat, rc.DryRun)
		}); err != nil {
			return res, err
		}
	}

	if rc.DryRun {
		report.Emitf(p.deps.Reporter, report.Info, "dry-run: release v%s previewed, nothing written", rc.Version)
	} else {
		p.deps.Metrics.Released(rc.Version)
		report.Emitf(p.deps.Reporter, report.Success, "release v%s prepared", rc.Version)
	}
	return res, nil
}

// SyncOptions select what a plain sync covers.
type SyncOptions struct {
	DryRun bool
	// Service restricts the sync to one service when set.
	Service string
}

// Sync copies changed files and appends "unreleased" release notes.
func (p *Pipeline) Sync(ctx context.Context, opts SyncOptions) (*Result, error) {
	cat, err := p.Discover()
	if err != nil {
		return nil, err
	}
	if opts.Service != "" {
		if cat, err = cat.Only(opts.Service); err != nil {
			return nil, err
		}
	}
	res := &Result{DryRun: opts.DryRun, Catalog: cat}

	if err := p.stage(ctx, res, StageSync, func() error {
		return p.syncFiles(cat, res)
	}); err != nil {
		return res, err
	}
	err = p.stage(ctx, res, StageReleaseNotes, func() error {
		return p.deps.Notes.AppendPlan(cat, res.Plan, "", opts.DryRun, p.deps.Now())
	})
	return res, err
}

// Codegen runs code generation alone, optionally installing the package.
func (p *Pipeline) Codegen(ctx context.Context, dryRun, install bool) (*Result, error) {
	res := &Result{DryRun: dryRun}
	err := p.stage(ctx, res, StageCodegen, func() error {
		dir, err := p.codegen(ctx, dryRun, install)
		res.PackageDir = dir
		return err
	})
	return res, err
}

// Breaking runs the breaking-change check alone.
func (p *Pipeline) Breaking(ctx context.Context, dryRun bool) error {
	if dryRun {
		p.deps.Reporter.Emit(report.Info, "preview: breaking-change check")
		return nil
	}
	p.deps.Reporter.Emit(report.Step, "checking for breaking changes")
	return p.deps.Validator.Breaking(ctx)
}

// Status is a read-only snapshot of the repository.
type Status struct {
	Catalog *catalog.Catalog
	// Version is empty when the central manifest has no version field.
	Version string
	Plan    *syncer.Plan
}

func (p *Pipeline) Status() (*Status, error) {
	cat, err := p.Discover()
	if err != nil {
		return nil, err
	}
	version, err := p.deps.Ledger.CurrentVersion()
	if err != nil {
		p.logger.Debug("repository version unavailable", "error", err)
		version = ""
	}
	plan, err := p.deps.Syncer.Plan(cat)
	if err != nil {
		return nil, err
	}
	return &Status{Catalog: cat, Version: version, Plan: plan}, nil
}

// Preview prints the lines a dry-run sync of plan would print.
func (p *Pipeline) Preview(plan *syncer.Plan) {
	// Apply never fails in dry-run.
	_, _ = p.deps.Syncer.Apply(plan, true)
}

// CheckVersions compares every service pin with the repository version.
func (p *Pipeline) CheckVersions() (*ledger.ConsistencyReport, error) {
	cat, err := p.Discover()
	if err != nil {
		return nil, err
	}
	rep, err := p.deps.Ledger.CheckConsistency(cat)
	if rep != nil {
		p.deps.Metrics.VersionMismatches(len(rep.Mismatches))
	}
	return rep, err
}

// ValidateImports checks that one service can import the generated
// package, optionally installing the service first.
func (p *Pipeline) ValidateImports(ctx context.Context, service string, installDeps bool) error {
	cat, err := p.Discover()
	if err != nil {
		return err
	}
	svc, err := cat.Lookup(service)
	if err != nil {
		return err
	}

	if installDeps {
		report.Emitf(p.deps.Reporter, report.Step, "installing %s", svc.Name)
		if err := p.deps.ServiceInstaller.InstallService(ctx, svc.Root); err != nil {
			return err
		}
	}
	report.Emitf(p.deps.Reporter, report.Step, "validating imports for %s", svc.Name)
	return p.deps.ImportChecker.Probe(ctx, svc.Root)
}

func (p *Pipeline) syncFiles(cat *catalog.Catalog, res *Result) error {
	plan, applied, err := p.deps.Syncer.Sync(cat, res.DryRun)
	res.Plan = plan
	res.Applied = applied
	if !res.DryRun {
		for _, c := range applied {
			p.deps.Metrics.FilesSynced(c.Service, 1)
		}
	}
	return err
}

func (p *Pipeline) validate(ctx context.Context, dryRun bool) error {
	if dryRun {
		p.deps.Reporter.Emit(report.Info, "preview: buf format, lint and breaking")
		return nil
	}
	p.deps.Reporter.Emit(report.Step, "running buf validation")
	return p.deps.Validator.Validate(ctx)
}

func (p *Pipeline) codegen(ctx context.Context, dryRun, install bool) (string, error) {
	if dryRun {
		msg := "preview: generate code"
		if install {
			msg += " and install the package"
		}
		p.deps.Reporter.Emit(report.Info, msg)
		return "", nil
	}

	dir, err := p.deps.Generator.Generate(ctx)
	if err != nil {
		return "", err
	}
	if !install {
		p.deps.Reporter.Emit(report.Success, "code generated (install skipped)")
		return dir, nil
	}
	p.deps.Reporter.Emit(report.Step, "installing generated package")
	if err := p.deps.Installer.Install(ctx, dir); err != nil {
		return dir, err
	}
	return dir, nil
}

func (p *Pipeline) syncDependencies(ctx context.Context, cat *catalog.Catalog, dryRun bool) error {
	p.deps.Reporter.Emit(report.Step, "syncing service dependencies")
	for _, svc := range cat.Services {
		if _, err := os.Stat(filepath.Join(svc.Root, p.deps.ManifestName)); err != nil {
			continue
		}
		if dryRun {
			report.Emitf(p.deps.Reporter, report.Info, "preview: uv sync in %s", svc.Name)
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.deps.DependencySyncer.Sync(ctx, svc.Root); err != nil {
			return fmt.Errorf("dependency sync %s: %w", svc.Name, err)
		}
	}
	return nil
}
