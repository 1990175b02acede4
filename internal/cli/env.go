package cli

import (
	"github.com/grpc-protos/protosync/internal/protosync/ledger"
	"github.com/grpc-protos/protosync/internal/protosync/notes"
	"github.com/grpc-protos/protosync/internal/protosync/pipeline"
	"github.com/grpc-protos/protosync/internal/protosync/syncer"
	"github.com/grpc-protos/protosync/internal/protosync/tools"
)

// newPipeline assembles the pipeline from the resolved configuration.
func (a *app) newPipeline() *pipeline.Pipeline {
	cfg := a.cfg
	r := a.console

	pip := &tools.PipInstaller{
		Runner:     a.runner,
		Python:     cfg.Python,
		ImportName: cfg.Package.ImportName,
		Reporter:   r,
	}

	return pipeline.New(pipeline.Deps{
		ServicesRoot: a.servicesRoot,
		ProtoDir:     cfg.ProtoDir,
		ManifestName: cfg.Manifest,
		Syncer:       syncer.New(cfg.CentralProtoRoot(a.repoRoot), r),
		Ledger: ledger.New(ledger.Config{
			CentralManifest: cfg.CentralManifest(a.repoRoot),
			PackageID:       cfg.Package.ID,
			Source:          cfg.Package.Source,
			ManifestName:    cfg.Manifest,
		}, r),
		Notes: notes.New(cfg.ReleaseNotes, cfg.Package.ID, r),
		Validator: &tools.BufValidator{
			Runner:   a.runner,
			RepoRoot: a.repoRoot,
			Against:  cfg.BreakingAgainst,
			Reporter: r,
		},
		Generator: &tools.BufGenerator{
			Runner:       a.runner,
			RepoRoot:     a.repoRoot,
			Template:     cfg.BufTemplate,
			GeneratedDir: cfg.GeneratedDir,
			ImportName:   cfg.Package.ImportName,
			Reporter:     r,
		},
		Installer:        pip,
		DependencySyncer: &tools.UvSyncer{Runner: a.runner, Reporter: r},
		ServiceInstaller: pip,
		ImportChecker: &tools.ImportProbe{
			Runner:     a.runner,
			Python:     cfg.Python,
			ImportName: cfg.Package.ImportName,
			Statement:  cfg.ProbeStatement(),
			Reporter:   r,
		},
		Reporter: r,
		Metrics:  a.metrics,
		Now:      a.now,
	})
}

func (a *app) newVCS() *tools.GitVCS {
	return &tools.GitVCS{Runner: a.runner, RepoRoot: a.repoRoot}
}

func (a *app) newPublisher(p *pipeline.Pipeline) *pipeline.Publisher {
	return pipeline.NewPublisher(p, a.newVCS(), a.cfg.Remote, a.console)
}
