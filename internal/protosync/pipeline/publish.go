package pipeline

import (
	"context"
	"errors"

	"github.com/grpc-protos/protosync/internal/protosync/report"
	"github.com/grpc-protos/protosync/internal/protosync/tools"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
	"github.com/grpc-protos/protosync/pkg/logger"
)

// Publish step names reported in *errors.PartialPublishError.
const (
	StepCommit     = "commit"
	StepTag        = "tag"
	StepPushBranch = "push-branch"
	StepPushTag    = "push-tag"
)

// Publisher releases and then records the release in version control.
type Publisher struct {
	pipeline *Pipeline
	vcs      tools.VCS
	remote   string
	reporter report.Reporter
	logger   *logger.Logger
}

func NewPublisher(p *Pipeline, vcs tools.VCS, remote string, r report.Reporter) *Publisher {
	if remote == "" {
		remote = "origin"
	}
	if r == nil {
		r = report.Discard
	}
	return &Publisher{
		pipeline: p,
		vcs:      vcs,
		remote:   remote,
		reporter: r,
		logger:   logger.WithField("component", "publisher"),
	}
}

// Publish checks the preconditions, runs the release pipeline, then commits,
// tags and pushes. Preconditions are checked before any stage runs. Once the
// commit exists a later failure returns *errors.PartialPublishError; nothing
// already created is undone.
func (pub *Publisher) Publish(ctx context.Context, rc *ReleaseContext) (*Result, error) {
	if rc == nil {
		return nil, errors.New("release context is required")
	}

	if err := pub.checkPreconditions(ctx, rc); err != nil {
		return nil, err
	}

	res, err := pub.pipeline.Release(ctx, rc)
	if err != nil {
		return res, err
	}

	if rc.DryRun {
		report.Emitf(pub.reporter, report.Info, "dry-run: would commit %q, tag %s and push to %s", rc.Message(), rc.Tag(), pub.remote)
		return res, nil
	}

	if err := pub.record(ctx, rc); err != nil {
		return res, err
	}
	report.Emitf(pub.reporter, report.Success, "published %s", rc.Tag())
	return res, nil
}

// checkPreconditions requires a clean working tree and an unused tag. In
// dry-run the checks still run but violations are only reported.
func (pub *Publisher) checkPreconditions(ctx context.Context, rc *ReleaseContext) error {
	pub.reporter.Emit(report.Step, "checking publish preconditions")

	var violations []error
	status, err := pub.vcs.Status(ctx)
	if err != nil {
		return err
	}
	if status != "" {
		violations = append(violations, perrors.NewPreconditionError("clean-tree",
			"working tree has uncommitted changes; commit or stash them first:\n"+status))
	}

	exists, err := pub.vcs.TagExists(ctx, rc.Tag())
	if err != nil {
		return err
	}
	if exists {
		violations = append(violations, perrors.NewPreconditionError("tag-absent", "tag "+rc.Tag()+" already exists"))
	}

	if len(violations) == 0 {
		pub.reporter.Emit(report.Success, "working tree clean and tag "+rc.Tag()+" unused")
		return nil
	}
	if !rc.DryRun {
		return violations[0]
	}
	for _, v := range violations {
		pub.reporter.Emit(report.Warning, v.Error())
	}
	return nil
}

type publishStep struct {
	name string
	run  func() error
}

func (pub *Publisher) record(ctx context.Context, rc *ReleaseContext) error {
	steps := []publishStep{
		{StepCommit, func() error { return pub.vcs.CommitAll(ctx, rc.Message()) }},
		{StepTag, func() error { return pub.vcs.Tag(ctx, rc.Tag(), "Release "+rc.Tag()) }},
		{StepPushBranch, func() error { return pub.vcs.Push(ctx, pub.remote, "HEAD") }},
		{StepPushTag, func() error { return pub.vcs.Push(ctx, pub.remote, rc.Tag()) }},
	}

	pub.reporter.Emit(report.Step, "committing, tagging and pushing "+rc.Tag())
	completed := make([]string, 0, len(steps))
	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return pub.partial(completed, steps[i:], err)
		}
		pub.logger.Debug("publish step", "step", s.name, "tag", rc.Tag())
		if err := s.run(); err != nil {
			return pub.partial(completed, steps[i:], err)
		}
		completed = append(completed, s.name)
		report.Emitf(pub.reporter, report.Info, "%s done", s.name)
	}
	return nil
}

func (pub *Publisher) partial(completed []string, pending []publishStep, err error) error {
	if len(completed) == 0 {
		return err
	}
	names := make([]string, 0, len(pending))
	for _, s := range pending {
		names = append(names, s.name)
	}
	return &perrors.PartialPublishError{Completed: completed, Pending: names, Err: err}
}
