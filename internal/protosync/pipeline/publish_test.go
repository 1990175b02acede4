package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grpc-protos/protosync/internal/protosync/pipeline"
	"github.com/grpc-protos/protosync/internal/protosync/report"
	"github.com/grpc-protos/protosync/internal/protosync/tools/toolsfakes"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

func newPublisher(h *harness) (*pipeline.Publisher, *toolsfakes.FakeVCS) {
	vcs := &toolsfakes.FakeVCS{}
	return pipeline.NewPublisher(h.pipeline, vcs, "", h.rec), vcs
}

func TestPublish(t *testing.T) {
	h := newHarness(t)
	pub, vcs := newPublisher(h)
	rc := releaseContext(t, pipeline.ReleaseParams{Version: "1.1.0"})

	res, err := pub.Publish(context.Background(), rc)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "1.1.0", res.Version)

	_, tag := vcs.TagExistsArgsForCall(0)
	assert.Equal(t, "v1.1.0", tag)

	require.Equal(t, 1, vcs.CommitAllCallCount())
	_, msg := vcs.CommitAllArgsForCall(0)
	assert.Equal(t, "chore(release): v1.1.0", msg)

	require.Equal(t, 1, vcs.TagCallCount())
	_, tagName, tagMsg := vcs.TagArgsForCall(0)
	assert.Equal(t, "v1.1.0", tagName)
	assert.Equal(t, "Release v1.1.0", tagMsg)

	require.Equal(t, 2, vcs.PushCallCount())
	_, remote, ref := vcs.PushArgsForCall(0)
	assert.Equal(t, "origin", remote)
	assert.Equal(t, "HEAD", ref)
	_, _, ref = vcs.PushArgsForCall(1)
	assert.Equal(t, "v1.1.0", ref)

	assert.Contains(t, read(t, h.centralManifest), `version = "1.1.0"`)
	assert.Contains(t, h.rec.Messages(report.Success), "published v1.1.0")
}

func TestPublish_PreconditionsAbortBeforeAnyStage(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		tagExists bool
		check     string
	}{
		{name: "dirty tree", status: "M protos/a.proto", check: "clean-tree"},
		{name: "tag exists", tagExists: true, check: "tag-absent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			pub, vcs := newPublisher(h)
			vcs.StatusReturns(tt.status, nil)
			vcs.TagExistsReturns(tt.tagExists, nil)

			_, err := pub.Publish(context.Background(), releaseContext(t, pipeline.ReleaseParams{Version: "1.1.0"}))

			var pe *perrors.PreconditionError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.check, pe.Check)
			assert.Equal(t, perrors.ExitUsage, perrors.ExitCode(err))

			assert.Equal(t, 0, h.validator.ValidateCallCount())
			assert.Equal(t, 0, vcs.CommitAllCallCount())
			assert.False(t, exists(h.central("common/metadata.proto")), "sync must not run")
			assert.Equal(t, centralManifest, read(t, h.centralManifest))
		})
	}
}

func TestPublish_DryRunReportsViolations(t *testing.T) {
	h := newHarness(t)
	pub, vcs := newPublisher(h)
	vcs.StatusReturns("?? stray.txt", nil)
	vcs.TagExistsReturns(true, nil)

	_, err := pub.Publish(context.Background(), releaseContext(t, pipeline.ReleaseParams{Version: "1.1.0", DryRun: true}))
	require.NoError(t, err)

	warnings := h.rec.Messages(report.Warning)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "clean-tree")
	assert.Contains(t, warnings[1], "tag-absent")

	assert.Equal(t, 0, vcs.CommitAllCallCount())
	assert.Equal(t, 0, vcs.TagCallCount())
	assert.Equal(t, 0, vcs.PushCallCount())
	assert.Equal(t, centralManifest, read(t, h.centralManifest))
	assert.Contains(t, h.rec.Messages(report.Info), `dry-run: would commit "chore(release): v1.1.0", tag v1.1.0 and push to origin`)
}

func TestPublish_PushFailureIsPartial(t *testing.T) {
	h := newHarness(t)
	pub, vcs := newPublisher(h)
	vcs.PushReturnsOnCall(0, errors.New("remote rejected"))

	_, err := pub.Publish(context.Background(), releaseContext(t, pipeline.ReleaseParams{Version: "1.1.0"}))

	var pe *perrors.PartialPublishError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{pipeline.StepCommit, pipeline.StepTag}, pe.Completed)
	assert.Equal(t, []string{pipeline.StepPushBranch, pipeline.StepPushTag}, pe.Pending)
	assert.EqualError(t, pe.Err, "remote rejected")
	assert.Equal(t, perrors.ExitFailure, perrors.ExitCode(err))
	assert.Equal(t, 1, vcs.PushCallCount(), "the tag push is not attempted")
}

func TestPublish_CommitFailureIsNotPartial(t *testing.T) {
	h := newHarness(t)
	pub, vcs := newPublisher(h)
	commitErr := &perrors.ExternalToolError{Tool: "git", Args: []string{"commit"}, ExitCode: 1}
	vcs.CommitAllReturns(commitErr)

	_, err := pub.Publish(context.Background(), releaseContext(t, pipeline.ReleaseParams{Version: "1.1.0"}))

	assert.False(t, perrors.IsPartialPublishError(err))
	assert.ErrorIs(t, err, commitErr)
	assert.Equal(t, 0, vcs.TagCallCount())
}

func TestPublish_StatusError(t *testing.T) {
	h := newHarness(t)
	pub, vcs := newPublisher(h)
	vcs.StatusReturns("", errors.New("not a git repository"))

	_, err := pub.Publish(context.Background(), releaseContext(t, pipeline.ReleaseParams{Version: "1.1.0"}))

	assert.EqualError(t, err, "not a git repository")
	assert.Equal(t, 0, vcs.TagExistsCallCount())
}

func TestPublish_NilContext(t *testing.T) {
	h := newHarness(t)
	pub, _ := newPublisher(h)

	_, err := pub.Publish(context.Background(), nil)

	assert.Error(t, err)
}
