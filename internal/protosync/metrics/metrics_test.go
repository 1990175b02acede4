package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

func TestRecorder(t *testing.T) {
	r := New()

	r.FilesSynced("alpha", 3)
	r.FilesSynced("alpha", 2)
	r.FilesSynced("beta", 0)
	r.ObserveStage("sync", 150*time.Millisecond, nil)
	r.ObserveStage("validate", time.Second, errors.New("lint failed"))
	r.ObserveStage("validate", time.Second, &perrors.ExternalToolError{Tool: "buf", ExitCode: 100})
	r.VersionMismatches(2)
	r.Released("1.2.0")
	r.Released("1.2.1")

	assert.Equal(t, 5.0, testutil.ToFloat64(r.filesSynced.WithLabelValues("alpha")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.filesSynced), "zero counts create no series")
	assert.Equal(t, 1.0, testutil.ToFloat64(r.stageFailures.WithLabelValues("validate", "unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.stageFailures.WithLabelValues("validate", "external_tool")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.stageFailures))
	assert.Equal(t, 2, testutil.CollectAndCount(r.stageDuration))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.mismatches))
	assert.Equal(t, 1, testutil.CollectAndCount(r.releaseInfo), "only the latest release is reported")
	assert.Equal(t, 1.0, testutil.ToFloat64(r.releaseInfo.WithLabelValues("1.2.1")))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.FilesSynced("alpha", 4)
	r.ObserveStage("sync", time.Second, nil)
	path := filepath.Join(t.TempDir(), "protosync.prom")

	require.NoError(t, r.WriteTextfile(path, time.Unix(1760000000, 0)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `protosync_files_synced_total{service="alpha"} 4`)
	assert.Contains(t, text, `protosync_stage_duration_seconds_count{stage="sync"} 1`)
	assert.Contains(t, text, "protosync_last_run_timestamp_seconds 1.76e+09")
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.FilesSynced("alpha", 1)
		r.ObserveStage("sync", time.Second, errors.New("x"))
		r.VersionMismatches(1)
		r.Released("1.0.0")
	})
	assert.NoError(t, r.WriteTextfile(filepath.Join(t.TempDir(), "x.prom"), time.Now()))
	assert.NotNil(t, r.Registry())
}
