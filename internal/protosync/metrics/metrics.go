// Package metrics records release pipeline outcomes in a private prometheus
// registry and writes them in the node-exporter textfile collector format.
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

const namespace = "protosync"

type Recorder struct {
	registry *prometheus.Registry

	filesSynced     *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec
	stageFailures   *prometheus.CounterVec
	mismatches      prometheus.Gauge
	releaseInfo     *prometheus.GaugeVec
	lastRunUnixTime prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		filesSynced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_synced_total",
				Help:      "Protocol files copied into the central repository.",
			},
			[]string{"service"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Release pipeline stage duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		stageFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stage_failures_total",
				Help:      "Release pipeline stages that returned an error, by error category.",
			},
			[]string{"stage", "category"},
		),
		mismatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "version_mismatches",
			Help:      "Services pinning a version other than the repository version.",
		}),
		releaseInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "release_info",
				Help:      "Version released by the last successful release run.",
			},
			[]string{"version"},
		),
		lastRunUnixTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the metrics file was written.",
		}),
	}
	r.registry.MustRegister(r.filesSynced, r.stageDuration, r.stageFailures, r.mismatches, r.releaseInfo, r.lastRunUnixTime)
	return r
}

// Registry exposes the underlying registry as a Gatherer.
func (r *Recorder) Registry() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

func (r *Recorder) FilesSynced(service string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.filesSynced.WithLabelValues(service).Add(float64(n))
}

// ObserveStage records how long a stage ran and counts it as failed, under
// the error's category, when err is non-nil.
func (r *Recorder) ObserveStage(stage string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		r.stageFailures.WithLabelValues(stage, string(perrors.GetCategory(err))).Inc()
	}
}

func (r *Recorder) VersionMismatches(n int) {
	if r == nil {
		return
	}
	r.mismatches.Set(float64(n))
}

func (r *Recorder) Released(version string) {
	if r == nil {
		return
	}
	r.releaseInfo.Reset()
	r.releaseInfo.WithLabelValues(version).Set(1)
}

// WriteTextfile writes every collected metric to path atomically.
func (r *Recorder) WriteTextfile(path string, now time.Time) error {
	if r == nil || path == "" {
		return nil
	}
	r.lastRunUnixTime.Set(float64(now.Unix()))
	return prometheus.WriteToTextfile(path, r.registry)
}
