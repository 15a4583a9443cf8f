package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus instruments for the packaging pipeline.
type Metrics struct {
	registry          *prometheus.Registry
	jobsStarted       prometheus.Counter
	jobsCompleted     prometheus.Counter
	jobsFailed        *prometheus.CounterVec
	eventsSkipped     prometheus.Counter
	segmentsPublished prometheus.Counter
	activeJobs        prometheus.Gauge
	transcodeDuration prometheus.Histogram
}

// New creates and registers the pipeline metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	jobsStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vod_jobs_started_total",
		Help: "Total number of transcode jobs admitted",
	})
	jobsCompleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vod_jobs_completed_total",
		Help: "Total number of transcode jobs that reached Done",
	})
	jobsFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vod_jobs_failed_total",
		Help: "Total number of transcode jobs that failed, by stage",
	}, []string{"stage"})
	eventsSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vod_events_skipped_total",
		Help: "Total number of storage events rejected at admission",
	})
	segmentsPublished := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vod_segments_published_total",
		Help: "Total number of media segments uploaded to durable storage",
	})
	activeJobs := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vod_active_jobs",
		Help: "Number of transcode jobs currently in flight",
	})
	transcodeDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vod_transcode_duration_seconds",
		Help:    "Wall-clock time spent inside the codec engine",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})

	registry.MustRegister(
		jobsStarted,
		jobsCompleted,
		jobsFailed,
		eventsSkipped,
		segmentsPublished,
		activeJobs,
		transcodeDuration,
	)

	return &Metrics{
		registry:          registry,
		jobsStarted:       jobsStarted,
		jobsCompleted:     jobsCompleted,
		jobsFailed:        jobsFailed,
		eventsSkipped:     eventsSkipped,
		segmentsPublished: segmentsPublished,
		activeJobs:        activeJobs,
		transcodeDuration: transcodeDuration,
	}
}

func (m *Metrics) JobStarted() {
	m.jobsStarted.Inc()
	m.activeJobs.Inc()
}

func (m *Metrics) JobCompleted() {
	m.jobsCompleted.Inc()
	m.activeJobs.Dec()
}

func (m *Metrics) JobFailed(stage string) {
	m.jobsFailed.WithLabelValues(stage).Inc()
	m.activeJobs.Dec()
}

func (m *Metrics) EventSkipped() {
	m.eventsSkipped.Inc()
}

func (m *Metrics) SegmentsPublished(n int) {
	m.segmentsPublished.Add(float64(n))
}

func (m *Metrics) ObserveTranscode(d time.Duration) {
	m.transcodeDuration.Observe(d.Seconds())
}

// Handler returns an http.Handler serving the pipeline metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
