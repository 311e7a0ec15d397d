package pipeline

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type pipelineMetrics struct {
	jobsSubmitted  prometheus.Counter
	jobsRejected   prometheus.Counter
	jobsFinished   *prometheus.CounterVec
	queueDepth     prometheus.Gauge
	activeWorkers  prometheus.Gauge
	backendRetries prometheus.Counter
	planDuration   prometheus.Histogram
	parseWarnings  prometheus.Counter
}

// Registered once per process; tests swap the registry.
var (
	metricsInstance *pipelineMetrics
	metricsOnce     sync.Once
	metricsRegistry = prometheus.DefaultRegisterer
)

func newPipelineMetrics() *pipelineMetrics {
	metricsOnce.Do(func() {
		f := promauto.With(metricsRegistry)
		metricsInstance = &pipelineMetrics{
			jobsSubmitted: f.NewCounter(prometheus.CounterOpts{
				Name: "tripgest_plan_jobs_submitted_total",
				Help: "Plan jobs accepted into the queue",
			}),
			jobsRejected: f.NewCounter(prometheus.CounterOpts{
				Name: "tripgest_plan_jobs_rejected_total",
				Help: "Plan jobs rejected because the queue was full",
			}),
			jobsFinished: f.NewCounterVec(prometheus.CounterOpts{
				Name: "tripgest_plan_jobs_finished_total",
				Help: "Plan jobs that reached a terminal status",
			}, []string{"status"}),
			queueDepth: f.NewGauge(prometheus.GaugeOpts{
				Name: "tripgest_plan_queue_depth",
				Help: "Plan jobs waiting for a worker",
			}),
			activeWorkers: f.NewGauge(prometheus.GaugeOpts{
				Name: "tripgest_plan_active_workers",
				Help: "Workers currently running a plan job",
			}),
			backendRetries: f.NewCounter(prometheus.CounterOpts{
				Name: "tripgest_backend_retries_total",
				Help: "Backend calls retried after a transient failure",
			}),
			planDuration: f.NewHistogram(prometheus.HistogramOpts{
				Name:    "tripgest_plan_duration_seconds",
				Help:    "Time from backend request to stored itinerary",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			}),
			parseWarnings: f.NewCounter(prometheus.CounterOpts{
				Name: "tripgest_parse_warnings_total",
				Help: "Structural warnings reported for parsed proposals",
			}),
		}
	})
	return metricsInstance
}

func resetMetricsForTesting() {
	metricsRegistry = prometheus.NewRegistry()
	metricsOnce = sync.Once{}
	metricsInstance = nil
}
