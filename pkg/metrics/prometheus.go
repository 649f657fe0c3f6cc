package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for the pipeline label.
const (
	PipelineSessions  = "sessions"
	PipelineResponses = "responses"
)

// Manager owns every Prometheus collector the engine records into.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Analysis
	analysesProcessed *prometheus.CounterVec
	analysisLatency   *prometheus.HistogramVec
	domainsDetected   *prometheus.CounterVec
	insightsGenerated *prometheus.CounterVec
	duplicateJobs     prometheus.Counter

	// Predictors
	predictorFailures *prometheus.CounterVec
	predictorsLoaded  prometheus.Gauge
	predictorReloads  *prometheus.CounterVec

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Store
	storedChildren prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "talentscope",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.analysesProcessed = auto.NewCounterVec(
		m.counterOpts("analyses_processed_total", "Total number of analyses completed by pipeline"),
		[]string{"pipeline"},
	)
	m.analysisLatency = auto.NewHistogramVec(
		m.histogramOpts("analysis_latency_milliseconds", "Analysis latency in milliseconds by pipeline"),
		[]string{"pipeline"},
	)
	m.domainsDetected = auto.NewCounterVec(
		m.counterOpts("domains_detected_total", "Total number of passion domains detected by strength level"),
		[]string{"strength"},
	)
	m.insightsGenerated = auto.NewCounterVec(
		m.counterOpts("insights_generated_total", "Total number of insights generated by type"),
		[]string{"type"},
	)
	m.duplicateJobs = auto.NewCounter(
		m.counterOpts("jobs_duplicate_total", "Total number of analysis jobs skipped as duplicates"),
	)

	m.predictorFailures = auto.NewCounterVec(
		m.counterOpts("predictor_failures_total", "Total number of predictor failures by domain"),
		[]string{"domain"},
	)
	m.predictorsLoaded = auto.NewGauge(
		m.gaugeOpts("predictors_loaded", "Number of domain predictors in the active set"),
	)
	m.predictorReloads = auto.NewCounterVec(
		m.counterOpts("predictor_reloads_total", "Total number of predictor set reloads by result"),
		[]string{"result"},
	)

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current number of queued analysis jobs"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum queue capacity"))
	m.queueEnqueueErrors = auto.NewCounter(
		m.counterOpts("queue_enqueue_errors_total", "Total number of enqueue errors"),
	)

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Number of running workers"))
	m.workerProcessingLatency = auto.NewHistogram(
		m.histogramOpts("worker_processing_latency_milliseconds", "Worker job processing latency in milliseconds"),
	)
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Total number of failed jobs"))

	m.storedChildren = auto.NewGauge(m.gaugeOpts("stored_children", "Number of children with stored results"))
}

// RecordAnalysisProcessed increments the analyses counter for pipeline.
func RecordAnalysisProcessed(pipeline string) {
	globalManager.analysesProcessed.WithLabelValues(pipeline).Inc()
}

// RecordAnalysisLatency records analysis latency in milliseconds.
func RecordAnalysisLatency(pipeline string, latencyMs float64) {
	globalManager.analysisLatency.WithLabelValues(pipeline).Observe(latencyMs)
}

// RecordDomainDetected increments the detected domain counter for a strength level.
func RecordDomainDetected(strength string) {
	globalManager.domainsDetected.WithLabelValues(strength).Inc()
}

// RecordInsightGenerated increments the insight counter for an insight type.
func RecordInsightGenerated(insightType string) {
	globalManager.insightsGenerated.WithLabelValues(insightType).Inc()
}

// RecordDuplicateJob increments the duplicate jobs counter.
func RecordDuplicateJob() {
	globalManager.duplicateJobs.Inc()
}

// RecordPredictorFailure increments the predictor failure counter for a domain.
func RecordPredictorFailure(domain string) {
	globalManager.predictorFailures.WithLabelValues(domain).Inc()
}

// UpdatePredictorsLoaded sets the number of loaded predictors.
func UpdatePredictorsLoaded(count int) {
	globalManager.predictorsLoaded.Set(float64(count))
}

// RecordPredictorReload counts a reload attempt; result is "success" or "error".
func RecordPredictorReload(result string) {
	globalManager.predictorReloads.WithLabelValues(result).Inc()
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// UpdateStoredChildren sets the number of children held by the result store.
func UpdateStoredChildren(count int) {
	globalManager.storedChildren.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Gatherer exposes the custom registry for text dumps.
func Gatherer() prometheus.Gatherer {
	return customRegistry
}
