package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// EngineCollector bundles Prometheus metrics for the alert engine and the
// spatial services, and provides the /metrics handler.
type EngineCollector struct {
	gatherer prometheus.Gatherer

	EvaluationPasses   *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	RulesSkipped       *prometheus.CounterVec
	RulesEvaluated     prometheus.Counter
	AlertsProduced     *prometheus.CounterVec
	AlertsExpired      prometheus.Counter

	NotificationsSent   *prometheus.CounterVec
	ContainmentDuration prometheus.Histogram
	ContainmentPoints   prometheus.Counter
	IndexedAreas        prometheus.Gauge
}

// NewEngineCollector registers the engine metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewEngineCollector(reg prometheus.Registerer) (*EngineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	passes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alert_evaluation_passes_total",
		Help: "Evaluation passes run, labeled by what triggered them.",
	}, []string{"trigger"})
	passes, err := registerCounterVec(reg, passes, "alert_evaluation_passes_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "alert_evaluation_duration_seconds",
		Help:    "Wall time of one evaluation pass.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}), "alert_evaluation_duration_seconds")
	if err != nil {
		return nil, err
	}

	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alert_rules_skipped_total",
		Help: "Rules skipped during evaluation, labeled by reason.",
	}, []string{"reason"})
	skipped, err = registerCounterVec(reg, skipped, "alert_rules_skipped_total")
	if err != nil {
		return nil, err
	}

	evaluated, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alert_rules_evaluated_total",
		Help: "Rules whose conditions were actually evaluated.",
	}), "alert_rules_evaluated_total")
	if err != nil {
		return nil, err
	}

	produced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alerts_produced_total",
		Help: "Alerts persisted, labeled by type and severity.",
	}, []string{"type", "severity"})
	produced, err = registerCounterVec(reg, produced, "alerts_produced_total")
	if err != nil {
		return nil, err
	}

	expired, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alerts_expired_total",
		Help: "Alerts removed by the expiry sweep.",
	}), "alerts_expired_total")
	if err != nil {
		return nil, err
	}

	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alert_notifications_total",
		Help: "Notification deliveries, labeled by channel and outcome.",
	}, []string{"channel", "status"})
	notifications, err = registerCounterVec(reg, notifications, "alert_notifications_total")
	if err != nil {
		return nil, err
	}

	containment, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "containment_batch_duration_seconds",
		Help:    "Latency of batch point-in-boundary checks.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}), "containment_batch_duration_seconds")
	if err != nil {
		return nil, err
	}

	points, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "containment_points_total",
		Help: "Points checked by the batch containment service.",
	}), "containment_points_total")
	if err != nil {
		return nil, err
	}

	indexed, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "containment_indexed_areas",
		Help: "Boundaries currently held by the containment index.",
	}), "containment_indexed_areas")
	if err != nil {
		return nil, err
	}

	return &EngineCollector{
		gatherer:            gatherer,
		EvaluationPasses:    passes,
		EvaluationDuration:  duration,
		RulesSkipped:        skipped,
		RulesEvaluated:      evaluated,
		AlertsProduced:      produced,
		AlertsExpired:       expired,
		NotificationsSent:   notifications,
		ContainmentDuration: containment,
		ContainmentPoints:   points,
		IndexedAreas:        indexed,
	}, nil
}

// ObservePass records one evaluation pass summary.
func (c *EngineCollector) ObservePass(trigger string, summary *domain.EvaluationSummary) {
	if c == nil || summary == nil {
		return
	}
	if c.EvaluationPasses != nil {
		c.EvaluationPasses.WithLabelValues(trigger).Inc()
	}
	if c.EvaluationDuration != nil {
		c.EvaluationDuration.Observe(summary.Elapsed.Seconds())
	}
	if c.RulesSkipped != nil {
		c.RulesSkipped.WithLabelValues("cooldown").Add(float64(summary.RulesSkippedCooldown))
		c.RulesSkipped.WithLabelValues("error").Add(float64(summary.RulesSkippedError))
	}
	if c.RulesEvaluated != nil {
		c.RulesEvaluated.Add(float64(summary.RulesEvaluated))
	}
}

// ObserveAlert records one persisted alert.
func (c *EngineCollector) ObserveAlert(a *domain.Alert) {
	if c == nil || a == nil || c.AlertsProduced == nil {
		return
	}
	c.AlertsProduced.WithLabelValues(string(a.Type), string(a.Severity)).Inc()
}

// ObserveNotification records one channel delivery attempt.
func (c *EngineCollector) ObserveNotification(channel string, err error) {
	if c == nil || c.NotificationsSent == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.NotificationsSent.WithLabelValues(channel, status).Inc()
}

// ObserveContainment records one batch containment call.
func (c *EngineCollector) ObserveContainment(points int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.ContainmentDuration != nil {
		c.ContainmentDuration.Observe(elapsed.Seconds())
	}
	if c.ContainmentPoints != nil {
		c.ContainmentPoints.Add(float64(points))
	}
}

// SetIndexedAreas publishes the containment index size.
func (c *EngineCollector) SetIndexedAreas(n int) {
	if c == nil || c.IndexedAreas == nil {
		return
	}
	c.IndexedAreas.Set(float64(n))
}

// RecordExpired adds to the expiry sweep counter.
func (c *EngineCollector) RecordExpired(n int64) {
	if c == nil || c.AlertsExpired == nil {
		return
	}
	c.AlertsExpired.Add(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *EngineCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
