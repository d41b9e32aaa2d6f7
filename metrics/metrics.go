package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Frame duration buckets in seconds, centered on a 60 FPS budget
var frameBuckets = []float64{0.002, 0.005, 0.01, 0.0167, 0.025, 0.033, 0.05, 0.1, 0.25}

// Recorder counts frame loop activity in a private registry
// Methods are safe for concurrent use
type Recorder struct {
	registry *prometheus.Registry

	frames        prometheus.Counter
	frameDuration prometheus.Histogram
	focusTotal    *prometheus.CounterVec
	ignoredTotal  *prometheus.CounterVec
}

// New creates a Recorder with its own registry
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_frames_total",
			Help: "Total number of rendered frames.",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orrery_frame_duration_seconds",
			Help:    "Wall time spent building and drawing one frame.",
			Buckets: frameBuckets,
		}),
		focusTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_focus_transitions_total",
				Help: "Focus transitions started, by body.",
			},
			[]string{"body"},
		),
		ignoredTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_ignored_inputs_total",
				Help: "Inputs dropped without effect, by reason.",
			},
			[]string{"reason"},
		),
	}

	r.registry.MustRegister(r.frames, r.frameDuration, r.focusTotal, r.ignoredTotal)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// FrameRendered records one drawn frame and its duration
func (r *Recorder) FrameRendered(d time.Duration) {
	r.frames.Inc()
	r.frameDuration.Observe(d.Seconds())
}

// FocusStarted records a focus transition toward body
func (r *Recorder) FocusStarted(body string) {
	r.focusTotal.WithLabelValues(body).Inc()
}

// InputIgnored records a dropped input
func (r *Recorder) InputIgnored(reason string) {
	r.ignoredTotal.WithLabelValues(reason).Inc()
}

// Summary renders gathered metrics as one line for the exit log
func (r *Recorder) Summary() (string, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}

	var parts []string
	for _, mf := range families {
		name := strings.TrimPrefix(mf.GetName(), "orrery_")
		for _, m := range mf.GetMetric() {
			parts = append(parts, formatMetric(name, mf.GetType(), m))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, " "), nil
}

func formatMetric(name string, kind dto.MetricType, m *dto.Metric) string {
	for _, lp := range m.GetLabel() {
		name += fmt.Sprintf("{%s=%s}", lp.GetName(), lp.GetValue())
	}

	switch kind {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%s=%.0f", name, m.GetCounter().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		mean := 0.0
		if h.GetSampleCount() > 0 {
			mean = h.GetSampleSum() / float64(h.GetSampleCount())
		}
		return fmt.Sprintf("%s.mean=%.4fs", name, mean)
	default:
		return name
	}
}
