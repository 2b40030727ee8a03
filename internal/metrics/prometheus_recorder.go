package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitepack"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	assemblyDuration *prom.HistogramVec
	assemblyOutcome  *prom.CounterVec
	rules            *prom.GaugeVec
	plugins          *prom.GaugeVec
	reloads          *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.assemblyDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "assembly_duration_seconds",
			Help:      "Duration of descriptor assembly by target",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"target"})
		pr.assemblyOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "assembly_outcomes_total",
			Help:      "Descriptor assemblies by target and result",
		}, []string{"target", "result"})
		pr.rules = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "descriptor_rules",
			Help:      "Top-level module rules in the last assembled descriptor",
		}, []string{"target"})
		pr.plugins = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "descriptor_plugins",
			Help:      "Plugins in the last assembled descriptor",
		}, []string{"target"})
		pr.reloads = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "watch_reloads_total",
			Help:      "Project file reloads triggered by the watcher",
		}, []string{"result"})
		reg.MustRegister(pr.assemblyDuration, pr.assemblyOutcome, pr.rules, pr.plugins, pr.reloads)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveAssemblyDuration(target string, d time.Duration) {
	if p == nil || p.assemblyDuration == nil {
		return
	}
	p.assemblyDuration.WithLabelValues(target).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncAssemblyOutcome(target string, result ResultLabel) {
	if p == nil || p.assemblyOutcome == nil {
		return
	}
	p.assemblyOutcome.WithLabelValues(target, string(result)).Inc()
}

func (p *PrometheusRecorder) SetDescriptorSize(target string, rules, plugins int) {
	if p == nil || p.rules == nil {
		return
	}
	p.rules.WithLabelValues(target).Set(float64(rules))
	p.plugins.WithLabelValues(target).Set(float64(plugins))
}

func (p *PrometheusRecorder) IncReload(result ResultLabel) {
	if p == nil || p.reloads == nil {
		return
	}
	p.reloads.WithLabelValues(string(result)).Inc()
}
