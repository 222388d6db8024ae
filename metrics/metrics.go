// Package metrics exports generation run statistics to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/broady/wipgen/gogen"
)

// NewRegistry returns a fresh Prometheus registry.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// WriteTextfile writes the registry in the text exposition format, for the
// node exporter textfile collector.
func WriteTextfile(reg *prometheus.Registry, path string) error {
	return prometheus.WriteToTextfile(path, reg)
}

// GeneratorObserver implements gogen.Observer.
type GeneratorObserver struct {
	artifactsTotal *prometheus.CounterVec
	filesTotal     *prometheus.CounterVec
	runsTotal      *prometheus.CounterVec
	parserRoots    prometheus.Gauge
	duration       prometheus.Histogram
}

var _ gogen.Observer = (*GeneratorObserver)(nil)

// NewGeneratorObserver registers generator metrics on the registry.
func NewGeneratorObserver(reg *prometheus.Registry) *GeneratorObserver {
	o := &GeneratorObserver{
		artifactsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wipgen_artifacts_total",
			Help: "Generated artifacts by role.",
		}, []string{"role"}),
		filesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wipgen_files_total",
			Help: "Files handed to the sink by result.",
		}, []string{"result"}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wipgen_runs_total",
			Help: "Generation runs by result.",
		}, []string{"result"}),
		parserRoots: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wipgen_parser_roots",
			Help: "Parser roots listed by the last successful run.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wipgen_generate_duration_seconds",
			Help:    "Duration of generation runs.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		o.artifactsTotal,
		o.filesTotal,
		o.runsTotal,
		o.parserRoots,
		o.duration,
	)
	return o
}

func (o *GeneratorObserver) ArtifactGenerated(role gogen.Role) {
	o.artifactsTotal.WithLabelValues(role.String()).Inc()
}

func (o *GeneratorObserver) FileWritten(_ string, unchanged bool) {
	result := "written"
	if unchanged {
		result = "unchanged"
	}
	o.filesTotal.WithLabelValues(result).Inc()
}

func (o *GeneratorObserver) RunFinished(elapsed time.Duration, parserRoots int, err error) {
	o.duration.Observe(elapsed.Seconds())
	if err != nil {
		o.runsTotal.WithLabelValues("error").Inc()
		return
	}
	o.runsTotal.WithLabelValues("ok").Inc()
	o.parserRoots.Set(float64(parserRoots))
}
