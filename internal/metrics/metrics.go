// Package metrics keeps per-run counters for bridge invocations, property
// query failures and authorization attempts. A CLI run is short lived, so
// the registry is exported once at exit to a node_exporter textfile or to
// stdout instead of being served over HTTP.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Recorder methods are safe to call on a nil *Recorder.
type Recorder struct {
	reg              *prometheus.Registry
	bridgeCalls      *prometheus.CounterVec
	propertyFailures *prometheus.CounterVec
	authAttempts     *prometheus.CounterVec
	buildInfo        prometheus.Gauge
}

func New(version string) *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		bridgeCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pixelsec_bridge_calls_total",
				Help: "Total number of device bridge invocations by operation and result.",
			},
			[]string{"op", "result"},
		),
		propertyFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pixelsec_property_query_failures_total",
				Help: "Property queries that fell back to their default value.",
			},
			[]string{"property"},
		),
		authAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pixelsec_authorization_attempts_total",
				Help: "Authorization gate outcomes.",
			},
			[]string{"result"},
		),
		buildInfo: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "pixelsec_build_info",
			Help:        "Build info of pixelsec.",
			ConstLabels: prometheus.Labels{"version": version},
		}),
	}
	r.reg.MustRegister(r.bridgeCalls, r.propertyFailures, r.authAttempts, r.buildInfo)
	r.buildInfo.Set(1)
	return r
}

func (r *Recorder) BridgeCall(op string, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.bridgeCalls.WithLabelValues(op, result).Inc()
}

func (r *Recorder) PropertyFailure(property string) {
	if r == nil {
		return
	}
	r.propertyFailures.WithLabelValues(property).Inc()
}

func (r *Recorder) Authorization(result string) {
	if r == nil {
		return
	}
	r.authAttempts.WithLabelValues(result).Inc()
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.reg
}

// Export writes the registry to path. "-" writes the text exposition to w,
// anything else is written atomically for the node_exporter textfile collector.
func (r *Recorder) Export(path string, w io.Writer) error {
	if path == "" {
		return nil
	}
	if path == "-" {
		return r.WriteText(w)
	}
	return prometheus.WriteToTextfile(path, r.Gatherer())
}

func (r *Recorder) WriteText(w io.Writer) error {
	mfs, err := r.Gatherer().Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
