package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds the counters for a single run. Each run gets its own
// registry so tests and repeated runs in one process never share state.
type Metrics struct {
	registry *prometheus.Registry

	LinesEmitted prometheus.Counter
	SourcesRead  *prometheus.CounterVec
	BytesRead    *prometheus.CounterVec
	Errors       *prometheus.CounterVec
}

// New creates the counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		LinesEmitted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "purr_lines_emitted_total",
				Help: "Total number of lines written to standard output",
			},
		),

		SourcesRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "purr_sources_total",
				Help: "Total number of input sources read to the end",
			},
			[]string{"kind"},
		),

		BytesRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "purr_bytes_read_total",
				Help: "Total number of raw bytes read from input sources",
			},
			[]string{"kind"},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "purr_errors_total",
				Help: "Total number of errors that aborted a run",
			},
			[]string{"kind"},
		),
	}
}

// Summary flattens the current counter values into slog style key/value
// pairs, e.g. "purr_sources_total{kind=file}", 2.
func (m *Metrics) Summary() ([]any, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	var attrs []any
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			attrs = append(attrs, seriesName(mf.GetName(), metric.GetLabel()), metric.GetCounter().GetValue())
		}
	}
	return attrs, nil
}

func seriesName(name string, labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return name
	}

	pairs := make([]string, 0, len(labels))
	for _, l := range labels {
		pairs = append(pairs, l.GetName()+"="+l.GetValue())
	}
	return name + "{" + strings.Join(pairs, ",") + "}"
}
