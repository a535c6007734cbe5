package metrics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/draganm/purr/internal/metrics"
)

var _ = Describe("Metrics", func() {
	It("keeps separate registries per instance", func() {
		a := metrics.New()
		b := metrics.New()

		a.LinesEmitted.Add(3)
		Expect(testutil.ToFloat64(a.LinesEmitted)).To(Equal(3.0))
		Expect(testutil.ToFloat64(b.LinesEmitted)).To(Equal(0.0))
	})

	It("summarizes counters as key/value pairs", func() {
		m := metrics.New()
		m.LinesEmitted.Add(2)
		m.SourcesRead.WithLabelValues("file").Inc()
		m.BytesRead.WithLabelValues("stdin").Add(5)

		summary, err := m.Summary()
		Expect(err).NotTo(HaveOccurred())
		Expect(summary).To(HaveLen(6))

		values := map[any]any{}
		for i := 0; i < len(summary); i += 2 {
			values[summary[i]] = summary[i+1]
		}
		Expect(values).To(HaveKeyWithValue("purr_lines_emitted_total", 2.0))
		Expect(values).To(HaveKeyWithValue("purr_sources_total{kind=file}", 1.0))
		Expect(values).To(HaveKeyWithValue("purr_bytes_read_total{kind=stdin}", 5.0))
	})

	It("includes labelled error counters once they are used", func() {
		m := metrics.New()
		m.Errors.WithLabelValues("write").Inc()

		summary, err := m.Summary()
		Expect(err).NotTo(HaveOccurred())
		Expect(summary).To(ContainElement("purr_errors_total{kind=write}"))
		Expect(summary).NotTo(ContainElement(ContainSubstring("purr_sources_total")))
	})
})
