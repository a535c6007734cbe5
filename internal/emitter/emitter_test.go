package emitter_test

import (
	"bytes"
	"errors"
	"syscall"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/draganm/purr/internal/emitter"
	"github.com/draganm/purr/internal/source"
)

type failingWriter struct {
	writes int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, syscall.EPIPE
}

type recordingWriter struct {
	chunks []string
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.chunks = append(w.chunks, string(p))
	return len(p), nil
}

var _ = Describe("Emitter", func() {
	var out *bytes.Buffer

	BeforeEach(func() {
		out = &bytes.Buffer{}
	})

	It("writes lines verbatim by default", func() {
		e := emitter.New(out)
		Expect(e.Emit("hello")).To(Succeed())
		Expect(e.Emit("")).To(Succeed())
		Expect(e.Emit("world")).To(Succeed())

		Expect(out.String()).To(Equal("hello\n\nworld\n"))
		Expect(e.Count()).To(Equal(uint64(3)))
		Expect(e.Numbered()).To(BeFalse())
	})

	It("prefixes the running number and two spaces when numbering", func() {
		e := emitter.New(out, emitter.WithLineNumbers(true))
		for _, line := range []string{"a", "b", "c"} {
			Expect(e.Emit(line)).To(Succeed())
		}

		Expect(out.String()).To(Equal("1  a\n2  b\n3  c\n"))
		Expect(e.Numbered()).To(BeTrue())
	})

	It("keeps counting past single digit widths without padding", func() {
		e := emitter.New(out, emitter.WithLineNumbers(true))
		for i := 0; i < 10; i++ {
			Expect(e.Emit("x")).To(Succeed())
		}
		lines := bytes.Split(bytes.TrimSuffix(out.Bytes(), []byte("\n")), []byte("\n"))
		Expect(string(lines[0])).To(Equal("1  x"))
		Expect(string(lines[9])).To(Equal("10  x"))
	})

	It("counts lines even when numbering is disabled", func() {
		e := emitter.New(out)
		Expect(e.Emit("a")).To(Succeed())
		Expect(e.Emit("b")).To(Succeed())
		Expect(e.Count()).To(Equal(uint64(2)))
	})

	It("writes each line with a single write call", func() {
		w := &recordingWriter{}
		e := emitter.New(w, emitter.WithLineNumbers(true))
		Expect(e.Emit("one")).To(Succeed())
		Expect(e.Emit("two")).To(Succeed())
		Expect(w.chunks).To(Equal([]string{"1  one\n", "2  two\n"}))
	})

	It("reports write failures without retrying", func() {
		w := &failingWriter{}
		e := emitter.New(w)

		err := e.Emit("lost")
		Expect(err).To(HaveOccurred())
		Expect(source.IsWrite(err)).To(BeTrue())
		Expect(errors.Is(err, syscall.EPIPE)).To(BeTrue())
		Expect(w.writes).To(Equal(1))
	})

	It("increments the attached counter once per written line", func() {
		c := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_lines_total"})
		e := emitter.New(out, emitter.WithCounter(c))
		Expect(e.Emit("a")).To(Succeed())
		Expect(e.Emit("b")).To(Succeed())
		Expect(testutil.ToFloat64(c)).To(Equal(2.0))
	})
})
