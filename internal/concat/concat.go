// Package concat drives a run: it walks the arguments in order and streams
// every line of every input through a single emitter.
package concat

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/draganm/purr/internal/emitter"
	"github.com/draganm/purr/internal/metrics"
	"github.com/draganm/purr/internal/source"
	"github.com/draganm/purr/internal/textio"
)

// Config holds the streams and settings of a run. OpenFile defaults to
// textio.Open.
type Config struct {
	Stdin    io.Reader
	Stdout   io.Writer
	Number   bool
	Logger   *slog.Logger
	OpenFile func(path string) (*textio.Reader, error)
}

// Runner processes the inputs of one run in order.
type Runner struct {
	emitter *emitter.Emitter
	metrics *metrics.Metrics
	log     *slog.Logger
	open    func(path string) (*textio.Reader, error)

	// stdin is opened once and shared by every "-" argument, so a second "-"
	// continues where the previous one stopped.
	stdin *textio.Reader
}

// New creates a Runner. A nil m gets a fresh metrics set.
func New(cfg *Config, m *metrics.Metrics) *Runner {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m == nil {
		m = metrics.New()
	}
	open := cfg.OpenFile
	if open == nil {
		open = textio.Open
	}

	return &Runner{
		emitter: emitter.New(cfg.Stdout,
			emitter.WithLineNumbers(cfg.Number),
			emitter.WithCounter(m.LinesEmitted),
		),
		metrics: m,
		log:     log,
		open:    open,
		stdin:   textio.NewReader(cfg.Stdin),
	}
}

// Run processes args strictly left to right. An empty list reads standard
// input. The first error aborts the run; lines already written stay written.
func (r *Runner) Run(ctx context.Context, args []string) error {
	r.log.DebugContext(ctx, "Run started", "inputs", len(args), "number", r.emitter.Numbered())

	for _, arg := range source.Args(args) {
		spec, err := source.Resolve(arg)
		if err != nil {
			r.metrics.Errors.WithLabelValues("resolve").Inc()
			return err
		}

		if err := r.process(ctx, spec); err != nil {
			r.metrics.Errors.WithLabelValues(errorKind(err)).Inc()
			return err
		}
	}

	r.log.DebugContext(ctx, "Run completed", "lines", r.emitter.Count())
	return nil
}

// Emitted returns the number of lines written so far
func (r *Runner) Emitted() uint64 {
	return r.emitter.Count()
}

func (r *Runner) process(ctx context.Context, spec source.Spec) error {
	switch spec.Kind {
	case source.Stdin:
		return r.streamStdin(ctx)
	case source.File:
		return r.streamFile(ctx, spec.Path)
	default:
		return fmt.Errorf("unsupported input kind: %s", spec.Kind)
	}
}

func (r *Runner) streamStdin(ctx context.Context) error {
	r.log.DebugContext(ctx, "Reading source", "kind", source.Stdin)

	r.stdin.Resume()
	before := r.stdin.BytesRead()
	err := r.stdin.Lines(r.emitter.Emit)
	r.metrics.BytesRead.WithLabelValues(source.Stdin.String()).Add(float64(r.stdin.BytesRead() - before))
	if err != nil {
		return err
	}

	r.metrics.SourcesRead.WithLabelValues(source.Stdin.String()).Inc()
	return nil
}

func (r *Runner) streamFile(ctx context.Context, path string) error {
	r.log.DebugContext(ctx, "Reading source", "kind", source.File, "path", path)

	rd, err := r.open(path)
	if err != nil {
		return err
	}
	defer rd.Close()

	err = rd.Lines(r.emitter.Emit)
	r.metrics.BytesRead.WithLabelValues(source.File.String()).Add(float64(rd.BytesRead()))
	if err != nil {
		return err
	}

	r.metrics.SourcesRead.WithLabelValues(source.File.String()).Inc()
	r.log.DebugContext(ctx, "Source finished", "path", rd.Name(), "bytes", rd.BytesRead(), "lines_total", r.emitter.Count())
	return nil
}

func errorKind(err error) string {
	switch {
	case source.IsWrite(err):
		return "write"
	case source.IsPermission(err):
		return "permission"
	case source.IsNotFound(err):
		return "not_found"
	default:
		return "io"
	}
}
