// Package driver runs the pinned workload benchmark: it allocates one input
// buffer per request plus a cache-bias buffer, launches one locked OS thread
// per request, pins it, runs its kernel and joins every thread.
package driver

import (
	"context"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/utkarsh5026/pinbench/internal/config"
	"github.com/utkarsh5026/pinbench/internal/console"
	"github.com/utkarsh5026/pinbench/internal/cpu"
	"github.com/utkarsh5026/pinbench/workload"
	"golang.org/x/sync/errgroup"
)

// BufferFactory builds the input buffer with the given index.
type BufferFactory func(index, size int) workload.Buffer

// Outcome is the result slot owned by one launched thread.
type Outcome struct {
	Request Request
	workload.Report
	// Thread is the OS thread id that ran the kernel, -1 when unknown.
	Thread int
	// PinErr is non-nil when the thread ran unpinned.
	PinErr error
}

// Pinned reports whether the kernel ran on a thread bound to its cpu.
func (o Outcome) Pinned() bool {
	return o.PinErr == nil
}

// Driver runs a batch of requests. It is safe to reuse for several batches.
type Driver struct {
	console   *console.Console
	binder    cpu.Binder
	probe     func() int
	newBuffer BufferFactory

	bufferSize      int
	churnIterations int
	showProgress    bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithBinder replaces the platform affinity implementation.
func WithBinder(b cpu.Binder) Option {
	return func(d *Driver) {
		if b != nil {
			d.binder = b
		}
	}
}

// WithCPUProbe replaces the function used to observe the executing cpu.
func WithCPUProbe(probe func() int) Option {
	return func(d *Driver) {
		if probe != nil {
			d.probe = probe
		}
	}
}

// WithBufferFactory replaces the random buffer generator.
func WithBufferFactory(f BufferFactory) Option {
	return func(d *Driver) {
		if f != nil {
			d.newBuffer = f
		}
	}
}

// New returns a Driver that reports through con.
func New(con *console.Console, cfg config.Config, opts ...Option) *Driver {
	d := &Driver{
		console:         con,
		binder:          cpu.NewBinder(),
		probe:           cpu.Current,
		newBuffer:       RandomBuffers,
		bufferSize:      cfg.BufferSize,
		churnIterations: cfg.ChurnIterations,
		showProgress:    !cfg.Quiet,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RandomBuffers fills every buffer from its own freshly seeded source.
func RandomBuffers(_, size int) workload.Buffer {
	return workload.NewBuffer(size, workload.NewSource())
}

// Allocate builds n+1 buffers sequentially. The last one is the cache-bias
// buffer: it is never read, it only evicts the others from the shared cache.
func (d *Driver) Allocate(ctx context.Context, n int) ([]workload.Buffer, error) {
	total := n + 1
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(d.console.Stderr()),
		progressbar.OptionSetDescription("Allocating input buffers"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(d.showProgress),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
	)

	start := time.Now()
	buffers := make([]workload.Buffer, total)
	for i := range buffers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		buffers[i] = d.newBuffer(i, d.bufferSize)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	d.console.Infof("created %d input arrays of %d items in %.3f ms",
		total, d.bufferSize, console.Millis(time.Since(start)))
	return buffers, nil
}

// Run allocates every buffer, then launches one thread per request in request
// order and waits for all of them. Kernels always run to completion; ctx is
// only consulted before the first thread starts.
func (d *Driver) Run(ctx context.Context, reqs []Request) ([]Outcome, error) {
	buffers, err := d.Allocate(ctx, len(reqs))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(reqs))
	var g errgroup.Group
	for i, req := range reqs {
		d.console.Infof("launching workload '%s' on cpu %d", req.Name, req.CPU)

		data, slot := buffers[i], &outcomes[i]
		g.Go(func() error {
			d.execute(req, data, slot)
			return nil
		})
	}

	err = g.Wait()

	results := make([]float64, len(outcomes))
	for i := range outcomes {
		results[i] = outcomes[i].Result
	}
	workload.KeepAlive(results...)
	runtime.KeepAlive(buffers)

	return outcomes, err
}

// execute owns one OS thread for its whole lifetime.
func (d *Driver) execute(req Request, data workload.Buffer, slot *Outcome) {
	release, pinErr := cpu.Pin(d.binder, req.CPU)
	defer release()

	if pinErr != nil {
		d.console.Errorf("pinning workload '%s' to cpu %d: %v (running unpinned)", req.Name, req.CPU, pinErr)
	}

	report := workload.Run(req.Kind, data, d.console,
		workload.WithCPUProbe(d.probe),
		workload.WithChurnIterations(d.churnIterations),
	)

	*slot = Outcome{
		Request: req,
		Report:  report,
		Thread:  cpu.ThreadID(),
		PinErr:  pinErr,
	}
}
