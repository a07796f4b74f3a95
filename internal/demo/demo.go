// Package demo holds the small thread-primitive demonstrations that sit next
// to the benchmark driver: counting threads, watching threads migrate between
// CPUs, pinning them, and matching a thread's id as seen from both sides.
//
// Every reporting loop is bounded by an explicit round count or by ctx.
package demo

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/utkarsh5026/pinbench/internal/console"
	"github.com/utkarsh5026/pinbench/internal/cpu"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Options controls the demos.
type Options struct {
	// Threads is the number of threads to start; 0 means one per logical CPU.
	Threads int
	// Interval is the pause between two reports of the same thread.
	Interval time.Duration
	// Rounds is the number of reports per thread; 0 reports until ctx is done.
	Rounds int
	// Binder is used by Pinned; nil selects the platform binder.
	Binder cpu.Binder
	// Probe reports the executing cpu; nil selects cpu.Current.
	Probe func() int
}

func (o Options) threads() int {
	if o.Threads > 0 {
		return o.Threads
	}
	return cpu.NumCPU()
}

func (o Options) probe() func() int {
	if o.Probe != nil {
		return o.Probe
	}
	return cpu.Current
}

func (o Options) binder() cpu.Binder {
	if o.Binder != nil {
		return o.Binder
	}
	return cpu.NewBinder()
}

// Sample is one "thread i is on cpu c" observation.
type Sample struct {
	Thread int
	Round  int
	CPU    int
}

// Threads starts one thread per configured slot; each announces itself once
// and holds its thread for hold before exiting.
func Threads(ctx context.Context, con *console.Console, opts Options, hold time.Duration) (int, error) {
	n := opts.threads()
	con.Infof("launching %d threads", n)

	g, ctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()

			con.Infof("thread #%d is running", i)

			select {
			case <-time.After(hold):
			case <-ctx.Done():
			}
			return nil
		})
	}
	return n, g.Wait()
}

// Wander starts the configured threads unpinned and lets each report the
// cpu it is running on, so the scheduler's migrations become visible.
func Wander(ctx context.Context, con *console.Console, opts Options) ([]Sample, error) {
	return watch(ctx, con, opts, nil)
}

// Pinned is Wander with thread i bound to cpu i. Bind failures are reported
// and the thread keeps reporting unpinned.
func Pinned(ctx context.Context, con *console.Console, opts Options) ([]Sample, error) {
	b := opts.binder()
	return watch(ctx, con, opts, func(i int) (func(), error) {
		return cpu.Pin(b, i)
	})
}

func watch(ctx context.Context, con *console.Console, opts Options, pin func(i int) (func(), error)) ([]Sample, error) {
	n := opts.threads()
	probe := opts.probe()
	samples := make([][]Sample, n)

	g, gctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			if pin != nil {
				release, err := pin(i)
				defer release()
				if err != nil {
					con.Errorf("thread #%d: %v", i, err)
				}
			} else {
				runtime.LockOSThread()
				defer runtime.UnlockOSThread()
			}

			// rate.Every(0) is rate.Inf: no pause between reports.
			limiter := rate.NewLimiter(rate.Every(opts.Interval), 1)

			for round := 0; opts.Rounds == 0 || round < opts.Rounds; round++ {
				if err := limiter.Wait(gctx); err != nil {
					return nil
				}
				s := Sample{Thread: i, Round: round, CPU: probe()}
				samples[i] = append(samples[i], s)
				con.Infof("thread #%d: on cpu %d", i, s.CPU)
			}
			return nil
		})
	}

	err := g.Wait()
	var all []Sample
	for _, s := range samples {
		all = append(all, s...)
	}
	return all, err
}

// IdentityResult holds the thread ids seen by the worker and by its launcher.
type IdentityResult struct {
	Worker   int // id the worker read for itself
	Reported int // id the launcher received from the worker
	Launcher int // id of the launcher's own thread
}

// Match reports whether the launcher learned the worker's real id.
func (r IdentityResult) Match() bool {
	return r.Worker == r.Reported
}

// Identity starts one locked worker, lets it print its own thread id and hand
// that id back, then prints what the launcher sees.
func Identity(ctx context.Context, con *console.Console) (IdentityResult, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var res IdentityResult
	res.Launcher = cpu.ThreadID()

	var workerID int
	ids := make(chan int, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		workerID = cpu.ThreadID()
		con.Infof("worker: my thread id = %s", fmt.Sprint(workerID))
		ids <- workerID
	}()

	select {
	case id := <-ids:
		res.Worker = workerID
		res.Reported = id
	case <-ctx.Done():
		return res, ctx.Err()
	}

	con.Infof("launcher: started worker with thread id = %s", fmt.Sprint(res.Reported))
	con.Infof("launcher: my own thread id = %s", fmt.Sprint(res.Launcher))
	if res.Match() {
		con.Successf("the worker's id is the same from both sides, so the thread can be found by either")
	}
	return res, nil
}
