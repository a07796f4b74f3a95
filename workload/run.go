package workload

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// DefaultChurnIterations is the fixed loop length of the fpchurn kernel.
const DefaultChurnIterations = 10 * 1000 * 1000

// Report is what a kernel emits once it has finished.
type Report struct {
	Kind    Kind
	CPU     int // -1 when the platform cannot tell
	Items   int
	Elapsed time.Duration
	Result  float64
}

// Name returns the kernel name of the report.
func (r Report) Name() string {
	return r.Kind.String()
}

// Reporter receives kernel output. Implementations must emit each report as
// one uninterrupted block, even when called from several threads at once.
type Reporter interface {
	Report(r Report)
	Warn(format string, args ...any)
}

// RunOption configures a single kernel invocation.
type RunOption func(*runConfig)

type runConfig struct {
	churnIterations int
	cpuProbe        func() int
}

// WithChurnIterations overrides the fpchurn loop length.
func WithChurnIterations(n int) RunOption {
	return func(cfg *runConfig) {
		if n >= 0 {
			cfg.churnIterations = n
		}
	}
}

// WithCPUProbe sets the function used to learn which CPU ran the kernel.
// Without a probe the report carries CPU -1.
func WithCPUProbe(probe func() int) RunOption {
	return func(cfg *runConfig) {
		if probe != nil {
			cfg.cpuProbe = probe
		}
	}
}

// Run executes kernel k over data, reports the outcome to rep and returns it.
func Run(k Kind, data Buffer, rep Reporter, opts ...RunOption) Report {
	cfg := runConfig{
		churnIterations: DefaultChurnIterations,
		cpuProbe:        func() int { return -1 },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !k.Valid() {
		panic(fmt.Sprintf("workload: invalid kind %d", int(k)))
	}
	fn := kernels[k]

	start := time.Now()
	result, items := fn(data, rep, &cfg)
	r := Report{
		Kind:    k,
		CPU:     cfg.cpuProbe(),
		Items:   items,
		Elapsed: time.Since(start),
		Result:  result,
	}
	KeepAlive(result)

	if rep != nil {
		rep.Report(r)
	}
	return r
}

var sink atomic.Uint64

// KeepAlive publishes values to a package-level sink so the compiler cannot
// treat the computation that produced them as dead.
func KeepAlive(values ...float64) {
	var acc uint64
	for _, v := range values {
		acc ^= math.Float64bits(v)
	}
	sink.Store(acc)
}
