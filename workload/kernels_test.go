package workload

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
)

type recordingReporter struct {
	mu       sync.Mutex
	reports  []Report
	warnings []string
}

func (r *recordingReporter) Report(rep Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
}

func (r *recordingReporter) Warn(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func sequence(n int) Buffer {
	buf := make(Buffer, n)
	for i := range buf {
		buf[i] = float64(i + 1)
	}
	return buf
}

func TestRun_AccumOnOnes(t *testing.T) {
	rep := &recordingReporter{}
	r := Run(Accum, Filled(8, 1), rep)

	if r.Result != 8 {
		t.Errorf("expected 8, got %v", r.Result)
	}
	if r.Items != 8 {
		t.Errorf("expected 8 items, got %d", r.Items)
	}
	if len(rep.reports) != 1 {
		t.Fatalf("expected exactly one report, got %d", len(rep.reports))
	}
	if rep.reports[0].Name() != "accum" {
		t.Errorf("unexpected report name %q", rep.reports[0].Name())
	}
}

func TestRun_SinOnZeros(t *testing.T) {
	r := Run(Sin, Filled(8, 0), nil)
	if r.Result != 0 {
		t.Errorf("expected 0, got %v", r.Result)
	}
}

func TestRun_Sin(t *testing.T) {
	data := Buffer{0.5, -0.25, 0.75}
	want := math.Sin(0.5) + math.Sin(-0.25) + math.Sin(0.75)
	r := Run(Sin, data, nil)
	if math.Abs(r.Result-want) > 1e-15 {
		t.Errorf("expected %v, got %v", want, r.Result)
	}
}

func TestRun_ReductionsAgreeWithinBound(t *testing.T) {
	const n = 200_000
	data := NewBuffer(n, rand.NewPCG(7, 11))

	var absSum float64
	for _, v := range data {
		absSum += math.Abs(v)
	}
	// Recursive summation error is bounded by (n-1)*eps*sum|x|.
	bound := float64(n) * 0x1p-52 * absSum

	naive := Run(Accum, data, nil).Result
	for _, k := range []Kind{StdAccum, UnrollAccum4, UnrollAccum8} {
		got := Run(k, data, nil).Result
		if diff := math.Abs(got - naive); diff > 2*bound {
			t.Errorf("%s drifted from accum by %g, bound %g", k, diff, 2*bound)
		}
	}
}

func TestRun_UnrollAccum4_ExactMultiple(t *testing.T) {
	rep := &recordingReporter{}
	r := Run(UnrollAccum4, sequence(12), rep)

	if r.Result != 78 {
		t.Errorf("expected 78, got %v", r.Result)
	}
	if r.Items != 12 {
		t.Errorf("expected 12 items, got %d", r.Items)
	}
	if len(rep.warnings) != 0 {
		t.Errorf("unexpected warnings: %v", rep.warnings)
	}
}

func TestRun_UnrollAccum4_DropsRemainder(t *testing.T) {
	rep := &recordingReporter{}
	r := Run(UnrollAccum4, sequence(10), rep)

	// Only the first 8 items are summed: 1+...+8.
	if r.Result != 36 {
		t.Errorf("expected 36, got %v", r.Result)
	}
	if r.Items != 8 {
		t.Errorf("expected 8 items, got %d", r.Items)
	}
	if len(rep.warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(rep.warnings))
	}
	if !strings.Contains(rep.warnings[0], "unrollaccum4") || !strings.Contains(rep.warnings[0], "10") {
		t.Errorf("warning does not name the kernel and length: %q", rep.warnings[0])
	}
	if len(rep.reports) != 1 {
		t.Errorf("expected the kernel to still report, got %d reports", len(rep.reports))
	}
}

func TestRun_UnrollAccum8(t *testing.T) {
	tests := []struct {
		n        int
		want     float64
		items    int
		warnings int
	}{
		{16, 136, 16, 0},
		{8, 36, 8, 0},
		{13, 36, 8, 1},
		{5, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("len=%d", tt.n), func(t *testing.T) {
			rep := &recordingReporter{}
			r := Run(UnrollAccum8, sequence(tt.n), rep)
			if r.Result != tt.want {
				t.Errorf("expected %v, got %v", tt.want, r.Result)
			}
			if r.Items != tt.items {
				t.Errorf("expected %d items, got %d", tt.items, r.Items)
			}
			if len(rep.warnings) != tt.warnings {
				t.Errorf("expected %d warnings, got %v", tt.warnings, rep.warnings)
			}
		})
	}
}

func TestRun_StdAccum(t *testing.T) {
	r := Run(StdAccum, sequence(100), nil)
	if r.Result != 5050 {
		t.Errorf("expected 5050, got %v", r.Result)
	}
}

func TestRun_FPChurnCountsIterations(t *testing.T) {
	r := Run(FPChurn, NewBuffer(100, NewSource()), nil, WithChurnIterations(1000))
	if r.Result != 1000 {
		t.Errorf("expected 1000, got %v", r.Result)
	}
	if r.Items != 1000 {
		t.Errorf("expected 1000 items, got %d", r.Items)
	}
}

func TestRun_FPChurnEmptyBuffer(t *testing.T) {
	r := Run(FPChurn, Buffer{}, nil, WithChurnIterations(1000))
	if r.Result != 0 || r.Items != 0 {
		t.Errorf("expected no work on empty buffer, got result %v items %d", r.Result, r.Items)
	}
}

func TestRun_CPUProbe(t *testing.T) {
	r := Run(Accum, Filled(4, 1), nil, WithCPUProbe(func() int { return 3 }))
	if r.CPU != 3 {
		t.Errorf("expected cpu 3, got %d", r.CPU)
	}

	r = Run(Accum, Filled(4, 1), nil)
	if r.CPU != -1 {
		t.Errorf("expected cpu -1 without a probe, got %d", r.CPU)
	}
}

func TestRun_InvalidKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid kind")
		}
	}()
	Run(Kind(99), Filled(4, 1), nil)
}

func TestRun_ConcurrentReporters(t *testing.T) {
	rep := &recordingReporter{}
	var wg sync.WaitGroup
	for _, k := range Kinds() {
		wg.Add(1)
		go func(k Kind) {
			defer wg.Done()
			Run(k, sequence(64), rep, WithChurnIterations(64))
		}(k)
	}
	wg.Wait()

	if len(rep.reports) != len(Kinds()) {
		t.Errorf("expected %d reports, got %d", len(Kinds()), len(rep.reports))
	}
}
