// Package workload provides the fixed set of numeric kernels measured by the
// pinned benchmark driver, together with the input buffers they consume.
//
// Each kernel consumes a read-only Buffer and produces a single float64
// result. Kernels time themselves and hand a Report to an injected Reporter,
// which is responsible for keeping concurrent report blocks from interleaving.
//
// # Kernels
//
//   - fpchurn: a fixed number of branchy log/sin/cos/exp chains; the result is
//     the iteration count, not a reduction of the data
//   - sin: sum of sin(x) over the buffer, single accumulator
//   - accum: naive sequential sum
//   - unrollaccum4, unrollaccum8: the same sum split over 4 (or 8) independent
//     partial accumulators
//   - stdaccum: the same sum delegated to gonum's floats.Sum
//
// Floating-point addition is not associative, so accum, the unrolled variants
// and stdaccum are expected to disagree in the last bits. That drift is what
// the benchmark shows, not a defect.
//
// # Basic Usage
//
//	kind, err := workload.ParseKind("accum")
//	if err != nil {
//	    return err
//	}
//	buf := workload.NewBuffer(1_000_000, workload.NewSource())
//	report := workload.Run(kind, buf, reporter)
//	fmt.Println(report.Result)
package workload
