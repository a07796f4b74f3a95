package workload

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// kernelFunc returns the result and the number of items actually consumed.
type kernelFunc func(data Buffer, rep Reporter, cfg *runConfig) (float64, int)

var kernels = [numKinds]kernelFunc{
	FPChurn:      fpChurn,
	Sin:          sinSum,
	Accum:        accum,
	UnrollAccum4: unrollAccum4,
	UnrollAccum8: unrollAccum8,
	StdAccum:     stdAccum,
}

func fpChurn(data Buffer, _ Reporter, cfg *runConfig) (float64, int) {
	n := len(data)
	if n == 0 {
		return 0, 0
	}

	var rt, churn float64
	for i := 0; i < cfg.churnIterations; i++ {
		l := math.Log(data[i%n])
		if l > rt {
			l = math.Sin(l)
		} else {
			l = math.Cos(l)
		}

		if l > rt-2.0 {
			l = math.Exp(l)
		} else {
			l = math.Exp(l + 1.0)
		}

		churn += l
		rt++
	}
	KeepAlive(churn)
	return rt, cfg.churnIterations
}

func sinSum(data Buffer, _ Reporter, _ *runConfig) (float64, int) {
	var rt float64
	for _, v := range data {
		rt += math.Sin(v)
	}
	return rt, len(data)
}

// accum is the single-accumulator baseline. Every add depends on the one
// before it, which serialises the loop on FP add latency.
func accum(data Buffer, _ Reporter, _ *runConfig) (float64, int) {
	var rt float64
	for _, v := range data {
		rt += v
	}
	return rt, len(data)
}

func unrollAccum4(data Buffer, rep Reporter, _ *runConfig) (float64, int) {
	n := usablePrefix(data, 4, "unrollaccum4", rep)

	var rt0, rt1, rt2, rt3 float64
	for i := 0; i < n; i += 4 {
		rt0 += data[i]
		rt1 += data[i+1]
		rt2 += data[i+2]
		rt3 += data[i+3]
	}
	return rt0 + rt1 + rt2 + rt3, n
}

func unrollAccum8(data Buffer, rep Reporter, _ *runConfig) (float64, int) {
	n := usablePrefix(data, 8, "unrollaccum8", rep)

	var rt0, rt1, rt2, rt3, rt4, rt5, rt6, rt7 float64
	for i := 0; i < n; i += 8 {
		rt0 += data[i]
		rt1 += data[i+1]
		rt2 += data[i+2]
		rt3 += data[i+3]
		rt4 += data[i+4]
		rt5 += data[i+5]
		rt6 += data[i+6]
		rt7 += data[i+7]
	}
	return rt0 + rt1 + rt2 + rt3 + rt4 + rt5 + rt6 + rt7, n
}

func stdAccum(data Buffer, _ Reporter, _ *runConfig) (float64, int) {
	return floats.Sum(data), len(data)
}

// usablePrefix returns the largest length <= len(data) divisible by factor.
// The trailing items are dropped from the sum; a warning says so.
func usablePrefix(data Buffer, factor int, name string, rep Reporter) int {
	rem := len(data) % factor
	if rem != 0 && rep != nil {
		rep.Warn("%s: buffer length %d is not a multiple of %d, ignoring the last %d items",
			name, len(data), factor, rem)
	}
	return len(data) - rem
}
