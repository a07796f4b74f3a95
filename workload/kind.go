package workload

import (
	"errors"
	"fmt"
)

// ErrUnknownWorkload is returned by ParseKind for names outside the kernel set.
var ErrUnknownWorkload = errors.New("unknown workload")

// Kind identifies one of the fixed numeric kernels.
type Kind int

const (
	FPChurn Kind = iota
	Sin
	Accum
	UnrollAccum4
	UnrollAccum8
	StdAccum

	numKinds
)

var kindNames = [numKinds]string{
	FPChurn:      "fpchurn",
	Sin:          "sin",
	Accum:        "accum",
	UnrollAccum4: "unrollaccum4",
	UnrollAccum8: "unrollaccum8",
	StdAccum:     "stdaccum",
}

var kindDescriptions = [numKinds]string{
	FPChurn:      "branchy log/sin/cos/exp chains, result is the iteration count",
	Sin:          "sum of sin(x), single accumulator",
	Accum:        "naive sequential sum",
	UnrollAccum4: "sum over 4 independent partial accumulators",
	UnrollAccum8: "sum over 8 independent partial accumulators",
	StdAccum:     "sum delegated to gonum floats.Sum",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, numKinds)
	for k := range numKinds {
		m[kindNames[k]] = k
	}
	return m
}()

// String returns the command-line name of the kernel.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Description returns a one-line summary of what the kernel computes.
func (k Kind) Description() string {
	if !k.Valid() {
		return ""
	}
	return kindDescriptions[k]
}

// Valid reports whether k is one of the declared kernels.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// Kinds returns every kernel in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := range numKinds {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind resolves a command-line workload name.
func ParseKind(name string) (Kind, error) {
	k, ok := kindsByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownWorkload, name)
	}
	return k, nil
}
