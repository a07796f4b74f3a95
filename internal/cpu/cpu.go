// Package cpu binds OS threads to logical CPUs and reports where a thread runs.
//
// Affinity in Go only makes sense for a goroutine that owns its OS thread, so
// Pin always locks the calling goroutine with runtime.LockOSThread before it
// asks the platform Binder to restrict the thread.
package cpu

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrUnsupported is returned where the platform has no thread affinity API.
	ErrUnsupported = errors.New("thread affinity not supported on this platform")

	// ErrInvalidCPU is returned for CPU indices the platform cannot express.
	ErrInvalidCPU = errors.New("invalid cpu index")
)

// AffinityError reports a failed attempt to bind the calling thread.
type AffinityError struct {
	CPU int
	Err error
}

func (e *AffinityError) Error() string {
	return fmt.Sprintf("bind thread to cpu %d: %v", e.CPU, e.Err)
}

func (e *AffinityError) Unwrap() error {
	return e.Err
}

// Binder restricts the calling OS thread to a single logical CPU.
type Binder interface {
	Bind(cpuID int) error
}

// BinderFunc adapts a function to the Binder interface.
type BinderFunc func(cpuID int) error

// Bind calls f(cpuID).
func (f BinderFunc) Bind(cpuID int) error {
	return f(cpuID)
}

// NewBinder returns the Binder for the current platform.
func NewBinder() Binder {
	return BinderFunc(bindCurrentThread)
}

// NumCPU returns the number of logical CPUs usable by the process.
func NumCPU() int {
	return runtime.NumCPU()
}

// Pin locks the calling goroutine to its OS thread and binds that thread to
// cpuID. The returned release function must be deferred by the caller even
// when err is non-nil; a failed bind leaves the thread locked but unpinned.
//
// After a successful bind release keeps the thread locked, so it is torn down
// with the goroutine instead of returning to the runtime with a narrowed mask.
func Pin(b Binder, cpuID int) (release func(), err error) {
	runtime.LockOSThread()

	if cpuID < 0 {
		return runtime.UnlockOSThread, &AffinityError{CPU: cpuID, Err: ErrInvalidCPU}
	}

	if err := b.Bind(cpuID); err != nil {
		var ae *AffinityError
		if !errors.As(err, &ae) {
			err = &AffinityError{CPU: cpuID, Err: err}
		}
		return runtime.UnlockOSThread, err
	}

	return func() {}, nil
}
