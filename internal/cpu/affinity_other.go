//go:build !linux && !windows

package cpu

// bindCurrentThread fails everywhere without a thread affinity API (macOS
// only offers affinity tags as hints). The thread stays locked but unpinned.
func bindCurrentThread(cpuID int) error {
	return &AffinityError{CPU: cpuID, Err: ErrUnsupported}
}

// Current returns -1: the platform does not expose the executing CPU.
func Current() int {
	return -1
}

// ThreadID returns -1: the platform does not expose a thread id.
func ThreadID() int {
	return -1
}

// Allowed is not implemented on this platform.
func Allowed() ([]int, error) {
	return nil, ErrUnsupported
}
