//go:build windows

package cpu

import (
	"syscall"
)

var (
	kernel32                  = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask     = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread          = kernel32.NewProc("GetCurrentThread")
	getCurrentThreadID        = kernel32.NewProc("GetCurrentThreadId")
	getCurrentProcessorNumber = kernel32.NewProc("GetCurrentProcessorNumber")
)

// bindCurrentThread pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
//
// Only the first processor group is addressable: 64 CPUs on 64-bit Windows.
func bindCurrentThread(cpuID int) error {
	if cpuID < 0 || cpuID >= 64 {
		return &AffinityError{CPU: cpuID, Err: ErrInvalidCPU}
	}

	handle, _, _ := getCurrentThread.Call()

	// Bit N = CPU N, so for CPU 0 it's 1, for CPU 1 it's 2, etc.
	mask := uintptr(1) << uint(cpuID)

	prevMask, _, err := setThreadAffinityMask.Call(handle, mask)
	if prevMask == 0 {
		return &AffinityError{CPU: cpuID, Err: err}
	}
	return nil
}

// Current returns the CPU the calling thread is running on.
func Current() int {
	n, _, _ := getCurrentProcessorNumber.Call()
	return int(n)
}

// ThreadID returns the Win32 thread id of the caller.
func ThreadID() int {
	id, _, _ := getCurrentThreadID.Call()
	return int(id)
}

// Allowed is not implemented on Windows.
func Allowed() ([]int, error) {
	return nil, ErrUnsupported
}
