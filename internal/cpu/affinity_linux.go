//go:build linux

package cpu

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// bindCurrentThread pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
//
// Indices beyond the machine are not rejected here; the kernel answers EINVAL.
func bindCurrentThread(cpuID int) error {
	if cpuID < 0 {
		return &AffinityError{CPU: cpuID, Err: ErrInvalidCPU}
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return &AffinityError{CPU: cpuID, Err: err}
	}
	return nil
}

// Current returns the CPU the calling thread is running on, or -1.
func Current() int {
	var cpu uint32
	_, _, errno := unix.Syscall(unix.SYS_GETCPU, uintptr(unsafe.Pointer(&cpu)), 0, 0)
	if errno != 0 {
		return -1
	}
	return int(cpu)
}

// ThreadID returns the kernel thread id of the caller.
func ThreadID() int {
	return unix.Gettid()
}

// Allowed returns the CPUs the calling thread may currently run on.
func Allowed() ([]int, error) {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err != nil {
		return nil, err
	}

	cpus := make([]int, 0, mask.Count())
	for i := 0; len(cpus) < mask.Count(); i++ {
		if mask.IsSet(i) {
			cpus = append(cpus, i)
		}
	}
	return cpus, nil
}
