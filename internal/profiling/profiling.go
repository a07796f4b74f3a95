// Package profiling wires runtime/pprof output to command-line flags.
package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Start begins CPU profiling to cpuProfile and arranges for a heap profile to
// be written to memProfile when the returned stop function runs. Empty paths
// disable the respective profile. stop is safe to call more than once.
func Start(cpuProfile, memProfile string, logf func(format string, args ...any)) (stop func(), err error) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	cleanups := make([]func(), 0, 2)

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return nil, fmt.Errorf("create cpu profile: %w", err)
		}

		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("start cpu profile: %w", err)
		}
		logf("cpu profiling enabled, writing to: %s", cpuProfile)

		cleanups = append(cleanups, func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		})
	}

	if memProfile != "" {
		cleanups = append(cleanups, func() {
			f, err := os.Create(memProfile)
			if err != nil {
				logf("error creating memory profile: %v", err)
				return
			}
			defer func(f *os.File) {
				if err := f.Close(); err != nil {
					logf("error closing memory profile file: %v", err)
				}
			}(f)

			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				logf("error writing memory profile: %v", err)
				return
			}
			logf("memory profile written to: %s", memProfile)
		})
	}

	done := false
	return func() {
		if done {
			return
		}
		done = true
		for _, cleanup := range cleanups {
			cleanup()
		}
	}, nil
}
