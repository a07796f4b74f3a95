// Package config holds the runtime settings shared by every pinbench command.
//
// Values are resolved in order: built-in defaults, an optional .env file,
// PINBENCH_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/utkarsh5026/pinbench/workload"
)

const envPrefix = "PINBENCH_"

// Output formats for the benchmark summary.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputNone  = "none"
)

// Config holds every tunable of the driver and the demos.
type Config struct {
	// BufferSize is the number of float64 items per input buffer.
	BufferSize int
	// ChurnIterations is the fixed loop length of the fpchurn kernel.
	ChurnIterations int
	// Output selects the summary format printed after all threads join.
	Output string
	// Quiet hides the allocation progress bar.
	Quiet bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Locale controls digit grouping, e.g. "pt_BR.UTF-8".
	Locale string

	// Threads is the number of demo threads; 0 means one per logical CPU.
	Threads int
	// Interval is the pause between two demo reports.
	Interval time.Duration
	// Rounds bounds the demo reporting loops; 0 runs until interrupted.
	Rounds int

	CPUProfile string
	MemProfile string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BufferSize:      workload.DefaultBufferSize,
		ChurnIterations: workload.DefaultChurnIterations,
		Output:          OutputTable,
		Locale:          os.Getenv("LANG"),
		Threads:         0,
		Interval:        900 * time.Millisecond,
		Rounds:          5,
	}
}

// Load returns the defaults overlaid with envFile (when it exists) and the
// PINBENCH_* environment. An empty envFile skips the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error

	intVar := func(name string, dst *int) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	boolVar := func(name string, dst *bool) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = b
		}
	}
	stringVar := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	intVar("BUFFER_SIZE", &c.BufferSize)
	intVar("CHURN_ITERATIONS", &c.ChurnIterations)
	intVar("THREADS", &c.Threads)
	intVar("ROUNDS", &c.Rounds)
	boolVar("QUIET", &c.Quiet)
	boolVar("NO_COLOR", &c.NoColor)
	stringVar("OUTPUT", &c.Output)
	stringVar("LOCALE", &c.Locale)
	stringVar("CPU_PROFILE", &c.CPUProfile)
	stringVar("MEM_PROFILE", &c.MemProfile)

	if v, ok := os.LookupEnv(envPrefix + "INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sINTERVAL: %w", envPrefix, err))
		} else {
			c.Interval = d
		}
	}

	return errors.Join(errs...)
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	var errs []error

	if c.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("buffer size must be positive, got %d", c.BufferSize))
	}
	if c.ChurnIterations < 0 {
		errs = append(errs, fmt.Errorf("churn iterations must not be negative, got %d", c.ChurnIterations))
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputNone:
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q (want %s, %s or %s)",
			c.Output, OutputTable, OutputJSON, OutputNone))
	}
	if c.Threads < 0 {
		errs = append(errs, fmt.Errorf("threads must not be negative, got %d", c.Threads))
	}
	if c.Interval < 0 {
		errs = append(errs, fmt.Errorf("interval must not be negative, got %v", c.Interval))
	}
	if c.Rounds < 0 {
		errs = append(errs, fmt.Errorf("rounds must not be negative, got %d", c.Rounds))
	}

	return errors.Join(errs...)
}
