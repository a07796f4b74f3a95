package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"github.com/utkarsh5026/pinbench/internal/config"
	"github.com/utkarsh5026/pinbench/internal/console"
	"github.com/utkarsh5026/pinbench/internal/driver"
	"github.com/utkarsh5026/pinbench/internal/profiling"
)

var (
	envFile string
	cfg     config.Config
	con     = console.New()

	flagBufferSize      int
	flagChurnIterations int
	flagOutput          string
	flagQuiet           bool
	flagNoColor         bool
	flagLocale          string
	flagThreads         int
	flagInterval        time.Duration
	flagRounds          int
	flagCPUProfile      string
	flagMemProfile      string
)

var rootCmd = &cobra.Command{
	Use:   "pinbench [workload cpu]...",
	Short: "Run numeric kernels on threads pinned to chosen CPUs",
	Long: `pinbench launches one OS thread per (workload, cpu) pair, pins each thread
to its cpu, runs the workload over its own oversized random buffer and reports
the elapsed time and result of every kernel.

Workloads: fpchurn, sin, accum, unrollaccum4, unrollaccum8, stdaccum.
A final workload without a cpu runs on cpu 0.`,
	Example: `  pinbench accum 0 unrollaccum4 1 stdaccum 2
  pinbench --size 1000000 --output json fpchurn 3`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runBench,
}

// Execute runs the root command and exits the process through atexit so
// registered cleanups such as profile writers always run.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		con.Errorf("%v", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "Optional file of PINBENCH_* variables")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	pf.StringVar(&flagLocale, "locale", "", "Locale for digit grouping (default: $LANG)")
	pf.StringVar(&flagCPUProfile, "cpuprofile", "", "Write CPU profile to file")
	pf.StringVar(&flagMemProfile, "memprofile", "", "Write memory profile to file")

	f := rootCmd.Flags()
	f.IntVar(&flagBufferSize, "size", 0, "Items per input buffer (default 100,000,000)")
	f.IntVar(&flagChurnIterations, "churn-iterations", 0, "Loop length of the fpchurn kernel (default 10,000,000)")
	f.StringVar(&flagOutput, "output", config.OutputTable, "Summary format: table, json or none")
	f.BoolVarP(&flagQuiet, "quiet", "q", false, "Hide the allocation progress bar")
}

// addDemoFlags registers the flags shared by the thread demos.
func addDemoFlags(cmd *cobra.Command, withRounds bool) {
	cmd.Flags().IntVar(&flagThreads, "threads", 0, "Number of threads (0 = one per logical CPU)")
	if withRounds {
		cmd.Flags().DurationVar(&flagInterval, "interval", 900*time.Millisecond, "Pause between two reports of a thread")
		cmd.Flags().IntVar(&flagRounds, "rounds", 5, "Reports per thread (0 = until interrupted)")
	}
}

// setup resolves the configuration: defaults, env file, environment, flags.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		loaded.BufferSize = flagBufferSize
	}
	if flags.Changed("churn-iterations") {
		loaded.ChurnIterations = flagChurnIterations
	}
	if flags.Changed("output") {
		loaded.Output = flagOutput
	}
	if flags.Changed("quiet") {
		loaded.Quiet = flagQuiet
	}
	if flags.Changed("no-color") {
		loaded.NoColor = flagNoColor
	}
	if flags.Changed("locale") {
		loaded.Locale = flagLocale
	}
	if flags.Changed("threads") {
		loaded.Threads = flagThreads
	}
	if flags.Changed("interval") {
		loaded.Interval = flagInterval
	}
	if flags.Changed("rounds") {
		loaded.Rounds = flagRounds
	}
	if flags.Changed("cpuprofile") {
		loaded.CPUProfile = flagCPUProfile
	}
	if flags.Changed("memprofile") {
		loaded.MemProfile = flagMemProfile
	}

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	opts := []console.Option{
		console.WithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		console.WithLanguage(console.ParseLanguage(cfg.Locale)),
	}
	if cfg.NoColor {
		opts = append(opts, console.WithoutColor())
	}
	con = console.New(opts...)

	stop, err := profiling.Start(cfg.CPUProfile, cfg.MemProfile, con.Infof)
	if err != nil {
		return err
	}
	atexit.Register(stop)
	return nil
}

// signalContext is cancelled by SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runBench(cmd *cobra.Command, args []string) error {
	reqs, err := driver.ParseRequests(args)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		return cmd.Help()
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	con.Header("Pinned Workload Benchmark")

	start := time.Now()
	outcomes, err := driver.New(con, cfg).Run(ctx, reqs)
	if err != nil {
		return err
	}

	if err := driver.Render(con, cfg.Output, driver.Summarize(outcomes)); err != nil {
		return err
	}
	if cfg.Output == config.OutputTable {
		con.Infof("total wall time %s", console.FormatDuration(time.Since(start)))
	}
	return nil
}
