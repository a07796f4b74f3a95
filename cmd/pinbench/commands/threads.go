package commands

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/pinbench/internal/demo"
)

var threadsHold time.Duration

var threadsCmd = &cobra.Command{
	Use:   "threads",
	Short: "Start one thread per logical CPU and let each announce itself",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		_, err := demo.Threads(ctx, con, demo.Options{Threads: cfg.Threads}, threadsHold)
		return err
	},
}

func init() {
	addDemoFlags(threadsCmd, false)
	threadsCmd.Flags().DurationVar(&threadsHold, "hold", 200*time.Millisecond, "How long each thread stays alive")
	rootCmd.AddCommand(threadsCmd)
}
