package commands

import (
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/pinbench/internal/demo"
)

var wanderCmd = &cobra.Command{
	Use:   "wander",
	Short: "Show unpinned threads moving between CPUs",
	Long: `wander starts unpinned threads that periodically report the CPU they run on.
The scheduler is free to migrate them, so the reported CPU may change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		_, err := demo.Wander(ctx, con, demoOptions())
		return err
	},
}

var pinnedCmd = &cobra.Command{
	Use:   "pinned",
	Short: "Pin thread i to CPU i and show that it stays there",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		if _, err := demo.Pinned(ctx, con, demoOptions()); err != nil {
			return err
		}
		con.Successf("each pinned thread stays on the cpu it was bound to")
		return nil
	},
}

func demoOptions() demo.Options {
	return demo.Options{
		Threads:  cfg.Threads,
		Interval: cfg.Interval,
		Rounds:   cfg.Rounds,
	}
}

func init() {
	addDemoFlags(wanderCmd, true)
	addDemoFlags(pinnedCmd, true)
	rootCmd.AddCommand(wanderCmd, pinnedCmd)
}
