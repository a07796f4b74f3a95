package commands

import (
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/pinbench/internal/demo"
)

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Compare a thread's id as seen by itself and by its launcher",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := demo.Identity(cmd.Context(), con)
		return err
	},
}

func init() {
	rootCmd.AddCommand(identityCmd)
}
