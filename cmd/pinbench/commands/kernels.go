package commands

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/pinbench/workload"
)

var kernelsCmd = &cobra.Command{
	Use:   "kernels",
	Short: "List the available workloads",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		var err error
		con.Block(func(w io.Writer) {
			err = writeKernels(w)
		})
		return err
	},
}

func writeKernels(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("Workload", "Computes")
	for _, k := range workload.Kinds() {
		if err := table.Append(k.String(), k.Description()); err != nil {
			return err
		}
	}
	return table.Render()
}

func init() {
	rootCmd.AddCommand(kernelsCmd)
}
