package commands

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/olekukonko/tablewriter"
	gocpu "github.com/shirou/gopsutil/v3/cpu"
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/pinbench/internal/cpu"
)

var sysinfoCmd = &cobra.Command{
	Use:   "sysinfo",
	Short: "Describe the CPUs workloads can be pinned to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rows := collectSysinfo(cmd.Context())

		var err error
		con.Block(func(w io.Writer) {
			err = writeSysinfo(w, rows)
		})
		return err
	},
}

func collectSysinfo(ctx context.Context) [][2]string {
	rows := [][2]string{
		{"OS / arch", runtime.GOOS + "/" + runtime.GOARCH},
		{"GOMAXPROCS", fmt.Sprint(runtime.GOMAXPROCS(0))},
		{"Usable CPUs", fmt.Sprint(cpu.NumCPU())},
		{"Current CPU", fmt.Sprint(cpu.Current())},
	}

	if logical, err := gocpu.CountsWithContext(ctx, true); err == nil {
		rows = append(rows, [2]string{"Logical CPUs", fmt.Sprint(logical)})
	}
	if physical, err := gocpu.CountsWithContext(ctx, false); err == nil {
		rows = append(rows, [2]string{"Physical cores", fmt.Sprint(physical)})
	}
	if infos, err := gocpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		rows = append(rows,
			[2]string{"Model", infos[0].ModelName},
			[2]string{"MHz", fmt.Sprintf("%.0f", infos[0].Mhz)},
		)
	}
	if allowed, err := cpu.Allowed(); err == nil {
		rows = append(rows, [2]string{"Affinity mask", fmt.Sprint(allowed)})
	}
	return rows
}

func writeSysinfo(w io.Writer, rows [][2]string) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")
	for _, r := range rows {
		if err := table.Append(r[0], r[1]); err != nil {
			return err
		}
	}
	return table.Render()
}

func init() {
	rootCmd.AddCommand(sysinfoCmd)
}
