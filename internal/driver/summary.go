package driver

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/utkarsh5026/pinbench/internal/config"
	"github.com/utkarsh5026/pinbench/internal/console"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a finished batch.
type Summary struct {
	Outcomes []Outcome
	Ranks    []int // Ranks[i] is the elapsed-time rank of Outcomes[i], 1 = fastest
	Mean     time.Duration
	Fastest  time.Duration
	Slowest  time.Duration
	Unpinned int
}

// Summarize ranks outcomes by elapsed time without reordering them.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Outcomes: outcomes, Ranks: make([]int, len(outcomes))}
	if len(outcomes) == 0 {
		return s
	}

	elapsed := make([]float64, len(outcomes))
	for i, o := range outcomes {
		elapsed[i] = float64(o.Elapsed)
		if !o.Pinned() {
			s.Unpinned++
		}
	}

	order := make([]int, len(outcomes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(outcomes[a].Elapsed, outcomes[b].Elapsed)
	})
	for rank, idx := range order {
		s.Ranks[idx] = rank + 1
	}

	s.Mean = time.Duration(stat.Mean(elapsed, nil))
	s.Fastest = time.Duration(floats.Min(elapsed))
	s.Slowest = time.Duration(floats.Max(elapsed))
	return s
}

// Render prints the summary in the configured format.
func Render(con *console.Console, format string, s Summary) error {
	switch format {
	case config.OutputNone:
		return nil
	case config.OutputJSON:
		var err error
		con.Block(func(w io.Writer) {
			err = WriteJSON(w, s)
		})
		return err
	default:
		con.Section("📊 WORKLOAD SUMMARY")
		var err error
		con.Block(func(w io.Writer) {
			err = WriteTable(w, s)
		})
		if err != nil {
			return err
		}
		con.Infof("mean kernel time %s, spread %s .. %s",
			console.FormatDuration(s.Mean), console.FormatDuration(s.Fastest), console.FormatDuration(s.Slowest))
		if s.Unpinned > 0 {
			con.Warn("%d of %d workloads ran unpinned", s.Unpinned, len(s.Outcomes))
		} else {
			con.Successf("✅ all %d workloads ran pinned", len(s.Outcomes))
		}
		return nil
	}
}

// WriteTable renders one row per request, in request order.
func WriteTable(w io.Writer, s Summary) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Workload", "CPU", "Ran On", "Items", "Elapsed", "Result", "Rank", "vs Fastest")

	for i, o := range s.Outcomes {
		ranOn := "?"
		if o.CPU >= 0 {
			ranOn = fmt.Sprint(o.CPU)
		}
		if !o.Pinned() {
			ranOn += " (unpinned)"
		}

		if err := table.Append(
			fmt.Sprint(i+1),
			o.Request.Name,
			fmt.Sprint(o.Request.CPU),
			ranOn,
			fmt.Sprint(o.Items),
			console.FormatDuration(o.Elapsed),
			fmt.Sprintf("%g", o.Result),
			rankIcon(s.Ranks[i]),
			vsFastest(o.Elapsed, s.Fastest, s.Ranks[i]),
		); err != nil {
			return err
		}
	}

	return table.Render()
}

func rankIcon(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

// vsFastest calculates and formats the "vs Fastest" comparison string
func vsFastest(elapsed, fastest time.Duration, rank int) string {
	if rank == 1 || fastest <= 0 {
		return "baseline"
	}
	return fmt.Sprintf("%.2fx", float64(elapsed)/float64(fastest))
}

type jsonOutcome struct {
	Workload     string  `json:"workload"`
	RequestedCPU int     `json:"requested_cpu"`
	ObservedCPU  int     `json:"observed_cpu"`
	Thread       int     `json:"thread"`
	Pinned       bool    `json:"pinned"`
	PinError     string  `json:"pin_error,omitempty"`
	Items        int     `json:"items"`
	ElapsedMS    float64 `json:"elapsed_ms"`
	Result       float64 `json:"result"`
	Rank         int     `json:"rank"`
}

type jsonSummary struct {
	Workloads []jsonOutcome `json:"workloads"`
	MeanMS    float64       `json:"mean_ms"`
	Unpinned  int           `json:"unpinned"`
}

// WriteJSON encodes the summary as indented JSON.
func WriteJSON(w io.Writer, s Summary) error {
	out := jsonSummary{
		Workloads: make([]jsonOutcome, 0, len(s.Outcomes)),
		MeanMS:    console.Millis(s.Mean),
		Unpinned:  s.Unpinned,
	}
	for i, o := range s.Outcomes {
		jo := jsonOutcome{
			Workload:     o.Request.Name,
			RequestedCPU: o.Request.CPU,
			ObservedCPU:  o.CPU,
			Thread:       o.Thread,
			Pinned:       o.Pinned(),
			Items:        o.Items,
			ElapsedMS:    console.Millis(o.Elapsed),
			Result:       o.Result,
			Rank:         s.Ranks[i],
		}
		if o.PinErr != nil {
			jo.PinError = o.PinErr.Error()
		}
		out.Workloads = append(out.Workloads, jo)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return nil
}
