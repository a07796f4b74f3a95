package driver

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/utkarsh5026/pinbench/workload"
)

// ErrInvalidCPU is returned when a cpu argument is not an integer.
var ErrInvalidCPU = errors.New("invalid cpu index")

// Request is one (workload, cpu) pair from the command line.
type Request struct {
	Name string
	Kind workload.Kind
	CPU  int
}

// ParseRequests reads args as consecutive name/cpu pairs. A final name
// without a cpu runs on cpu 0. CPU indices are not checked against the
// machine; out-of-range pins fail later, at bind time, without aborting.
func ParseRequests(args []string) ([]Request, error) {
	reqs := make([]Request, 0, (len(args)+1)/2)

	for i := 0; i < len(args); i += 2 {
		kind, err := workload.ParseKind(args[i])
		if err != nil {
			return nil, err
		}

		cpuID := 0
		if i+1 < len(args) {
			cpuID, err = strconv.Atoi(args[i+1])
			if err != nil {
				return nil, fmt.Errorf("%w %q for workload %s", ErrInvalidCPU, args[i+1], args[i])
			}
		}

		reqs = append(reqs, Request{Name: args[i], Kind: kind, CPU: cpuID})
	}

	return reqs, nil
}
