package trkntuple

import (
	"fmt"
	"strconv"
	"strings"
)

// EdgeFlags collects histogram bin edges from a repeated flag or from a
// comma separated list. The first Set discards any default edges.
type EdgeFlags struct {
	Edges   []float64
	beenSet bool
}

func (f *EdgeFlags) Set(valueStr string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Edges = nil
	}

	for _, field := range strings.Split(valueStr, ",") {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return err
		}
		if n := len(f.Edges); n > 0 && value <= f.Edges[n-1] {
			return fmt.Errorf("bin edge %v does not exceed previous edge %v", value, f.Edges[n-1])
		}
		f.Edges = append(f.Edges, value)
	}
	return nil
}

func (f *EdgeFlags) String() string {
	return fmt.Sprint(f.Edges)
}

// IsSet reports whether the flag appeared on the command line.
func (f *EdgeFlags) IsSet() bool { return f.beenSet }

func increasing(edges []float64) bool {
	if len(edges) < 2 {
		return false
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return false
		}
	}
	return true
}
