package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// parseInputs splits a comma-separated list of input values ("2,3,-1.5")
// into a dense float64 vector indexable by the [i] placeholders an
// expression references.
func parseInputs(raw string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid input value %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}
