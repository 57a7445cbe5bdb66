package service

import (
	"fmt"

	"github.com/akachour/wird/internal/core/domain"
)

// Report aggregation. Pure functions over a slice of entries: deterministic,
// no side effects, and the result does not depend on input order.

// CompletionRateByUser returns, per user, the percentage of that user's
// entries with salah completed. Users with no entries are absent from the
// result.
func CompletionRateByUser(entries []*domain.Entry) map[string]float64 {
	completed := make(map[string]int)
	total := make(map[string]int)
	for _, e := range entries {
		total[e.Username]++
		if e.SalahCompleted {
			completed[e.Username]++
		}
	}

	rates := make(map[string]float64, len(total))
	for username, n := range total {
		rates[username] = float64(completed[username]) / float64(n) * 100
	}
	return rates
}

// SumByUser returns, per user, the sum of the named counter across that
// user's entries. The counter name must be one of domain.CounterNames.
func SumByUser(entries []*domain.Entry, counterName string) (map[string]int64, error) {
	valid := false
	for _, name := range domain.CounterNames {
		if name == counterName {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: unknown counter %q", ErrInvalidInput, counterName)
	}

	sums := make(map[string]int64)
	for _, e := range entries {
		value, _ := e.Counter(counterName)
		sums[e.Username] += value
	}
	return sums, nil
}
