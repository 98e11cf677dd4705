package store

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseOverrides reads a comma-separated per-code model count list such as
// "5,,3". Empty, non-numeric and non-positive positions become nil.
// An empty string means no override was given.
func ParseOverrides(raw string) []*int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]*int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			continue
		}
		out[i] = &n
	}
	return out
}

// EvenSplit spreads total over n codes; the first total%n codes get one more.
func EvenSplit(total, n int) []int {
	if n <= 0 {
		return nil
	}
	base, extra := total/n, total%n
	counts := make([]int, n)
	for i := range counts {
		counts[i] = base
		if i < extra {
			counts[i]++
		}
	}
	return counts
}

// DistributeModels assigns a model count to each of n codes.
//
// With overrides of matching length, valid entries are used as given and the
// remaining positions share what is left of total. A length mismatch discards
// the overrides, falls back to an even split, and returns a warning.
func DistributeModels(total, n int, overrides []*int) ([]int, string) {
	if overrides == nil {
		return EvenSplit(total, n), ""
	}
	if len(overrides) != n {
		warning := fmt.Sprintf("per-code model counts (%d) do not match the number of codes (%d); splitting evenly", len(overrides), n)
		return EvenSplit(total, n), warning
	}

	counts := make([]int, n)
	var missing []int
	defined := 0
	for i, v := range overrides {
		if v == nil || *v <= 0 {
			missing = append(missing, i)
			continue
		}
		counts[i] = *v
		defined += *v
	}
	if len(missing) == 0 {
		return counts, ""
	}

	remainder := total - defined
	if remainder < 0 {
		remainder = 0
	}
	fill := EvenSplit(remainder, len(missing))
	for j, i := range missing {
		counts[i] = fill[j]
	}
	return counts, ""
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
