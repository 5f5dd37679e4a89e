package triage

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Feature: email-ai-agent, Property 3: Ranking is a safe permutation prefix
// For any batch size and any generator output, the ranking is a
// duplicate-free subset of the valid indices, and a degenerate output
// degrades to identity order rather than losing or inventing messages.

func TestProperty_RankingSafePermutationPrefix(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	rankingGen := gen.SliceOf(gen.Float64Range(-3, 12))

	// Property 3.1: Output indices are unique and in range
	properties.Property("indices_unique_and_in_range", prop.ForAll(
		func(n int, ranking []float64) bool {
			payload, err := json.Marshal(map[string]interface{}{"ranking": ranking})
			if err != nil {
				return false
			}

			order := NewRanker(fixedGen(string(payload))).Rank(makeResults(n))

			seen := make(map[int]bool, len(order))
			for _, idx := range order {
				if idx < 0 || idx >= n || seen[idx] {
					return false
				}
				seen[idx] = true
			}
			return len(order) <= n && len(order) > 0
		},
		gen.IntRange(1, 8),
		rankingGen,
	))

	// Property 3.2: Arbitrary non-JSON output degrades to identity
	properties.Property("garbage_output_degrades_to_identity", prop.ForAll(
		func(n int, garbage string) bool {
			order := NewRanker(fixedGen(garbage)).Rank(makeResults(n))
			if len(order) != n {
				return false
			}
			for i, idx := range order {
				if idx != i {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
