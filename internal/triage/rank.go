package triage

import (
	"fmt"
	"strings"
)

// Ranker orders a batch of message results by priority, highest first
type Ranker struct {
	gen Generator
}

// NewRanker creates a new Ranker instance
func NewRanker(gen Generator) *Ranker {
	return &Ranker{gen: gen}
}

// rankingPayload is the structured block requested from the generator
type rankingPayload struct {
	Ranking          []float64         `json:"ranking"`
	Reasons          map[string]string `json:"reasons"`
	SuggestedActions map[string]string `json:"suggested_actions"`
}

// Rank returns a priority ordering over results as indices into the input
// slice. The result is always a duplicate-free subset of [0, N): invalid and
// repeated indices are dropped, and any generator or parsing fault degrades
// to identity order. Ranking is a best-effort enhancement, never a hard
// dependency for surfacing emails.
func (r *Ranker) Rank(results []MessageResult) []int {
	if len(results) == 0 {
		return []int{}
	}

	var b strings.Builder
	b.WriteString("You are an email assistant. Rank the emails below by urgency and importance, highest first.\n\n")
	for i, res := range results {
		fmt.Fprintf(&b, "%d. From: %s, Subject: %s\n", i, res.Message.From, res.Message.Subject)
		fmt.Fprintf(&b, "   Summary: %s\n", res.Summary)
		fmt.Fprintf(&b, "   Urgency: %d/5, Importance: %d/5, Respond: %s\n",
			res.Priority.UrgencyScore, res.Priority.ImportanceScore, res.Priority.SuggestedResponseTime)
		fmt.Fprintf(&b, "   Sentiment: %s (intensity %d/5)\n\n",
			res.Sentiment.PrimaryEmotion, res.Sentiment.Intensity)
	}
	b.WriteString("Respond with a JSON object shaped exactly like:\n" +
		"{\"ranking\": [indices, most important first], " +
		"\"reasons\": {\"index\": \"why\"}, " +
		"\"suggested_actions\": {\"index\": \"action\"}}")

	raw, err := r.gen.Generate(b.String())
	if err != nil {
		return identityOrder(len(results))
	}

	var payload rankingPayload
	if !unmarshalBraceBlock(raw, &payload) {
		return identityOrder(len(results))
	}

	order := validateRanking(payload.Ranking, len(results))
	if len(order) == 0 {
		return identityOrder(len(results))
	}
	return order
}

// validateRanking keeps in-range integer indices, first occurrence wins
func validateRanking(ranking []float64, n int) []int {
	seen := make(map[int]bool, n)
	order := make([]int, 0, n)
	for _, v := range ranking {
		idx := int(v)
		if float64(idx) != v || idx < 0 || idx >= n || seen[idx] {
			continue
		}
		seen[idx] = true
		order = append(order, idx)
	}
	return order
}

// identityOrder is the safe default ranking [0, 1, ..., n-1]
func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
