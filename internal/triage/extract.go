package triage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Generator is the prompt-to-text contract the triage components depend on.
// It is satisfied by genai.Gateway and by test fakes.
type Generator interface {
	Generate(prompt string) (string, error)
}

// priorityBodyLimit bounds the body prefix sent for priority analysis
const priorityBodyLimit = 1000

// FirstBalancedBraceSpan locates the first balanced {...} span in text and
// returns its start and end offsets (end exclusive). The match is greedy:
// it opens at the first '{' and closes when the brace depth returns to zero.
// Returns ok=false when there is no opening brace or the braces never balance.
func FirstBalancedBraceSpan(text string) (start, end int, ok bool) {
	start = strings.IndexByte(text, '{')
	if start < 0 {
		return 0, 0, false
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return start, i + 1, true
			}
		}
	}
	return 0, 0, false
}

// Extractor turns free-form generator output into validated records
type Extractor struct {
	gen Generator
}

// NewExtractor creates a new Extractor instance
func NewExtractor(gen Generator) *Extractor {
	return &Extractor{gen: gen}
}

// priorityPayload is the structured block requested from the generator
type priorityPayload struct {
	UrgencyScore          float64 `json:"urgency_score"`
	ImportanceScore       float64 `json:"importance_score"`
	Reason                string  `json:"reason"`
	SuggestedResponseTime string  `json:"suggested_response_time"`
}

// ExtractPriority analyzes a message's urgency and importance. It never
// fails: any generator fault, unparsable output, or missing field degrades
// to the lowest-priority fallback record.
func (e *Extractor) ExtractPriority(subject, body, sender string) PriorityRecord {
	prompt := fmt.Sprintf(
		"Analyze this email's priority and urgency.\n\n"+
			"From: %s\nSubject: %s\n\nBody:\n%s\n\n"+
			"Respond with a JSON object shaped exactly like:\n"+
			"{\"urgency_score\": 1-5, \"importance_score\": 1-5, "+
			"\"reason\": \"brief explanation\", "+
			"\"suggested_response_time\": \"immediate|within_hour|within_day|this_week\"}",
		sender, subject, truncate(body, priorityBodyLimit))

	raw, err := e.gen.Generate(prompt)
	if err != nil {
		return fallbackPriority()
	}

	var payload priorityPayload
	if !unmarshalBraceBlock(raw, &payload) {
		return fallbackPriority()
	}

	// Scores are required; a missing or out-of-band value means the model
	// did not produce a usable analysis.
	urgency := int(payload.UrgencyScore)
	importance := int(payload.ImportanceScore)
	if urgency < 1 || importance < 1 {
		return fallbackPriority()
	}

	record := PriorityRecord{
		UrgencyScore:          clampScore(urgency),
		ImportanceScore:       clampScore(importance),
		Reason:                strings.TrimSpace(payload.Reason),
		SuggestedResponseTime: ResponseTime(strings.ToLower(strings.TrimSpace(payload.SuggestedResponseTime))),
	}
	if !record.SuggestedResponseTime.IsValid() {
		record.SuggestedResponseTime = ResponseThisWeek
	}
	return record
}

// sentimentPayload is the structured block requested from the generator
type sentimentPayload struct {
	PrimaryEmotion    string   `json:"primary_emotion"`
	SecondaryEmotions []string `json:"secondary_emotions"`
	Intensity         float64  `json:"intensity"`
	Triggers          []string `json:"triggers"`
}

// ExtractSentiment classifies the emotional tone of text. Uses the full
// text (no truncation). Same total-fallback behavior as ExtractPriority.
func (e *Extractor) ExtractSentiment(text string) SentimentRecord {
	prompt := fmt.Sprintf(
		"Analyze the emotional tone of the message below. Choose the primary emotion from: "+
			"Joy, Gratitude, Excitement, Anger, Frustration, Disappointment, Anxiety, Sadness, "+
			"Funny, Professional, Formal, Neutral.\n\n%s\n\n"+
			"Respond with a JSON object shaped exactly like:\n"+
			"{\"primary_emotion\": \"...\", \"secondary_emotions\": [\"...\"], "+
			"\"intensity\": 1-5, \"triggers\": [\"...\"]}",
		strings.TrimSpace(text))

	raw, err := e.gen.Generate(prompt)
	if err != nil {
		return fallbackSentiment()
	}

	var payload sentimentPayload
	if !unmarshalBraceBlock(raw, &payload) {
		return fallbackSentiment()
	}

	emotion, symbol, ok := canonicalEmotion(payload.PrimaryEmotion)
	if !ok {
		return fallbackSentiment()
	}

	record := SentimentRecord{
		PrimaryEmotion:    emotion,
		SecondaryEmotions: payload.SecondaryEmotions,
		Intensity:         clampScore(int(payload.Intensity)),
		Triggers:          payload.Triggers,
		DisplaySymbol:     symbol,
	}
	if record.SecondaryEmotions == nil {
		record.SecondaryEmotions = []string{}
	}
	if record.Triggers == nil {
		record.Triggers = []string{}
	}
	return record
}

// unmarshalBraceBlock locates the first balanced brace span in raw and
// unmarshals it into v. Returns false when no span exists or parsing fails.
func unmarshalBraceBlock(raw string, v interface{}) bool {
	start, end, ok := FirstBalancedBraceSpan(raw)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw[start:end]), v) == nil
}

// canonicalEmotion validates an emotion name against the fixed vocabulary
// and returns its canonical casing and display symbol.
func canonicalEmotion(name string) (string, string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	symbol, ok := emotionSymbols[key]
	if !ok {
		return "", "", false
	}
	return strings.ToUpper(key[:1]) + key[1:], symbol, true
}

// clampScore clamps a score into [1, 5]
func clampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

// truncate bounds s to at most limit bytes
func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
