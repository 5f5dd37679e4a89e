package triage

// Message is one fetched mail message, immutable within a pipeline run.
type Message struct {
	ID          string   `json:"id"`
	From        string   `json:"from"`
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments,omitempty"` // local file paths
}

// ResponseTime is the suggested response window for a message
type ResponseTime string

const (
	ResponseImmediate  ResponseTime = "immediate"
	ResponseWithinHour ResponseTime = "within_hour"
	ResponseWithinDay  ResponseTime = "within_day"
	ResponseThisWeek   ResponseTime = "this_week"
)

// IsValid checks if the response time is one of the fixed values
func (r ResponseTime) IsValid() bool {
	switch r {
	case ResponseImmediate, ResponseWithinHour, ResponseWithinDay, ResponseThisWeek:
		return true
	}
	return false
}

// PriorityRecord holds the urgency/importance analysis of a message.
// Scores are always populated: extraction failure degrades to the
// lowest-priority bucket, never to an absent record.
type PriorityRecord struct {
	UrgencyScore          int          `json:"urgency_score"`    // 1-5
	ImportanceScore       int          `json:"importance_score"` // 1-5
	Reason                string       `json:"reason"`
	SuggestedResponseTime ResponseTime `json:"suggested_response_time"`
}

// fallbackPriority is the documented default substituted on extraction failure
func fallbackPriority() PriorityRecord {
	return PriorityRecord{
		UrgencyScore:          1,
		ImportanceScore:       1,
		Reason:                "Analysis unavailable",
		SuggestedResponseTime: ResponseThisWeek,
	}
}

// SentimentRecord holds the emotional analysis of a piece of text.
// Same total-fallback invariant as PriorityRecord.
type SentimentRecord struct {
	PrimaryEmotion    string   `json:"primary_emotion"`
	SecondaryEmotions []string `json:"secondary_emotions"`
	Intensity         int      `json:"intensity"` // 1-5
	Triggers          []string `json:"triggers"`
	DisplaySymbol     string   `json:"display_symbol"`
}

// emotionSymbols is the fixed emotion vocabulary with display symbols.
// Lookup is case-insensitive on the lowercased emotion name.
var emotionSymbols = map[string]string{
	"joy":            "🙂",
	"gratitude":      "🙏",
	"excitement":     "🤩",
	"anger":          "😠",
	"frustration":    "😡",
	"disappointment": "😞",
	"anxiety":        "😰",
	"sadness":        "😢",
	"funny":          "😂",
	"professional":   "💼",
	"formal":         "🎩",
	"neutral":        "😐",
}

// positiveEmotions and negativeEmotions define the aggregate sentiment
// buckets; everything else counts as neutral.
var (
	positiveEmotions = map[string]bool{"Joy": true, "Gratitude": true, "Excitement": true}
	negativeEmotions = map[string]bool{"Anger": true, "Frustration": true, "Disappointment": true}
)

// fallbackSentiment is the documented default substituted on extraction failure
func fallbackSentiment() SentimentRecord {
	return SentimentRecord{
		PrimaryEmotion:    "Neutral",
		SecondaryEmotions: []string{},
		Intensity:         1,
		Triggers:          []string{},
		DisplaySymbol:     emotionSymbols["neutral"],
	}
}

// AttachmentSummary is the processed result for one attachment
type AttachmentSummary struct {
	Filename  string          `json:"filename"`
	Summary   string          `json:"summary"`
	Sentiment SentimentRecord `json:"sentiment"`
}

// PlaceholderType is a personalization category a reply draft may need
// filled in before sending.
type PlaceholderType string

const (
	PlaceholderName    PlaceholderType = "NAME"
	PlaceholderDate    PlaceholderType = "DATE"
	PlaceholderTime    PlaceholderType = "TIME"
	PlaceholderCompany PlaceholderType = "COMPANY"
	PlaceholderDetails PlaceholderType = "DETAILS"
)

// PlaceholderLegend describes each placeholder category for API consumers
var PlaceholderLegend = map[PlaceholderType]string{
	PlaceholderName:    "Recipient's name",
	PlaceholderDate:    "Specific date",
	PlaceholderTime:    "Specific time",
	PlaceholderCompany: "Company name",
	PlaceholderDetails: "Additional details",
}

// ReplyOption is one drafted reply. The body always ends with exactly one
// copy of the configured signature.
type ReplyOption struct {
	Subject      string            `json:"subject"`
	Body         string            `json:"body"`
	Placeholders []PlaceholderType `json:"placeholders"`
}

// MessageResult aggregates the full per-message analysis. Built once per
// pipeline pass, consumed by the ranker, discarded with the response.
type MessageResult struct {
	Message               Message             `json:"message"`
	Summary               string              `json:"summary"`
	Priority              PriorityRecord      `json:"priority_analysis"`
	Sentiment             SentimentRecord     `json:"sentiment"`
	Attachments           []AttachmentSummary `json:"attachments"`
	SuggestedResponseTime ResponseTime        `json:"suggested_response_time"`
}

// BatchAnalysis holds the aggregate counters for a ranked batch
type BatchAnalysis struct {
	TotalEmails    int `json:"total_emails"`
	UrgentCount    int `json:"urgent_count"`    // urgency_score >= 4
	ImportantCount int `json:"important_count"` // importance_score >= 4
	Sentiment      struct {
		Positive int `json:"positive"`
		Negative int `json:"negative"`
		Neutral  int `json:"neutral"`
	} `json:"sentiment_distribution"`
}

// Analyze computes the aggregate counters over a batch of results
func Analyze(results []MessageResult) BatchAnalysis {
	var a BatchAnalysis
	a.TotalEmails = len(results)
	for _, r := range results {
		if r.Priority.UrgencyScore >= 4 {
			a.UrgentCount++
		}
		if r.Priority.ImportanceScore >= 4 {
			a.ImportantCount++
		}
		switch {
		case positiveEmotions[r.Sentiment.PrimaryEmotion]:
			a.Sentiment.Positive++
		case negativeEmotions[r.Sentiment.PrimaryEmotion]:
			a.Sentiment.Negative++
		default:
			a.Sentiment.Neutral++
		}
	}
	return a
}
