package triage

import "testing"

func TestResponseTimeIsValid(t *testing.T) {
	for _, rt := range []ResponseTime{ResponseImmediate, ResponseWithinHour, ResponseWithinDay, ResponseThisWeek} {
		if !rt.IsValid() {
			t.Errorf("%q should be valid", rt)
		}
	}
	for _, rt := range []ResponseTime{"", "soon", "IMMEDIATE", "next_year"} {
		if rt.IsValid() {
			t.Errorf("%q should be invalid", rt)
		}
	}
}

func result(urgency, importance int, emotion string) MessageResult {
	return MessageResult{
		Priority:  PriorityRecord{UrgencyScore: urgency, ImportanceScore: importance},
		Sentiment: SentimentRecord{PrimaryEmotion: emotion},
	}
}

func TestAnalyze(t *testing.T) {
	results := []MessageResult{
		result(5, 5, "Anger"),
		result(4, 3, "Joy"),
		result(3, 4, "Gratitude"),
		result(1, 1, "Neutral"),
		result(2, 2, "Professional"),
		result(1, 5, "Frustration"),
	}

	a := Analyze(results)
	if a.TotalEmails != 6 {
		t.Errorf("total: got %d, expected 6", a.TotalEmails)
	}
	if a.UrgentCount != 2 {
		t.Errorf("urgent: got %d, expected 2", a.UrgentCount)
	}
	if a.ImportantCount != 3 {
		t.Errorf("important: got %d, expected 3", a.ImportantCount)
	}
	if a.Sentiment.Positive != 2 || a.Sentiment.Negative != 2 || a.Sentiment.Neutral != 2 {
		t.Errorf("unexpected sentiment distribution: %+v", a.Sentiment)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	a := Analyze(nil)
	if a.TotalEmails != 0 || a.UrgentCount != 0 || a.ImportantCount != 0 {
		t.Errorf("unexpected analysis for empty batch: %+v", a)
	}
}
