package triage

import (
	"path/filepath"
	"strings"
)

// ExtractTextFunc is the file-to-text collaborator contract: given a file
// path it returns extracted plain text, or an error marker string on
// failure. It never fails with an error value.
type ExtractTextFunc func(path string) string

// Pipeline sequences the per-message analysis and batch ranking.
// Execution is strictly sequential: the generator backend imposes a shared
// rate limit, and the Gateway's backoff is the only throttling mechanism.
type Pipeline struct {
	extractor   *Extractor
	summarizer  *Summarizer
	ranker      *Ranker
	gen         Generator
	extractText ExtractTextFunc
}

// NewPipeline wires the triage components around one generator gateway and
// one file-to-text collaborator.
func NewPipeline(gen Generator, extractText ExtractTextFunc) *Pipeline {
	return &Pipeline{
		extractor:   NewExtractor(gen),
		summarizer:  NewSummarizer(gen),
		ranker:      NewRanker(gen),
		gen:         gen,
		extractText: extractText,
	}
}

// Run processes a batch of messages and returns the results in ranked
// order, highest priority first, together with the aggregate analysis.
// A failure inside any single message's processing degrades that message's
// records to their documented fallbacks; it never aborts the batch.
func (p *Pipeline) Run(messages []Message) ([]MessageResult, BatchAnalysis) {
	results := make([]MessageResult, 0, len(messages))
	for _, msg := range messages {
		results = append(results, p.processMessage(msg))
	}

	order := p.ranker.Rank(results)
	ranked := make([]MessageResult, 0, len(order))
	for _, idx := range order {
		ranked = append(ranked, results[idx])
	}

	return ranked, Analyze(ranked)
}

// processMessage builds the MessageResult for one message
func (p *Pipeline) processMessage(msg Message) MessageResult {
	result := MessageResult{
		Message:     msg,
		Attachments: make([]AttachmentSummary, 0, len(msg.Attachments)),
	}

	for _, path := range msg.Attachments {
		result.Attachments = append(result.Attachments, p.processAttachment(path))
	}

	result.Priority = p.extractor.ExtractPriority(msg.Subject, msg.Body, msg.From)
	result.Sentiment = p.extractor.ExtractSentiment(msg.Body)
	result.SuggestedResponseTime = result.Priority.SuggestedResponseTime

	summary, err := p.gen.Generate(
		"Summarize this email and extract key points:\n\n" + truncate(strings.TrimSpace(msg.Body), attachmentTextLimit))
	if err != nil {
		summary = "No summary available."
	}
	result.Summary = summary

	return result
}

// processAttachment extracts, summarizes, and scores one attachment
func (p *Pipeline) processAttachment(path string) AttachmentSummary {
	fileType := strings.TrimPrefix(filepath.Ext(path), ".")
	text := p.extractText(path)
	summary := p.summarizer.Process(path, text, fileType)

	return AttachmentSummary{
		Filename:  filepath.Base(path),
		Summary:   summary,
		Sentiment: p.extractor.ExtractSentiment(summary),
	}
}
