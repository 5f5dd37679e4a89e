package triage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// attachmentTextLimit bounds the extracted-text prefix summarized for
// document formats
const attachmentTextLimit = 3000

// FileFormat is the closed set of attachment formats the summarizer handles
type FileFormat int

const (
	FormatUnsupported FileFormat = iota
	FormatPDF
	FormatDOCX
	FormatTXT
	FormatCSV
	FormatXLSX
)

// ParseFileFormat maps a case-insensitive format tag to a FileFormat.
// Unknown tags map to FormatUnsupported, never to a silent default.
func ParseFileFormat(tag string) FileFormat {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "pdf":
		return FormatPDF
	case "docx", "doc":
		return FormatDOCX
	case "txt":
		return FormatTXT
	case "csv":
		return FormatCSV
	case "xlsx", "xls":
		return FormatXLSX
	}
	return FormatUnsupported
}

// Summarizer turns extracted attachment text into summaries
type Summarizer struct {
	gen      Generator
	handlers map[FileFormat]func(text string) (string, error)
}

// NewSummarizer creates a new Summarizer instance
func NewSummarizer(gen Generator) *Summarizer {
	s := &Summarizer{gen: gen}
	s.handlers = map[FileFormat]func(string) (string, error){
		FormatPDF:  func(text string) (string, error) { return s.summarizeDocument(text, "PDF document") },
		FormatDOCX: func(text string) (string, error) { return s.summarizeDocument(text, "Word document") },
		FormatTXT:  func(text string) (string, error) { return s.summarizeDocument(text, "text file") },
		FormatCSV:  s.summarizeTabular,
		FormatXLSX: s.summarizeTabular,
	}
	return s
}

// Process summarizes one attachment given its extracted text and format tag.
// It never fails: unsupported formats return a literal marker, and any
// processing fault yields an error marker scoped to this attachment.
func (s *Summarizer) Process(filePath, text, fileType string) string {
	format := ParseFileFormat(fileType)
	handler, ok := s.handlers[format]
	if !ok {
		return fmt.Sprintf("[Unsupported file type: %s]", fileType)
	}

	// The extractor reports its own faults as marker text; surface those as
	// a processing marker instead of summarizing the marker itself.
	if strings.HasPrefix(text, "[Error reading") {
		return fmt.Sprintf("[Error processing %s file: %s]", fileType, strings.Trim(text, "[]"))
	}

	summary, err := handler(text)
	if err != nil {
		return fmt.Sprintf("[Error processing %s file: %v]", fileType, err)
	}
	return summary
}

// summarizeDocument asks the generator for a sectioned summary of a
// document-like attachment
func (s *Summarizer) summarizeDocument(text, kind string) (string, error) {
	return s.gen.Generate(fmt.Sprintf(
		"Summarize this %s. Provide, as distinct bulleted sections:\n"+
			"- Main points\n- Action items\n- Deadlines\n- Required responses\n- Context\n\n%s",
		kind, trimPromptText(text)))
}

// trimPromptText bounds and trims document text before prompting
func trimPromptText(text string) string {
	return strings.TrimSpace(truncate(text, attachmentTextLimit))
}

// summarizeTabular computes exact, reproducible statistics over row/column
// data without invoking the generator
func (s *Summarizer) summarizeTabular(text string) (string, error) {
	rows := parseRows(text)
	if len(rows) == 0 {
		return "", fmt.Errorf("no rows found")
	}

	columns := rows[0]
	data := rows[1:]

	var b strings.Builder
	fmt.Fprintf(&b, "Rows: %d\n", len(data))
	fmt.Fprintf(&b, "Columns: %s", strings.Join(columns, ", "))

	for i, col := range columns {
		stats, ok := columnStats(data, i)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s: min=%s, max=%s, mean=%.2f",
			col, formatNumber(stats.min), formatNumber(stats.max), stats.mean)
	}

	return b.String(), nil
}

// parseRows splits extracted tabular text into comma-separated cells.
// Blank lines and sheet headers are skipped.
func parseRows(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Sheet:") {
			continue
		}
		cells := strings.Split(line, ",")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	return rows
}

type numericStats struct {
	min, max, mean float64
}

// columnStats computes min/max/mean over column idx. Returns ok=false when
// the column holds no fully numeric values.
func columnStats(rows [][]string, idx int) (numericStats, bool) {
	var values []float64
	for _, row := range rows {
		if idx >= len(row) {
			return numericStats{}, false
		}
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return numericStats{}, false
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return numericStats{}, false
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range values {
		sum += v
	}

	return numericStats{
		min:  sorted[0],
		max:  sorted[len(sorted)-1],
		mean: sum / float64(len(values)),
	}, true
}

// formatNumber renders min/max values without a trailing .000000 for integers
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
