// Package extract implements the file-to-text collaborator used for
// attachment handling. ExtractText never fails: every fault is reported as
// a literal marker string embedded in the returned text, so a single
// unreadable attachment cannot abort a triage batch.
package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/xuri/excelize/v2"
)

// handler extracts plain text for one format; format is the tag used in
// error markers
type handler struct {
	format  string
	extract func(path string) (string, error)
}

// handlers is the closed per-format dispatch table. An extension outside
// this table is the unsupported variant, not a silent default.
var handlers = map[string]handler{
	".pdf":  {"PDF", extractPDF},
	".docx": {"DOCX", extractDOCX},
	".doc":  {"DOCX", extractDOCX},
	".txt":  {"TXT", extractTXT},
	".csv":  {"CSV", extractCSV},
	".xlsx": {"XLSX", extractXLSX},
	".xls":  {"XLSX", extractXLSX},
}

// ExtractText extracts plain text from the file at path. On failure it
// returns "[Error reading <FORMAT>: <message>]"; for an extension outside
// the supported set it returns "[Unsupported file type: <path>]".
func ExtractText(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	h, ok := handlers[ext]
	if !ok {
		return fmt.Sprintf("[Unsupported file type: %s]", path)
	}

	text, err := h.extract(path)
	if err != nil {
		return fmt.Sprintf("[Error reading %s: %v]", h.format, err)
	}
	return text
}

// extractPDF extracts text from a PDF, page by page
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// xmlTagPattern strips markup from the docx document body
var xmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// extractDOCX extracts paragraph text from a Word document
func extractDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	// Paragraph closes become line breaks before markup is stripped.
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	return strings.TrimSpace(content), nil
}

// extractTXT reads a plain text file
func extractTXT(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// extractCSV re-joins CSV rows as comma-separated lines
func extractCSV(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var lines []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		lines = append(lines, strings.Join(row, ", "))
	}
	return strings.Join(lines, "\n"), nil
}

// extractXLSX emits each sheet as a "Sheet: <name>" header followed by
// comma-joined rows, so tabular statistics can parse spreadsheet output the
// same way as CSV output.
func extractXLSX(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sections []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", err
		}
		lines := make([]string, 0, len(rows)+1)
		lines = append(lines, "Sheet: "+sheet)
		for _, row := range rows {
			lines = append(lines, strings.Join(row, ", "))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n"), nil
}
