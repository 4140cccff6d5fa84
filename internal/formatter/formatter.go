// package formatter exports recommendations to various formats (JSON, CSV, Markdown, plain text) and parses them back for import
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/shared"
)

// Format is an export file format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
)

// Formats lists every supported [Format].
var Formats = []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

// ParseFormat resolves a format name or common alias.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text", "plain":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", shared.ErrInvalidFormat, name)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return "." + string(f)
	}
}

var csvHeaders = []string{"ID", "Name", "YouTubeLink", "Score", "CreatedAt"}

// ExportToCSV converts recommendations to CSV with columns: ID, Name, YouTubeLink, Score, CreatedAt
func ExportToCSV(recs []*models.Recommendation) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rec := range recs {
		record := []string{
			strconv.FormatInt(rec.ID, 10),
			rec.Name,
			rec.Link,
			strconv.Itoa(rec.Score),
			formatTime(rec.CreatedAt),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON encodes recommendations as a JSON array.
func ExportToJSON(recs []*models.Recommendation, pretty bool) ([]byte, error) {
	if recs == nil {
		recs = []*models.Recommendation{}
	}
	return shared.MarshalJSON(recs, pretty)
}

// ExportToMarkdown renders recommendations as a titled Markdown table.
func ExportToMarkdown(recs []*models.Recommendation, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Recommendations"
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Recommendations**: %d\n\n", len(recs))

	if len(recs) == 0 {
		buf.WriteString("_No recommendations._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Name | Score | Link |\n")
	buf.WriteString("|---|------|------:|------|\n")
	for i, rec := range recs {
		fmt.Fprintf(&buf, "| %d | %s | %d | [watch](%s) |\n", i+1, escapeMarkdown(rec.Name), rec.Score, rec.Link)
	}

	return buf.Bytes(), nil
}

// ExportToText converts recommendations to a numbered plain text list.
func ExportToText(recs []*models.Recommendation) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Recommendations: %d\n\n", len(recs))
	for i, rec := range recs {
		fmt.Fprintf(&buf, "%d. %s [%+d] %s\n", i+1, rec.Name, rec.Score, rec.Link)
	}

	return buf.Bytes(), nil
}

// Export renders recs in format. The title is only used by Markdown.
func Export(format Format, recs []*models.Recommendation, title string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(recs, true)
	case FormatCSV:
		return ExportToCSV(recs)
	case FormatMarkdown:
		return ExportToMarkdown(recs, title)
	case FormatText:
		return ExportToText(recs)
	}
	return nil, fmt.Errorf("%w: %q", shared.ErrInvalidFormat, format)
}

// WriteExport renders recs and writes them to path.
//
// Defaults to recommendations{ext} when path is empty. Returns the written path.
func WriteExport(format Format, recs []*models.Recommendation, title, path string) (string, error) {
	if path == "" {
		path = "recommendations" + format.Extension()
	}

	data, err := Export(format, recs, title)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
