package formatter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/shared"
	th "github.com/desertthunder/singme/internal/testing"
)

func sampleRecs() []*models.Recommendation {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []*models.Recommendation{
		{ID: 1, Name: "Falamansa - Xote dos Milagres", Link: "https://www.youtube.com/watch?v=chwyjJbcs1Y", Score: 12, CreatedAt: created},
		{ID: 2, Name: "Pipe | Song", Link: "youtu.be/abc", Score: -3, CreatedAt: created},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleRecs())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "ID,Name,YouTubeLink,Score,CreatedAt\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,Falamansa - Xote dos Milagres,https://www.youtube.com/watch?v=chwyjJbcs1Y,12,2024-05-01T12:00:00Z") {
			t.Errorf("CSV missing first record, got: %s", output)
		}
		if !strings.Contains(output, "2,Pipe | Song,youtu.be/abc,-3,") {
			t.Errorf("CSV missing second record, got: %s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sampleRecs(), false)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if !strings.Contains(string(data), `"youtubeLink":"youtu.be/abc"`) {
			t.Errorf("JSON missing link field, got: %s", data)
		}

		empty, err := ExportToJSON(nil, false)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if string(empty) != "[]" {
			t.Errorf("expected empty array, got %s", empty)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleRecs(), "Top Picks")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Top Picks",
			"**Recommendations**: 2",
			"| 1 | Falamansa - Xote dos Milagres | 12 | [watch](https://www.youtube.com/watch?v=chwyjJbcs1Y) |",
			`| 2 | Pipe \| Song | -3 | [watch](youtu.be/abc) |`,
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}

		t.Run("empty", func(t *testing.T) {
			data, err := ExportToMarkdown(nil, "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}
			if !strings.Contains(string(data), "# Recommendations") || !strings.Contains(string(data), "_No recommendations._") {
				t.Errorf("unexpected empty markdown: %s", data)
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleRecs())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Recommendations: 2") {
			t.Errorf("text missing count")
		}
		if !strings.Contains(output, "1. Falamansa - Xote dos Milagres [+12] https://www.youtube.com/watch?v=chwyjJbcs1Y") {
			t.Errorf("text missing first line, got: %s", output)
		}
		if !strings.Contains(output, "2. Pipe | Song [-3] youtu.be/abc") {
			t.Errorf("text missing second line, got: %s", output)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
		ext   string
	}{
		{"json", FormatJSON, ".json"},
		{"CSV", FormatCSV, ".csv"},
		{"md", FormatMarkdown, ".md"},
		{"markdown", FormatMarkdown, ".md"},
		{"text", FormatText, ".txt"},
		{" txt ", FormatText, ".txt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
			if got.Extension() != tt.ext {
				t.Errorf("expected extension %s, got %s", tt.ext, got.Extension())
			}
		})
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
	if _, err := Export(Format("xml"), nil, ""); !errors.Is(err, shared.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat from Export, got %v", err)
	}
}

func TestWriteExport(t *testing.T) {
	dir := t.TempDir()

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(dir, "out"+format.Extension())
			written, err := WriteExport(format, sampleRecs(), "Export", path)
			if err != nil {
				t.Fatalf("WriteExport failed: %v", err)
			}
			if written != path {
				t.Errorf("expected %s, got %s", path, written)
			}
			th.AssertFileExists(t, path)
		})
	}

	t.Run("unwritable path", func(t *testing.T) {
		if _, err := WriteExport(FormatCSV, sampleRecs(), "", filepath.Join(dir, "missing", "out.csv")); err == nil {
			t.Error("expected error writing into a missing directory")
		}
	})
}

func TestParsers(t *testing.T) {
	t.Run("ParseCSV", func(t *testing.T) {
		t.Run("round trip from export", func(t *testing.T) {
			data, err := ExportToCSV(sampleRecs())
			if err != nil {
				t.Fatalf("ExportToCSV failed: %v", err)
			}

			recs, err := ParseCSV(data)
			if err != nil {
				t.Fatalf("ParseCSV failed: %v", err)
			}
			if len(recs) != 2 {
				t.Fatalf("expected 2 records, got %d", len(recs))
			}
			if recs[1].Name != "Pipe | Song" || recs[1].Link != "youtu.be/abc" {
				t.Errorf("unexpected record: %+v", recs[1])
			}
			if recs[0].ID != 0 || recs[0].Score != 0 {
				t.Error("parsed records should not carry ids or scores")
			}
		})

		t.Run("alternate header", func(t *testing.T) {
			recs, err := ParseCSV([]byte("link,NAME\nyoutu.be/x, First\n"))
			if err != nil {
				t.Fatalf("ParseCSV failed: %v", err)
			}
			if len(recs) != 1 || recs[0].Name != "First" || recs[0].Link != "youtu.be/x" {
				t.Errorf("unexpected records: %+v", recs)
			}
		})

		t.Run("empty input", func(t *testing.T) {
			recs, err := ParseCSV(nil)
			if err != nil || len(recs) != 0 {
				t.Errorf("expected no records and no error, got %d, %v", len(recs), err)
			}
		})

		t.Run("missing columns", func(t *testing.T) {
			if _, err := ParseCSV([]byte("title,url\na,b\n")); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("short row", func(t *testing.T) {
			if _, err := ParseCSV([]byte("name,youtubeLink\nonly-name\n")); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("ParseJSON", func(t *testing.T) {
		recs, err := ParseJSON([]byte(`[{"name":"a","youtubeLink":"youtu.be/a"},{"name":" b ","youtubeLink":"youtu.be/b","score":4}]`))
		if err != nil {
			t.Fatalf("ParseJSON failed: %v", err)
		}
		if len(recs) != 2 || recs[1].Name != "b" || recs[1].Score != 0 {
			t.Errorf("unexpected records: %+v", recs)
		}

		if _, err := ParseJSON([]byte(`{"name":"a"}`)); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("ParseFile", func(t *testing.T) {
		dir := t.TempDir()

		csvPath := filepath.Join(dir, "recs.csv")
		th.MustWriteFile(t, csvPath, "name,youtubeLink\na,youtu.be/a\n")
		if recs, err := ParseFile(csvPath); err != nil || len(recs) != 1 {
			t.Errorf("expected 1 CSV record, got %d, %v", len(recs), err)
		}

		jsonPath := filepath.Join(dir, "recs.JSON")
		th.MustWriteFile(t, jsonPath, `[{"name":"a","youtubeLink":"youtu.be/a"}]`)
		if recs, err := ParseFile(jsonPath); err != nil || len(recs) != 1 {
			t.Errorf("expected 1 JSON record, got %d, %v", len(recs), err)
		}

		txtPath := filepath.Join(dir, "recs.txt")
		th.MustWriteFile(t, txtPath, "a")
		if _, err := ParseFile(txtPath); !errors.Is(err, shared.ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}

		if _, err := ParseFile(filepath.Join(dir, "nope.csv")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
