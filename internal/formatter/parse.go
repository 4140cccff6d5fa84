package formatter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/shared"
	"github.com/goccy/go-json"
)

// ParseCSV reads name and link columns from CSV data with a header row.
//
// Header matching is case-insensitive; the link column may be named youtubeLink, youtube_link or link.
// Other columns, such as those written by [ExportToCSV], are ignored.
func ParseCSV(data []byte) ([]*models.Recommendation, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []*models.Recommendation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	nameCol, linkCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name":
			nameCol = i
		case "youtubelink", "youtube_link", "link":
			linkCol = i
		}
	}
	if nameCol < 0 || linkCol < 0 {
		return nil, fmt.Errorf("%w: CSV header must include name and youtubeLink columns", shared.ErrInvalidInput)
	}

	recs := []*models.Recommendation{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		if len(record) <= max(nameCol, linkCol) {
			return nil, fmt.Errorf("%w: CSV line %d has %d columns", shared.ErrInvalidInput, line, len(record))
		}
		recs = append(recs, models.NewRecommendation(strings.TrimSpace(record[nameCol]), strings.TrimSpace(record[linkCol])))
	}

	return recs, nil
}

// ParseJSON reads an array of objects with name and youtubeLink fields.
func ParseJSON(data []byte) ([]*models.Recommendation, error) {
	var items []struct {
		Name string `json:"name"`
		Link string `json:"youtubeLink"`
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	recs := make([]*models.Recommendation, len(items))
	for i, item := range items {
		recs[i] = models.NewRecommendation(strings.TrimSpace(item.Name), strings.TrimSpace(item.Link))
	}
	return recs, nil
}

// ParseFile picks a parser from the file extension (.csv or .json).
func ParseFile(path string) ([]*models.Recommendation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(data)
	case ".json":
		return ParseJSON(data)
	}
	return nil, fmt.Errorf("%w: %q (expected .csv or .json)", shared.ErrInvalidFormat, filepath.Ext(path))
}
