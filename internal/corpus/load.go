package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"collabtopo/internal/faults"
)

const (
	columnAuthors     = "authors"
	columnCategory    = "category"
	columnPublishTime = "publish_time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// Load reads a corpus from a .csv or .xlsx file. The first column holds the
// document identifier; the authors, category, and publish_time columns are
// located by header name. Any malformed row aborts the load with an error
// marked faults.ErrIngestion.
func Load(path string) (*Corpus, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	case ".csv", "":
		rows, err = readCSV(path)
	default:
		return nil, faults.Wrap(faults.ErrIngestion, "corpus", "load", fmt.Sprintf("unsupported file type %q", filepath.Ext(path)), nil)
	}
	if err != nil {
		return nil, faults.Wrap(faults.ErrIngestion, "corpus", "read", path, err)
	}
	docs, err := parseRows(rows)
	if err != nil {
		return nil, faults.Wrap(faults.ErrIngestion, "corpus", "parse", path, err)
	}
	return &Corpus{source: path, docs: docs}, nil
}

// Read parses CSV content from r.
func Read(source string, r io.Reader) (*Corpus, error) {
	rows, err := decodeCSV(r)
	if err != nil {
		return nil, faults.Wrap(faults.ErrIngestion, "corpus", "read", source, err)
	}
	docs, err := parseRows(rows)
	if err != nil {
		return nil, faults.Wrap(faults.ErrIngestion, "corpus", "parse", source, err)
	}
	return &Corpus{source: source, docs: docs}, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer file.Close()
	return decodeCSV(file)
}

func decodeCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

type columns struct {
	authors, category, published int
}

func locateColumns(header []string) (columns, error) {
	cols := columns{authors: -1, category: -1, published: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case columnAuthors:
			cols.authors = i
		case columnCategory:
			cols.category = i
		case columnPublishTime:
			cols.published = i
		}
	}
	var missing []string
	if cols.authors < 0 {
		missing = append(missing, columnAuthors)
	}
	if cols.category < 0 {
		missing = append(missing, columnCategory)
	}
	if cols.published < 0 {
		missing = append(missing, columnPublishTime)
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRows(rows [][]string) ([]Document, error) {
	if len(rows) == 0 {
		return nil, errors.New("missing header row")
	}
	cols, err := locateColumns(rows[0])
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if isBlank(row) {
			continue
		}
		doc, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if doc.ID == "" {
			doc.ID = fmt.Sprintf("%d", line-1)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func parseRow(row []string, cols columns) (Document, error) {
	authors, err := ParseAuthorList(field(row, cols.authors))
	if err != nil {
		return Document{}, fmt.Errorf("authors: %w", err)
	}
	published, err := ParseTimestamp(field(row, cols.published))
	if err != nil {
		return Document{}, fmt.Errorf("publish_time: %w", err)
	}
	var id string
	if cols.authors != 0 && cols.category != 0 && cols.published != 0 {
		id = strings.TrimSpace(field(row, 0))
	}
	return Document{
		ID:          id,
		Authors:     authors,
		Category:    Category(strings.TrimSpace(field(row, cols.category))),
		PublishedAt: published,
	}, nil
}

// ParseTimestamp accepts RFC 3339 and the common date/time layouts written by
// dataframe exports. Values without a zone are interpreted as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
