package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Row is one document of a fixture corpus.
type Row struct {
	ID        string
	Authors   []string
	Category  string
	Published string
}

// Doc is shorthand for a Row in category math.CO.
func Doc(id, published string, authors ...string) Row {
	return Row{ID: id, Authors: authors, Category: "math.CO", Published: published}
}

// AuthorList renders authors the way corpus exports store them: ['A', 'B'].
func AuthorList(authors []string) string {
	quoted := make([]string, len(authors))
	for i, a := range authors {
		quoted[i] = "'" + strings.ReplaceAll(a, "'", `\'`) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// WriteCorpusCSV writes a corpus file with the id, authors, category, and
// publish_time columns.
func WriteCorpusCSV(t testing.TB, path string, rows []Row) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	records := [][]string{{"id", "authors", "category", "publish_time"}}
	for _, row := range rows {
		records = append(records, []string{row.ID, AuthorList(row.Authors), row.Category, row.Published})
	}
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
