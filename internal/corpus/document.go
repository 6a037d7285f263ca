package corpus

import (
	"slices"
	"strings"
	"time"

	"collabtopo/internal/window"
)

// Document is one co-authored publication.
type Document struct {
	ID          string
	Authors     []string
	Category    Category
	PublishedAt time.Time
}

// Corpus is the immutable, in-memory document collection.
type Corpus struct {
	source string
	docs   []Document
}

// New wraps already-parsed documents, mainly for tests and alternative loaders.
func New(source string, docs []Document) *Corpus {
	return &Corpus{source: source, docs: slices.Clone(docs)}
}

// Source returns the path the corpus was loaded from.
func (c *Corpus) Source() string {
	return c.source
}

// Len returns the number of loaded documents.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.docs)
}

// Query describes the per-window document filter.
type Query struct {
	Selection  Selection
	Interval   window.Window
	MaxAuthors int
}

// Filter returns the documents, in corpus order, whose author count is at
// most MaxAuthors (no cap when MaxAuthors <= 0), whose category passes the
// selection, and whose publish time lies in the half-open interval.
func (c *Corpus) Filter(q Query) []Document {
	if c == nil {
		return nil
	}
	var out []Document
	for _, doc := range c.docs {
		if q.MaxAuthors > 0 && len(doc.Authors) > q.MaxAuthors {
			continue
		}
		if !q.Selection.Allows(doc.Category) {
			continue
		}
		if !q.Interval.Contains(doc.PublishedAt) {
			continue
		}
		out = append(out, doc)
	}
	return out
}

// Info summarizes a filtered view of the corpus.
type Info struct {
	Categories   []string
	Unfiltered   bool
	NumDocuments int
}

// CategoryLabel renders the categories the way reports print them.
func (i Info) CategoryLabel() string {
	if i.Unfiltered {
		return "Not filtered"
	}
	return strings.Join(i.Categories, ",")
}

// Describe reports the selection and the number of documents matching q.
func (c *Corpus) Describe(q Query) Info {
	info := Info{
		Unfiltered:   q.Selection.IsUnfiltered(),
		NumDocuments: len(c.Filter(q)),
	}
	for _, code := range q.Selection.Codes() {
		info.Categories = append(info.Categories, string(code))
	}
	return info
}

// AuthorSets extracts the author lists of docs, sharing the underlying slices.
func AuthorSets(docs []Document) [][]string {
	sets := make([][]string, len(docs))
	for i, doc := range docs {
		sets[i] = doc.Authors
	}
	return sets
}
