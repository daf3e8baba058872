package knowledge

import (
	"github.com/SaiNageswarS/go-collection-boot/ds"
)

// DefaultIdentity is used when a document carries no description of its own.
const DefaultIdentity = "AI Assistant"

// QAEntry is a single immutable FAQ record.
type QAEntry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
	Category string `yaml:"category"`
}

// Metadata carries document-level fields. Description doubles as the
// assistant identity shown to users.
type Metadata struct {
	Description string `yaml:"description"`
}

// Document is one loaded FAQ knowledge base. Records are read-only after
// load and safe to share across sessions.
type Document struct {
	Metadata Metadata  `yaml:"metadata"`
	Data     []QAEntry `yaml:"data"`
}

// Identity returns the assistant identity for this document.
func (d *Document) Identity() string {
	if d.Metadata.Description == "" {
		return DefaultIdentity
	}
	return d.Metadata.Description
}

// Categories returns the distinct non-empty categories of the document in
// first-seen order.
func (d *Document) Categories() []string {
	seen := ds.NewSet[string]()
	categories := make([]string, 0)

	for _, entry := range d.Data {
		if entry.Category == "" || seen.Contains(entry.Category) {
			continue
		}
		seen.Add(entry.Category)
		categories = append(categories, entry.Category)
	}

	return categories
}
