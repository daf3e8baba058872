package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDocument reads and validates a FAQ document file. Records with an empty
// category or answer fail the load with an error naming the record; an empty
// question is legal and is skipped at search time instead.
func LoadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading document %s: %w", path, err)
	}

	doc := &Document{}
	if err := yaml.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("error parsing document %s: %w", path, err)
	}

	for i, entry := range doc.Data {
		if strings.TrimSpace(entry.Category) == "" {
			return nil, fmt.Errorf("document %s: record %d has no category", path, i+1)
		}
		if strings.TrimSpace(entry.Answer) == "" {
			return nil, fmt.Errorf("document %s: record %d has no answer", path, i+1)
		}
	}

	return doc, nil
}

// ListDocuments returns the FAQ document file names available under dir.
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error listing documents in %s: %w", dir, err)
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			docs = append(docs, entry.Name())
		}
	}

	return docs, nil
}
