package knowdex

import (
	"fmt"
	"strings"
)

// Field is one named value of a corpus record.
type Field struct {
	Name  string
	Value any
}

// Record is a single corpus row. Field order is preserved and meaningful:
// it drives the order of lines in the document content.
type Record []Field

// Get returns the value of the named field and whether it exists.
// The first field with a matching name wins.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Document is one retrievable unit of the knowledge base: the unified text
// built from a corpus record, plus the original record as metadata.
type Document struct {
	id       int
	content  string
	record   Record
	topicID  int
	hasTopic bool
}

// newDocument builds the document content from the record. When columns are
// given, only those fields are rendered, in the given order; columns missing
// from the record are skipped. A single rendered field yields the bare value,
// several yield "name: value" lines.
func newDocument(id int, record Record, columns []string) *Document {
	selected := record
	if len(columns) > 0 {
		selected = make(Record, 0, len(columns))
		for _, name := range columns {
			if v, ok := record.Get(name); ok {
				selected = append(selected, Field{Name: name, Value: v})
			}
		}
	}

	var content string
	if len(selected) == 1 {
		content = formatValue(selected[0].Value)
	} else {
		lines := make([]string, len(selected))
		for i, f := range selected {
			lines[i] = f.Name + ": " + formatValue(f.Value)
		}
		content = strings.Join(lines, "\n")
	}

	return &Document{id: id, content: content, record: record}
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// ID is the document's position in the knowledge base. It is the stable
// identity used by the vector index and by topic assignment.
func (d *Document) ID() int { return d.id }

// Content is the unified textual representation used for embedding.
func (d *Document) Content() string { return d.content }

// Record returns the original corpus record, all fields, in source order.
func (d *Document) Record() Record { return d.record }

// TopicID returns the topic assigned during topic discovery. ok is false
// until topics have been computed. NoTopic marks documents the clustering
// deemed noise.
func (d *Document) TopicID() (int, bool) {
	return d.topicID, d.hasTopic
}

func (d *Document) setTopic(id int) {
	d.topicID = id
	d.hasTopic = true
}
