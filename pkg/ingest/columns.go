package ingest

import (
	"strings"

	"github.com/matzehuels/topicnet/pkg/errors"
)

// Columns names the eight header fields read from each row.
type Columns struct {
	FromID        string `toml:"from_id" json:"from_id"`
	FromTopic     string `toml:"from_topic" json:"from_topic"`
	FromTopicName string `toml:"from_topic_name" json:"from_topic_name"`
	FromLabel     string `toml:"from_label" json:"from_label"`
	ToID          string `toml:"to_id" json:"to_id"`
	ToTopic       string `toml:"to_topic" json:"to_topic"`
	ToTopicName   string `toml:"to_topic_name" json:"to_topic_name"`
	ToLabel       string `toml:"to_label" json:"to_label"`
}

// DefaultColumns returns the header names of the institution/subject export.
func DefaultColumns() Columns {
	return Columns{
		FromID:        "from_id",
		FromTopic:     "topic_from",
		FromTopicName: "topic_name_from",
		FromLabel:     "from_text",
		ToID:          "to_id",
		ToTopic:       "topic_to",
		ToTopicName:   "topic_name_to",
		ToLabel:       "to_text",
	}
}

// WithDefaults fills empty fields from [DefaultColumns].
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&c.FromID, d.FromID)
	fill(&c.FromTopic, d.FromTopic)
	fill(&c.FromTopicName, d.FromTopicName)
	fill(&c.FromLabel, d.FromLabel)
	fill(&c.ToID, d.ToID)
	fill(&c.ToTopic, d.ToTopic)
	fill(&c.ToTopicName, d.ToTopicName)
	fill(&c.ToLabel, d.ToLabel)
	return c
}

// Names returns the column names in canonical order.
func (c Columns) Names() []string {
	return []string{
		c.FromID, c.FromTopic, c.FromTopicName, c.FromLabel,
		c.ToID, c.ToTopic, c.ToTopicName, c.ToLabel,
	}
}

// Validate rejects blank and duplicate column names.
func (c Columns) Validate() error {
	fields := []string{
		"from_id", "from_topic", "from_topic_name", "from_label",
		"to_id", "to_topic", "to_topic_name", "to_label",
	}
	seen := make(map[string]string, len(fields))
	for i, name := range c.Names() {
		if err := errors.ValidateColumnName(fields[i], name); err != nil {
			return err
		}
		if prev, ok := seen[name]; ok {
			return errors.New(errors.ErrCodeInvalidConfig, "columns %s and %s both map to %q", prev, fields[i], name)
		}
		seen[name] = fields[i]
	}
	return nil
}

// Index holds the position of each column within a header row.
type Index struct {
	fromID, fromTopic, fromTopicName, fromLabel int
	toID, toTopic, toTopicName, toLabel         int
	width                                       int
}

// Resolve locates every column in header. Header names are matched after
// trimming surrounding whitespace and a UTF-8 byte order mark. A missing
// column is an INVALID_INPUT error.
func (c Columns) Resolve(header []string) (Index, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	var missing []string
	find := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	idx := Index{
		fromID:        find(c.FromID),
		fromTopic:     find(c.FromTopic),
		fromTopicName: find(c.FromTopicName),
		fromLabel:     find(c.FromLabel),
		toID:          find(c.ToID),
		toTopic:       find(c.ToTopic),
		toTopicName:   find(c.ToTopicName),
		toLabel:       find(c.ToLabel),
	}
	if len(missing) > 0 {
		return Index{}, errors.New(errors.ErrCodeInvalidInput, "header is missing required columns: %s", strings.Join(missing, ", "))
	}
	idx.width = max(idx.fromID, idx.fromTopic, idx.fromTopicName, idx.fromLabel,
		idx.toID, idx.toTopic, idx.toTopicName, idx.toLabel) + 1
	return idx, nil
}
