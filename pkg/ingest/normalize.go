package ingest

import (
	"strings"

	"github.com/matzehuels/topicnet/pkg/errors"
	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

// Normalize turns one data row into a record.
//
// A row is malformed, and Normalize returns a MALFORMED_ROW error, when it
// is too short to hold every column or when either key is empty. Keys and
// topic IDs are trimmed; an empty topic ID becomes
// [topicgraph.UnknownTopic]. Labels and topic names are kept verbatim.
func Normalize(row []string, idx Index) (topicgraph.Record, error) {
	if len(row) < idx.width {
		return topicgraph.Record{}, errors.New(errors.ErrCodeMalformedRow, "row has %d fields, need %d", len(row), idx.width)
	}

	from := topicgraph.EntityDescriptor{
		Key:       strings.TrimSpace(row[idx.fromID]),
		TopicID:   normalizeTopic(row[idx.fromTopic]),
		TopicName: row[idx.fromTopicName],
		Label:     row[idx.fromLabel],
	}
	to := topicgraph.EntityDescriptor{
		Key:       strings.TrimSpace(row[idx.toID]),
		TopicID:   normalizeTopic(row[idx.toTopic]),
		TopicName: row[idx.toTopicName],
		Label:     row[idx.toLabel],
	}

	if from.Key == "" || to.Key == "" {
		return topicgraph.Record{}, errors.New(errors.ErrCodeMalformedRow, "empty entity key")
	}
	return topicgraph.Record{From: from, To: to}, nil
}

func normalizeTopic(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return topicgraph.UnknownTopic
	}
	return s
}
