package ingest

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/topicnet/pkg/errors"
	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

// DefaultDelimiter separates fields unless configured otherwise.
const DefaultDelimiter = ","

// Options configures [Decode].
type Options struct {
	Delimiter string
	Columns   Columns
	Logger    *log.Logger
}

func (o *Options) setDefaults() {
	if o.Delimiter == "" {
		o.Delimiter = DefaultDelimiter
	}
	o.Columns = o.Columns.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Batch is the outcome of decoding a whole input.
type Batch struct {
	Records []topicgraph.Record
	// Rows counts data rows read, excluding the header.
	Rows int
	// Skipped counts malformed rows, including rows the CSV reader rejected.
	Skipped int
}

// Decode reads a header row followed by data rows.
//
// Fatal errors are limited to configuration problems, an unreadable or empty
// input, and a header that lacks a required column. Anything wrong with an
// individual data row is counted in Batch.Skipped and logged at debug level.
func Decode(r io.Reader, opts Options) (*Batch, error) {
	opts.setDefaults()
	if err := errors.ValidateDelimiter(opts.Delimiter); err != nil {
		return nil, err
	}
	if err := opts.Columns.Validate(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.Comma, _ = utf8.DecodeRuneInString(opts.Delimiter)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "input is empty, expected a header row")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read header")
	}
	idx, err := opts.Columns.Resolve(header)
	if err != nil {
		return nil, err
	}

	batch := &Batch{}
	for {
		row, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		batch.Rows++
		if err != nil {
			var perr *csv.ParseError
			if !stderrors.As(err, &perr) {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read row %d", batch.Rows)
			}
			batch.Skipped++
			opts.Logger.Debug("skipping unparsable row", "line", perr.Line, "err", perr.Err)
			continue
		}

		rec, err := Normalize(row, idx)
		if err != nil {
			batch.Skipped++
			line, _ := cr.FieldPos(0)
			opts.Logger.Debug("skipping malformed row", "line", line, "reason", errors.UserMessage(err))
			continue
		}
		batch.Records = append(batch.Records, rec)
	}
	return batch, nil
}

// Build folds the batch into a dataset.
func (b *Batch) Build() topicgraph.Dataset {
	builder := topicgraph.NewBuilder()
	builder.AddAll(b.Records)
	return builder.Dataset()
}

// Summary returns a one-line description for logs.
func (b *Batch) Summary() string {
	return fmt.Sprintf("%d rows, %d records, %d skipped", b.Rows, len(b.Records), b.Skipped)
}
