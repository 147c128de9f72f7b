package importers

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/quotebook"
)

// ErrInvalidFile is returned when the upload is not JSON or its top level is
// not an array. Its message is shown to the user as is.
var ErrInvalidFile = errors.New("Invalid JSON file.") //nolint:staticcheck // user-facing message

// Sink receives the parsed quotes.
type Sink interface {
	BulkAdd(ctx context.Context, records []entities.Quote) (quotebook.BulkResult, error)
}

// Archiver keeps a copy of every upload. Optional.
type Archiver interface {
	SaveUpload(data []byte, ext string) (string, error)
}

// Result summarises one import.
type Result struct {
	Added     int    `json:"added"`
	Skipped   int    `json:"skipped"`   // Well-formed entries with a blank field
	Malformed int    `json:"malformed"` // Entries that are not {text, category} objects
	AuditFile string `json:"audit_file,omitempty"`
}

// Pipeline handles the import workflow:
// archive → parse → bulk add.
type Pipeline struct {
	sink     Sink
	archiver Archiver
}

// NewPipeline creates an import pipeline. archiver may be nil.
func NewPipeline(sink Sink, archiver Archiver) *Pipeline {
	return &Pipeline{sink: sink, archiver: archiver}
}

// Import parses contents as a JSON array of quotes and appends every
// acceptable entry to the store. A file that cannot be parsed adds nothing.
func (p *Pipeline) Import(ctx context.Context, contents []byte) (Result, error) {
	result := Result{}

	if p.archiver != nil {
		filename, err := p.archiver.SaveUpload(contents, "json")
		if err != nil {
			log.Warnf("Failed to archive import file: %v", err)
		} else {
			result.AuditFile = filename
		}
	}

	records, malformed, err := ParseQuotes(contents)
	if err != nil {
		return result, err
	}
	result.Malformed = malformed

	bulk, err := p.sink.BulkAdd(ctx, records)
	if err != nil {
		return result, fmt.Errorf("import quotes: %w", err)
	}
	result.Added = bulk.Added
	result.Skipped = bulk.Skipped

	log.Infof("Imported %d quotes (%d skipped, %d malformed)", result.Added, result.Skipped, result.Malformed)
	return result, nil
}

// ParseQuotes decodes a JSON array of {text, category} objects. Entries that
// are not objects or whose fields are not both strings are counted as
// malformed and dropped. Blank strings are kept for the store to reject.
func ParseQuotes(contents []byte) ([]entities.Quote, int, error) {
	records, malformed, err := entities.DecodeQuoteArray(contents)
	if err != nil {
		return nil, 0, ErrInvalidFile
	}
	return records, malformed, nil
}
