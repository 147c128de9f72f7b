package exporters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mrlokans/quotebook/internal/entities"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
)

const (
	JSONFileName     = "quotes.json"
	MarkdownFileName = "quotes.md"
)

var ErrUnknownFormat = errors.New("unknown export format")

// QuoteSource is anything that can list every stored quote in order.
type QuoteSource interface {
	All() []entities.Quote
}

// Document is a rendered export ready to be served or written to disk.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
	Quotes      int
}

// ParseFormat accepts "json", "md" or "markdown". Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

type Exporter struct {
	source QuoteSource
}

func NewExporter(source QuoteSource) *Exporter {
	return &Exporter{source: source}
}

// Export renders the whole quote list in the requested format.
func (e *Exporter) Export(format Format) (Document, error) {
	quotes := e.source.All()

	switch format {
	case FormatJSON:
		data, err := MarshalJSON(quotes)
		if err != nil {
			return Document{}, err
		}
		return Document{
			FileName:    JSONFileName,
			ContentType: "application/json",
			Data:        data,
			Quotes:      len(quotes),
		}, nil
	case FormatMarkdown:
		return Document{
			FileName:    MarkdownFileName,
			ContentType: "text/markdown; charset=utf-8",
			Data:        []byte(GenerateMarkdown(quotes)),
			Quotes:      len(quotes),
		}, nil
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
