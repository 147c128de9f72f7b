package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// CategoryAll is the wildcard category that matches every quote.
const CategoryAll = "all"

// CategoryServer is assigned to quotes pulled from the remote source.
const CategoryServer = "Server"

type Quote struct {
	Text     string `json:"text" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// Equal reports structural equality: text and category both match.
func (q Quote) Equal(other Quote) bool {
	return q.Text == other.Text && q.Category == other.Category
}

// IsValid reports whether neither field is blank.
func (q Quote) IsValid() bool {
	return strings.TrimSpace(q.Text) != "" && strings.TrimSpace(q.Category) != ""
}

// SeedQuotes returns the quotes a brand new quote book starts with.
func SeedQuotes() []Quote {
	return []Quote{
		{Text: "The journey of a thousand miles begins with one step.", Category: "Motivation"},
		{Text: "Life is what happens when you're busy making other plans.", Category: "Life"},
		{Text: "Code is like humor. When you have to explain it, it’s bad.", Category: "Programming"},
	}
}

// ErrNotQuoteArray is returned by DecodeQuoteArray when the top level is not a
// JSON array.
var ErrNotQuoteArray = errors.New("not a JSON array of quotes")

// rawQuote defers type checks so a single bad entry doesn't fail the list.
type rawQuote struct {
	Text     any `json:"text"`
	Category any `json:"category"`
}

// DecodeQuoteArray decodes a JSON array of {text, category} objects. Entries
// that are not objects or whose fields are not both strings are counted as
// malformed and dropped. Blank strings are kept.
func DecodeQuoteArray(data []byte) ([]Quote, int, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, 0, ErrNotQuoteArray
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, 0, ErrNotQuoteArray
	}

	quotes := make([]Quote, 0, len(elements))
	malformed := 0
	for _, element := range elements {
		q, ok := decodeQuote(element)
		if !ok {
			malformed++
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, malformed, nil
}

func decodeQuote(element json.RawMessage) (Quote, bool) {
	trimmed := bytes.TrimSpace(element)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Quote{}, false
	}

	var raw rawQuote
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Quote{}, false
	}

	text, ok := raw.Text.(string)
	if !ok {
		return Quote{}, false
	}
	category, ok := raw.Category.(string)
	if !ok {
		return Quote{}, false
	}
	return Quote{Text: text, Category: category}, true
}
