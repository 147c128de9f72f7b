package exporters

import (
	"encoding/json"
	"fmt"

	"github.com/mrlokans/quotebook/internal/entities"
)

// MarshalJSON encodes quotes as a JSON array indented with two spaces.
// A nil slice is written as [] so the file can always be imported again.
func MarshalJSON(quotes []entities.Quote) ([]byte, error) {
	if quotes == nil {
		quotes = []entities.Quote{}
	}
	data, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode quotes: %w", err)
	}
	return data, nil
}
