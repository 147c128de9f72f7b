package exporters

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/quotebook/internal/entities"
)

// GenerateMarkdown renders quotes grouped by category, categories in
// first-seen order.
func GenerateMarkdown(quotes []entities.Quote) string {
	var builder strings.Builder

	var order []string
	grouped := make(map[string][]entities.Quote)
	for _, q := range quotes {
		if _, ok := grouped[q.Category]; !ok {
			order = append(order, q.Category)
		}
		grouped[q.Category] = append(grouped[q.Category], q)
	}

	currentDateTime := time.Now().Format("2006-01-02")
	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: quotes\n")
	fmt.Fprintf(&builder, "created_at: %s\n", currentDateTime)
	fmt.Fprintf(&builder, "quotes: %d\n", len(quotes))
	fmt.Fprintf(&builder, "tags: quotes\n")
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# Quotes\n\n")

	for _, category := range order {
		fmt.Fprintf(&builder, "## %s\n\n", category)
		for _, q := range grouped[category] {
			fmt.Fprintf(&builder, "> %s\n\n", strings.ReplaceAll(q.Text, "\n", "\n> "))
		}
	}

	return builder.String()
}
