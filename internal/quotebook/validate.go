package quotebook

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/quotebook/internal/entities"
)

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// normalize trims both fields and validates the result.
func normalize(v *validator.Validate, text, category string) (entities.Quote, error) {
	q := entities.Quote{
		Text:     strings.TrimSpace(text),
		Category: strings.TrimSpace(category),
	}
	if err := v.Struct(q); err != nil {
		return entities.Quote{}, newValidationError(err)
	}
	return q, nil
}
