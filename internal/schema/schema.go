// Package schema validates uploaded summary documents against the public
// document contract before they reach storage.
package schema

import (
	_ "embed"

	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/errm"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed summary-schema.json
var summarySchema []byte

// Validate checks a raw summary document against the schema and returns
// one FieldError per violation. A nil slice means the document is valid.
func Validate(document []byte) ([]model.FieldError, error) {
	schemaLoader := gojsonschema.NewBytesLoader(summarySchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, errm.Wrap(err, "failed to validate document")
	}

	if result.Valid() {
		return nil, nil
	}

	fieldErrors := make([]model.FieldError, 0, len(result.Errors()))
	for _, resultError := range result.Errors() {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   resultError.Field(),
			Message: resultError.Description(),
		})
	}
	return fieldErrors, nil
}
