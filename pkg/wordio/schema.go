package wordio

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

//go:embed labels.schema.json
var labelsSchema []byte

var compiled = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(labelsSchema))
})

// LabelsSchema returns the JSON Schema word lists are validated against.
func LabelsSchema() []byte {
	out := make([]byte, len(labelsSchema))
	copy(out, labelsSchema)
	return out
}

// Validate checks data against the word list schema. The returned error
// lists every violation.
func Validate(data []byte) error {
	schema, err := compiled()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compile labels schema")
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed word list")
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return errors.New(errors.ErrCodeInvalidInput, "word list does not match schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}
