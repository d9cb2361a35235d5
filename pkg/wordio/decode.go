package wordio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

// ParseLabels validates data and decodes it into labels. data must hold
// exactly one JSON array; trailing values or bytes are rejected.
//
// The returned slice is never nil on success; an empty array yields an
// empty slice.
func ParseLabels(data []byte) ([]cloud.Label, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	labels := []cloud.Label{}
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode word list")
	}
	return labels, nil
}

// DecodeLabels reads a word list from r. It does not close r.
func DecodeLabels(r io.Reader) ([]cloud.Label, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return ParseLabels(data)
}

// ReadLabelsFile reads the word list at path. A path of "-" reads stdin.
func ReadLabelsFile(path string) ([]cloud.Label, error) {
	if path == "-" {
		return DecodeLabels(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "word list %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	labels, err := ParseLabels(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return labels, nil
}
