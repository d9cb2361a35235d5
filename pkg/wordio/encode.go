package wordio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
)

// MarshalPlaced encodes placements as a compact JSON array. A nil slice
// encodes as [].
func MarshalPlaced(words []cloud.Placed) ([]byte, error) {
	if words == nil {
		words = []cloud.Placed{}
	}
	data, err := json.Marshal(words)
	if err != nil {
		return nil, fmt.Errorf("encode placements: %w", err)
	}
	return data, nil
}

// EncodePlaced writes placements to w as indented JSON.
func EncodePlaced(w io.Writer, words []cloud.Placed) error {
	if words == nil {
		words = []cloud.Placed{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(words); err != nil {
		return fmt.Errorf("encode placements: %w", err)
	}
	return nil
}

// WritePlacedFile writes placements to a JSON file at path.
func WritePlacedFile(path string, words []cloud.Placed) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return EncodePlaced(f, words)
}
