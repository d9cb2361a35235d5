package render

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
)

// RenderJSON encodes l as indented JSON. A layout without placements
// encodes its words as an empty array.
func RenderJSON(l Layout) ([]byte, error) {
	if l.Words == nil {
		l.Words = []cloud.Placed{}
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return append(data, '\n'), nil
}
