package wordio

import "github.com/matzehuels/wordcloud/pkg/core/cloud"

// GenerateLayoutJSON decodes a word list, lays it out with e and returns the
// placements as JSON. Malformed input of any kind yields "[]".
func GenerateLayoutJSON(e *cloud.Engine, data []byte) []byte {
	labels, err := ParseLabels(data)
	if err != nil {
		return []byte("[]")
	}
	out, err := MarshalPlaced(e.GenerateLayout(labels))
	if err != nil {
		return []byte("[]")
	}
	return out
}
