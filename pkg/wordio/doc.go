// Package wordio reads word lists and writes placements as JSON.
//
// # Input Format
//
// A word list is a JSON array of labels:
//
//	[
//	  {"text": "go", "weight": 10},
//	  {"text": "cloud", "weight": 4, "color": "#336699"},
//	  {"text": "tilted", "weight": 2, "rotate": 0.3}
//	]
//
// Required fields are text (non-empty string) and weight (number). The
// optional color is passed through to the output untouched; the optional
// rotate (radians) overrides the random rotation for that label.
//
// Input is validated against an embedded JSON Schema before it is decoded,
// so a document that decodes but has the wrong shape (a missing weight,
// a numeric text) is rejected as a whole.
//
// # Output Format
//
//	[{"text": "go", "weight": 10, "x": 400, "y": 300, "rotate": 0, "size": 60}]
//
// x and y are the label center. size is the resolved font size; color is
// present only when the input carried one.
//
// # Boundary Behavior
//
// [DecodeLabels] and [ReadLabelsFile] return coded errors. [GenerateLayoutJSON]
// is the embedding boundary: it never fails and answers malformed input
// with an empty array.
package wordio
