package cloud

// Label is one weighted word to place.
type Label struct {
	Text   string   `json:"text" bson:"text"`
	Weight float64  `json:"weight" bson:"weight"`
	Color  *string  `json:"color,omitempty" bson:"color,omitempty"`   // passed through untouched
	Rotate *float64 `json:"rotate,omitempty" bson:"rotate,omitempty"` // radians; overrides the random draw
}

// Placed is a label with its resolved position, rotation and size.
// X and Y are the center of the label in canvas coordinates.
type Placed struct {
	Text   string  `json:"text" bson:"text"`
	Weight float64 `json:"weight" bson:"weight"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Rotate float64 `json:"rotate" bson:"rotate"`
	Color  *string `json:"color,omitempty" bson:"color,omitempty"`
	Size   float64 `json:"size,omitempty" bson:"size,omitempty"`
}

// Stats summarizes the most recent layout run.
type Stats struct {
	Input    int `json:"input" bson:"input"`
	Placed   int `json:"placed" bson:"placed"`
	Omitted  int `json:"omitted" bson:"omitted"`
	Attempts int `json:"attempts" bson:"attempts"` // candidates tested across all labels
	Occupied int `json:"occupied_cells" bson:"occupied_cells"`
}
