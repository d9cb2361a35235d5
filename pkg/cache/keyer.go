package cache

import "fmt"

// Keyer derives cache keys. Implementations must return equal keys for equal
// inputs and distinct keys whenever any option differs.
type Keyer interface {
	// LayoutKey keys the placements of a word list (by content hash).
	LayoutKey(labelsHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact of a layout (by content hash).
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that influence placement.
type LayoutKeyOpts struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	FontFamily    string  `json:"font_family"`
	FontWeight    string  `json:"font_weight"`
	MinSize       float64 `json:"min_size"`
	MaxSize       float64 `json:"max_size"`
	RotationRange float64 `json:"rotation_range"`
	Spiral        string  `json:"spiral"`
	Order         string  `json:"order"`
	Seed          uint64  `json:"seed"`
	CellSize      int     `json:"cell_size"`
	MaxAttempts   int     `json:"max_attempts"`
	SpiralStep    float64 `json:"spiral_step"`
	RectStep      float64 `json:"rect_step"`
	Measurer      string  `json:"measurer"`
}

// ArtifactKeyOpts are the options that influence rendering.
type ArtifactKeyOpts struct {
	Format     string   `json:"format"`
	Background string   `json:"background"`
	Palette    []string `json:"palette"`
	Scale      float64  `json:"scale"`
	EmbedFont  bool     `json:"embed_font"`
}

// DefaultKeyer hashes options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(labelsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", labelsHash, opts)
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), layoutHash, opts)
}
