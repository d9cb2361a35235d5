package pipeline

import (
	"testing"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateSpiral(t *testing.T) {
	tests := []struct {
		spiral  string
		wantErr bool
	}{
		{"archimedean", false},
		{"rectangular", false},
		{"square", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateSpiral(tt.spiral)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSpiral(%q) error = %v, wantErr %v", tt.spiral, err, tt.wantErr)
		}
	}
}

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		order   string
		wantErr bool
	}{
		{"input", false},
		{"weight", false},
		{"random", true},
	}

	for _, tt := range tests {
		err := ValidateOrder(tt.order)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOrder(%q) error = %v, wantErr %v", tt.order, err, tt.wantErr)
		}
	}
}

func TestValidateMeasurer(t *testing.T) {
	for _, kind := range []string{"estimate", "basic", "opentype", "shaping"} {
		if err := ValidateMeasurer(kind); err != nil {
			t.Errorf("ValidateMeasurer(%q) = %v, want nil", kind, err)
		}
	}
	if err := ValidateMeasurer("ruler"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("ValidateMeasurer(ruler) = %v, want INVALID_CONFIG", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("canvas = %dx%d, want %dx%d", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.MinSize != DefaultMinSize || opts.MaxSize != DefaultMaxSize {
		t.Errorf("sizes = [%v, %v], want [%v, %v]", opts.MinSize, opts.MaxSize, DefaultMinSize, DefaultMaxSize)
	}
	if opts.Spiral != DefaultSpiral {
		t.Errorf("Spiral = %q, want %q", opts.Spiral, DefaultSpiral)
	}
	if opts.Order != DefaultOrder {
		t.Errorf("Order = %q, want %q", opts.Order, DefaultOrder)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil || opts.Fonts == nil {
		t.Error("runtime options should be set")
	}
}

func TestOptionsNormalizesCase(t *testing.T) {
	opts := Options{Spiral: "Rectangular", Order: "WEIGHT", Measurer: "OpenType", Formats: []string{" PNG "}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Spiral != "rectangular" || opts.Order != "weight" || opts.Measurer != "opentype" {
		t.Errorf("got spiral=%q order=%q measurer=%q", opts.Spiral, opts.Order, opts.Measurer)
	}
	if opts.Formats[0] != "png" {
		t.Errorf("Formats[0] = %q, want png", opts.Formats[0])
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"min above max", Options{MinSize: 50, MaxSize: 10}, errors.ErrCodeInvalidConfig},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidConfig},
		{"negative rotation", Options{RotationRange: -1}, errors.ErrCodeInvalidConfig},
		{"bad spiral", Options{Spiral: "zigzag"}, errors.ErrCodeInvalidConfig},
		{"negative cell", Options{CellSize: -2}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForLayout() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"transparent", Options{Background: "none"}, false},
		{"named palette", Options{Palette: []string{"red", "#00ff00"}}, false},
		{"bad format", Options{Formats: []string{"gif"}}, true},
		{"bad background", Options{Background: "#zzzzzz"}, true},
		{"bad palette", Options{Palette: []string{"not-a-color"}}, true},
		{"negative scale", Options{Scale: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForRender() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Width: 300, Height: 200}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First call failed: %v", err)
	}
	first := opts.LayoutKeyOpts()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second call failed: %v", err)
	}
	if second := opts.LayoutKeyOpts(); first != second {
		t.Errorf("LayoutKeyOpts changed between calls: %+v vs %+v", first, second)
	}
}

func TestEngineConfig(t *testing.T) {
	opts := Options{Width: 400, Height: 300, Spiral: "rectangular", RotationRange: 0.5}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	cfg := opts.EngineConfig()
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("EngineConfig() canvas = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Spiral.String() != "rectangular" {
		t.Errorf("EngineConfig().Spiral = %v, want rectangular", cfg.Spiral)
	}
	if cfg.RotationRange != 0.5 {
		t.Errorf("EngineConfig().RotationRange = %v, want 0.5", cfg.RotationRange)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Background: "#000000", Scale: 2, EmbedFont: true, Palette: []string{"red"}}
	k := opts.ArtifactKeyOpts("png")
	if k.Format != "png" || k.Background != "#000000" || k.Scale != 2 || !k.EmbedFont || len(k.Palette) != 1 {
		t.Errorf("ArtifactKeyOpts() = %+v", k)
	}
}

func TestOptionsClone(t *testing.T) {
	opts := Options{Formats: []string{"svg"}, Palette: []string{"red"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	c := opts.Clone()
	c.Formats[0] = "gif"
	if opts.Formats[0] != "svg" {
		t.Error("Clone() shares Formats")
	}
	if err := c.ValidateAndSetDefaults(); err == nil {
		t.Error("a clone must be validated again")
	}
}
