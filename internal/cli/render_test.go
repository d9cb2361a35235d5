package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , Json ", []string{"svg", "json"}},
		{"pdf only", "pdf", []string{"pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"from input", "", "words.json", "words"},
		{"from nested input", "", "data/words.json", "data/words"},
		{"stdin input", "", "-", "wordcloud"},
		{"output with format ext", "out/cloud.svg", "words.json", "out/cloud"},
		{"output without ext", "out/cloud", "words.json", "out/cloud"},
		{"output with other ext", "cloud.v2", "words.json", "cloud.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		format string
		count  int
		want   string
	}{
		{"single format uses output", "cloud.png", "png", 1, "cloud.png"},
		{"single format derives from input", "", "svg", 1, "words.svg"},
		{"multiple formats share base", "cloud.svg", "pdf", 2, "cloud.pdf"},
		{"multiple formats from input", "", "png", 3, "words.png"},
		{"json never overwrites input", "", "json", 2, "words.layout.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, "words.json", tt.format, tt.count); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")},
		formats:   []string{"svg", "json"},
		input:     filepath.Join(dir, "words.json"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	want := []string{filepath.Join(dir, "words.svg"), filepath.Join(dir, "words.layout.json")}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, p, want[i])
		}
	}
	data, err := os.ReadFile(want[0])
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("svg file = %q, %v", data, err)
	}
}

func TestWriteArtifactsMissingFormat(t *testing.T) {
	_, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{},
		formats:   []string{"png"},
		input:     filepath.Join(t.TempDir(), "words.json"),
	})
	if err == nil {
		t.Error("writeArtifacts() expected error for missing artifact")
	}
}

func TestOptionFlagsApply(t *testing.T) {
	f := &optionFlags{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.addLayoutFlags(fs)
	f.addRenderFlags(fs)

	base := pipeline.Options{
		Width:   1024,
		Height:  768,
		Spiral:  "rectangular",
		Palette: []string{"#111111"},
	}
	if err := fs.Parse([]string{"--width", "300", "--seed", "7", "-f", "png,pdf", "--palette", "#ff0000,#00ff00"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	got := f.apply(fs, base)

	if got.Width != 300 {
		t.Errorf("Width = %d, want 300 (flag set)", got.Width)
	}
	if got.Height != 768 {
		t.Errorf("Height = %d, want 768 (from base)", got.Height)
	}
	if got.Spiral != "rectangular" {
		t.Errorf("Spiral = %q, want base value", got.Spiral)
	}
	if got.Seed != 7 {
		t.Errorf("Seed = %d, want 7", got.Seed)
	}
	if len(got.Formats) != 2 || got.Formats[0] != "png" || got.Formats[1] != "pdf" {
		t.Errorf("Formats = %v, want [png pdf]", got.Formats)
	}
	if len(got.Palette) != 2 {
		t.Errorf("Palette = %v, want two colors", got.Palette)
	}
	if base.Palette[0] != "#111111" {
		t.Error("apply() must not modify base")
	}
}

func TestOptionFlagsApplyNothingSet(t *testing.T) {
	f := &optionFlags{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.addLayoutFlags(fs)

	base := pipeline.Options{Width: 1024, MinSize: 4}
	got := f.apply(fs, base)
	if got.Width != 1024 || got.MinSize != 4 || got.Seed != 0 {
		t.Errorf("apply() with no flags = %+v, want base unchanged", got)
	}
}
