package wordio

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

func TestParseLabels(t *testing.T) {
	labels, err := ParseLabels([]byte(`[
		{"text": "go", "weight": 10},
		{"text": "cloud", "weight": 4.5, "color": "#336699"},
		{"text": "tilted", "weight": 2, "rotate": 0.25, "extra": true}
	]`))
	if err != nil {
		t.Fatalf("ParseLabels() error = %v", err)
	}
	if len(labels) != 3 {
		t.Fatalf("len = %d, want 3", len(labels))
	}
	if labels[0].Text != "go" || labels[0].Weight != 10 || labels[0].Color != nil || labels[0].Rotate != nil {
		t.Errorf("labels[0] = %+v", labels[0])
	}
	if labels[1].Color == nil || *labels[1].Color != "#336699" {
		t.Errorf("labels[1].Color = %v, want #336699", labels[1].Color)
	}
	if labels[2].Rotate == nil || *labels[2].Rotate != 0.25 {
		t.Errorf("labels[2].Rotate = %v, want 0.25", labels[2].Rotate)
	}
}

func TestParseLabelsNullOptionals(t *testing.T) {
	labels, err := ParseLabels([]byte(`[
		{"text": "a", "weight": 1, "color": null},
		{"text": "b", "weight": 2, "rotate": null}
	]`))
	if err != nil {
		t.Fatalf("ParseLabels() error = %v", err)
	}
	if len(labels) != 2 {
		t.Fatalf("len = %d, want 2", len(labels))
	}
	if labels[0].Color != nil || labels[1].Rotate != nil {
		t.Errorf("null optionals = %+v, want absent", labels)
	}
}

func TestGenerateLayoutJSONNullOptionals(t *testing.T) {
	e := cloud.NewEngine(800, 600, "Arial", "normal", 10, 60)

	out := GenerateLayoutJSON(e, []byte(`[{"text":"a","weight":1,"color":null,"rotate":null}]`))
	var words []cloud.Placed
	if err := json.Unmarshal(out, &words); err != nil {
		t.Fatalf("output is not json: %v (%s)", err, out)
	}
	if len(words) != 1 {
		t.Fatalf("len = %d, want 1 (%s)", len(words), out)
	}
	if words[0].Color != nil || words[0].Rotate != 0 {
		t.Errorf("placement = %+v, want no color and zero rotation", words[0])
	}
}

func TestParseLabelsEmpty(t *testing.T) {
	labels, err := ParseLabels([]byte(`[]`))
	if err != nil {
		t.Fatalf("ParseLabels([]) error = %v", err)
	}
	if labels == nil || len(labels) != 0 {
		t.Errorf("ParseLabels([]) = %#v, want empty non-nil slice", labels)
	}
}

func TestParseLabelsRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `not json`},
		{"truncated", `[{"text": "a", "weight": 1}`},
		{"object", `{"text": "a", "weight": 1}`},
		{"missing weight", `[{"text": "a"}]`},
		{"missing text", `[{"weight": 1}]`},
		{"empty text", `[{"text": "", "weight": 1}]`},
		{"numeric text", `[{"text": 5, "weight": 1}]`},
		{"string weight", `[{"text": "a", "weight": "1"}]`},
		{"numeric color", `[{"text": "a", "weight": 1, "color": 3}]`},
		{"string rotate", `[{"text": "a", "weight": 1, "rotate": "x"}]`},
		{"trailing garbage", `[{"text": "a", "weight": 1}] trailing`},
		{"second array", `[{"text": "a", "weight": 1}][]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLabels([]byte(tt.input))
			if err == nil {
				t.Fatal("ParseLabels() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestReadLabelsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.json")
	if err := os.WriteFile(path, []byte(`[{"text":"a","weight":1}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	labels, err := ReadLabelsFile(path)
	if err != nil {
		t.Fatalf("ReadLabelsFile() error = %v", err)
	}
	if len(labels) != 1 || labels[0].Text != "a" {
		t.Errorf("ReadLabelsFile() = %+v", labels)
	}

	_, err = ReadLabelsFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file error = %v, want NOT_FOUND", err)
	}
}

func TestEncodePlaced(t *testing.T) {
	color := "red"
	words := []cloud.Placed{
		{Text: "hello", Weight: 5, X: 400, Y: 300, Rotate: 0, Size: 60},
		{Text: "c", Weight: 1, X: 1.5, Y: 2.5, Rotate: 0.1, Color: &color, Size: 10},
	}

	var buf bytes.Buffer
	if err := EncodePlaced(&buf, words); err != nil {
		t.Fatalf("EncodePlaced() error = %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("len = %d, want 2", len(raw))
	}
	for _, key := range []string{"text", "weight", "x", "y", "rotate", "size"} {
		if _, ok := raw[0][key]; !ok {
			t.Errorf("missing key %q in %v", key, raw[0])
		}
	}
	if _, ok := raw[0]["color"]; ok {
		t.Error("color should be omitted when absent")
	}
	if raw[1]["color"] != "red" {
		t.Errorf("color = %v, want red", raw[1]["color"])
	}
}

func TestMarshalPlacedNil(t *testing.T) {
	data, err := MarshalPlaced(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("MarshalPlaced(nil) = %s, want []", data)
	}
}

func TestGenerateLayoutJSON(t *testing.T) {
	e := cloud.NewEngine(800, 600, "Arial", "normal", 10, 60)

	out := GenerateLayoutJSON(e, []byte(`[{"text":"hello","weight":5}]`))
	var words []cloud.Placed
	if err := json.Unmarshal(out, &words); err != nil {
		t.Fatalf("output is not json: %v (%s)", err, out)
	}
	if len(words) != 1 {
		t.Fatalf("len = %d, want 1", len(words))
	}
	if words[0].X != 400 || words[0].Y != 300 || words[0].Size != 60 {
		t.Errorf("placement = %+v, want center with size 60", words[0])
	}
}

func TestGenerateLayoutJSONMalformed(t *testing.T) {
	e := cloud.NewEngine(800, 600, "Arial", "normal", 10, 60)
	for _, input := range []string{
		``, `{`, `null`, `[{"text":1}]`, `[{"text":"a"}]`,
		`[{"text":"a","weight":1}] trailing`,
		`[{"text":"a","weight":1}][]`,
	} {
		out := GenerateLayoutJSON(e, []byte(input))
		if strings.TrimSpace(string(out)) != "[]" {
			t.Errorf("GenerateLayoutJSON(%q) = %s, want []", input, out)
		}
	}
}

func TestLabelsSchemaIsCopy(t *testing.T) {
	s := LabelsSchema()
	s[0] = 'x'
	if LabelsSchema()[0] == 'x' {
		t.Error("LabelsSchema() exposes the embedded bytes")
	}
}
