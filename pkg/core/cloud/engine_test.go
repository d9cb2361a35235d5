package cloud

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"
)

func TestGenerateLayoutSingleLabel(t *testing.T) {
	e := NewEngine(800, 600, "sans-serif", "normal", 10, 60)

	got := e.GenerateLayout([]Label{{Text: "hello", Weight: 1}})
	if len(got) != 1 {
		t.Fatalf("placed %d labels, want 1", len(got))
	}
	want := Placed{Text: "hello", Weight: 1, X: 400, Y: 300, Rotate: 0, Size: 60}
	if got[0] != want {
		t.Errorf("placed = %+v, want %+v", got[0], want)
	}
}

func TestGenerateLayoutExplicitZeroRotationAtCenter(t *testing.T) {
	e := NewEngine(500, 300, "", "", 10, 40)
	got := e.GenerateLayout([]Label{{Text: "solo", Weight: 7, Rotate: ptr(0.0)}})
	if len(got) != 1 || got[0].X != 250 || got[0].Y != 150 || got[0].Rotate != 0 {
		t.Errorf("placed = %+v, want centered and unrotated", got)
	}
}

func TestGenerateLayoutSizesFromWeights(t *testing.T) {
	e := NewEngine(800, 600, "", "", 10, 50)
	got := e.GenerateLayout([]Label{
		{Text: "small", Weight: 1},
		{Text: "big", Weight: 10},
	})
	if len(got) != 2 {
		t.Fatalf("placed %d labels, want 2", len(got))
	}
	sizes := map[string]float64{}
	for _, p := range got {
		sizes[p.Text] = p.Size
	}
	if sizes["big"] != 50 {
		t.Errorf("weight-10 size = %v, want 50", sizes["big"])
	}
	if sizes["small"] != 10 {
		t.Errorf("weight-1 size = %v, want 10", sizes["small"])
	}
}

func TestGenerateLayoutUniformWeights(t *testing.T) {
	e := NewEngine(1000, 800, "", "", 8, 24)
	labels := make([]Label, 12)
	for i := range labels {
		labels[i] = Label{Text: fmt.Sprintf("w%d", i), Weight: 3}
	}
	for _, p := range e.GenerateLayout(labels) {
		if p.Size != 24 {
			t.Errorf("%s size = %v, want max size 24", p.Text, p.Size)
		}
	}
}

func TestGenerateLayoutEmpty(t *testing.T) {
	e := NewEngine(800, 600, "", "", 10, 60)
	got := e.GenerateLayout(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("GenerateLayout(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestGenerateLayoutInvariants(t *testing.T) {
	for _, spiral := range []string{SpiralArchimedean, SpiralRectangular} {
		t.Run(spiral, func(t *testing.T) {
			const w, h = 600, 400
			e := NewEngine(w, h, "", "", 8, 40, WithSeed(7))
			e.SetSpiral(spiral)
			e.SetRotationRange(math.Pi / 4)

			rng := rand.New(rand.NewPCG(1, 2))
			labels := make([]Label, 60)
			for i := range labels {
				labels[i] = Label{Text: fmt.Sprintf("word%d", i), Weight: rng.Float64() * 100}
			}

			placed := e.GenerateLayout(labels)
			if len(placed) == 0 {
				t.Fatal("nothing placed")
			}

			boxes := make([]Rect, len(placed))
			for i, p := range placed {
				pw, ph := Estimate(p.Text, p.Size, 0)
				boxes[i] = RotatedBounds(p.X, p.Y, pw, ph, p.Rotate)
				if !boxes[i].Within(w, h) {
					t.Errorf("%s out of canvas: %+v", p.Text, boxes[i])
				}
				if math.Abs(p.Rotate) > math.Pi/4 {
					t.Errorf("%s rotation %v outside range", p.Text, p.Rotate)
				}
			}
			for i := range boxes {
				for j := i + 1; j < len(boxes); j++ {
					if Overlaps(boxes[i], boxes[j]) {
						t.Errorf("%s overlaps %s", placed[i].Text, placed[j].Text)
					}
				}
			}

			st := e.Stats()
			if st.Input != len(labels) || st.Placed+st.Omitted != st.Input || st.Placed != len(placed) {
				t.Errorf("inconsistent stats %+v for %d placed", st, len(placed))
			}
		})
	}
}

func TestGenerateLayoutPreservesInputOrder(t *testing.T) {
	e := NewEngine(800, 600, "", "", 10, 30)
	labels := []Label{
		{Text: "c", Weight: 1},
		{Text: "a", Weight: 9},
		{Text: "b", Weight: 5},
	}
	got := e.GenerateLayout(labels)
	if len(got) != 3 {
		t.Fatalf("placed %d labels, want 3", len(got))
	}
	for i, p := range got {
		if p.Text != labels[i].Text {
			t.Errorf("position %d = %q, want %q", i, p.Text, labels[i].Text)
		}
	}
}

func TestGenerateLayoutWeightOrder(t *testing.T) {
	e := NewEngine(800, 600, "", "", 10, 30, WithOrder(OrderWeightDesc))
	got := e.GenerateLayout([]Label{
		{Text: "c", Weight: 1},
		{Text: "a", Weight: 9},
		{Text: "b", Weight: 5},
		{Text: "d", Weight: 5},
	})
	want := []string{"a", "b", "d", "c"}
	if len(got) != len(want) {
		t.Fatalf("placed %d labels, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.Text != want[i] {
			t.Errorf("position %d = %q, want %q", i, p.Text, want[i])
		}
	}
	if got[0].X != 400 || got[0].Y != 300 {
		t.Errorf("heaviest label at (%v, %v), want canvas center", got[0].X, got[0].Y)
	}
}

func TestGenerateLayoutOmitsLabelsThatDoNotFit(t *testing.T) {
	e := NewEngine(50, 50, "", "", 10, 40)
	got := e.GenerateLayout([]Label{
		{Text: "far-too-long-for-this-canvas", Weight: 10},
		{Text: "ok", Weight: 1},
	})
	if len(got) != 1 || got[0].Text != "ok" {
		t.Errorf("placed = %+v, want only \"ok\"", got)
	}
	if st := e.Stats(); st.Omitted != 1 || st.Attempts < DefaultMaxAttempts {
		t.Errorf("stats = %+v, want one omission after a full search", st)
	}
}

func TestGenerateLayoutReportsProgress(t *testing.T) {
	var seen []Stats
	e := NewEngine(50, 50, "", "", 10, 40, WithProgress(func(s Stats) { seen = append(seen, s) }))
	got := e.GenerateLayout([]Label{
		{Text: "far-too-long-for-this-canvas", Weight: 10},
		{Text: "ok", Weight: 1},
	})
	if len(got) != 1 {
		t.Fatalf("placed %d labels, want 1", len(got))
	}
	if len(seen) != 2 {
		t.Fatalf("progress called %d times, want once per label", len(seen))
	}
	if seen[0].Placed != 0 || seen[0].Omitted != 1 {
		t.Errorf("progress[0] = %+v, want one omission", seen[0])
	}
	if seen[1].Placed != 1 || seen[1].Omitted != 1 || seen[1].Input != 2 {
		t.Errorf("progress[1] = %+v, want 1 placed of 2", seen[1])
	}
}

func TestGenerateLayoutMaxAttempts(t *testing.T) {
	e := NewEngine(800, 600, "", "", 20, 20, WithMaxAttempts(1))
	got := e.GenerateLayout([]Label{
		{Text: "first", Weight: 1},
		{Text: "second", Weight: 1},
	})
	if len(got) != 1 || got[0].Text != "first" {
		t.Errorf("placed = %+v, want only the first label at the anchor", got)
	}
}

func TestGenerateLayoutRotation(t *testing.T) {
	e := NewEngine(800, 600, "", "", 10, 30)

	got := e.GenerateLayout([]Label{{Text: "fixed", Weight: 1, Rotate: ptr(0.5)}})
	if len(got) != 1 || got[0].Rotate != 0.5 {
		t.Errorf("explicit rotation not honored: %+v", got)
	}

	got = e.GenerateLayout([]Label{{Text: "flat", Weight: 1}})
	if got[0].Rotate != 0 {
		t.Errorf("rotation = %v with zero range, want 0", got[0].Rotate)
	}

	e.SetRotationRange(1)
	got = e.GenerateLayout([]Label{{Text: "tilted", Weight: 1}})
	if got[0].Rotate == 0 || math.Abs(got[0].Rotate) > 1 {
		t.Errorf("rotation = %v, want non-zero within [-1, 1]", got[0].Rotate)
	}
}

func TestGenerateLayoutReproducible(t *testing.T) {
	labels := []Label{
		{Text: "alpha", Weight: 3}, {Text: "beta", Weight: 8},
		{Text: "gamma", Weight: 1}, {Text: "delta", Weight: 5},
	}
	run := func() []Placed {
		e := NewEngine(400, 300, "", "", 10, 40, WithSeed(99))
		e.SetRotationRange(math.Pi / 2)
		return e.GenerateLayout(labels)
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs placed %d and %d labels", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("label %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateLayoutColorPassThrough(t *testing.T) {
	e := NewEngine(800, 600, "", "", 10, 30)
	color := "#ff0000"
	got := e.GenerateLayout([]Label{{Text: "red", Weight: 1, Color: &color}})
	if len(got) != 1 || got[0].Color == nil || *got[0].Color != color {
		t.Errorf("color not passed through: %+v", got)
	}
}

func TestGenerateLayoutUsesMeasurer(t *testing.T) {
	var calls int
	m := MeasurerFunc(func(text string, f Font) (float64, float64) {
		calls++
		if f.Family != "Go" || f.Weight != "bold" {
			t.Errorf("measurer got font %+v", f)
		}
		return 1000, f.Size // wider than the canvas
	})
	e := NewEngine(800, 600, "Go", "bold", 10, 30, WithMeasurer(m))
	if got := e.GenerateLayout([]Label{{Text: "x", Weight: 1}}); len(got) != 0 {
		t.Errorf("placed %+v, want nothing with an oversized measurement", got)
	}
	if calls != 1 {
		t.Errorf("measurer called %d times, want 1", calls)
	}
}

func TestGenerateLayoutMeasurerFallback(t *testing.T) {
	m := MeasurerFunc(func(string, Font) (float64, float64) { return 0, 0 })
	e := NewEngine(800, 600, "", "", 10, 30, WithMeasurer(m))
	got := e.GenerateLayout([]Label{{Text: "hi", Weight: 1}})
	if len(got) != 1 {
		t.Fatalf("placed %d labels, want 1", len(got))
	}
	if e.Grid().Occupied() == 0 {
		t.Error("fallback estimate should still occupy cells")
	}
}

func TestResetGrid(t *testing.T) {
	e := NewEngine(200, 200, "", "", 10, 30)
	e.GenerateLayout([]Label{{Text: "fill", Weight: 1}})
	if e.Grid().Occupied() == 0 {
		t.Fatal("expected occupied cells after layout")
	}
	if !e.ResetGrid() {
		t.Error("ResetGrid() = false")
	}
	if e.Grid().Occupied() != 0 {
		t.Error("grid not empty after ResetGrid")
	}
}

func TestGenerateLayoutRebuildsGridEachRun(t *testing.T) {
	e := NewEngine(800, 600, "", "", 10, 30)
	labels := []Label{{Text: "same", Weight: 1}}
	a := e.GenerateLayout(labels)
	b := e.GenerateLayout(labels)
	if a[0].X != b[0].X || a[0].Y != b[0].Y {
		t.Errorf("second run moved label: %+v vs %+v", a[0], b[0])
	}
}

func TestSetSpiralFallback(t *testing.T) {
	e := NewEngine(800, 600, "", "", 10, 30)
	e.SetSpiral("rectangular")
	if e.Config().Spiral != Rectangular {
		t.Errorf("Spiral = %v, want rectangular", e.Config().Spiral)
	}
	e.SetSpiral("unknown")
	if e.Config().Spiral != Archimedean {
		t.Errorf("Spiral = %v, want archimedean fallback", e.Config().Spiral)
	}
}

func TestWithCellSize(t *testing.T) {
	e := NewEngine(800, 600, "", "", 10, 30, WithCellSize(10))
	if g := e.Grid(); g.CellSize() != 10 || g.Cols() != 81 || g.Rows() != 61 {
		t.Errorf("grid = %dx%d cell %d, want 81x61 cell 10", g.Cols(), g.Rows(), g.CellSize())
	}
}
