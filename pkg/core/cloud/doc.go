// Package cloud computes word cloud layouts.
//
// Given weighted labels and a fixed canvas, [Engine.GenerateLayout] assigns
// each label a font size, a center position and a rotation such that no two
// placed labels' rotated bounding boxes overlap and all of them stay inside
// the canvas.
//
// # Algorithm
//
// The canvas is discretized into an occupancy [Grid] of square cells
// (4 units by default). For every label, in order:
//
//  1. The weight is mapped linearly onto [MinSize, MaxSize] by [MapSize].
//  2. A [Measurer] reports the unrotated text extent ([EstimateMeasurer]
//     unless a real one is supplied with [WithMeasurer]).
//  3. The rotation is the label's own override, a uniform draw from
//     [-RotationRange, RotationRange], or zero.
//  4. A fresh [Spiral] walks outward from the canvas center. Each candidate
//     is checked with [Collides]; the first free one is committed to the
//     grid with [Commit].
//  5. Labels that find no free spot within the attempt budget (1000 by
//     default) are dropped from the result.
//
// Only axis-aligned boxes around the rotated rectangles are tested, never
// glyph outlines.
//
// # Reproducibility
//
// The spiral is deterministic. Random rotations come from an injected
// math/rand/v2 source seeded with [DefaultSeed] unless [WithRand] or
// [WithSeed] is given, so identical inputs produce identical layouts.
//
// # Usage
//
//	e := cloud.NewEngine(800, 600, "Go", "normal", 10, 60)
//	e.SetRotationRange(math.Pi / 6)
//	e.SetSpiral("rectangular")
//	placed := e.GenerateLayout([]cloud.Label{
//	    {Text: "hello", Weight: 10},
//	    {Text: "world", Weight: 3},
//	})
package cloud
