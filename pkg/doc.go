// Package pkg provides the core libraries for wordcloud layout and rendering.
//
// # Overview
//
// Wordcloud places weighted words on a fixed canvas so that no two words
// overlap. Heavier words get larger fonts and are placed first near the
// center; later words walk outward along a spiral until they find free
// space. Words that never fit are omitted.
//
// # Architecture
//
// The typical data flow:
//
//	Word list (JSON)
//	       ↓
//	  [wordio] package (decode and validate labels)
//	       ↓
//	  [core/cloud] package (sizing, spiral search, collision grid)
//	       ↓
//	  [render] package (SVG, PNG, PDF, JSON, terminal)
//
// [pipeline] orchestrates these steps with caching ([cache]) and layout
// history ([store]). [api] exposes the pipeline over HTTP and [config]
// loads settings from TOML or YAML files and the environment.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/wordcloud/pkg/core/cloud"
//	    "github.com/matzehuels/wordcloud/pkg/render"
//	)
//
//	cfg := cloud.Config{Width: 800, Height: 600, MinSize: 10, MaxSize: 60}
//	e := cloud.New(cfg, cloud.WithSeed(7))
//	words := e.GenerateLayout([]cloud.Label{{Text: "go", Weight: 10}})
//	svg := render.RenderSVG(render.NewLayout(cfg, words))
//
// # Main Packages
//
//   - [core/cloud]: The placement engine
//   - [fonts]: Font library and text measurers
//   - [render]: Output formats
//   - [wordio]: Label decoding, schema validation and placement encoding
//   - [pipeline]: Layout and render orchestration with caching
//   - [cache]: File, Redis and null cache backends
//   - [store]: SQLite, PostgreSQL and MongoDB layout history
//   - [api]: HTTP API
//   - [config]: Configuration files and environment overrides
//   - [observability]: Hooks for logging and metrics
//   - [errors]: Coded errors and input validation
package pkg
