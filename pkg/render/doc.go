// Package render groups the output stages of the layout pipeline.
//
// # Overview
//
// Rendering consumes a computed timetable layout and produces serialized
// artifacts. The actual encoders live in the [sink] subpackage:
//
//   - JSON: the full card geometry, one object per day column
//   - SVG: a self-contained vector drawing with hour grid and cards
//
// Both sinks walk the layout in deterministic day order, so identical
// layouts always produce byte-identical artifacts. That property is what
// makes artifact caching by content hash safe.
//
//	data, err := sink.RenderJSON(layout)
//	svg, err := sink.RenderSVG(layout, cfg, sink.WithTimeWidth(48))
//
// [sink]: github.com/timegridlabs/timegrid/pkg/render/sink
package render
