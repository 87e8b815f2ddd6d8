// Package sink renders computed timetable layouts into output artifacts.
//
// Two sinks are provided:
//   - RenderJSON: the primary data interchange format (cards + canvas)
//   - RenderSVG: a standalone vector view of the timetable grid
//
// Both walk the layout through the engine's card iteration order (day
// order, then per-event index), so output is deterministic for identical
// layouts.
package sink
