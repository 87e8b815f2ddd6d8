// Package timetable implements the core layout engine for multi-day
// timetable views.
//
// The engine is a pure transformation: a list of time-ranged items plus a
// visible date/hour window goes in, a list of pixel-geometry card
// descriptors comes out. It performs no I/O, keeps no state between calls,
// and produces bit-identical output for identical input.
//
// # Pipeline
//
// Computation flows strictly one way:
//
//	NormalizeRange → BuildWindows → AssignItems → overlap.Resolver → geometry → canvas width
//
// NormalizeRange resolves optional date inputs into a concrete visible
// range. BuildWindows expands that range into one clipped window per
// calendar day. AssignItems selects the items overlapping each window.
// The overlap resolver (an external contract, see the overlap subpackage)
// annotates each day's items with cluster/slot metadata and stable keys.
// The geometry step then positions every prepared event inside its day
// window, clamping to the window bounds and enforcing a minimum rendered
// duration.
//
// # Usage
//
//	eng := timetable.New(cfg,
//	    func(e schedule.Entry) time.Time { return e.Start },
//	    func(e schedule.Entry) time.Time { return e.End })
//	layout := eng.Compute(entries, timetable.NormalizeRange(from, till, time.Now()))
//	layout.ForEachCard(func(c timetable.Card[schedule.Entry]) {
//	    // render one card
//	})
//
// The engine never validates its configuration and never returns an error:
// a nil item slice yields an empty layout, an absent range resolves to
// today, and items with zero-value instants are the caller's
// responsibility (their geometry is undefined).
//
// Callers that recompute frequently should memoize results keyed on the
// full input tuple; the pipeline package does exactly that. Caching is
// deliberately not built into the engine.
package timetable
