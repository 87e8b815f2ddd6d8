// Package pkg provides the core libraries for Timegrid timetable layout.
//
// # Overview
//
// Timegrid turns time-ranged schedule entries into pixel-exact timetable
// geometry: one card per entry per visible day, positioned inside an hour
// grid. The pkg directory is organized into five main areas:
//
//  1. [timetable] - The generic layout engine (windows, overlap, geometry)
//  2. [schedule] - Schedule loading (TOML, YAML, ICS with recurrence)
//  3. [render] - Output sinks (JSON geometry, SVG drawings)
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//  5. [cache] - Cache backends and content-hash key derivation
//
// # Architecture
//
// The typical data flow through Timegrid:
//
//	Schedule file (TOML/YAML/ICS)
//	         ↓
//	    [schedule] package (parse, expand recurrences, sort)
//	         ↓
//	    [timetable] package (day windows + overlap + geometry)
//	         ↓
//	    [render/sink] package (JSON, SVG)
//	         ↓
//	    JSON/SVG output
//
// # Quick Start
//
// Load a schedule and compute a layout directly:
//
//	import (
//	    "github.com/timegridlabs/timegrid/pkg/schedule"
//	    "github.com/timegridlabs/timegrid/pkg/timetable"
//	)
//
//	// 1. Load entries
//	entries, _ := schedule.Load("week.toml")
//
//	// 2. Build the engine for the visible hour bracket
//	engine := timetable.New(timetable.Config{
//	    FromHour: 8, ToHour: 18,
//	    HourHeight: 60, MinMinutes: 25,
//	    CardWidth: 220, CardGap: 10,
//	    LinesTopOffset: 20, LinesLeftInset: 48,
//	}, schedule.StartOf, schedule.EndOf)
//
//	// 3. Compute cards for a date range
//	r := timetable.NormalizeRange(from, till, time.Now())
//	layout := engine.Compute(entries, r)
//
// Or run the full cached pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Schedule: "week.toml",
//	    From:     "2026-03-02",
//	    Till:     "2026-03-06",
//	    Formats:  []string{"svg"},
//	})
//
// # Main Packages
//
// [timetable] - The layout engine. Generic over the item type; items are
// opaque beyond their start/end accessors. Expands a visible range into
// per-day windows, assigns overlapping items to each window, resolves
// overlap clusters, and emits absolute pixel geometry per card.
//
// [timetable/overlap] - The overlap resolution contract and the default
// sequential resolver. Custom resolvers can replace the clustering
// strategy without touching geometry.
//
// [schedule] - Entry loading from TOML and YAML files plus ICS calendars,
// including RRULE recurrence expansion into concrete occurrences.
//
// [render/sink] - Deterministic JSON and SVG encoders for layouts.
//
// [pipeline] - The load → layout → render orchestration used by the CLI,
// the HTTP server, and the terminal viewer, with per-stage caching.
//
// [cache] - File, Redis, and null cache backends plus SHA-256 key
// derivation from schedule content and geometry options.
//
// [errors] - Structured errors with stable codes for API responses.
//
// [observability] - Pipeline and cache hook registration for metrics.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/timetable/...  # Specific package
//
// [timetable]: https://pkg.go.dev/github.com/timegridlabs/timegrid/pkg/timetable
// [timetable/overlap]: https://pkg.go.dev/github.com/timegridlabs/timegrid/pkg/timetable/overlap
// [schedule]: https://pkg.go.dev/github.com/timegridlabs/timegrid/pkg/schedule
// [render]: https://pkg.go.dev/github.com/timegridlabs/timegrid/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/timegridlabs/timegrid/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/timegridlabs/timegrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/timegridlabs/timegrid/pkg/cache
// [errors]: https://pkg.go.dev/github.com/timegridlabs/timegrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/timegridlabs/timegrid/pkg/observability
package pkg
