package pipeline

import (
	"github.com/timegridlabs/timegrid/pkg/schedule"
	"github.com/timegridlabs/timegrid/pkg/timetable"
)

// GenerateLayout computes the day columns and card geometry for the given
// entries. The engine itself never fails; errors here come only from
// option validation and range parsing.
func GenerateLayout(entries []schedule.Entry, opts Options) (timetable.Layout[schedule.Entry], error) {
	if err := opts.ValidateForLayout(); err != nil {
		return timetable.Layout[schedule.Entry]{}, err
	}
	r, err := opts.Range()
	if err != nil {
		return timetable.Layout[schedule.Entry]{}, err
	}

	var engineOpts []timetable.Option[schedule.Entry]
	if opts.Resolver != nil {
		engineOpts = append(engineOpts, timetable.WithResolver(opts.Resolver))
	}

	engine := timetable.New(opts.EngineConfig(), schedule.StartOf, schedule.EndOf, engineOpts...)
	return engine.Compute(entries, r), nil
}
