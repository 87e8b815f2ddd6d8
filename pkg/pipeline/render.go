package pipeline

import (
	"fmt"

	"github.com/timegridlabs/timegrid/pkg/errors"
	"github.com/timegridlabs/timegrid/pkg/render/sink"
	"github.com/timegridlabs/timegrid/pkg/schedule"
	"github.com/timegridlabs/timegrid/pkg/timetable"
)

// RenderFromLayout generates output artifacts in the requested formats.
func RenderFromLayout(l timetable.Layout[schedule.Entry], opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		case FormatSVG:
			data, err = sink.RenderSVG(l, opts.EngineConfig(), svgOpts...)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options from the pipeline options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption

	if opts.TimeWidth > 0 {
		svgOpts = append(svgOpts, sink.WithTimeWidth(opts.TimeWidth))
	}
	if opts.HideNowLine {
		svgOpts = append(svgOpts, sink.WithHiddenNowLine())
	}
	if !opts.Now.IsZero() {
		svgOpts = append(svgOpts, sink.WithNow(opts.Now))
	}

	return svgOpts
}
