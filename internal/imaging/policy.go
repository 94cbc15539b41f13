package imaging

import (
	"fmt"
	"log/slog"
)

// Pass is one compression step.
type Pass struct {
	MaxWidth  int
	MaxHeight int
	Quality   float64
}

// Policy is a fixed, bounded escalation. It is not a loop to convergence:
// each pass runs at most once and the last result is accepted either way.
type Policy struct {
	Limit  int
	Passes []Pass
}

// InlinePolicy fits images under the 800 000 byte per-field ceiling.
var InlinePolicy = Policy{
	Limit: 800_000,
	Passes: []Pass{
		{MaxWidth: 400, MaxHeight: 560, Quality: 0.7},
		{MaxWidth: 300, MaxHeight: 420, Quality: 0.5},
	},
}

type Result struct {
	Data   []byte
	Fits   bool
	Passes int
}

// Fit applies the policy passes until the payload is under the limit. Every
// pass starts from the original data. A result still over the limit after the
// last pass is returned with Fits=false; only undecodable input is an error.
func (p Policy) Fit(data []byte, logger *slog.Logger) (Result, error) {
	if len(data) <= p.Limit {
		return Result{Data: data, Fits: true}, nil
	}

	current := data
	for i, pass := range p.Passes {
		compressed, err := Compress(data, pass.MaxWidth, pass.MaxHeight, pass.Quality)
		if err != nil {
			return Result{}, fmt.Errorf("compression pass %d: %w", i+1, err)
		}
		current = compressed
		if logger != nil {
			logger.Debug("image compression pass",
				"pass", i+1,
				"bytes_before", len(data),
				"bytes_after", len(current),
				"limit", p.Limit,
			)
		}
		if len(current) <= p.Limit {
			return Result{Data: current, Fits: true, Passes: i + 1}, nil
		}
	}

	if logger != nil {
		logger.Warn("image still over size limit after compression",
			"bytes", len(current),
			"limit", p.Limit,
			"passes", len(p.Passes),
		)
	}
	return Result{Data: current, Fits: false, Passes: len(p.Passes)}, nil
}
