package quality

import "log/slog"

// Scorer computes viewing quality scores from forecast bundles. It holds
// only immutable parameters and is safe for concurrent use.
type Scorer struct {
	params Params
	logger *slog.Logger
}

// NewScorer creates a Scorer. A nil logger falls back to slog.Default.
func NewScorer(params Params, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{params: params, logger: logger}
}

// Params returns the scorer's parameters.
func (s *Scorer) Params() Params {
	return s.params
}

// Evaluate scores b at target and returns the ranked breakdown.
func (s *Scorer) Evaluate(b Bundle, target int64) (Report, error) {
	e, err := New(s.params.Weights.Clone(), s.params.Functions(), b)
	if err != nil {
		return Report{}, err
	}

	report, err := e.Calculate(target)
	if err != nil {
		return Report{}, err
	}

	s.logger.Debug("quality evaluated",
		"target", target,
		"index", report.Index,
		"score", report.Score,
		"families", e.Matched(),
	)
	return report, nil
}

// Compute returns the rounded quality score of b at target.
func (s *Scorer) Compute(b Bundle, target int64) (float64, error) {
	report, err := s.Evaluate(b, target)
	if err != nil {
		return 0, err
	}
	return report.Score, nil
}
