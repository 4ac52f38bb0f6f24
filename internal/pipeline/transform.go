package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/convective-diagnostics/internal/domain"
	"github.com/couchcryptid/convective-diagnostics/internal/observability"
)

// Analyzer is the pipeline's Transformer: it decodes a sounding request,
// runs the diagnostic analysis, and serializes the result for the sink
// topic.
type Analyzer struct {
	cfg     domain.AnalysisConfig
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAnalyzer creates the analysis transformer.
func NewAnalyzer(cfg domain.AnalysisConfig, logger *slog.Logger, metrics *observability.Metrics) *Analyzer {
	return &Analyzer{cfg: cfg, logger: logger, metrics: metrics}
}

// Transform analyzes one raw sounding message. Undecodable payloads and
// structurally invalid profiles return errors; the pipeline skips and
// commits them.
func (a *Analyzer) Transform(_ context.Context, raw domain.RawSounding) (domain.OutputEvent, error) {
	req, err := domain.ParseSoundingRequest(raw.Value)
	if err != nil {
		a.metrics.BadMessages.Inc()
		return domain.OutputEvent{}, err
	}

	start := time.Now()
	res, err := domain.Analyze(&req.Profile, req.Grid, a.cfg)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProfile) {
			a.metrics.AnalysisErrors.WithLabelValues("invalid_profile").Inc()
		} else {
			a.metrics.AnalysisErrors.WithLabelValues("internal").Inc()
		}
		return domain.OutputEvent{}, fmt.Errorf("analyzing sounding: %w", err)
	}

	a.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	a.metrics.Analyses.WithLabelValues(res.Mode.String(), res.Tier.String()).Inc()
	if res.Ingredients.Boundary.Present {
		a.metrics.BoundaryDetections.Inc()
	}
	if res.Ingredients.ML.InsufficientExtent || res.Ingredients.MU.InsufficientExtent {
		a.metrics.DegenerateProfiles.Inc()
	}

	a.logger.Debug("sounding analyzed",
		"source", res.Source,
		"valid_time", res.ValidTime,
		"mode", res.Mode.String(),
		"tier", res.Tier.String(),
		"mlcape", res.Ingredients.ML.CAPE,
		"shear_0_6km", res.Ingredients.Shear06.Magnitude,
	)

	return domain.SerializeResult(res)
}
