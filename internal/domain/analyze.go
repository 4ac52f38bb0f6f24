package domain

import "time"

// DiagnosticResult is the complete output of one sounding analysis: the
// numeric ingredients, the composite parameters, and the classifier verdict.
type DiagnosticResult struct {
	ValidTime time.Time `json:"valid_time"`
	Source    string    `json:"source,omitempty"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`

	Verdict

	Ingredients Ingredients  `json:"ingredients"`
	Composites  CompositeSet `json:"composites"`

	ComputedAt time.Time `json:"computed_at"`
}

// Analyze runs the full diagnostic chain on one sounding: structural
// validation, parcel thermodynamics, storm-relative kinematics, composite
// parameters, boundary detection, and classification. The grid may be nil
// when no surrounding θe field is available; boundary detection is then
// skipped rather than reported negative.
//
// Analyze mutates the profile in place (height filling, standard-level
// insertion) and is otherwise pure: no I/O, no goroutines, deterministic for
// identical inputs.
func Analyze(prof *Profile, grid *ThetaEGrid, cfg AnalysisConfig) (DiagnosticResult, error) {
	if err := prof.Validate(); err != nil {
		return DiagnosticResult{}, err
	}
	prof.EnsureHeights()
	interpolated := prof.NormalizeStandardLevels()

	ing := Ingredients{
		ML:                 ComputeCAPECIN(prof, MixedLayerParcel(prof, cfg), cfg),
		MU:                 ComputeCAPECIN(prof, MostUnstableParcel(prof, cfg), cfg),
		InterpolatedLevels: interpolated,
	}

	// Lapse rates over the standard layers, anchored on interpolated heights
	// so they exist even when 700/500 hPa are synthesized.
	h700 := prof.HeightAtPressure(700.0)
	h500 := prof.HeightAtPressure(500.0)
	ing.LowLapseRate = LapseRate(prof, prof.Surface().HeightMAGL, h700)
	ing.MidLapseRate = LapseRate(prof, h700, h500)

	sfc := prof.Surface()
	ing.PrecipitableWaterMM = PrecipitableWater(prof)
	ing.SurfaceRH = relativeHumidity(sfc.TempC, sfc.DewpointC)
	ing.Temp500C = prof.TempAtPressure(500.0)
	ing.FreezingLevelM = FreezingLevel(prof)

	mu := MostUnstableParcel(prof, cfg)
	ing.MUMixingRatio = mixingRatioFromDewpoint(mu.DewpointC, mu.PressureHPa) * 1000.0

	ing.Shear01 = BulkShear(prof, 0.0, 1000.0)
	ing.Shear06 = BulkShear(prof, 0.0, 6000.0)
	ing.Shear36 = BulkShear(prof, 3000.0, 6000.0)
	ing.StormMotion = BunkersMotion(prof, cfg)
	ing.SRH01 = ComputeSRH(prof, 0.0, 1000.0, ing.StormMotion.RightMover)
	ing.SRH03 = ComputeSRH(prof, 0.0, 3000.0, ing.StormMotion.RightMover)
	ing.LowResolutionWinds = ing.SRH01.LowResolution || ing.SRH03.LowResolution

	// Effective SRH proxy: the 0–3 km value counts only when the mixed-layer
	// parcel is both buoyant and uncapped enough to realize it.
	if ing.ML.CAPE >= cfg.MinCAPE && ing.ML.CIN >= -250.0 {
		ing.EffectiveSRH = ing.SRH03.Value
	}

	pointThetaE := ThetaE(sfc.TempC, sfc.DewpointC, sfc.PressureHPa)
	ing.Boundary = DetectBoundary(grid, prof.Lat, prof.Lon, pointThetaE, cfg)

	comps := ComputeComposites(ing, cfg)
	verdict := Classify(ing, comps, cfg)

	return DiagnosticResult{
		ValidTime:   prof.ValidTime,
		Source:      prof.Source,
		Lat:         prof.Lat,
		Lon:         prof.Lon,
		Verdict:     verdict,
		Ingredients: ing,
		Composites:  comps,
		ComputedAt:  clock.Now().UTC(),
	}, nil
}
