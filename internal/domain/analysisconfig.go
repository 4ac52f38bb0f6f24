package domain

// AnalysisConfig carries every tunable the analysis uses. Passing it
// explicitly (instead of package-level constants) lets tests run with
// alternate thresholds and keeps the numerics deterministic.
type AnalysisConfig struct {
	// PressureStepHPa is the integration step for moist parcel ascent.
	// 2.5 hPa keeps CAPE within 1% of the half-step value.
	PressureStepHPa float64 `yaml:"pressure_step_hpa"`

	// MixedLayerDepthHPa is the depth over which the mixed-layer parcel
	// properties are averaged (measured down from the surface pressure).
	MixedLayerDepthHPa float64 `yaml:"mixed_layer_depth_hpa"`

	// MostUnstableDepthHPa bounds the search for the maximum-θe parcel.
	MostUnstableDepthHPa float64 `yaml:"most_unstable_depth_hpa"`

	// BunkersDeviationMS is the empirical deviation magnitude added
	// perpendicular to the deep-layer shear vector (Bunkers et al. 2000).
	BunkersDeviationMS float64 `yaml:"bunkers_deviation_ms"`

	// BunkersDepthM is the depth of the mean-wind and shear layer used for
	// storm motion.
	BunkersDepthM float64 `yaml:"bunkers_depth_m"`

	// MinCAPE is the instability floor below which composite parameters are
	// defined as zero rather than computed.
	MinCAPE float64 `yaml:"min_cape"`

	// BoundaryGradientThreshold is the θe gradient (K per 100 km) above
	// which a mesoscale boundary is flagged.
	BoundaryGradientThreshold float64 `yaml:"boundary_gradient_threshold"`

	// BoundaryThetaEContrast is the margin (K) between the point θe and the
	// grid mean used to classify warm-sector vs cold/dry-side placement.
	BoundaryThetaEContrast float64 `yaml:"boundary_theta_e_contrast"`
}

// DefaultAnalysisConfig returns the published operational defaults.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		PressureStepHPa:           2.5,
		MixedLayerDepthHPa:        100.0,
		MostUnstableDepthHPa:      300.0,
		BunkersDeviationMS:        7.5,
		BunkersDepthM:             6000.0,
		MinCAPE:                   100.0,
		BoundaryGradientThreshold: 3.0,
		BoundaryThetaEContrast:    2.0,
	}
}
