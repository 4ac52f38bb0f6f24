package domain

import "math"

// Published severity thresholds for the composite parameters.
const (
	SCPFavorable      = 1.0
	SCPSignificant    = 4.0
	STPSignificant    = 1.0
	EHISignificant    = 1.0
	EHISigTornado     = 2.5
	SHIPSignificant   = 1.0
	VGPSignificant    = 0.2
	CravenSignificant = 20000.0
)

// Ingredients is the full numeric input to the composite engine and the
// classifier: instability, kinematics, moisture, and boundary context for
// one profile at one valid time.
type Ingredients struct {
	// Parcel thermodynamics.
	ML DerivedThermo `json:"mixed_layer"`
	MU DerivedThermo `json:"most_unstable"`

	// Lapse rates, °C/km.
	MidLapseRate float64 `json:"mid_lapse_rate"` // 700–500 hPa, hail indicator
	LowLapseRate float64 `json:"low_lapse_rate"` // surface–700 hPa

	// Moisture.
	PrecipitableWaterMM float64 `json:"precipitable_water_mm"`
	SurfaceRH           float64 `json:"surface_rh"`
	MUMixingRatio       float64 `json:"mu_mixing_ratio"` // g/kg
	Temp500C            float64 `json:"temp_500_c"`
	FreezingLevelM      float64 `json:"freezing_level_m"`

	// Kinematics.
	Shear01      WindLayer     `json:"shear_0_1km"`
	Shear06      WindLayer     `json:"shear_0_6km"`
	Shear36      WindLayer     `json:"shear_3_6km"`
	SRH01        HelicityLayer `json:"srh_0_1km"`
	SRH03        HelicityLayer `json:"srh_0_3km"`
	EffectiveSRH float64       `json:"effective_srh"`
	StormMotion  StormMotion   `json:"storm_motion"`

	// Mesoscale context.
	Boundary BoundarySignal `json:"boundary"`

	// Confidence flags.
	InterpolatedLevels []float64 `json:"interpolated_levels,omitempty"` // hPa
	LowResolutionWinds bool      `json:"low_resolution_winds,omitempty"`
}

// CompositeSet holds the severe-weather composite parameters. Each is
// defined as zero (never an error) when instability is absent.
type CompositeSet struct {
	SCP          float64 `json:"scp"`
	STP          float64 `json:"stp"`
	EHI01        float64 `json:"ehi_0_1km"`
	EHI03        float64 `json:"ehi_0_3km"`
	SHIP         float64 `json:"ship"`
	VGP          float64 `json:"vgp"`
	CravenBrooks float64 `json:"craven_brooks"`
}

// ComputeComposites combines thermodynamic and kinematic ingredients into
// the published composite parameters. Every intermediate factor that can go
// negative (LCL term, CIN term, lapse term) is clamped to zero before
// multiplication, so a high-shear/no-CAPE setup can never produce a nonzero
// composite ("strict gating").
func ComputeComposites(ing Ingredients, cfg AnalysisConfig) CompositeSet {
	return CompositeSet{
		SCP: supercellComposite(ing.MU.CAPE, ing.EffectiveSRH, ing.Shear06.Magnitude, cfg),
		STP: significantTornado(ing.ML.CAPE, ing.ML.LCLHeightM, ing.SRH01.Value,
			ing.Shear06.Magnitude, ing.ML.CIN, cfg),
		EHI01: energyHelicity(ing.ML.CAPE, ing.SRH01.Value, cfg),
		EHI03: energyHelicity(ing.ML.CAPE, ing.SRH03.Value, cfg),
		SHIP: significantHail(ing.MU.CAPE, ing.MUMixingRatio, ing.MidLapseRate,
			ing.Temp500C, ing.Shear06.Magnitude, ing.FreezingLevelM),
		VGP:          vorticityGeneration(ing.ML.CAPE, ing.Shear06.Magnitude, cfg),
		CravenBrooks: cravenBrooks(ing.ML.CAPE, ing.Shear06.Magnitude),
	}
}

// supercellComposite (Thompson et al. 2003):
// SCP = (MUCAPE/1000) · (SRH/50) · (BWD/20), with the bulk-wind-difference
// term zero below 10 m/s and capped at 1 above 20 m/s.
func supercellComposite(mucape, srh, shear06 float64, cfg AnalysisConfig) float64 {
	if mucape < cfg.MinCAPE || srh <= 0 {
		return 0.0
	}
	shearTerm := shearFactor(shear06, 10.0, 20.0, 1.0)
	return (mucape / 1000.0) * (srh / 50.0) * shearTerm
}

// significantTornado (Thompson et al. 2004, fixed layer):
// STP = (MLCAPE/1500) · LCLterm · (SRH01/150) · BWDterm · CINterm.
// LCL term is 1 below 1000 m and decays linearly to 0 at 2000 m; CIN term is
// 1 above −50 J/kg and decays to 0 at −200 J/kg; the shear term is zero
// below 12.5 m/s and capped at 1.5 above 30 m/s.
func significantTornado(mlcape, lclHeightM, srh01, shear06, mlcin float64, cfg AnalysisConfig) float64 {
	if mlcape < cfg.MinCAPE || srh01 <= 0 {
		return 0.0
	}
	lclTerm := clamp((2000.0-lclHeightM)/1000.0, 0.0, 1.0)
	cinTerm := clamp((200.0+mlcin)/150.0, 0.0, 1.0)
	shearTerm := shearFactor(shear06, 12.5, 30.0, 1.5)
	return (mlcape / 1500.0) * lclTerm * (srh01 / 150.0) * shearTerm * cinTerm
}

// energyHelicity (Davies & Johns 1993): EHI = CAPE·SRH / 160000.
func energyHelicity(cape, srh float64, cfg AnalysisConfig) float64 {
	if cape < cfg.MinCAPE || srh <= 0 {
		return 0.0
	}
	return cape * srh / 160000.0
}

// significantHail follows the SPC operational SHIP formulation:
// base = MUCAPE · MUMR · lapse75 · (−T500) · BWD06 / 42e6, with the mixing
// ratio clamped to [11, 13.6] g/kg, shear to [7, 27] m/s, and T500 no warmer
// than −5.5°C, then reduced for MUCAPE < 1300 J/kg, lapse < 5.8 °C/km, and
// freezing level below 2400 m.
func significantHail(mucape, muMixingRatio, lapse75, t500C, shear06, fzlM float64) float64 {
	if mucape <= 0 {
		return 0.0
	}
	mr := clamp(muMixingRatio, 11.0, 13.6)
	lapse := math.Max(0.0, lapse75)
	t500 := math.Min(t500C, -5.5)
	shear := clamp(shear06, 7.0, 27.0)

	ship := mucape * mr * lapse * (-t500) * shear / 42000000.0
	if mucape < 1300.0 {
		ship *= mucape / 1300.0
	}
	if lapse < 5.8 {
		ship *= lapse / 5.8
	}
	if fzlM < 2400.0 {
		ship *= math.Max(0.0, fzlM) / 2400.0
	}
	return ship
}

// vorticityGeneration: VGP = S·√CAPE with S the 0–6 km mean shear in s⁻¹
// (bulk wind difference divided by the layer depth). Values ≥ 0.2 support
// tornadoes.
func vorticityGeneration(cape, shear06 float64, cfg AnalysisConfig) float64 {
	if cape <= 0 || shear06 <= 0 {
		return 0.0
	}
	s := shear06 / cfg.BunkersDepthM // s⁻¹ over the deep layer
	return s * math.Sqrt(cape)
}

// cravenBrooks (2004): CAPE × 0–6 km bulk shear (m/s); > 20000 supports
// significant severe weather.
func cravenBrooks(mlcape, shear06 float64) float64 {
	if mlcape <= 0 {
		return 0.0
	}
	return mlcape * shear06
}

// shearFactor maps a bulk shear magnitude onto the published piecewise
// term: zero below floor, linear (shear/20) between, capped above ceiling.
func shearFactor(shear, floor, ceiling, capped float64) float64 {
	switch {
	case shear < floor:
		return 0.0
	case shear > ceiling:
		return capped
	default:
		return shear / 20.0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
