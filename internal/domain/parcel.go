package domain

import "math"

// ParcelKind identifies the convention used to choose the rising parcel's
// starting properties.
type ParcelKind int

const (
	// MixedLayer averages temperature and moisture over the lowest 100 hPa.
	MixedLayer ParcelKind = iota
	// MostUnstable picks the level of maximum θe in the lowest 300 hPa.
	MostUnstable
)

func (k ParcelKind) String() string {
	switch k {
	case MixedLayer:
		return "mixed-layer"
	case MostUnstable:
		return "most-unstable"
	default:
		return "unknown"
	}
}

// Parcel is the starting state for an adiabatic ascent.
type Parcel struct {
	Kind        ParcelKind
	PressureHPa float64
	TempC       float64
	DewpointC   float64
}

// MixedLayerParcel averages temperature, dewpoint, and pressure over the
// lowest cfg.MixedLayerDepthHPa of the profile.
func MixedLayerParcel(p *Profile, cfg AnalysisConfig) Parcel {
	floor := p.SurfacePressure() - cfg.MixedLayerDepthHPa
	var sumT, sumTd, sumP float64
	n := 0
	for _, l := range p.Levels {
		if l.PressureHPa < floor {
			break
		}
		sumT += l.TempC
		sumTd += l.DewpointC
		sumP += l.PressureHPa
		n++
	}
	if n == 0 {
		sfc := p.Surface()
		return Parcel{Kind: MixedLayer, PressureHPa: sfc.PressureHPa, TempC: sfc.TempC, DewpointC: sfc.DewpointC}
	}
	return Parcel{
		Kind:        MixedLayer,
		PressureHPa: sumP / float64(n),
		TempC:       sumT / float64(n),
		DewpointC:   sumTd / float64(n),
	}
}

// MostUnstableParcel returns the level of maximum θe within the lowest
// cfg.MostUnstableDepthHPa of the profile.
func MostUnstableParcel(p *Profile, cfg AnalysisConfig) Parcel {
	floor := p.SurfacePressure() - cfg.MostUnstableDepthHPa
	best := p.Surface()
	bestThetaE := math.Inf(-1)
	for _, l := range p.Levels {
		if l.PressureHPa < floor {
			break
		}
		te := ThetaE(l.TempC, l.DewpointC, l.PressureHPa)
		if te > bestThetaE {
			bestThetaE = te
			best = l
		}
	}
	return Parcel{Kind: MostUnstable, PressureHPa: best.PressureHPa, TempC: best.TempC, DewpointC: best.DewpointC}
}

// PathPoint is one step of a lifted parcel's trajectory.
type PathPoint struct {
	PressureHPa float64
	TempK       float64
}

// ParcelPath is the sequence of (pressure, parcel temperature) pairs produced
// by lifting a parcel. Immutable once computed.
type ParcelPath []PathPoint

// TempAtPressure returns the parcel temperature (K) at the given pressure,
// linearly interpolated in log-pressure, and whether the path covers it.
func (pp ParcelPath) TempAtPressure(pHPa float64) (float64, bool) {
	if len(pp) == 0 || pHPa > pp[0].PressureHPa || pHPa < pp[len(pp)-1].PressureHPa {
		return 0.0, false
	}
	xs := make([]float64, len(pp))
	ys := make([]float64, len(pp))
	for i, pt := range pp {
		xs[i] = -math.Log(pt.PressureHPa)
		ys[i] = pt.TempK
	}
	return interp(-math.Log(pHPa), xs, ys), true
}

// DerivedThermo holds the buoyancy integrals and parcel diagnostics for one
// parcel. Invariants: CAPE ≥ 0, CIN ≤ 0, LCLHeightM ≥ 0.
type DerivedThermo struct {
	Kind        ParcelKind `json:"kind"`
	CAPE        float64    `json:"cape"` // J/kg
	CIN         float64    `json:"cin"`  // J/kg, ≤ 0
	LCLHeightM  float64    `json:"lcl_height_m"`
	LCLTempC    float64    `json:"lcl_temp_c"`
	LiftedIndex float64    `json:"lifted_index"` // env − parcel at 500 hPa, K

	// InsufficientExtent is set when the profile top sits below the parcel's
	// LCL so moist ascent cannot be evaluated; CAPE and CIN are then zero by
	// definition rather than by integration.
	InsufficientExtent bool `json:"insufficient_extent,omitempty"`

	// LiftedIndexUnavailable is set when the profile top is below 500 hPa;
	// LiftedIndex is then zero because it could not be evaluated, not because
	// the parcel is neutral there.
	LiftedIndexUnavailable bool `json:"lifted_index_unavailable,omitempty"`
}

// LiftParcel lifts a parcel dry-adiabatically to its LCL and moist-
// adiabatically above, on a pressure grid no coarser than
// cfg.PressureStepHPa. The second return is false when the profile top is
// below the LCL (degenerate profile).
func LiftParcel(p *Profile, parcel Parcel, cfg AnalysisConfig) (ParcelPath, bool) {
	p0 := parcel.PressureHPa
	t0K := cToK(parcel.TempC)
	pLCL := lclPressure(parcel.TempC, parcel.DewpointC, p0)
	top := p.TopPressure()

	if top >= pLCL {
		return nil, false
	}

	grid := pressureGrid(p0, pLCL, top, cfg.PressureStepHPa)
	path := make(ParcelPath, len(grid))
	path[0] = PathPoint{PressureHPa: grid[0], TempK: t0K}

	for i := 1; i < len(grid); i++ {
		pr := grid[i]
		if pr >= pLCL {
			// Dry adiabatic below the LCL (Poisson's equation).
			path[i] = PathPoint{PressureHPa: pr, TempK: t0K * math.Pow(pr/p0, rd/cp)}
			continue
		}
		// Moist adiabatic above: Euler step along the saturated lapse rate,
		// converting dp to dz hydrostatically at the previous state.
		prev := path[i-1]
		dp := pr - prev.PressureHPa // negative
		dz := -rd * prev.TempK / (gravity * prev.PressureHPa * 100.0) * (dp * 100.0)
		lapse := moistLapseRate(prev.TempK, prev.PressureHPa)
		path[i] = PathPoint{PressureHPa: pr, TempK: prev.TempK - lapse*dz}
	}
	return path, true
}

// pressureGrid builds a descending pressure grid from p0 to top with the
// given step, guaranteeing pLCL and top are grid points so the dry/moist
// transition lands exactly on the LCL.
func pressureGrid(p0, pLCL, top, step float64) []float64 {
	var grid []float64
	for pr := p0; pr > top; pr -= step {
		// Skip points that would duplicate the inserted LCL level.
		if pr != p0 && math.Abs(pr-pLCL) < 1e-9 {
			continue
		}
		grid = append(grid, pr)
	}
	grid = append(grid, top)

	if pLCL < p0 && pLCL > top {
		for i, pr := range grid {
			if pr < pLCL {
				grid = append(grid, 0)
				copy(grid[i+1:], grid[i:])
				grid[i] = pLCL
				break
			}
		}
	}
	return grid
}

// ComputeCAPECIN integrates positive and negative buoyancy for a parcel
// lifted through the environment. Positive-area layers accumulate into CAPE;
// negative-area layers below the level of free convection accumulate into
// CIN. A profile too shallow to reach the parcel's LCL degrades gracefully:
// zeroed values with InsufficientExtent set.
func ComputeCAPECIN(p *Profile, parcel Parcel, cfg AnalysisConfig) DerivedThermo {
	out := DerivedThermo{
		Kind:       parcel.Kind,
		LCLHeightM: lclHeight(parcel.TempC, parcel.DewpointC),
		LCLTempC:   lclTemperature(parcel.TempC, parcel.DewpointC),
	}

	path, ok := LiftParcel(p, parcel, cfg)
	if !ok {
		out.InsufficientExtent = true
		return out
	}

	cape := 0.0
	cin := 0.0
	for i := 0; i < len(path)-1; i++ {
		envA := cToK(p.TempAtPressure(path[i].PressureHPa))
		envB := cToK(p.TempAtPressure(path[i+1].PressureHPa))
		envMean := (envA + envB) / 2.0
		parcelMean := (path[i].TempK + path[i+1].TempK) / 2.0

		buoyancy := gravity * (parcelMean - envMean) / envMean
		dz := (rd * envMean / gravity) * math.Log(path[i].PressureHPa/path[i+1].PressureHPa)
		contribution := buoyancy * dz

		if contribution > 0 {
			cape += contribution
		} else if cape == 0 {
			// CIN accumulates only below the level of free convection.
			cin += contribution
		}
	}
	out.CAPE = math.Max(0.0, cape)
	out.CIN = math.Min(0.0, cin)

	// Lifted Index: environment minus parcel temperature at 500 hPa.
	if parcelT500, ok := path.TempAtPressure(500.0); ok {
		out.LiftedIndex = p.TempAtPressure(500.0) - kToC(parcelT500)
	} else {
		out.LiftedIndexUnavailable = true
	}
	return out
}
