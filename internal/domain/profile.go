package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrInvalidProfile marks a structurally unusable sounding: too few levels,
// non-monotonic pressure, or a missing surface level. Fatal; no analysis is
// produced.
var ErrInvalidProfile = errors.New("invalid profile")

// surfaceMaxHeightM is how far AGL the lowest level may sit and still count
// as a surface observation. Model soundings report the surface at 0–10 m.
const surfaceMaxHeightM = 50.0

// Standard pressure levels synthesized when absent, so mid-level lapse rates
// and the Lifted Index always have anchor points.
var standardLevels = []float64{850.0, 700.0, 500.0}

// Level is one record of a vertical sounding.
type Level struct {
	PressureHPa float64 `json:"pressure_hpa"`
	HeightMAGL  float64 `json:"height_m_agl"`
	TempC       float64 `json:"temp_c"`
	DewpointC   float64 `json:"dewpoint_c"`
	WindU       float64 `json:"wind_u_ms"`
	WindV       float64 `json:"wind_v_ms"`
}

// Profile is an atmospheric sounding at one point and valid time, ordered
// surface first (strictly decreasing pressure, ascending height).
type Profile struct {
	ValidTime time.Time `json:"valid_time"`
	Source    string    `json:"source,omitempty"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Levels    []Level   `json:"levels"`
}

// Validate checks the structural invariants. It returns an error wrapping
// ErrInvalidProfile on violation.
func (p *Profile) Validate() error {
	if len(p.Levels) < 2 {
		return fmt.Errorf("%w: need at least 2 levels, got %d", ErrInvalidProfile, len(p.Levels))
	}
	for i := 1; i < len(p.Levels); i++ {
		if p.Levels[i].PressureHPa >= p.Levels[i-1].PressureHPa {
			return fmt.Errorf("%w: pressure not strictly decreasing at level %d (%.1f → %.1f hPa)",
				ErrInvalidProfile, i, p.Levels[i-1].PressureHPa, p.Levels[i].PressureHPa)
		}
		if p.Levels[i].HeightMAGL < p.Levels[i-1].HeightMAGL {
			return fmt.Errorf("%w: height not ascending at level %d", ErrInvalidProfile, i)
		}
	}
	if p.Levels[0].HeightMAGL > surfaceMaxHeightM {
		return fmt.Errorf("%w: lowest level at %.0f m AGL, surface level missing",
			ErrInvalidProfile, p.Levels[0].HeightMAGL)
	}
	return nil
}

// Surface returns the lowest level.
func (p *Profile) Surface() Level { return p.Levels[0] }

// SurfacePressure returns the pressure of the lowest level in hPa.
func (p *Profile) SurfacePressure() float64 { return p.Levels[0].PressureHPa }

// TopPressure returns the pressure of the highest level in hPa.
func (p *Profile) TopPressure() float64 { return p.Levels[len(p.Levels)-1].PressureHPa }

// TopHeight returns the height of the highest level in m AGL.
func (p *Profile) TopHeight() float64 { return p.Levels[len(p.Levels)-1].HeightMAGL }

// TempAtPressure interpolates environment temperature (°C) to a pressure
// level, linear in log-pressure. Values outside the profile clamp to the
// nearest level.
func (p *Profile) TempAtPressure(pHPa float64) float64 {
	xs, ys := p.logPressureAxis(func(l Level) float64 { return l.TempC })
	return interp(-math.Log(pHPa), xs, ys)
}

// DewpointAtPressure interpolates dewpoint (°C) to a pressure level, linear
// in log-pressure.
func (p *Profile) DewpointAtPressure(pHPa float64) float64 {
	xs, ys := p.logPressureAxis(func(l Level) float64 { return l.DewpointC })
	return interp(-math.Log(pHPa), xs, ys)
}

// HeightAtPressure interpolates height AGL (m) to a pressure level, linear
// in log-pressure.
func (p *Profile) HeightAtPressure(pHPa float64) float64 {
	xs, ys := p.logPressureAxis(func(l Level) float64 { return l.HeightMAGL })
	return interp(-math.Log(pHPa), xs, ys)
}

// TempAtHeight interpolates environment temperature (°C) to a height AGL.
func (p *Profile) TempAtHeight(hM float64) float64 {
	xs, ys := p.heightAxis(func(l Level) float64 { return l.TempC })
	return interp(hM, xs, ys)
}

// WindAtHeight interpolates the wind components (m/s) to a height AGL.
func (p *Profile) WindAtHeight(hM float64) Vector {
	xs, us := p.heightAxis(func(l Level) float64 { return l.WindU })
	_, vs := p.heightAxis(func(l Level) float64 { return l.WindV })
	return Vector{U: interp(hM, xs, us), V: interp(hM, xs, vs)}
}

// EnsureHeights fills in missing (zero) heights above the surface using the
// hypsometric equation, so profiles delivered as pressure/temperature only
// can still drive height-based kinematics.
func (p *Profile) EnsureHeights() {
	for i := 1; i < len(p.Levels); i++ {
		if p.Levels[i].HeightMAGL != 0 {
			continue
		}
		a := p.Levels[i-1]
		b := p.Levels[i]
		tMeanK := (cToK(a.TempC) + cToK(b.TempC)) / 2.0
		dz := (rd * tMeanK / gravity) * math.Log(a.PressureHPa/b.PressureHPa)
		p.Levels[i].HeightMAGL = a.HeightMAGL + dz
	}
}

// NormalizeStandardLevels inserts the standard pressure levels (850, 700,
// 500 hPa) when they fall inside the profile but are not natively present,
// interpolating all fields linearly in log-pressure. It returns the list of
// pressures that were synthesized, which downstream narrative generation
// uses as a confidence hedge.
func (p *Profile) NormalizeStandardLevels() []float64 {
	const tolerance = 1.0 // hPa; within this of a native level counts as native

	var synthesized []float64
	for _, std := range standardLevels {
		if std >= p.SurfacePressure() || std <= p.TopPressure() {
			continue
		}
		if p.hasLevelNear(std, tolerance) {
			continue
		}
		lvl := Level{
			PressureHPa: std,
			HeightMAGL:  p.HeightAtPressure(std),
			TempC:       p.TempAtPressure(std),
			DewpointC:   p.DewpointAtPressure(std),
		}
		w := p.WindAtHeight(lvl.HeightMAGL)
		lvl.WindU, lvl.WindV = w.U, w.V
		p.insertLevel(lvl)
		synthesized = append(synthesized, std)
	}
	return synthesized
}

func (p *Profile) hasLevelNear(pHPa, tolerance float64) bool {
	for _, l := range p.Levels {
		if math.Abs(l.PressureHPa-pHPa) <= tolerance {
			return true
		}
	}
	return false
}

func (p *Profile) insertLevel(lvl Level) {
	i := sort.Search(len(p.Levels), func(i int) bool {
		return p.Levels[i].PressureHPa < lvl.PressureHPa
	})
	p.Levels = append(p.Levels, Level{})
	copy(p.Levels[i+1:], p.Levels[i:])
	p.Levels[i] = lvl
}

// logPressureAxis returns (-ln p, value) pairs in ascending -ln p order,
// i.e. surface first, ready for interp.
func (p *Profile) logPressureAxis(f func(Level) float64) ([]float64, []float64) {
	xs := make([]float64, len(p.Levels))
	ys := make([]float64, len(p.Levels))
	for i, l := range p.Levels {
		xs[i] = -math.Log(l.PressureHPa)
		ys[i] = f(l)
	}
	return xs, ys
}

// heightAxis returns (height, value) pairs in ascending height order.
func (p *Profile) heightAxis(f func(Level) float64) ([]float64, []float64) {
	xs := make([]float64, len(p.Levels))
	ys := make([]float64, len(p.Levels))
	for i, l := range p.Levels {
		xs[i] = l.HeightMAGL
		ys[i] = f(l)
	}
	return xs, ys
}

// interp linearly interpolates y at x over ascending xs, clamping to the end
// values outside the range (np.interp semantics).
func interp(x float64, xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0.0
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	i := sort.SearchFloat64s(xs, x)
	// xs[i-1] < x <= xs[i]
	frac := (x - xs[i-1]) / (xs[i] - xs[i-1])
	return ys[i-1] + frac*(ys[i]-ys[i-1])
}
