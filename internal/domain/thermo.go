package domain

import "math"

// Physical constants (SI units except where noted).
const (
	rd      = 287.04  // J/(kg·K), dry air gas constant
	rv      = 461.5   // J/(kg·K), water vapor gas constant
	cp      = 1005.7  // J/(kg·K), specific heat of dry air
	lv      = 2.501e6 // J/kg, latent heat of vaporization
	gravity = 9.81    // m/s²
	epsilon = rd / rv // ≈ 0.622
	zeroC   = 273.15  // K
)

func cToK(tC float64) float64 { return tC + zeroC }
func kToC(tK float64) float64 { return tK - zeroC }

// satVaporPressure returns the Bolton (1980) saturation vapor pressure in hPa.
func satVaporPressure(tC float64) float64 {
	return 6.112 * math.Exp(17.67*tC/(tC+243.5))
}

// mixingRatioFromDewpoint returns the water vapor mixing ratio in kg/kg from
// dewpoint (°C) and pressure (hPa).
func mixingRatioFromDewpoint(tdC, pHPa float64) float64 {
	e := satVaporPressure(tdC)
	return epsilon * e / (pHPa - e)
}

// relativeHumidity returns RH in percent from temperature and dewpoint,
// capped at 100.
func relativeHumidity(tC, tdC float64) float64 {
	rh := satVaporPressure(tdC) / satVaporPressure(tC) * 100.0
	return math.Min(100.0, rh)
}

// ThetaE returns the equivalent potential temperature in K (Bolton 1980,
// eq. 43). θe is conserved under moist ascent and is the tracer used for
// most-unstable parcel selection and mesoscale boundary detection.
func ThetaE(tC, tdC, pHPa float64) float64 {
	tk := cToK(tC)
	tdk := cToK(tdC)
	w := mixingRatioFromDewpoint(tdC, pHPa) * 1000.0 // g/kg

	// LCL temperature, Bolton eq. 15.
	tLCL := 56.0 + 1.0/(1.0/(tdk-56.0)+math.Log(tk/tdk)/800.0)

	return tk * math.Pow(1000.0/pHPa, 0.2854*(1.0-0.28e-3*w)) *
		math.Exp((3.376/tLCL-0.00254)*w*(1.0+0.81e-3*w))
}

// lclTemperature returns the lifting condensation level temperature in °C
// (Bolton 1980 eq. 15).
func lclTemperature(tC, tdC float64) float64 {
	tk := cToK(tC)
	tdk := cToK(tdC)
	tLCLK := 56.0 + 1.0/(1.0/(tdk-56.0)+math.Log(tk/tdk)/800.0)
	return kToC(tLCLK)
}

// lclHeight approximates the LCL height in meters AGL from the surface
// dewpoint depression: z ≈ 125·(T − Td) (Bolton 1980).
func lclHeight(tC, tdC float64) float64 {
	return math.Max(0.0, 125.0*(tC-tdC))
}

// lclPressure returns the LCL pressure in hPa via Poisson's equation from
// the parcel start level to its LCL temperature.
func lclPressure(tC, tdC, pHPa float64) float64 {
	tLCL := lclTemperature(tC, tdC)
	return pHPa * math.Pow(cToK(tLCL)/cToK(tC), cp/rd)
}

// moistLapseRate returns the saturated adiabatic lapse rate in K/m at the
// given parcel temperature (K) and pressure (hPa).
func moistLapseRate(tK, pHPa float64) float64 {
	ws := mixingRatioFromDewpoint(kToC(tK), pHPa)
	numer := gravity * (1.0 + (lv*ws)/(rd*tK))
	denom := cp + (lv*lv*ws*epsilon)/(rd*tK*tK)
	return numer / denom
}

// LapseRate returns the temperature lapse rate in °C/km between two heights
// AGL. Positive means temperature decreasing with height. Returns 0 for
// layers thinner than 100 m.
func LapseRate(p *Profile, botM, topM float64) float64 {
	tBot := p.TempAtHeight(botM)
	tTop := p.TempAtHeight(topM)
	depthKM := (topM - botM) / 1000.0
	if depthKM < 0.1 {
		return 0.0
	}
	return (tBot - tTop) / depthKM
}

// PrecipitableWater integrates the column water vapor and returns it in mm.
func PrecipitableWater(p *Profile) float64 {
	pw := 0.0
	for i := 0; i < len(p.Levels)-1; i++ {
		w1 := mixingRatioFromDewpoint(p.Levels[i].DewpointC, p.Levels[i].PressureHPa)
		w2 := mixingRatioFromDewpoint(p.Levels[i+1].DewpointC, p.Levels[i+1].PressureHPa)
		dp := math.Abs(p.Levels[i].PressureHPa-p.Levels[i+1].PressureHPa) * 100.0 // Pa
		pw += (w1 + w2) / 2.0 * dp / gravity
	}
	return pw // kg/m², numerically equal to mm of liquid water
}

// FreezingLevel returns the height AGL (m) where the environment first
// crosses 0°C, linearly interpolated between levels. If the whole profile is
// below freezing it returns 0; if it never freezes it returns the top height.
func FreezingLevel(p *Profile) float64 {
	if len(p.Levels) == 0 {
		return 0.0
	}
	if p.Levels[0].TempC <= 0 {
		return 0.0
	}
	for i := 0; i < len(p.Levels)-1; i++ {
		a, b := p.Levels[i], p.Levels[i+1]
		if a.TempC > 0 && b.TempC <= 0 {
			frac := a.TempC / (a.TempC - b.TempC)
			return a.HeightMAGL + frac*(b.HeightMAGL-a.HeightMAGL)
		}
	}
	return p.Levels[len(p.Levels)-1].HeightMAGL
}
