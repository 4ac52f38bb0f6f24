package domain

import "time"

// Test soundings. Values are hand-built to be physically consistent:
// pressures strictly decreasing, heights roughly hypsometric, temperatures
// following the intended regime.

var testValidTime = time.Date(2024, 5, 18, 18, 0, 0, 0, time.UTC)

// loadedGunProfile is a classic severe setup: very unstable, small cap,
// strongly veering winds.
func loadedGunProfile() *Profile {
	return &Profile{
		ValidTime: testValidTime,
		Source:    "test",
		Lat:       35.5,
		Lon:       -97.5,
		Levels: []Level{
			{PressureHPa: 1000, HeightMAGL: 0, TempC: 30, DewpointC: 22, WindU: 0, WindV: 8},
			{PressureHPa: 950, HeightMAGL: 450, TempC: 26, DewpointC: 20, WindU: 4, WindV: 10},
			{PressureHPa: 900, HeightMAGL: 900, TempC: 22, DewpointC: 18, WindU: 8, WindV: 11},
			{PressureHPa: 850, HeightMAGL: 1400, TempC: 18, DewpointC: 14, WindU: 11, WindV: 11},
			{PressureHPa: 800, HeightMAGL: 1950, TempC: 14, DewpointC: 10, WindU: 14, WindV: 10},
			{PressureHPa: 700, HeightMAGL: 3100, TempC: 8, DewpointC: 2, WindU: 18, WindV: 8},
			{PressureHPa: 600, HeightMAGL: 4400, TempC: -2, DewpointC: -8, WindU: 21, WindV: 6},
			{PressureHPa: 500, HeightMAGL: 5900, TempC: -12, DewpointC: -20, WindU: 24, WindV: 4},
			{PressureHPa: 400, HeightMAGL: 7600, TempC: -24, DewpointC: -32, WindU: 26, WindV: 3},
			{PressureHPa: 300, HeightMAGL: 9700, TempC: -40, DewpointC: -48, WindU: 28, WindV: 2},
		},
	}
}

// cappedProfile carries surface instability under a strong elevated
// inversion with a dry layer above it.
func cappedProfile() *Profile {
	return &Profile{
		ValidTime: testValidTime,
		Source:    "test",
		Lat:       32.8,
		Lon:       -96.8,
		Levels: []Level{
			{PressureHPa: 1000, HeightMAGL: 0, TempC: 28, DewpointC: 20, WindU: 5, WindV: 2},
			{PressureHPa: 950, HeightMAGL: 450, TempC: 25.5, DewpointC: 18, WindU: 7, WindV: 2},
			{PressureHPa: 900, HeightMAGL: 910, TempC: 23, DewpointC: 16, WindU: 9, WindV: 3},
			{PressureHPa: 850, HeightMAGL: 1390, TempC: 22, DewpointC: 8, WindU: 11, WindV: 3},
			{PressureHPa: 800, HeightMAGL: 1900, TempC: 19, DewpointC: 4, WindU: 13, WindV: 4},
			{PressureHPa: 700, HeightMAGL: 3010, TempC: 13, DewpointC: 0, WindU: 15, WindV: 4},
			{PressureHPa: 600, HeightMAGL: 4280, TempC: 4, DewpointC: -6, WindU: 17, WindV: 5},
			{PressureHPa: 500, HeightMAGL: 5750, TempC: -10, DewpointC: -22, WindU: 18, WindV: 5},
			{PressureHPa: 400, HeightMAGL: 7500, TempC: -22, DewpointC: -30, WindU: 19, WindV: 5},
			{PressureHPa: 300, HeightMAGL: 9600, TempC: -38, DewpointC: -46, WindU: 20, WindV: 5},
		},
	}
}

// stableProfile has no buoyancy anywhere: cool, dry, near-isothermal low
// levels. Winds are light unless overridden.
func stableProfile() *Profile {
	return &Profile{
		ValidTime: testValidTime,
		Source:    "test",
		Lat:       41.9,
		Lon:       -87.6,
		Levels: []Level{
			{PressureHPa: 1000, HeightMAGL: 0, TempC: 10, DewpointC: 2, WindU: 2, WindV: 3},
			{PressureHPa: 925, HeightMAGL: 690, TempC: 8, DewpointC: 0, WindU: 3, WindV: 3},
			{PressureHPa: 850, HeightMAGL: 1420, TempC: 7, DewpointC: -2, WindU: 4, WindV: 4},
			{PressureHPa: 700, HeightMAGL: 2980, TempC: 2, DewpointC: -8, WindU: 6, WindV: 4},
			{PressureHPa: 500, HeightMAGL: 5600, TempC: -12, DewpointC: -25, WindU: 7, WindV: 5},
			{PressureHPa: 300, HeightMAGL: 9300, TempC: -40, DewpointC: -55, WindU: 8, WindV: 5},
		},
	}
}

// highShearStableProfile is the stable sounding under a strongly sheared
// flow. No composite may fire despite the kinematics.
func highShearStableProfile() *Profile {
	p := stableProfile()
	winds := []Vector{
		{U: 0, V: 8}, {U: 6, V: 11}, {U: 12, V: 11}, {U: 20, V: 8}, {U: 28, V: 4}, {U: 34, V: 2},
	}
	for i := range p.Levels {
		p.Levels[i].WindU = winds[i].U
		p.Levels[i].WindV = winds[i].V
	}
	return p
}
