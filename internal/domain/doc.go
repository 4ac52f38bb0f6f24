// Package domain implements sounding-based convective diagnostics: parcel
// thermodynamics, storm-relative kinematics, composite severe-weather
// parameters, mesoscale boundary detection, and the rule-based classifier
// that turns numeric ingredients into a qualitative assessment.
//
// # Units
//
// All functions operate on vertical profiles with fixed units:
//
//	pressure     hPa
//	height       meters AGL
//	temperature  degrees Celsius (Kelvin internally where formulas require)
//	wind         u/v components in m/s
//	CAPE/CIN     J/kg
//	SRH          m²/s²
//	θe gradient  K per 100 km
//
// Profiles are ordered surface first: strictly decreasing pressure,
// ascending height.
//
// # Sign Conventions
//
// CAPE is non-negative and CIN non-positive by construction. SRH is signed:
// a hodograph turning clockwise with height (veering winds) yields positive
// SRH referenced to the Bunkers right-mover. Lifted Index is environment
// minus parcel temperature at 500 hPa, so negative values mean instability.
//
// # References
//
//	Bolton (1980)           LCL temperature, saturation vapor pressure, θe
//	Bunkers et al. (2000)   internal-dynamics storm motion
//	Davies-Jones (1984)     storm-relative helicity integration
//	Thompson et al. (2003)  supercell composite parameter (SCP)
//	Thompson et al. (2004)  significant tornado parameter (STP, fixed layer)
//	Davies & Johns (1993)   energy-helicity index (EHI)
//	Craven & Brooks (2004)  significant severe parameter
//	SPC operational         significant hail parameter (SHIP)
//
// # Purity
//
// Every computation is a pure function of its inputs plus an explicit
// AnalysisConfig; nothing here performs I/O, reads the wall clock (the
// ComputedAt stamp comes from an injectable clock), or retains state across
// calls. Callers may fan analyses out across goroutines freely.
package domain
