package domain

import (
	"encoding/json"
	"fmt"
)

// ConvectiveMode is the dominant storm organization a sounding supports.
type ConvectiveMode int

const (
	ModeNone ConvectiveMode = iota
	ModePulse
	ModeMulticell
	ModeQLCS
	ModeSupercellular
	ModeTornadicSupercell
)

var modeNames = map[ConvectiveMode]string{
	ModeNone:              "none",
	ModePulse:             "pulse",
	ModeMulticell:         "multicell",
	ModeQLCS:              "qlcs",
	ModeSupercellular:     "supercellular",
	ModeTornadicSupercell: "tornadic-supercell",
}

func (m ConvectiveMode) String() string { return enumString(modeNames, m) }

func (m ConvectiveMode) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

func (m *ConvectiveMode) UnmarshalJSON(b []byte) error {
	i, err := enumFromJSON(modeNames, b)
	if err != nil {
		return fmt.Errorf("convective mode: %w", err)
	}
	*m = i
	return nil
}

// SupportTier is the six-level ordinal severe-weather support scale.
type SupportTier int

const (
	TierNone SupportTier = iota
	TierMarginal
	TierLimited
	TierModerate
	TierEnhanced
	TierExtreme
)

var tierNames = map[SupportTier]string{
	TierNone:     "none",
	TierMarginal: "marginal",
	TierLimited:  "limited",
	TierModerate: "moderate",
	TierEnhanced: "enhanced",
	TierExtreme:  "extreme",
}

func (t SupportTier) String() string { return enumString(tierNames, t) }

func (t SupportTier) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *SupportTier) UnmarshalJSON(b []byte) error {
	i, err := enumFromJSON(tierNames, b)
	if err != nil {
		return fmt.Errorf("support tier: %w", err)
	}
	*t = i
	return nil
}

// FailReason tags a specific gating failure that limits or prevents severe
// storms. Rendering to prose is the presentation layer's job.
type FailReason int

const (
	ReasonInsufficientData FailReason = iota
	ReasonNoInstability
	ReasonStrongCap
	ReasonModerateCap
	ReasonHighLCL
	ReasonDryBoundaryLayer
	ReasonWeakLowLapse
	ReasonWeakDeepShear
	ReasonOutflowDominant
	ReasonNoBoundary
)

var reasonNames = map[FailReason]string{
	ReasonInsufficientData: "insufficient-data",
	ReasonNoInstability:    "no-instability",
	ReasonStrongCap:        "strong-cap",
	ReasonModerateCap:      "moderate-cap",
	ReasonHighLCL:          "high-lcl",
	ReasonDryBoundaryLayer: "dry-boundary-layer",
	ReasonWeakLowLapse:     "weak-low-level-lapse",
	ReasonWeakDeepShear:    "weak-deep-shear",
	ReasonOutflowDominant:  "outflow-dominant",
	ReasonNoBoundary:       "no-boundary",
}

func (r FailReason) String() string { return enumString(reasonNames, r) }

func (r FailReason) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

func (r *FailReason) UnmarshalJSON(b []byte) error {
	i, err := enumFromJSON(reasonNames, b)
	if err != nil {
		return fmt.Errorf("fail reason: %w", err)
	}
	*r = i
	return nil
}

// FailMode is one tagged gating failure with the values that triggered it.
type FailMode struct {
	Reason FailReason `json:"reason"`
	Value  float64    `json:"value,omitempty"`
	Aux    float64    `json:"aux,omitempty"`
}

// HighlightKind tags an operational threshold exceedance worth surfacing.
type HighlightKind int

const (
	HighlightSigTornado HighlightKind = iota
	HighlightTornado
	HighlightSigSupercell
	HighlightSigHail
	HighlightSigTornadoEHI
	HighlightTornadoEHI
	HighlightSigSevere
	HighlightVorticityGen
	HighlightSteepMidLapse
)

var highlightNames = map[HighlightKind]string{
	HighlightSigTornado:    "significant-tornado",
	HighlightTornado:       "tornado",
	HighlightSigSupercell:  "significant-supercell",
	HighlightSigHail:       "significant-hail",
	HighlightSigTornadoEHI: "significant-tornado-ehi",
	HighlightTornadoEHI:    "tornado-ehi",
	HighlightSigSevere:     "significant-severe",
	HighlightVorticityGen:  "vorticity-generation",
	HighlightSteepMidLapse: "steep-mid-lapse",
}

func (h HighlightKind) String() string { return enumString(highlightNames, h) }

func (h HighlightKind) MarshalJSON() ([]byte, error) { return json.Marshal(h.String()) }

func (h *HighlightKind) UnmarshalJSON(b []byte) error {
	i, err := enumFromJSON(highlightNames, b)
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	*h = i
	return nil
}

// Highlight is one tagged threshold exceedance with its value.
type Highlight struct {
	Kind  HighlightKind `json:"kind"`
	Value float64       `json:"value"`
}

// NoteKind tags an analyst hedge or context observation.
type NoteKind int

const (
	NoteWeakCap NoteKind = iota
	NoteVeryLowLCL
	NoteElevatedLCL
	NoteMarginalMoisture
	NoteHighPrecipitableWater
	NoteMarginalTornado
	NoteEmbeddedRotation
	NoteLimitedCAPE
	NoteBoundaryProximity
	NoteInterpolatedLevels
	NoteLowResolutionWinds
	NoteFavorableMidLapse
	NoteShallowProfile
)

var noteNames = map[NoteKind]string{
	NoteWeakCap:               "weak-cap",
	NoteVeryLowLCL:            "very-low-lcl",
	NoteElevatedLCL:           "elevated-lcl",
	NoteMarginalMoisture:      "marginal-moisture",
	NoteHighPrecipitableWater: "high-precipitable-water",
	NoteMarginalTornado:       "marginal-tornado",
	NoteEmbeddedRotation:      "embedded-rotation",
	NoteLimitedCAPE:           "limited-cape",
	NoteBoundaryProximity:     "boundary-proximity",
	NoteInterpolatedLevels:    "interpolated-levels",
	NoteLowResolutionWinds:    "low-resolution-winds",
	NoteFavorableMidLapse:     "favorable-mid-lapse",
	NoteShallowProfile:        "shallow-profile",
}

func (n NoteKind) String() string { return enumString(noteNames, n) }

func (n NoteKind) MarshalJSON() ([]byte, error) { return json.Marshal(n.String()) }

func (n *NoteKind) UnmarshalJSON(b []byte) error {
	i, err := enumFromJSON(noteNames, b)
	if err != nil {
		return fmt.Errorf("note: %w", err)
	}
	*n = i
	return nil
}

// Note is one tagged analyst observation with its value.
type Note struct {
	Kind  NoteKind `json:"kind"`
	Value float64  `json:"value,omitempty"`
}

// Verdict is the qualitative output of the classifier.
type Verdict struct {
	Mode       ConvectiveMode `json:"mode"`
	Tier       SupportTier    `json:"tier"`
	FailModes  []FailMode     `json:"fail_modes,omitempty"`
	Highlights []Highlight    `json:"highlights,omitempty"`
	Notes      []Note         `json:"notes,omitempty"`
}

// modeRule is one row of the convective-mode decision table. Rules are
// evaluated top-down; the first match wins, which makes tie-break order
// explicit and testable.
type modeRule struct {
	name  string
	match func(ing Ingredients, c CompositeSet) bool
	mode  ConvectiveMode
}

var modeRules = []modeRule{
	{
		name: "tornadic supercell",
		match: func(ing Ingredients, c CompositeSet) bool {
			return c.STP >= STPSignificant && c.SCP > SCPSignificant
		},
		mode: ModeTornadicSupercell,
	},
	{
		name: "supercellular",
		match: func(ing Ingredients, c CompositeSet) bool {
			return c.SCP > SCPFavorable
		},
		mode: ModeSupercellular,
	},
	{
		name: "qlcs",
		match: func(ing Ingredients, c CompositeSet) bool {
			// Deep shear supports organized lines, but weak low/mid-level
			// rotation argues against discrete supercells.
			return ing.Shear06.Magnitude >= 15.0 &&
				ing.Shear36.Magnitude >= 10.0 &&
				ing.SRH03.Value < 100.0
		},
		mode: ModeQLCS,
	},
	{
		name: "multicell",
		match: func(ing Ingredients, c CompositeSet) bool {
			return ing.ML.CAPE >= 300.0 && ing.Shear06.Magnitude >= 10.0
		},
		mode: ModeMulticell,
	},
	{
		name:  "pulse",
		match: func(Ingredients, CompositeSet) bool { return true },
		mode:  ModePulse,
	},
}

// Classify maps the full ingredient set and composites to a convective mode,
// support tier, and tagged fail modes / highlights / notes. The mapping is
// pure: identical inputs always yield identical verdicts.
func Classify(ing Ingredients, comps CompositeSet, cfg AnalysisConfig) Verdict {
	v := Verdict{Mode: ModeNone, Tier: TierNone}

	if ing.ML.InsufficientExtent || ing.MU.InsufficientExtent {
		v.FailModes = append(v.FailModes, FailMode{Reason: ReasonInsufficientData})
	}

	// Strict instability gate: without CAPE there is no storm, no matter
	// how favorable the kinematics look.
	if ing.ML.CAPE < cfg.MinCAPE && ing.MU.CAPE < 2.0*cfg.MinCAPE {
		v.FailModes = append(v.FailModes, FailMode{
			Reason: ReasonNoInstability,
			Value:  ing.ML.CAPE,
			Aux:    ing.Shear06.Magnitude,
		})
		return v
	}

	v.FailModes = append(v.FailModes, gatingFailures(ing)...)

	for _, rule := range modeRules {
		if rule.match(ing, comps) {
			v.Mode = rule.mode
			break
		}
	}

	if v.Mode == ModePulse {
		v.FailModes = append(v.FailModes, FailMode{
			Reason: ReasonWeakDeepShear,
			Value:  ing.Shear06.Magnitude,
		})
	}
	if ing.ML.CAPE > 2500.0 && ing.Shear06.Magnitude < 13.0 {
		v.FailModes = append(v.FailModes, FailMode{
			Reason: ReasonOutflowDominant,
			Value:  ing.ML.CAPE,
			Aux:    ing.Shear06.Magnitude,
		})
	}
	if ing.Boundary.Evaluated && !ing.Boundary.Present && v.Mode >= ModeMulticell {
		v.FailModes = append(v.FailModes, FailMode{
			Reason: ReasonNoBoundary,
			Value:  ing.Boundary.MaxGradient,
		})
	}

	v.Highlights = highlights(ing, comps)
	v.Notes = analystNotes(ing, comps, v.Mode)
	v.Tier = supportTier(ing, comps, v.Mode)
	return v
}

// gatingFailures collects the mid-pipeline fail modes in severity order:
// cap strength, cloud-base height, boundary-layer moisture, lapse rates.
func gatingFailures(ing Ingredients) []FailMode {
	var fms []FailMode

	switch {
	case ing.ML.CIN < -200.0:
		fms = append(fms, FailMode{Reason: ReasonStrongCap, Value: ing.ML.CIN})
	case ing.ML.CIN < -75.0:
		fms = append(fms, FailMode{Reason: ReasonModerateCap, Value: ing.ML.CIN})
	}

	if ing.ML.LCLHeightM > 2000.0 {
		fms = append(fms, FailMode{Reason: ReasonHighLCL, Value: ing.ML.LCLHeightM})
	}
	if ing.SurfaceRH < 40.0 {
		fms = append(fms, FailMode{Reason: ReasonDryBoundaryLayer, Value: ing.SurfaceRH})
	}
	if ing.LowLapseRate < 5.0 && ing.ML.CAPE > 500.0 {
		fms = append(fms, FailMode{Reason: ReasonWeakLowLapse, Value: ing.LowLapseRate})
	}
	return fms
}

func highlights(ing Ingredients, c CompositeSet) []Highlight {
	var hs []Highlight
	if c.STP >= 2.0 {
		hs = append(hs, Highlight{Kind: HighlightSigTornado, Value: c.STP})
	} else if c.STP >= STPSignificant {
		hs = append(hs, Highlight{Kind: HighlightTornado, Value: c.STP})
	}
	if c.SCP >= SCPSignificant {
		hs = append(hs, Highlight{Kind: HighlightSigSupercell, Value: c.SCP})
	}
	if c.SHIP >= SHIPSignificant {
		hs = append(hs, Highlight{Kind: HighlightSigHail, Value: c.SHIP})
	}
	if c.EHI01 >= EHISigTornado {
		hs = append(hs, Highlight{Kind: HighlightSigTornadoEHI, Value: c.EHI01})
	} else if c.EHI01 >= EHISignificant {
		hs = append(hs, Highlight{Kind: HighlightTornadoEHI, Value: c.EHI01})
	}
	if c.CravenBrooks > CravenSignificant {
		hs = append(hs, Highlight{Kind: HighlightSigSevere, Value: c.CravenBrooks})
	}
	if c.VGP >= VGPSignificant {
		hs = append(hs, Highlight{Kind: HighlightVorticityGen, Value: c.VGP})
	}
	if ing.MidLapseRate >= 7.0 {
		hs = append(hs, Highlight{Kind: HighlightSteepMidLapse, Value: ing.MidLapseRate})
	}
	return hs
}

func analystNotes(ing Ingredients, c CompositeSet, mode ConvectiveMode) []Note {
	var ns []Note

	if ing.ML.CIN < -25.0 && ing.ML.CIN >= -75.0 {
		ns = append(ns, Note{Kind: NoteWeakCap, Value: ing.ML.CIN})
	}
	switch {
	case ing.ML.LCLHeightM < 800.0:
		ns = append(ns, Note{Kind: NoteVeryLowLCL, Value: ing.ML.LCLHeightM})
	case ing.ML.LCLHeightM > 1500.0 && ing.ML.LCLHeightM <= 2000.0:
		ns = append(ns, Note{Kind: NoteElevatedLCL, Value: ing.ML.LCLHeightM})
	}
	if ing.SurfaceRH >= 40.0 && ing.SurfaceRH < 55.0 {
		ns = append(ns, Note{Kind: NoteMarginalMoisture, Value: ing.SurfaceRH})
	}
	if ing.PrecipitableWaterMM > 40.0 {
		ns = append(ns, Note{Kind: NoteHighPrecipitableWater, Value: ing.PrecipitableWaterMM})
	}
	if ing.MidLapseRate >= 6.5 && ing.MidLapseRate < 7.0 {
		ns = append(ns, Note{Kind: NoteFavorableMidLapse, Value: ing.MidLapseRate})
	}
	if c.STP >= 0.5 && c.STP < STPSignificant {
		ns = append(ns, Note{Kind: NoteMarginalTornado, Value: c.STP})
	}
	if mode == ModeQLCS && ing.SRH03.Value >= 75.0 {
		ns = append(ns, Note{Kind: NoteEmbeddedRotation, Value: ing.SRH03.Value})
	}
	if mode == ModeMulticell && ing.ML.CAPE < 1000.0 {
		ns = append(ns, Note{Kind: NoteLimitedCAPE, Value: ing.ML.CAPE})
	}
	if ing.Boundary.Present {
		ns = append(ns, Note{Kind: NoteBoundaryProximity, Value: ing.Boundary.MaxGradient})
	}
	if len(ing.InterpolatedLevels) > 0 {
		ns = append(ns, Note{Kind: NoteInterpolatedLevels, Value: float64(len(ing.InterpolatedLevels))})
	}
	if ing.LowResolutionWinds {
		ns = append(ns, Note{Kind: NoteLowResolutionWinds})
	}
	if ing.ML.LiftedIndexUnavailable || ing.MU.LiftedIndexUnavailable {
		ns = append(ns, Note{Kind: NoteShallowProfile})
	}
	return ns
}

// supportTier scores the environment 0–5 with a monotone function of CAPE
// magnitude, composite thresholds crossed, and boundary presence. Increasing
// any single ingredient never lowers the tier.
func supportTier(ing Ingredients, c CompositeSet, mode ConvectiveMode) SupportTier {
	if mode == ModeNone {
		return TierNone
	}
	score := 0
	if ing.ML.CAPE > 500.0 {
		score++
	}
	if ing.ML.CAPE > 1500.0 {
		score++
	}
	if ing.Shear06.Magnitude > 15.0 {
		score++
	}
	if c.SCP > 2.0 || c.STP > 0.5 {
		score++
	}
	if ing.SRH01.Value > 200.0 && c.STP >= STPSignificant {
		score++
	}
	if ing.Boundary.Present {
		score++
	}
	if score > int(TierExtreme) {
		score = int(TierExtreme)
	}
	return SupportTier(score)
}

func enumString[T comparable](names map[T]string, v T) string { return names[v] }

func enumFromJSON[T comparable](names map[T]string, b []byte) (T, error) {
	var zero T
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return zero, err
	}
	for k, name := range names {
		if name == s {
			return k, nil
		}
	}
	return zero, fmt.Errorf("unknown value %q", s)
}
