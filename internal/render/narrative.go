// Package render turns tagged diagnostic verdicts into operator-facing text
// and map artifacts. All phrasing lives here; the analysis layer only emits
// tagged reasons and values.
package render

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"

	"github.com/couchcryptid/convective-diagnostics/internal/domain"
)

// TierStyle is the display label and color for a support tier.
type TierStyle struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var tierStyles = map[domain.SupportTier]TierStyle{
	domain.TierNone:     {Label: "None", Color: "grey"},
	domain.TierMarginal: {Label: "Marginal", Color: "green"},
	domain.TierLimited:  {Label: "Limited", Color: "yellow"},
	domain.TierModerate: {Label: "Moderate", Color: "orange"},
	domain.TierEnhanced: {Label: "Enhanced", Color: "magenta"},
	domain.TierExtreme:  {Label: "Extreme", Color: "red"},
}

// StyleFor returns the display style for a tier.
func StyleFor(t domain.SupportTier) TierStyle { return tierStyles[t] }

var modePhrases = map[domain.ConvectiveMode]string{
	domain.ModeNone:              "no organized storms expected",
	domain.ModePulse:             "pulse storms, brief heavy rain and lightning",
	domain.ModeMulticell:         "multicell clusters, hail and gusty winds possible",
	domain.ModeQLCS:              "line segments (QLCS), damaging winds the main threat",
	domain.ModeSupercellular:     "supercells possible, all severe hazards in play",
	domain.ModeTornadicSupercell: "tornadic supercells possible",
}

// Narrative is the human-readable rendering of one diagnostic result.
type Narrative struct {
	Headline   string   `json:"headline"`
	Tier       TierStyle `json:"tier"`
	Concerns   []string `json:"concerns,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	Notes      []string `json:"notes,omitempty"`
}

// Build renders a diagnostic result into prose. Deterministic: ordering
// follows the tagged slices, which the classifier emits in severity order.
func Build(res domain.DiagnosticResult) Narrative {
	n := Narrative{
		Headline: fmt.Sprintf("%s (%s severe support)",
			modePhrases[res.Mode], tierStyles[res.Tier].Label),
		Tier: tierStyles[res.Tier],
	}
	for _, fm := range res.FailModes {
		n.Concerns = append(n.Concerns, failModeText(fm))
	}
	for _, h := range res.Highlights {
		n.Highlights = append(n.Highlights, highlightText(h))
	}
	for _, note := range res.Notes {
		n.Notes = append(n.Notes, noteText(note, res.Ingredients.Boundary))
	}
	return n
}

func failModeText(fm domain.FailMode) string {
	switch fm.Reason {
	case domain.ReasonInsufficientData:
		return "profile too shallow for parcel ascent, thermodynamics unavailable"
	case domain.ReasonNoInstability:
		if fm.Aux >= 15.0 {
			return fmt.Sprintf("no instability despite strong shear (0-6 km shear %.0f m/s)", fm.Aux)
		}
		return fmt.Sprintf("no instability (MLCAPE %.0f J/kg)", fm.Value)
	case domain.ReasonStrongCap:
		return fmt.Sprintf("strong cap (CIN %.0f J/kg), initiation unlikely without forcing", fm.Value)
	case domain.ReasonModerateCap:
		return fmt.Sprintf("capped, storms may not initiate (CIN %.0f J/kg)", fm.Value)
	case domain.ReasonHighLCL:
		return fmt.Sprintf("high cloud bases (LCL %.0f m) limit tornado potential", fm.Value)
	case domain.ReasonDryBoundaryLayer:
		return fmt.Sprintf("dry boundary layer (surface RH %.0f%%)", fm.Value)
	case domain.ReasonWeakLowLapse:
		return fmt.Sprintf("weak low-level lapse rate (%.1f °C/km) despite available CAPE", fm.Value)
	case domain.ReasonWeakDeepShear:
		return fmt.Sprintf("weak deep-layer shear (%.0f m/s), storms will struggle to organize", fm.Value)
	case domain.ReasonOutflowDominant:
		return "outflow-dominant regime, storms likely undercut their own inflow"
	case domain.ReasonNoBoundary:
		return "no mesoscale boundary detected, initiation focus unclear"
	default:
		return fm.Reason.String()
	}
}

func highlightText(h domain.Highlight) string {
	switch h.Kind {
	case domain.HighlightSigTornado:
		return fmt.Sprintf("significant tornado parameter %.1f, strong tornadoes possible", h.Value)
	case domain.HighlightTornado:
		return fmt.Sprintf("tornado parameter %.1f supports tornadic supercells", h.Value)
	case domain.HighlightSigSupercell:
		return fmt.Sprintf("supercell composite %.1f, significant supercell environment", h.Value)
	case domain.HighlightSigHail:
		return fmt.Sprintf("significant hail parameter %.1f, large hail likely with sustained updrafts", h.Value)
	case domain.HighlightSigTornadoEHI:
		return fmt.Sprintf("0-1 km energy-helicity index %.1f, strong tornado signal", h.Value)
	case domain.HighlightTornadoEHI:
		return fmt.Sprintf("0-1 km energy-helicity index %.1f favors tornadoes", h.Value)
	case domain.HighlightSigSevere:
		return fmt.Sprintf("CAPE-shear product %.0f exceeds the significant severe threshold", h.Value)
	case domain.HighlightVorticityGen:
		return fmt.Sprintf("vorticity generation parameter %.2f supports updraft rotation", h.Value)
	case domain.HighlightSteepMidLapse:
		return fmt.Sprintf("steep mid-level lapse rate (%.1f °C/km) favors large hail", h.Value)
	default:
		return h.Kind.String()
	}
}

func noteText(n domain.Note, b domain.BoundarySignal) string {
	switch n.Kind {
	case domain.NoteWeakCap:
		return fmt.Sprintf("weak cap in place (CIN %.0f J/kg), may help storms stay discrete", n.Value)
	case domain.NoteVeryLowLCL:
		return fmt.Sprintf("very low cloud bases (LCL %.0f m)", n.Value)
	case domain.NoteElevatedLCL:
		return fmt.Sprintf("somewhat elevated cloud bases (LCL %.0f m)", n.Value)
	case domain.NoteMarginalMoisture:
		return fmt.Sprintf("marginal boundary-layer moisture (surface RH %.0f%%)", n.Value)
	case domain.NoteHighPrecipitableWater:
		return fmt.Sprintf("high precipitable water (%.0f mm), heavy rain with any storm", n.Value)
	case domain.NoteMarginalTornado:
		return fmt.Sprintf("marginal tornado signal (STP %.2f)", n.Value)
	case domain.NoteEmbeddedRotation:
		return fmt.Sprintf("embedded rotation possible within the line (0-3 km SRH %.0f m²/s²)", n.Value)
	case domain.NoteLimitedCAPE:
		return fmt.Sprintf("limited instability (MLCAPE %.0f J/kg) caps storm intensity", n.Value)
	case domain.NoteBoundaryProximity:
		return fmt.Sprintf("mesoscale boundary nearby (θe gradient %.1f K/100km, %s)", n.Value, b.Side)
	case domain.NoteInterpolatedLevels:
		return fmt.Sprintf("%d standard levels interpolated, mid-level values are estimates", int(n.Value))
	case domain.NoteLowResolutionWinds:
		return "coarse wind data, helicity values are low-confidence"
	case domain.NoteFavorableMidLapse:
		return fmt.Sprintf("favorable mid-level lapse rate (%.1f °C/km)", n.Value)
	case domain.NoteShallowProfile:
		return "profile top below 500 hPa, lifted index unavailable"
	default:
		return n.Kind.String()
	}
}

// BoundaryGeoJSON renders the steep-gradient cells of a boundary signal as a
// GeoJSON feature collection for map overlays. Returns an empty collection
// when no boundary is present.
func BoundaryGeoJSON(sig domain.BoundarySignal) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if !sig.Present {
		return fc
	}
	for _, cell := range sig.SteepCells {
		f := geojson.NewPointFeature([]float64{cell.Lon, cell.Lat})
		f.SetProperty("theta_e", cell.ThetaE)
		fc.AddFeature(f)
	}
	return fc
}
