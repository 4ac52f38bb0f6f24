package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/convective-diagnostics/internal/domain"
)

func TestStyleFor(t *testing.T) {
	assert.Equal(t, TierStyle{Label: "None", Color: "grey"}, StyleFor(domain.TierNone))
	assert.Equal(t, TierStyle{Label: "Extreme", Color: "red"}, StyleFor(domain.TierExtreme))
	assert.Equal(t, TierStyle{Label: "Moderate", Color: "orange"}, StyleFor(domain.TierModerate))
}

func TestBuild(t *testing.T) {
	t.Run("high-shear no-CAPE phrasing", func(t *testing.T) {
		res := domain.DiagnosticResult{
			Verdict: domain.Verdict{
				Mode: domain.ModeNone,
				Tier: domain.TierNone,
				FailModes: []domain.FailMode{
					{Reason: domain.ReasonNoInstability, Value: 12, Aux: 28},
				},
			},
		}
		n := Build(res)
		require.Len(t, n.Concerns, 1)
		assert.Contains(t, n.Concerns[0], "no instability despite strong shear")
		assert.Contains(t, n.Headline, "no organized storms expected")
	})

	t.Run("calm no-CAPE phrasing omits the shear clause", func(t *testing.T) {
		res := domain.DiagnosticResult{
			Verdict: domain.Verdict{
				FailModes: []domain.FailMode{
					{Reason: domain.ReasonNoInstability, Value: 12, Aux: 4},
				},
			},
		}
		n := Build(res)
		require.Len(t, n.Concerns, 1)
		assert.NotContains(t, n.Concerns[0], "despite strong shear")
	})

	t.Run("moderate cap phrasing", func(t *testing.T) {
		res := domain.DiagnosticResult{
			Verdict: domain.Verdict{
				Mode: domain.ModeSupercellular,
				Tier: domain.TierModerate,
				FailModes: []domain.FailMode{
					{Reason: domain.ReasonModerateCap, Value: -120},
				},
			},
		}
		n := Build(res)
		require.Len(t, n.Concerns, 1)
		assert.Contains(t, n.Concerns[0], "capped, storms may not initiate")
		assert.Contains(t, n.Concerns[0], "-120")
	})

	t.Run("full verdict rendering", func(t *testing.T) {
		res := domain.DiagnosticResult{
			Verdict: domain.Verdict{
				Mode: domain.ModeTornadicSupercell,
				Tier: domain.TierExtreme,
				Highlights: []domain.Highlight{
					{Kind: domain.HighlightSigTornado, Value: 4.2},
					{Kind: domain.HighlightSigSupercell, Value: 24},
				},
				Notes: []domain.Note{
					{Kind: domain.NoteVeryLowLCL, Value: 720},
					{Kind: domain.NoteBoundaryProximity, Value: 6.5},
				},
			},
			Ingredients: domain.Ingredients{
				Boundary: domain.BoundarySignal{
					Evaluated: true, Present: true, Side: domain.SideWarmSector,
				},
			},
		}
		n := Build(res)

		assert.Contains(t, n.Headline, "tornadic supercells possible")
		assert.Contains(t, n.Headline, "Extreme")
		assert.Equal(t, "red", n.Tier.Color)
		assert.Empty(t, n.Concerns)
		require.Len(t, n.Highlights, 2)
		assert.Contains(t, n.Highlights[0], "significant tornado parameter 4.2")
		require.Len(t, n.Notes, 2)
		assert.Contains(t, n.Notes[1], "warm-sector")
	})

	t.Run("every tag renders without falling through", func(t *testing.T) {
		reasons := []domain.FailReason{
			domain.ReasonInsufficientData, domain.ReasonNoInstability,
			domain.ReasonStrongCap, domain.ReasonModerateCap, domain.ReasonHighLCL,
			domain.ReasonDryBoundaryLayer, domain.ReasonWeakLowLapse,
			domain.ReasonWeakDeepShear, domain.ReasonOutflowDominant, domain.ReasonNoBoundary,
		}
		for _, r := range reasons {
			text := failModeText(domain.FailMode{Reason: r, Value: -100, Aux: 20})
			assert.NotEqual(t, r.String(), text, "reason %s has no phrasing", r)
		}

		notes := []domain.NoteKind{
			domain.NoteWeakCap, domain.NoteVeryLowLCL, domain.NoteElevatedLCL,
			domain.NoteMarginalMoisture, domain.NoteHighPrecipitableWater,
			domain.NoteMarginalTornado, domain.NoteEmbeddedRotation,
			domain.NoteLimitedCAPE, domain.NoteBoundaryProximity,
			domain.NoteInterpolatedLevels, domain.NoteLowResolutionWinds,
			domain.NoteFavorableMidLapse, domain.NoteShallowProfile,
		}
		for _, k := range notes {
			text := noteText(domain.Note{Kind: k, Value: 42}, domain.BoundarySignal{})
			assert.NotEqual(t, k.String(), text, "note %s has no phrasing", k)
		}
	})

	t.Run("shallow profile hedge", func(t *testing.T) {
		res := domain.DiagnosticResult{
			Verdict: domain.Verdict{
				Mode:  domain.ModeMulticell,
				Tier:  domain.TierLimited,
				Notes: []domain.Note{{Kind: domain.NoteShallowProfile}},
			},
		}
		n := Build(res)
		require.Len(t, n.Notes, 1)
		assert.Contains(t, n.Notes[0], "lifted index unavailable")
	})
}

func TestBoundaryGeoJSON(t *testing.T) {
	t.Run("absent boundary renders empty", func(t *testing.T) {
		fc := BoundaryGeoJSON(domain.BoundarySignal{Evaluated: true, Present: false})
		require.NotNil(t, fc)
		assert.Empty(t, fc.Features)
	})

	t.Run("steep cells become point features", func(t *testing.T) {
		sig := domain.BoundarySignal{
			Evaluated:   true,
			Present:     true,
			MaxGradient: 8.1,
			Side:        domain.SideWarmSector,
			SteepCells: []domain.GridCell{
				{Lat: 35.5, Lon: -98.1, ThetaE: 338},
				{Lat: 36.0, Lon: -98.0, ThetaE: 336},
			},
		}
		fc := BoundaryGeoJSON(sig)
		require.Len(t, fc.Features, 2)

		data, err := json.Marshal(fc)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"FeatureCollection"`)
		assert.Contains(t, string(data), `-98.1`)

		theta, err := fc.Features[0].PropertyFloat64("theta_e")
		require.NoError(t, err)
		assert.InDelta(t, 338.0, theta, 1e-9)
	})
}
