package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	cfg := DefaultAnalysisConfig()

	t.Run("loaded gun supports supercells", func(t *testing.T) {
		grid := &ThetaEGrid{Cells: []GridCell{
			{Lat: 35.5, Lon: -98.1, ThetaE: 338},
			{Lat: 35.5, Lon: -97.0, ThetaE: 349},
			{Lat: 36.0, Lon: -97.5, ThetaE: 347},
		}}
		res, err := Analyze(loadedGunProfile(), grid, cfg)
		require.NoError(t, err)

		assert.Greater(t, res.Ingredients.ML.CAPE, 300.0)
		assert.Greater(t, res.Ingredients.SRH03.Value, 100.0)
		assert.Greater(t, res.Ingredients.Shear06.Magnitude, 20.0)
		assert.InDelta(t, res.Ingredients.SRH03.Value, res.Ingredients.EffectiveSRH, 1e-9,
			"buoyant uncapped parcel realizes the full 0-3 km helicity")
		assert.Greater(t, res.Composites.SCP, SCPFavorable)
		assert.Contains(t,
			[]ConvectiveMode{ModeSupercellular, ModeTornadicSupercell}, res.Mode)
		assert.GreaterOrEqual(t, res.Tier, TierLimited)
		assert.True(t, res.Ingredients.Boundary.Evaluated)

		assert.Equal(t, testValidTime, res.ValidTime)
		assert.Equal(t, 35.5, res.Lat)
	})

	t.Run("stable high-shear sounding yields nothing", func(t *testing.T) {
		res, err := Analyze(highShearStableProfile(), nil, cfg)
		require.NoError(t, err)

		assert.Equal(t, ModeNone, res.Mode)
		assert.Equal(t, TierNone, res.Tier)
		assert.Equal(t, CompositeSet{}, res.Composites)
		require.NotEmpty(t, res.FailModes)
		assert.Equal(t, ReasonNoInstability, res.FailModes[0].Reason)
		assert.Greater(t, res.FailModes[0].Aux, 15.0, "strong shear recorded for the narrative")
		assert.False(t, res.Ingredients.Boundary.Evaluated)
	})

	t.Run("capped sounding withholds effective helicity", func(t *testing.T) {
		res, err := Analyze(cappedProfile(), nil, cfg)
		require.NoError(t, err)

		assert.Less(t, res.Ingredients.ML.CIN, -200.0)
		assert.Zero(t, res.Ingredients.EffectiveSRH)
		assert.Zero(t, res.Composites.SCP)
		assert.Contains(t, failReasons(res.Verdict), ReasonStrongCap)
	})

	t.Run("invalid profile is fatal", func(t *testing.T) {
		p := loadedGunProfile()
		p.Levels = p.Levels[:1]
		_, err := Analyze(p, nil, cfg)
		assert.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("stamps results with the injected clock", func(t *testing.T) {
		now := time.Date(2024, 5, 18, 18, 30, 0, 0, time.UTC)
		SetClock(clockwork.NewFakeClockAt(now))
		defer SetClock(nil)

		res, err := Analyze(loadedGunProfile(), nil, cfg)
		require.NoError(t, err)
		assert.Equal(t, now, res.ComputedAt)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(testValidTime))
		defer SetClock(nil)

		a, err := Analyze(loadedGunProfile(), nil, cfg)
		require.NoError(t, err)
		b, err := Analyze(loadedGunProfile(), nil, cfg)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(a, b))
	})

	t.Run("result survives a JSON round trip", func(t *testing.T) {
		res, err := Analyze(loadedGunProfile(), nil, cfg)
		require.NoError(t, err)

		data, err := json.Marshal(res)
		require.NoError(t, err)
		var back DiagnosticResult
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Empty(t, cmp.Diff(res, back))
	})
}

func TestParseSoundingRequest(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		payload := []byte(`{
			"profile": {
				"valid_time": "2024-05-18T18:00:00Z",
				"source": "rap",
				"lat": 35.5, "lon": -97.5,
				"levels": [
					{"pressure_hpa": 1000, "height_m_agl": 0, "temp_c": 30, "dewpoint_c": 22, "wind_u_ms": 0, "wind_v_ms": 8},
					{"pressure_hpa": 500, "height_m_agl": 5900, "temp_c": -12, "dewpoint_c": -20, "wind_u_ms": 24, "wind_v_ms": 4}
				]
			},
			"grid": {"cells": [{"lat": 35.5, "lon": -98.1, "theta_e": 338}]}
		}`)
		req, err := ParseSoundingRequest(payload)
		require.NoError(t, err)
		assert.Equal(t, "rap", req.Profile.Source)
		assert.Len(t, req.Profile.Levels, 2)
		require.NotNil(t, req.Grid)
		assert.Len(t, req.Grid.Cells, 1)
	})

	t.Run("grid is optional", func(t *testing.T) {
		payload := []byte(`{"profile": {"valid_time": "2024-05-18T18:00:00Z", "levels": []}}`)
		req, err := ParseSoundingRequest(payload)
		require.NoError(t, err)
		assert.Nil(t, req.Grid)
	})

	t.Run("malformed JSON is a bad message", func(t *testing.T) {
		_, err := ParseSoundingRequest([]byte("{not json"))
		assert.ErrorIs(t, err, ErrBadMessage)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		_, err := ParseSoundingRequest([]byte(`{"profile": {"valid_time": "2024-05-18T18:00:00Z"}, "extra": 1}`))
		assert.ErrorIs(t, err, ErrBadMessage)
	})

	t.Run("missing valid time", func(t *testing.T) {
		_, err := ParseSoundingRequest([]byte(`{"profile": {"levels": []}}`))
		assert.ErrorIs(t, err, ErrBadMessage)
	})
}

func TestSerializeResult(t *testing.T) {
	res := DiagnosticResult{
		ValidTime: testValidTime,
		Lat:       35.5,
		Lon:       -97.5,
		Verdict:   Verdict{Mode: ModeSupercellular, Tier: TierEnhanced},
	}
	out, err := SerializeResult(res)
	require.NoError(t, err)

	assert.Equal(t, "35.5000,-97.5000@2024-05-18T18:00:00Z", string(out.Key))
	assert.Equal(t, "supercellular", out.Headers["mode"])
	assert.Equal(t, "enhanced", out.Headers["tier"])
	assert.Contains(t, string(out.Value), `"mode":"supercellular"`)
}
