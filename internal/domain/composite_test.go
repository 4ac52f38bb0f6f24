package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// severeIngredients is a textbook outbreak environment: large CAPE, low LCL,
// strong veering shear, weak cap.
func severeIngredients() Ingredients {
	return Ingredients{
		ML: DerivedThermo{Kind: MixedLayer, CAPE: 3000, CIN: -25, LCLHeightM: 750},
		MU: DerivedThermo{Kind: MostUnstable, CAPE: 3000, CIN: -10, LCLHeightM: 700},
		MidLapseRate:        7.5,
		LowLapseRate:        7.0,
		PrecipitableWaterMM: 38,
		SurfaceRH:           65,
		MUMixingRatio:       14,
		Temp500C:            -12,
		FreezingLevelM:      3800,
		Shear01:             WindLayer{TopM: 1000, Magnitude: 10},
		Shear06:             WindLayer{TopM: 6000, Magnitude: 25},
		Shear36:             WindLayer{BottomM: 3000, TopM: 6000, Magnitude: 14},
		SRH01:               HelicityLayer{TopM: 1000, Value: 250},
		SRH03:               HelicityLayer{TopM: 3000, Value: 400},
		EffectiveSRH:        400,
	}
}

func TestComputeComposites(t *testing.T) {
	cfg := DefaultAnalysisConfig()

	t.Run("outbreak environment", func(t *testing.T) {
		c := ComputeComposites(severeIngredients(), cfg)

		// SCP = (3000/1000)·(400/50)·1.0, shear term capped at 25 m/s.
		assert.InDelta(t, 24.0, c.SCP, 1e-9)
		// STP = (3000/1500)·1.0·(250/150)·(25/20)·1.0.
		assert.InDelta(t, 4.1667, c.STP, 0.001)
		assert.InDelta(t, 4.6875, c.EHI01, 1e-9)
		assert.InDelta(t, 7.5, c.EHI03, 1e-9)
		assert.InDelta(t, 75000.0, c.CravenBrooks, 1e-9)
		// VGP = (25/6000)·√3000.
		assert.InDelta(t, 0.2282, c.VGP, 0.001)
		assert.Greater(t, c.SHIP, SHIPSignificant)
	})

	t.Run("strict gating zeroes everything without CAPE", func(t *testing.T) {
		ing := severeIngredients()
		ing.ML.CAPE = 0
		ing.MU.CAPE = 0
		c := ComputeComposites(ing, cfg)
		assert.Equal(t, CompositeSet{}, c)
	})

	t.Run("zero SRH disables rotation composites", func(t *testing.T) {
		ing := severeIngredients()
		ing.EffectiveSRH = 0
		ing.SRH01.Value = 0
		ing.SRH03.Value = -50
		c := ComputeComposites(ing, cfg)
		assert.Zero(t, c.SCP)
		assert.Zero(t, c.STP)
		assert.Zero(t, c.EHI01)
		assert.Zero(t, c.EHI03)
	})

	t.Run("shear below the floor zeroes SCP and STP", func(t *testing.T) {
		ing := severeIngredients()
		ing.Shear06.Magnitude = 8
		c := ComputeComposites(ing, cfg)
		assert.Zero(t, c.SCP)
		assert.Zero(t, c.STP)
		assert.Positive(t, c.EHI01, "EHI carries no shear term")
	})
}

func TestSignificantTornado(t *testing.T) {
	cfg := DefaultAnalysisConfig()

	t.Run("high LCL erodes the tornado signal", func(t *testing.T) {
		low := significantTornado(2000, 800, 200, 20, -10, cfg)
		high := significantTornado(2000, 1900, 200, 20, -10, cfg)
		assert.Greater(t, low, high)
		assert.Positive(t, high)
		// Above 2000 m the LCL term vanishes entirely.
		assert.Zero(t, significantTornado(2000, 2300, 200, 20, -10, cfg))
	})

	t.Run("strong cap erodes the tornado signal", func(t *testing.T) {
		weak := significantTornado(2000, 800, 200, 20, -30, cfg)
		strong := significantTornado(2000, 800, 200, 20, -180, cfg)
		assert.Greater(t, weak, strong)
		assert.Zero(t, significantTornado(2000, 800, 200, 20, -250, cfg))
	})
}

func TestSignificantHail(t *testing.T) {
	t.Run("reference environment", func(t *testing.T) {
		// 2500·13·7.5·12·20 / 42e6 with no low-end reductions.
		got := significantHail(2500, 13, 7.5, -12, 20, 3500)
		assert.InDelta(t, 1.3929, got, 0.001)
	})

	t.Run("clamps extreme inputs", func(t *testing.T) {
		unclamped := significantHail(2500, 13.6, 7.5, -12, 27, 3500)
		assert.InDelta(t, unclamped, significantHail(2500, 20, 7.5, -12, 35, 3500), 1e-9)
	})

	t.Run("low CAPE reduction", func(t *testing.T) {
		full := significantHail(1300, 13, 7.5, -12, 20, 3500)
		reduced := significantHail(650, 13, 7.5, -12, 20, 3500)
		// Base scales with CAPE and the sub-1300 multiplier halves it again.
		assert.InDelta(t, full/4, reduced, 0.001)
	})

	t.Run("warm mid-levels suppress hail", func(t *testing.T) {
		cold := significantHail(2500, 13, 7.5, -15, 20, 3500)
		warm := significantHail(2500, 13, 7.5, -3, 20, 3500)
		assert.Greater(t, cold, warm)
	})

	t.Run("low freezing level reduction", func(t *testing.T) {
		high := significantHail(2500, 13, 7.5, -12, 20, 3000)
		low := significantHail(2500, 13, 7.5, -12, 20, 1200)
		assert.InDelta(t, high/2, low, 0.001)
	})
}

func TestShearFactor(t *testing.T) {
	assert.Zero(t, shearFactor(9.9, 10, 20, 1.0))
	assert.InDelta(t, 0.75, shearFactor(15, 10, 20, 1.0), 1e-9)
	assert.InDelta(t, 1.0, shearFactor(25, 10, 20, 1.0), 1e-9)
	assert.InDelta(t, 1.5, shearFactor(35, 12.5, 30, 1.5), 1e-9)
}
