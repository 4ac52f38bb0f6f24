package domain

import "math"

// Vector is a horizontal wind vector in m/s components.
type Vector struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
}

// Magnitude returns the vector length in m/s.
func (v Vector) Magnitude() float64 { return math.Hypot(v.U, v.V) }

// Sub returns v − o.
func (v Vector) Sub(o Vector) Vector { return Vector{U: v.U - o.U, V: v.V - o.V} }

// DirSpeed converts a wind vector to meteorological direction (degrees the
// wind blows from) and speed.
func (v Vector) DirSpeed() (dirDeg, speed float64) {
	speed = v.Magnitude()
	dirDeg = math.Mod(math.Atan2(-v.U, -v.V)*180.0/math.Pi+360.0, 360.0)
	return dirDeg, speed
}

// WindLayer is the bulk shear over a (bottom, top) height layer.
type WindLayer struct {
	BottomM   float64 `json:"bottom_m"`
	TopM      float64 `json:"top_m"`
	Shear     Vector  `json:"shear"`     // Δu, Δv across the layer
	Magnitude float64 `json:"magnitude"` // m/s
}

// BulkShear returns the vector wind difference between two heights AGL,
// interpolating when the heights are not native levels.
func BulkShear(p *Profile, bottomM, topM float64) WindLayer {
	bot := p.WindAtHeight(bottomM)
	top := p.WindAtHeight(topM)
	shear := top.Sub(bot)
	return WindLayer{
		BottomM:   bottomM,
		TopM:      topM,
		Shear:     shear,
		Magnitude: shear.Magnitude(),
	}
}

// MeanWind returns the layer-mean wind via trapezoidal integration over the
// native levels inside [bottomM, topM]. Layers with fewer than two native
// levels fall back to the average of the interpolated endpoints.
func MeanWind(p *Profile, bottomM, topM float64) Vector {
	var hs []float64
	var us, vs []float64
	for _, l := range p.Levels {
		if l.HeightMAGL < bottomM || l.HeightMAGL > topM {
			continue
		}
		hs = append(hs, l.HeightMAGL)
		us = append(us, l.WindU)
		vs = append(vs, l.WindV)
	}
	if len(hs) < 2 {
		b := p.WindAtHeight(bottomM)
		t := p.WindAtHeight(topM)
		return Vector{U: (b.U + t.U) / 2.0, V: (b.V + t.V) / 2.0}
	}
	depth := hs[len(hs)-1] - hs[0]
	if depth < 1.0 {
		return Vector{U: us[0], V: vs[0]}
	}
	return Vector{U: trapz(hs, us) / depth, V: trapz(hs, vs) / depth}
}

func trapz(xs, ys []float64) float64 {
	sum := 0.0
	for i := 0; i < len(xs)-1; i++ {
		sum += (ys[i] + ys[i+1]) / 2.0 * (xs[i+1] - xs[i])
	}
	return sum
}

// StormMotion holds the Bunkers right-mover and left-mover estimates plus
// the deep-layer mean wind they deviate from. The right-mover and left-mover
// are reflections of each other across the mean wind.
type StormMotion struct {
	RightMover Vector `json:"right_mover"`
	LeftMover  Vector `json:"left_mover"`
	MeanWind   Vector `json:"mean_wind"`
}

// BunkersMotion estimates supercell motion with the Bunkers et al. (2000)
// internal-dynamics method: the 0–6 km mean wind plus a fixed-magnitude
// deviation rotated 90° clockwise (right-mover) or counter-clockwise
// (left-mover) from the 0–6 km shear vector.
func BunkersMotion(p *Profile, cfg AnalysisConfig) StormMotion {
	mean := MeanWind(p, 0.0, cfg.BunkersDepthM)
	shear := BulkShear(p, 0.0, cfg.BunkersDepthM)

	d := cfg.BunkersDeviationMS
	if shear.Magnitude < 0.5 {
		// Degenerate shear: no preferred deviation direction. Split the
		// deviation symmetrically so RM/LM still bracket the mean wind.
		return StormMotion{
			RightMover: Vector{U: mean.U + d/math.Sqrt2, V: mean.V - d/math.Sqrt2},
			LeftMover:  Vector{U: mean.U - d/math.Sqrt2, V: mean.V + d/math.Sqrt2},
			MeanWind:   mean,
		}
	}

	// Unit vector 90° clockwise from the shear vector.
	perpU := shear.Shear.V / shear.Magnitude
	perpV := -shear.Shear.U / shear.Magnitude

	return StormMotion{
		RightMover: Vector{U: mean.U + d*perpU, V: mean.V + d*perpV},
		LeftMover:  Vector{U: mean.U - d*perpU, V: mean.V - d*perpV},
		MeanWind:   mean,
	}
}

// HelicityLayer is the storm-relative helicity over a named height layer,
// referenced to a specific storm motion (right-mover by convention).
type HelicityLayer struct {
	BottomM float64 `json:"bottom_m"`
	TopM    float64 `json:"top_m"`
	Value   float64 `json:"value"` // m²/s², signed; positive = cyclonic

	// LowResolution is set when fewer than three native levels fall inside
	// the layer, so the integral is an estimate over interpolated endpoints.
	LowResolution bool `json:"low_resolution,omitempty"`
}

// ComputeSRH integrates storm-relative helicity over [bottomM, topM] by
// discrete summation over consecutive level pairs after subtracting the
// storm motion. The sign convention makes veering (clockwise-turning)
// hodographs positive when referenced to the right-mover.
func ComputeSRH(p *Profile, bottomM, topM float64, motion Vector) HelicityLayer {
	out := HelicityLayer{BottomM: bottomM, TopM: topM}

	type point struct {
		h float64
		w Vector
	}
	var pts []point
	native := 0
	for _, l := range p.Levels {
		if l.HeightMAGL < bottomM || l.HeightMAGL > topM {
			continue
		}
		pts = append(pts, point{h: l.HeightMAGL, w: Vector{U: l.WindU, V: l.WindV}})
		native++
	}

	// Anchor the integral on the exact layer endpoints when the native
	// levels do not reach them.
	if len(pts) == 0 || pts[0].h > bottomM {
		pts = append([]point{{h: bottomM, w: p.WindAtHeight(bottomM)}}, pts...)
	}
	if pts[len(pts)-1].h < topM && topM <= p.TopHeight() {
		pts = append(pts, point{h: topM, w: p.WindAtHeight(topM)})
	}

	out.LowResolution = native < 3
	if len(pts) < 2 {
		return out
	}

	srh := 0.0
	for i := 0; i < len(pts)-1; i++ {
		a := pts[i].w.Sub(motion)
		b := pts[i+1].w.Sub(motion)
		srh += b.U*a.V - a.U*b.V
	}
	out.Value = srh
	return out
}
