package domain

import "math"

const earthRadiusKM = 6371.0

// GridCell is one sample of a surface θe field.
type GridCell struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	ThetaE float64 `json:"theta_e"` // K
}

// ThetaEGrid is a local grid of equivalent potential temperature samples
// surrounding the analysis point, supplied by gridded forecast models.
type ThetaEGrid struct {
	Cells []GridCell `json:"cells"`
}

// BoundarySide classifies the analysis point relative to a detected θe
// boundary.
type BoundarySide int

const (
	SideUnknown BoundarySide = iota // no grid data
	SideWarmSector
	SideColdDry
	SideOnBoundary
)

func (s BoundarySide) String() string {
	switch s {
	case SideWarmSector:
		return "warm-sector"
	case SideColdDry:
		return "cold/dry-side"
	case SideOnBoundary:
		return "on-boundary"
	default:
		return "unknown"
	}
}

// BoundarySignal is the result of scanning a θe grid for mesoscale boundary
// signatures near the analysis point.
type BoundarySignal struct {
	// Evaluated is false when no grid was supplied (point-source models);
	// detection was skipped rather than negative.
	Evaluated bool `json:"evaluated"`

	Present     bool         `json:"present"`
	MaxGradient float64      `json:"max_gradient"` // K per 100 km
	Side        BoundarySide `json:"side"`

	// SteepCells are the grid cells whose gradient against the point meets
	// the threshold; the presentation layer draws them on a map.
	SteepCells []GridCell `json:"steep_cells,omitempty"`
}

// DetectBoundary scans a θe grid for gradient-based boundary signatures
// relative to the point (lat, lon, pointThetaE). The gradient to each cell
// is computed over great-circle distance and normalized to K per 100 km; a
// boundary is flagged when the maximum meets cfg.BoundaryGradientThreshold.
// A nil or empty grid yields an unevaluated signal.
func DetectBoundary(grid *ThetaEGrid, lat, lon, pointThetaE float64, cfg AnalysisConfig) BoundarySignal {
	if grid == nil || len(grid.Cells) == 0 {
		return BoundarySignal{Side: SideUnknown}
	}

	out := BoundarySignal{Evaluated: true, Side: SideOnBoundary}
	sum := 0.0
	counted := 0
	for _, c := range grid.Cells {
		distKM := haversineKM(lat, lon, c.Lat, c.Lon)
		if distKM < 1.0 {
			// The cell containing the point itself carries no gradient.
			continue
		}
		grad := math.Abs(c.ThetaE-pointThetaE) / distKM * 100.0
		if grad > out.MaxGradient {
			out.MaxGradient = grad
		}
		if grad >= cfg.BoundaryGradientThreshold {
			out.SteepCells = append(out.SteepCells, c)
		}
		sum += c.ThetaE
		counted++
	}
	if counted == 0 {
		return BoundarySignal{Evaluated: true, Side: SideUnknown}
	}

	out.Present = out.MaxGradient >= cfg.BoundaryGradientThreshold
	if !out.Present {
		out.Side = SideUnknown
		out.SteepCells = nil
		return out
	}

	// Warm sector: the point holds the high-θe air relative to the
	// surrounding field; cold/dry side: the low-θe air.
	mean := sum / float64(counted)
	switch {
	case pointThetaE > mean+cfg.BoundaryThetaEContrast:
		out.Side = SideWarmSector
	case pointThetaE < mean-cfg.BoundaryThetaEContrast:
		out.Side = SideColdDry
	default:
		out.Side = SideOnBoundary
	}
	return out
}

// haversineKM returns the great-circle distance between two WGS-84 points.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180.0
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2.0 * earthRadiusKM * math.Atan2(math.Sqrt(a), math.Sqrt(1.0-a))
}
