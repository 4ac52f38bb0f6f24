// Command genprofile generates synthetic sounding fixtures for testing the
// analyzer end to end. Each scenario is a complete sounding request ready to
// publish to the source topic or POST to /v1/analyze. It runs the actual
// analysis so the expected verdict is printed alongside each fixture.
//
// Usage:
//
//	go run ./cmd/genprofile -out data/fixtures
//	go run ./cmd/genprofile -scenario loaded-gun
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/convective-diagnostics/internal/domain"
)

var validTime = time.Date(2024, time.May, 18, 18, 0, 0, 0, time.UTC)

type scenario struct {
	name    string
	request domain.SoundingRequest
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "directory to write fixture files (stdout when empty)")
	only := flag.String("scenario", "", "generate a single scenario by name")
	flag.Parse()

	// Fixed clock for reproducible computed_at timestamps in the printed
	// verdicts.
	domain.SetClock(clockwork.NewFakeClockAt(validTime.Add(5 * time.Minute)))
	defer domain.SetClock(nil)

	scenarios := []scenario{
		{name: "loaded-gun", request: loadedGun()},
		{name: "capped", request: capped()},
		{name: "high-shear-no-cape", request: highShearNoCAPE()},
		{name: "quiescent", request: quiescent()},
	}

	cfg := domain.DefaultAnalysisConfig()
	for _, sc := range scenarios {
		if *only != "" && sc.name != *only {
			continue
		}
		data, err := json.MarshalIndent(sc.request, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", sc.name, err)
		}
		data = append(data, '\n')

		if *out == "" {
			fmt.Printf("--- %s ---\n%s", sc.name, data)
		} else {
			path := filepath.Join(*out, sc.name+".json")
			if err := os.MkdirAll(*out, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return err
			}
			log.Printf("wrote %s", path)
		}

		// Run the real analysis so test assertions can be copied from here.
		prof := sc.request.Profile
		res, err := domain.Analyze(&prof, sc.request.Grid, cfg)
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", sc.name, err)
		}
		log.Printf("%s: mode=%s tier=%s mlcape=%.0f mlcin=%.0f shear06=%.1f srh03=%.0f scp=%.2f stp=%.2f",
			sc.name, res.Mode, res.Tier,
			res.Ingredients.ML.CAPE, res.Ingredients.ML.CIN,
			res.Ingredients.Shear06.Magnitude, res.Ingredients.SRH03.Value,
			res.Composites.SCP, res.Composites.STP)
	}
	return nil
}

func levels(rows [][6]float64) []domain.Level {
	out := make([]domain.Level, len(rows))
	for i, r := range rows {
		out[i] = domain.Level{
			PressureHPa: r[0], HeightMAGL: r[1],
			TempC: r[2], DewpointC: r[3],
			WindU: r[4], WindV: r[5],
		}
	}
	return out
}

// loadedGun: large CAPE under a weak cap with strongly veering flow, plus a
// dryline to the west in the θe grid.
func loadedGun() domain.SoundingRequest {
	return domain.SoundingRequest{
		Profile: domain.Profile{
			ValidTime: validTime, Source: "genprofile", Lat: 35.5, Lon: -97.5,
			Levels: levels([][6]float64{
				{1000, 0, 30, 22, 0, 8},
				{950, 450, 26, 20, 4, 10},
				{900, 900, 22, 18, 8, 11},
				{850, 1400, 18, 14, 11, 11},
				{800, 1950, 14, 10, 14, 10},
				{700, 3100, 8, 2, 18, 8},
				{600, 4400, -2, -8, 21, 6},
				{500, 5900, -12, -20, 24, 4},
				{400, 7600, -24, -32, 26, 3},
				{300, 9700, -40, -48, 28, 2},
			}),
		},
		Grid: &domain.ThetaEGrid{Cells: []domain.GridCell{
			{Lat: 35.5, Lon: -98.2, ThetaE: 336},
			{Lat: 35.8, Lon: -98.2, ThetaE: 337},
			{Lat: 35.5, Lon: -97.0, ThetaE: 349},
			{Lat: 36.0, Lon: -97.5, ThetaE: 347},
		}},
	}
}

// capped: surface moisture trapped under a strong elevated inversion.
func capped() domain.SoundingRequest {
	return domain.SoundingRequest{
		Profile: domain.Profile{
			ValidTime: validTime, Source: "genprofile", Lat: 32.8, Lon: -96.8,
			Levels: levels([][6]float64{
				{1000, 0, 28, 20, 5, 2},
				{950, 450, 25.5, 18, 7, 2},
				{900, 910, 23, 16, 9, 3},
				{850, 1390, 22, 8, 11, 3},
				{800, 1900, 19, 4, 13, 4},
				{700, 3010, 13, 0, 15, 4},
				{600, 4280, 4, -6, 17, 5},
				{500, 5750, -10, -22, 18, 5},
				{400, 7500, -22, -30, 19, 5},
				{300, 9600, -38, -46, 20, 5},
			}),
		},
	}
}

// highShearNoCAPE: a strongly sheared but stable cold-season profile. No
// composite may fire.
func highShearNoCAPE() domain.SoundingRequest {
	return domain.SoundingRequest{
		Profile: domain.Profile{
			ValidTime: validTime, Source: "genprofile", Lat: 41.9, Lon: -87.6,
			Levels: levels([][6]float64{
				{1000, 0, 10, 2, 0, 8},
				{925, 690, 8, 0, 6, 11},
				{850, 1420, 7, -2, 12, 11},
				{700, 2980, 2, -8, 20, 8},
				{500, 5600, -12, -25, 28, 4},
				{300, 9300, -40, -55, 34, 2},
			}),
		},
	}
}

// quiescent: warm, dry, lightly sheared. Nothing of interest anywhere.
func quiescent() domain.SoundingRequest {
	return domain.SoundingRequest{
		Profile: domain.Profile{
			ValidTime: validTime, Source: "genprofile", Lat: 39.7, Lon: -105.0,
			Levels: levels([][6]float64{
				{1000, 0, 24, 2, 2, 2},
				{925, 700, 18, 0, 3, 2},
				{850, 1450, 12, -4, 4, 3},
				{700, 3050, 4, -12, 5, 3},
				{500, 5700, -14, -30, 7, 4},
				{300, 9400, -42, -58, 9, 4},
			}),
		},
	}
}
