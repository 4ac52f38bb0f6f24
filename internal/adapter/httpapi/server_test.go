package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/convective-diagnostics/internal/domain"
)

type fakeReady struct{ err error }

func (f fakeReady) CheckReadiness(context.Context) error { return f.err }

func newTestServer(ready error) *Server {
	return NewServer(":0", fakeReady{err: ready}, domain.DefaultAnalysisConfig(), slog.Default())
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
		assert.Equal(t, 200, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(errors.New("no messages yet"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
		assert.Equal(t, 503, rec.Code)
		assert.Contains(t, rec.Body.String(), "no messages yet")
	})
}

func TestAnalyzeEndpoint(t *testing.T) {
	const soundingJSON = `{
		"profile": {
			"valid_time": "2024-05-18T18:00:00Z",
			"source": "rap",
			"lat": 35.5, "lon": -97.5,
			"levels": [
				{"pressure_hpa": 1000, "height_m_agl": 0, "temp_c": 30, "dewpoint_c": 22, "wind_u_ms": 0, "wind_v_ms": 8},
				{"pressure_hpa": 850, "height_m_agl": 1400, "temp_c": 18, "dewpoint_c": 14, "wind_u_ms": 11, "wind_v_ms": 11},
				{"pressure_hpa": 700, "height_m_agl": 3100, "temp_c": 8, "dewpoint_c": 2, "wind_u_ms": 18, "wind_v_ms": 8},
				{"pressure_hpa": 500, "height_m_agl": 5900, "temp_c": -12, "dewpoint_c": -20, "wind_u_ms": 24, "wind_v_ms": 4},
				{"pressure_hpa": 300, "height_m_agl": 9700, "temp_c": -40, "dewpoint_c": -48, "wind_u_ms": 28, "wind_v_ms": 2}
			]
		}
	}`

	t.Run("returns result and narrative", func(t *testing.T) {
		srv := newTestServer(nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/analyze", strings.NewReader(soundingJSON)))

		require.Equal(t, 200, rec.Code)

		var resp AnalyzeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEqual(t, domain.ModeNone, resp.Result.Mode)
		assert.NotEmpty(t, resp.Narrative.Headline)
		assert.NotEmpty(t, resp.Narrative.Tier.Label)
		assert.Nil(t, resp.Boundary, "no grid supplied, no overlay")
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := newTestServer(nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/analyze", strings.NewReader("{nope")))
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("structurally invalid profile", func(t *testing.T) {
		body := `{"profile": {"valid_time": "2024-05-18T18:00:00Z", "levels": [{"pressure_hpa": 1000}]}}`
		srv := newTestServer(nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/analyze", strings.NewReader(body)))
		assert.Equal(t, 422, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid profile")
	})

	t.Run("method not allowed", func(t *testing.T) {
		srv := newTestServer(nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/analyze", nil))
		assert.Equal(t, 405, rec.Code)
	})
}
