package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/domain"
	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/usecase"
)

type memLoader struct {
	stations map[string]domain.Station
}

func (m *memLoader) LoadStation(stationID string) (domain.Station, error) {
	st, ok := m.stations[stationID]
	if !ok {
		return domain.Station{}, fmt.Errorf("unknown station %q", stationID)
	}
	return st, nil
}

func (m *memLoader) ListStations() ([]string, error) {
	ids := make([]string, 0, len(m.stations))
	for id := range m.stations {
		ids = append(ids, id)
	}
	return ids, nil
}

func testRouter() *gin.Engine {
	uc := usecase.NewPredictionUseCase(&memLoader{stations: map[string]domain.Station{
		"harbor": {
			ID:    "harbor",
			Name:  "Test Harbor",
			Datum: "MSL",
			Constituents: []domain.HarmonicConstant{
				{Symbol: "M2", AmplitudeM: 1.2, PhaseDeg: 45},
				{Symbol: "S2", AmplitudeM: 0.4, PhaseDeg: 60},
			},
		},
	}})
	return SetupRouter(uc, zerolog.Nop(), nil)
}

func doRequest(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := doRequest(t, testRouter(), "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestGetConstituents(t *testing.T) {
	w := doRequest(t, testRouter(), "/v1/constituents")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Constituents []ConstituentInfo `json:"constituents"`
		Count        int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count < 30 {
		t.Errorf("expected a full catalog, got %d constituents", body.Count)
	}

	found := false
	for _, c := range body.Constituents {
		if c.Symbol == "M2" {
			found = true
			if c.SpeedDegPerHr < 28.98 || c.SpeedDegPerHr > 28.99 {
				t.Errorf("M2 speed: expected ~28.984, got %f", c.SpeedDegPerHr)
			}
		}
	}
	if !found {
		t.Error("M2 missing from catalog listing")
	}
}

func TestGetStations(t *testing.T) {
	w := doRequest(t, testRouter(), "/v1/stations")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Stations []string `json:"stations"`
		Count    int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 1 || body.Stations[0] != "harbor" {
		t.Errorf("unexpected stations %v", body.Stations)
	}
}

func TestGetPredictions(t *testing.T) {
	path := "/v1/tides/predictions?station_id=harbor&start=2025-03-01T00:00:00Z&end=2025-03-02T00:00:00Z&interval=1h"
	w := doRequest(t, testRouter(), path)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body usecase.PredictionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Predictions) != 25 {
		t.Errorf("expected 25 predictions, got %d", len(body.Predictions))
	}
	if body.StationID != "harbor" || body.Datum != "MSL" {
		t.Errorf("unexpected metadata %s/%s", body.StationID, body.Datum)
	}
}

func TestGetPredictions_MissingParams(t *testing.T) {
	router := testRouter()

	cases := []string{
		"/v1/tides/predictions",
		"/v1/tides/predictions?station_id=harbor",
		"/v1/tides/predictions?station_id=harbor&start=2025-03-01T00:00:00Z",
		"/v1/tides/predictions?station_id=harbor&start=bogus&end=2025-03-02T00:00:00Z",
		"/v1/tides/predictions?station_id=harbor&start=2025-03-01T00:00:00Z&end=2025-03-02T00:00:00Z&interval=nope",
	}
	for _, path := range cases {
		if w := doRequest(t, router, path); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestGetHeight(t *testing.T) {
	path := "/v1/tides/height?station_id=harbor&time=2025-03-01T06:00:00Z"
	w := doRequest(t, testRouter(), path)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body usecase.SingleHeightResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Time != "2025-03-01T06:00:00Z" {
		t.Errorf("unexpected time %s", body.Time)
	}
	// Height is bounded by the sum of amplitudes.
	if body.HeightM < -1.7 || body.HeightM > 1.7 {
		t.Errorf("height %.3f outside amplitude bound", body.HeightM)
	}
}

func TestGetDecomposition(t *testing.T) {
	path := "/v1/tides/decomposition?station_id=harbor&start=2025-03-01T00:00:00Z&end=2025-03-01T12:00:00Z&interval=1h&constituents=M2,S2"
	w := doRequest(t, testRouter(), path)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body usecase.DecompositionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Contributions) != 2 {
		t.Errorf("expected 2 contributions, got %d", len(body.Contributions))
	}
}

func TestGetSpringNeap(t *testing.T) {
	path := "/v1/astro/springneap?start=2025-01-01T00:00:00Z&end=2025-01-31T00:00:00Z"
	w := doRequest(t, testRouter(), path)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Days  []usecase.SpringNeapEntry `json:"days"`
		Count int                       `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 30 {
		t.Errorf("expected 30 days, got %d", body.Count)
	}
}
