package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/usecase"
)

// Handler handles HTTP requests for tide predictions.
type Handler struct {
	predictionUC *usecase.PredictionUseCase
}

// NewHandler creates a new HTTP handler.
func NewHandler(predictionUC *usecase.PredictionUseCase) *Handler {
	return &Handler{
		predictionUC: predictionUC,
	}
}

// GetPredictions handles GET /v1/tides/predictions.
func (h *Handler) GetPredictions(c *gin.Context) {
	req, ok := h.parsePredictionRequest(c)
	if !ok {
		return
	}

	response, err := h.predictionUC.Execute(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetHeight handles GET /v1/tides/height: the instantaneous height at one
// time, optionally for a constituent subset.
func (h *Handler) GetHeight(c *gin.Context) {
	stationID := c.Query("station_id")
	if stationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station_id parameter is required"})
		return
	}

	atStr := c.Query("time")
	at := time.Now().UTC()
	if atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid time (expected RFC3339): %v", err)})
			return
		}
		at = parsed.UTC()
	}

	response, err := h.predictionUC.SingleHeight(stationID, at, parseSymbols(c.Query("constituents")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetDecomposition handles GET /v1/tides/decomposition: per-constituent
// curves plus the combined tide over the same grid.
func (h *Handler) GetDecomposition(c *gin.Context) {
	req, ok := h.parsePredictionRequest(c)
	if !ok {
		return
	}

	response, err := h.predictionUC.Decomposition(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSpringNeap handles GET /v1/astro/springneap.
func (h *Handler) GetSpringNeap(c *gin.Context) {
	start, end, ok := parseTimeRange(c)
	if !ok {
		return
	}

	entries, err := h.predictionUC.SpringNeapCalendar(start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":  entries,
		"count": len(entries),
	})
}

// GetStations handles GET /v1/stations.
func (h *Handler) GetStations(c *gin.Context) {
	ids, err := h.predictionUC.ListStations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stations": ids,
		"count":    len(ids),
	})
}

// ConstituentInfo is one catalog row in the listing response.
type ConstituentInfo struct {
	Symbol        string  `json:"symbol"`
	SpeedDegPerHr float64 `json:"speed_deg_per_hr"`
	Family        string  `json:"family"`
	Doodson       [6]int  `json:"doodson"`
	Description   string  `json:"description,omitempty"`
}

// GetConstituents handles GET /v1/constituents.
func (h *Handler) GetConstituents(c *gin.Context) {
	defs := h.predictionUC.Catalog().Definitions()

	response := make([]ConstituentInfo, len(defs))
	for i, d := range defs {
		response[i] = ConstituentInfo{
			Symbol:        d.Symbol,
			SpeedDegPerHr: d.SpeedDegPerHr,
			Family:        string(d.Family),
			Doodson:       d.Doodson,
			Description:   d.Description,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"constituents": response,
		"count":        len(response),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) parsePredictionRequest(c *gin.Context) (usecase.PredictionRequest, bool) {
	var req usecase.PredictionRequest

	req.StationID = c.Query("station_id")
	if req.StationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station_id parameter is required"})
		return req, false
	}

	start, end, ok := parseTimeRange(c)
	if !ok {
		return req, false
	}
	req.Start = start
	req.End = end

	intervalStr := c.DefaultQuery("interval", "10m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid interval: %v", err)})
		return req, false
	}
	req.Interval = interval

	req.Constituents = parseSymbols(c.Query("constituents"))

	if workersStr := c.Query("workers"); workersStr != "" {
		workers, err := strconv.Atoi(workersStr)
		if err != nil || workers < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid workers: %s", workersStr)})
			return req, false
		}
		req.Workers = workers
	}

	return req, true
}

func parseTimeRange(c *gin.Context) (time.Time, time.Time, bool) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start parameter is required"})
		return time.Time{}, time.Time{}, false
	}
	if endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end parameter is required"})
		return time.Time{}, time.Time{}, false
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid start time (expected RFC3339): %v", err)})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid end time (expected RFC3339): %v", err)})
		return time.Time{}, time.Time{}, false
	}

	return start.UTC(), end.UTC(), true
}

func parseSymbols(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}
