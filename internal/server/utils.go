package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"plantcast/internal/models"
)

// Open-Meteo serves at most 16 forecast days, so requests are capped there.
const maxForecastDays = 16

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status": "error",
		"error":  message,
	})
}

// writeConflict answers a mutating request that lost the run mutex.
func writeConflict(w http.ResponseWriter, operation string) {
	writeJSON(w, http.StatusConflict, map[string]interface{}{
		"status": "conflict",
		"error":  fmt.Sprintf("another run is already in progress, retry %s later", operation),
	})
}

func parsePositiveInt(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("not a positive integer: %q", v)
	}
	return n, nil
}

// queryFloat parses a required float query parameter.
func queryFloat(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, fmt.Errorf("missing required parameter %q", name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be a number", name)
	}
	return f, nil
}

// parseForecastQuery reads the /forecast and /report parameter convention:
// fuel_type, max_capacity_mw, run_hours, fuel_used, days.
func parseForecastQuery(r *http.Request) (models.ForecastRequest, error) {
	var req models.ForecastRequest

	req.FuelType = r.URL.Query().Get("fuel_type")

	var err error
	if req.MaxCapacityMW, err = queryFloat(r, "max_capacity_mw"); err != nil {
		return req, err
	}
	if req.RunHours, err = queryFloat(r, "run_hours"); err != nil {
		return req, err
	}
	if req.FuelUsedCurrent, err = queryFloat(r, "fuel_used"); err != nil {
		return req, err
	}
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return req, fmt.Errorf("days must be a positive integer")
		}
		req.Days = n
	}

	if err := validateForecastRequest(req); err != nil {
		return req, err
	}
	return req, nil
}

// parsePerformanceQuery reads the short parameter names of the operators'
// performance check: fuel, runtime, cap, cur. The horizon is pinned to one
// day since only the first outcome is returned.
func parsePerformanceQuery(r *http.Request) (models.ForecastRequest, error) {
	req := models.ForecastRequest{
		FuelType: r.URL.Query().Get("fuel"),
		Days:     1,
	}

	var err error
	if req.RunHours, err = queryFloat(r, "runtime"); err != nil {
		return req, err
	}
	if req.MaxCapacityMW, err = queryFloat(r, "cap"); err != nil {
		return req, err
	}
	if req.FuelUsedCurrent, err = queryFloat(r, "cur"); err != nil {
		return req, err
	}

	if err := validateForecastRequest(req); err != nil {
		return req, err
	}
	return req, nil
}

func validateForecastRequest(req models.ForecastRequest) error {
	if req.FuelType == "" {
		return fmt.Errorf("fuel_type is required")
	}
	if req.MaxCapacityMW <= 0 {
		return fmt.Errorf("max_capacity_mw must be positive")
	}
	if req.RunHours <= 0 || req.RunHours > 24 {
		return fmt.Errorf("run_hours must be between 0 and 24")
	}
	if req.FuelUsedCurrent <= 0 {
		return fmt.Errorf("fuel_used must be positive")
	}
	if req.Days < 0 || req.Days > maxForecastDays {
		return fmt.Errorf("days must be between 1 and %d", maxForecastDays)
	}
	return nil
}
