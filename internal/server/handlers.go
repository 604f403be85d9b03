package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"plantcast/internal/dataset"
	"plantcast/internal/models"
	"plantcast/internal/storage"
)

const landingPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Plantcast</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 720px; margin: 60px auto; color: #333; padding: 0 20px; }
        h1 { color: #2e8b57; }
        code { background: #f4f4f4; padding: 2px 6px; border-radius: 3px; }
        li { margin: 8px 0; }
    </style>
</head>
<body>
    <h1>Plantcast</h1>
    <p>No generation forecast reports have been published yet.</p>
    <ol>
        <li><code>POST /generate</code> to build a synthetic training set</li>
        <li><code>POST /train</code> to fit the per-fuel models</li>
        <li><code>POST /report?fuel_type=coal&amp;max_capacity_mw=150&amp;run_hours=20&amp;fuel_used=9000</code> to publish the first report</li>
    </ol>
</body>
</html>
`

// HandleRoot redirects to the latest published report, or serves the landing
// page when none exist yet.
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	latest, err := s.Storage.GetLatestReport(r.Context())
	if err != nil {
		s.log.Debug("No reports available, serving landing page")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, landingPageHTML)
		return
	}

	http.Redirect(w, r, "/files/"+latest, http.StatusFound)
}

// HandleHealth provides the health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := map[string]string{
		"storage": "ok",
		"config":  "ok",
	}
	status := "healthy"
	if s.Storage == nil {
		checks["storage"] = "unavailable"
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"mode":      string(s.DeploymentMode),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}

// HandleGenerate runs the synthetic sample generator and appends the result
// to the sample store.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.runMu.TryLock() {
		writeConflict(w, "sample generation")
		return
	}
	defer s.runMu.Unlock()

	count := s.Config.TrainSampleCount
	if v := r.URL.Query().Get("samples"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "samples must be a positive integer")
			return
		}
		count = n
	}

	s.log.Info("Generating synthetic samples", map[string]interface{}{"count": count})
	samples := s.Generator.Generate(count)
	if err := s.Samples.Append(samples); err != nil {
		s.log.Error("Failed to append samples", err)
		writeError(w, http.StatusInternalServerError, "failed to store samples: "+err.Error())
		return
	}

	total, err := s.Samples.Count()
	if err != nil {
		s.log.Warn("Failed to count sample store", map[string]interface{}{"error": err.Error()})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "success",
		"samples_generated": len(samples),
		"store_count":       total,
	})
}

// HandleTrain fits one model per fuel type from the accumulated samples.
func (s *Server) HandleTrain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.runMu.TryLock() {
		writeConflict(w, "training")
		return
	}
	defer s.runMu.Unlock()

	start := time.Now()
	trainReports, err := s.Trainer.Train(r.Context())
	if err != nil {
		if errors.Is(err, dataset.ErrEmptyStore) {
			writeError(w, http.StatusBadRequest, "sample store is empty, run /generate first")
			return
		}
		s.log.Error("Training failed", err)
		writeError(w, http.StatusInternalServerError, "training failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"duration": time.Since(start).Round(time.Millisecond).String(),
		"reports":  trainReports,
	})
}

// HandleForecast runs the forecast pipeline and returns the full result.
func (s *Server) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := parseForecastQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.Forecasts.Forecast(r.Context(), req)
	if err != nil {
		s.log.Error("Forecast failed", err)
		writeError(w, http.StatusInternalServerError, "forecast failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandlePerformance runs the forecast for a single day and answers with the
// first day's outcome. Parameter names follow the plant operators' habit:
// fuel, runtime, cap, cur.
func (s *Server) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := parsePerformanceQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.Forecasts.Forecast(r.Context(), req)
	if err != nil {
		s.log.Error("Performance lookup failed", err)
		writeError(w, http.StatusInternalServerError, "forecast failed: "+err.Error())
		return
	}
	if len(result.Days) == 0 {
		writeError(w, http.StatusInternalServerError, "forecast produced no days")
		return
	}
	writeJSON(w, http.StatusOK, result.Days[0])
}

// HandleReport runs the full report pipeline and answers with the summary.
// Plant parameters come from the query string or a JSON request body.
func (s *Server) HandleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.runMu.TryLock() {
		writeConflict(w, "report generation")
		return
	}
	defer s.runMu.Unlock()

	req, err := parseReportRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.Reports.GenerateReport(r.Context(), req)
	if err != nil {
		s.log.Error("Report generation failed", err)
		writeError(w, http.StatusInternalServerError, "report generation failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleListReports lists stored reports, newest first.
func (s *Server) HandleListReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > 100 {
		limit = 100
	}

	reportPaths, err := s.Storage.ListReports(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to list reports", err)
		writeError(w, http.StatusInternalServerError, "failed to list reports: "+err.Error())
		return
	}

	urls := make([]string, 0, len(reportPaths))
	for _, p := range reportPaths {
		urls = append(urls, "/files/"+p)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports":   urls,
		"count":     len(urls),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleFileProxy serves stored report files through the storage client, so
// the same URLs work for local and GCS backends.
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	if filePath == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}
	if strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	fileData, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		s.log.Debug("File not found", map[string]interface{}{"path": filePath})
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(fileData)
}

// parseReportRequest reads the plant parameters from the query string, or
// from a JSON body when no query parameters are present.
func parseReportRequest(r *http.Request) (models.ForecastRequest, error) {
	if r.URL.Query().Get("fuel_type") != "" {
		return parseForecastQuery(r)
	}

	var req models.ForecastRequest
	if r.Body == nil {
		return req, fmt.Errorf("fuel_type query parameter or JSON body required")
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("invalid request body: %v", err)
	}
	if err := validateForecastRequest(req); err != nil {
		return req, err
	}
	return req, nil
}
