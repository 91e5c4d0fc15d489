package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andresolmos/recurrente/internal/model"
)

// forecastResponse is the JSON shape for a successful forecast. The
// insufficient-data case uses a distinguishable shape, never a sentinel
// number.
type forecastResponse struct {
	Status   string          `json:"status"`
	Forecast *model.Forecast `json:"forecast,omitempty"`
	Reason   string          `json:"reason,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.analyzer.Customers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list customers", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": customers})
}

// handleClassification returns one row per merchant, or one row per
// transaction when ?detail=rows is given.
func (s *Server) handleClassification(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")

	if r.URL.Query().Get("detail") == "rows" {
		tagged, err := s.analyzer.ClassifyTagged(r.Context(), customerID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "classification failed", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": tagged})
		return
	}

	classifications, err := s.analyzer.Classify(r.Context(), customerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "classification failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"classification": classifications})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")

	forecast, err := s.analyzer.Forecast(r.Context(), customerID)
	if err != nil {
		var insufficient *model.InsufficientDataError
		if errors.As(err, &insufficient) {
			// A valid outcome, not a fault.
			writeJSON(w, http.StatusOK, forecastResponse{
				Status: "insufficient_data",
				Reason: insufficient.Error(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "forecast failed", err)
		return
	}

	writeJSON(w, http.StatusOK, forecastResponse{
		Status:   "ok",
		Forecast: forecast,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	slog.Error(message, "error", err)
	writeJSON(w, status, map[string]string{"error": message})
}
