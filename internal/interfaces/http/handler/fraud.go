package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	fraudapp "fraud-scoring-engine/internal/application/fraud"
	"fraud-scoring-engine/internal/domain/fraud"
)

// FraudHandler handles fraud-related HTTP requests
type FraudHandler struct {
	analyzeUserUseCase *fraudapp.AnalyzeUserUseCase
}

// NewFraudHandler creates a new fraud handler
func NewFraudHandler(analyzeUserUseCase *fraudapp.AnalyzeUserUseCase) *FraudHandler {
	return &FraudHandler{analyzeUserUseCase: analyzeUserUseCase}
}

// AnalyzeUser handles POST /api/v1/fraud/analyze
func (h *FraudHandler) AnalyzeUser(w http.ResponseWriter, r *http.Request) {
	var req fraudapp.AnalyzeUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.analyzeUserUseCase.Execute(r.Context(), req.UserID)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetAssessment handles GET /api/v1/fraud/users/{id}/assessment
func (h *FraudHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	result, err := h.analyzeUserUseCase.GetAssessment(r.Context(), userID)
	if err != nil {
		if errors.Is(err, fraud.ErrAssessmentNotFound) {
			writeError(w, http.StatusNotFound, "No assessment found for user")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get assessment: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// BatchAnalyze handles POST /api/v1/fraud/analyze/batch
func (h *FraudHandler) BatchAnalyze(w http.ResponseWriter, r *http.Request) {
	var req fraudapp.BatchAnalyzeInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.UserIDs) == 0 {
		writeError(w, http.StatusBadRequest, "No users provided")
		return
	}

	result, err := h.analyzeUserUseCase.ExecuteBatch(r.Context(), req)
	if err != nil {
		if errors.Is(err, fraudapp.ErrBatchTooLarge) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Batch analysis failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fraud.ErrMissingUserID):
		writeError(w, http.StatusBadRequest, "User ID is required")
	case errors.Is(err, fraud.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "User profile not found")
	case errors.Is(err, fraud.ErrDependencyUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Analysis dependency unavailable: "+err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Fraud analysis failed: "+err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
