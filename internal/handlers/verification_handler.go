package handlers

import (
	"encoding/json"
	"net/http"

	"dairy-backend/internal/middleware"
	"dairy-backend/internal/models"
	"dairy-backend/internal/services"
	"dairy-backend/pkg/utils"
)

type VerificationHandler struct {
	Service *services.VerificationService
}

func NewVerificationHandler(s *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{Service: s}
}

// Submit runs the end-of-day reconciliation for today. Repeat submissions
// share the day's verification ID and upsert lines in place.
func (h *VerificationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VerifiedBy == "" {
		if email, ok := middleware.GetEmailFromContext(r.Context()); ok {
			req.VerifiedBy = email
		}
	}
	result, err := h.Service.Submit(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "verification submitted", result)
}

func (h *VerificationHandler) ListDay(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = todayDate()
	}
	records, err := h.Service.ListDay(r.Context(), date)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", records)
}
