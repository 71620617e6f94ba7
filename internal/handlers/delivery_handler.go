package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dairy-backend/internal/middleware"
	"dairy-backend/internal/models"
	"dairy-backend/internal/services"
	"dairy-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type DeliveryHandler struct {
	Service *services.DeliveryService
}

func NewDeliveryHandler(s *services.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{Service: s}
}

// Record accepts one delivery. A duplicate submission for the same customer,
// product and day succeeds with is_duplicate=true and writes nothing.
func (h *DeliveryHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req models.RecordDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email, _ := middleware.GetEmailFromContext(r.Context())
	outcome, err := h.Service.Record(r.Context(), &req, email)
	if err != nil {
		respondError(w, err)
		return
	}
	if outcome.IsDuplicate {
		utils.Success(w, http.StatusOK, "delivery already recorded for today", outcome)
		return
	}
	utils.Success(w, http.StatusCreated, outcome.CollectionStatus, outcome)
}

func (h *DeliveryHandler) ListToday(w http.ResponseWriter, r *http.Request) {
	deliveries, err := h.Service.ListToday(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", deliveries)
}

func (h *DeliveryHandler) ListWorkerDay(w http.ResponseWriter, r *http.Request) {
	workerID, err := strconv.Atoi(mux.Vars(r)["workerId"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid worker id")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = todayDate()
	}
	deliveries, err := h.Service.ListWorkerDay(r.Context(), workerID, date)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", deliveries)
}
