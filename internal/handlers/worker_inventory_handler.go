package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dairy-backend/internal/models"
	"dairy-backend/internal/services"
	"dairy-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type WorkerInventoryHandler struct {
	Service *services.WorkerInventoryService
}

func NewWorkerInventoryHandler(s *services.WorkerInventoryService) *WorkerInventoryHandler {
	return &WorkerInventoryHandler{Service: s}
}

func (h *WorkerInventoryHandler) RecordPicked(w http.ResponseWriter, r *http.Request) {
	var req models.WorkerStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	records, err := h.Service.RecordPicked(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "pick-up recorded", records)
}

func (h *WorkerInventoryHandler) RecordRemaining(w http.ResponseWriter, r *http.Request) {
	var req models.WorkerStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	records, err := h.Service.RecordRemaining(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "remaining recorded", records)
}

func (h *WorkerInventoryHandler) ListDay(w http.ResponseWriter, r *http.Request) {
	workerID, err := strconv.Atoi(mux.Vars(r)["workerId"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid worker id")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = todayDate()
	}
	records, err := h.Service.ListDay(r.Context(), workerID, date)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", records)
}
