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

type CashHandler struct {
	Service *services.CashService
}

func NewCashHandler(s *services.CashService) *CashHandler {
	return &CashHandler{Service: s}
}

func (h *CashHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req models.ReportCashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record, err := h.Service.Report(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "cash reported", record)
}

func (h *CashHandler) GetWorkerDay(w http.ResponseWriter, r *http.Request) {
	workerID, err := strconv.Atoi(mux.Vars(r)["workerId"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid worker id")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = todayDate()
	}
	record, err := h.Service.GetWorkerDay(r.Context(), workerID, date)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", record)
}

func (h *CashHandler) ListDay(w http.ResponseWriter, r *http.Request) {
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
