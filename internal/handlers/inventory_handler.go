package handlers

import (
	"encoding/json"
	"net/http"

	"dairy-backend/internal/middleware"
	"dairy-backend/internal/models"
	"dairy-backend/internal/services"
	"dairy-backend/internal/timeutil"
	"dairy-backend/pkg/utils"
)

type InventoryHandler struct {
	Inventory *services.InventoryService
	Demand    *services.DemandService
}

func NewInventoryHandler(inventory *services.InventoryService, demand *services.DemandService) *InventoryHandler {
	return &InventoryHandler{Inventory: inventory, Demand: demand}
}

func todayDate() string {
	return timeutil.Now().Format(timeutil.DateLayout)
}

// RecalculateDemand recomputes ordered quantities from active subscriptions
// for the date in the query (default today).
func (h *InventoryHandler) RecalculateDemand(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = todayDate()
	}
	email, _ := middleware.GetEmailFromContext(r.Context())
	records, err := h.Demand.Recalculate(r.Context(), date, email)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "demand recalculated", records)
}

func (h *InventoryHandler) SetOrdered(w http.ResponseWriter, r *http.Request) {
	var req models.SetInventoryQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email, _ := middleware.GetEmailFromContext(r.Context())
	record, err := h.Inventory.SetOrdered(r.Context(), &req, email)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "ordered quantity set", record)
}

func (h *InventoryHandler) SetReceived(w http.ResponseWriter, r *http.Request) {
	var req models.SetInventoryQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email, _ := middleware.GetEmailFromContext(r.Context())
	if err := h.Inventory.SetReceived(r.Context(), &req, email); err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "received quantity set", nil)
}

func (h *InventoryHandler) SetRemaining(w http.ResponseWriter, r *http.Request) {
	var req models.SetInventoryQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email, _ := middleware.GetEmailFromContext(r.Context())
	if err := h.Inventory.SetRemaining(r.Context(), &req, email); err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "remaining quantity set", nil)
}

func (h *InventoryHandler) ListDay(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = todayDate()
	}
	records, err := h.Inventory.ListDay(r.Context(), date)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", records)
}
