package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"

	"dairy-backend/internal/middleware"
	"dairy-backend/internal/models"
	"dairy-backend/internal/services"
	"dairy-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type BillHandler struct {
	Service *services.BillingService
}

func NewBillHandler(s *services.BillingService) *BillHandler {
	return &BillHandler{Service: s}
}

func (h *BillHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CreatedBy == "" {
		if email, ok := middleware.GetEmailFromContext(r.Context()); ok {
			req.CreatedBy = email
		}
	}
	resp, err := h.Service.Generate(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, "bill generated", resp)
}

func (h *BillHandler) Preview(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.Atoi(mux.Vars(r)["customerId"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	start := r.URL.Query().Get("start_date")
	end := r.URL.Query().Get("end_date")
	deliveries, summary, err := h.Service.Preview(r.Context(), customerID, start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", map[string]interface{}{
		"deliveries": deliveries,
		"summary":    summary,
	})
}

func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	bill, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", bill)
}

func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	if customerParam := r.URL.Query().Get("customer_id"); customerParam != "" {
		customerID, err := strconv.Atoi(customerParam)
		if err != nil {
			utils.Fail(w, http.StatusBadRequest, "invalid customer id")
			return
		}
		bills, err := h.Service.ListByCustomer(r.Context(), customerID)
		if err != nil {
			respondError(w, err)
			return
		}
		utils.Success(w, http.StatusOK, "", bills)
		return
	}
	bills, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", bills)
}

func (h *BillHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	if err := h.Service.MarkPaid(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "bill marked paid", nil)
}

// Download streams the stored PDF artifact.
func (h *BillHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	data, path, err := h.Service.OpenArtifact(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	w.Write(data)
}
