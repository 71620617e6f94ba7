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

type CustomerHandler struct {
	Service *services.CustomerService
}

func NewCustomerHandler(s *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: s}
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Service.Create(r.Context(), &customer); err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, "customer created", customer)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	customer, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", customer)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", customers)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	customer.ID = id
	if err := h.Service.Update(r.Context(), &customer); err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "customer updated", customer)
}

func (h *CustomerHandler) UpsertSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	var req models.UpsertSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.CustomerID = id
	sub, err := h.Service.UpsertSubscription(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "subscription saved", sub)
}

func (h *CustomerHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	subs, err := h.Service.ListSubscriptions(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", subs)
}
