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

type ProductHandler struct {
	Service *services.ProductService
}

func NewProductHandler(s *services.ProductService) *ProductHandler {
	return &ProductHandler{Service: s}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	product.IsActive = true
	if err := h.Service.Create(r.Context(), &product); err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, "product created", product)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}
	product, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", products)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	product.ID = id
	if err := h.Service.Update(r.Context(), &product); err != nil {
		respondError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "product updated", product)
}
