package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pricing-backend/models"
	"pricing-backend/pricing"
	"pricing-backend/services"
	"pricing-backend/utils"
)

type stayTypePayload struct {
	Name      string  `json:"name"`
	BasePrice float64 `json:"basePrice"`
}

type StayTypeController struct {
	Catalog *services.CatalogService
	Editor  *pricing.CatalogEditor
}

func NewStayTypeController(catalog *services.CatalogService, editor *pricing.CatalogEditor) *StayTypeController {
	return &StayTypeController{Catalog: catalog, Editor: editor}
}

func parseStayTypeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid stay type id.")
		return 0, false
	}
	return uint(id), true
}

// GET /api/stay-types
func (ctrl *StayTypeController) GetStayTypes(c *gin.Context) {
	types, err := ctrl.Catalog.StayTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// POST /api/stay-types
func (ctrl *StayTypeController) CreateStayType(c *gin.Context) {
	var payload stayTypePayload
	if !bindJSON(c, &payload) {
		return
	}
	st := models.StayType{Name: payload.Name, BasePrice: payload.BasePrice}
	if err := ctrl.Editor.AddStayType(c.Request.Context(), &st); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// PUT /api/stay-types/:id
func (ctrl *StayTypeController) UpdateStayType(c *gin.Context) {
	id, ok := parseStayTypeID(c)
	if !ok {
		return
	}
	var payload stayTypePayload
	if !bindJSON(c, &payload) {
		return
	}
	st := models.StayType{ID: id, Name: payload.Name, BasePrice: payload.BasePrice}
	if err := ctrl.Editor.UpdateStayType(c.Request.Context(), &st); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DELETE /api/stay-types/:id
func (ctrl *StayTypeController) DeleteStayType(c *gin.Context) {
	id, ok := parseStayTypeID(c)
	if !ok {
		return
	}
	if err := ctrl.Editor.DeleteStayType(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Stay type deleted", nil)
}
