package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pricing-backend/pricing"
	"pricing-backend/services"
	"pricing-backend/utils"
)

type applySessionPayload struct {
	TabKey string `json:"tabKey"`
}

type PricingController struct {
	Pricing *services.PricingService
}

func NewPricingController(svc *services.PricingService) *PricingController {
	return &PricingController{Pricing: svc}
}

// POST /api/pricing/grid
func (ctrl *PricingController) GetGrid(c *gin.Context) {
	var req services.GridRequest
	if !bindJSON(c, &req) {
		return
	}
	grid, err := ctrl.Pricing.Grid(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grid)
}

// GET /api/pricing/session
func (ctrl *PricingController) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.Pricing.Session())
}

// PUT /api/pricing/session
func (ctrl *PricingController) UpdateSession(c *gin.Context) {
	var params pricing.AdjustmentParameters
	if !bindJSON(c, &params) {
		return
	}
	ctrl.Pricing.StageSession(params)
	c.JSON(http.StatusOK, ctrl.Pricing.Session())
}

// DELETE /api/pricing/session
func (ctrl *PricingController) CancelSession(c *gin.Context) {
	ctrl.Pricing.CancelSession()
	utils.JSONSuccess(c, http.StatusOK, "Adjustment cancelled", nil)
}

// POST /api/pricing/session/apply
func (ctrl *PricingController) ApplySession(c *gin.Context) {
	var payload applySessionPayload
	if !bindJSON(c, &payload) {
		return
	}
	impact, fb, err := ctrl.Pricing.ApplySession(c.Request.Context(), payload.TabKey)
	if err != nil {
		respondError(c, err)
		return
	}
	if !fb.OK() {
		utils.JSONError(c, http.StatusBadRequest, fb.Message)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, fb.Message, impact)
}

// POST /api/pricing/batch
func (ctrl *PricingController) ApplyBatch(c *gin.Context) {
	var req pricing.BatchRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := ctrl.Pricing.ApplyBatch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result.Message, result.UpdatedChannels)
}
