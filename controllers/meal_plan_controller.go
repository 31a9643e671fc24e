package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pricing-backend/models"
	"pricing-backend/services"
)

type MealPlanController struct {
	Catalog *services.CatalogService
}

func NewMealPlanController(catalog *services.CatalogService) *MealPlanController {
	return &MealPlanController{Catalog: catalog}
}

func (ctrl *MealPlanController) GetMealPlans(c *gin.Context) {
	plans, err := ctrl.Catalog.MealPlans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (ctrl *MealPlanController) CreateMealPlan(c *gin.Context) {
	var mp models.MealPlan
	if !bindJSON(c, &mp) {
		return
	}
	mp.ID = 0
	if err := ctrl.Catalog.CreateMealPlan(c.Request.Context(), &mp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mp)
}

func (ctrl *MealPlanController) GetGuestTypes(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.Catalog.GuestTypes())
}
