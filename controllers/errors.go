package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pricing-backend/pricing"
	"pricing-backend/services"
	"pricing-backend/utils"
)

// respondError maps engine and store errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrChannelNotFound),
		errors.Is(err, pricing.ErrTabNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		utils.JSONError(c, http.StatusNotFound, notFoundMessage(err))
	case errors.Is(err, pricing.ErrDuplicateTab):
		utils.JSONError(c, http.StatusConflict, pricing.Message(err))
	case errors.Is(err, services.ErrDuplicate):
		utils.JSONError(c, http.StatusConflict, "Record already exists.")
	case errors.Is(err, services.ErrInvalidMealPlan):
		utils.JSONError(c, http.StatusBadRequest, "Meal plan needs a code, a name and non-negative rates.")
	case pricing.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, pricing.Message(err))
	default:
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal error")
	}
}

func notFoundMessage(err error) string {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "Record not found."
	}
	return pricing.Message(err)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return false
	}
	return true
}
