package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pricing-backend/controllers"
	"pricing-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers onto a gin engine.
func SetupRouter(
	stc *controllers.StayTypeController,
	mpc *controllers.MealPlanController,
	chc *controllers.ChannelController,
	pc *controllers.PricingController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		stayTypes := api.Group("/stay-types")
		{
			stayTypes.GET("", stc.GetStayTypes)
			stayTypes.POST("", stc.CreateStayType)
			stayTypes.PUT("/:id", stc.UpdateStayType)
			stayTypes.DELETE("/:id", stc.DeleteStayType)
		}

		mealPlans := api.Group("/meal-plans")
		{
			mealPlans.GET("", mpc.GetMealPlans)
			mealPlans.POST("", mpc.CreateMealPlan)
		}
		api.GET("/guest-types", mpc.GetGuestTypes)

		tabs := api.Group("/channel-tabs")
		{
			tabs.GET("", chc.GetTabs)
			tabs.POST("", chc.CreateTab)
			tabs.DELETE("/:key", chc.DeleteTab)
		}

		channels := api.Group("/channels")
		{
			channels.GET("", chc.GetChannels)
			channels.POST("", chc.CreateChannel)

			// must be registered before /:id
			channels.GET("/selection", chc.GetSelection)
			channels.PUT("/selection", chc.UpdateSelection)

			channels.PATCH("/:id", chc.UpdateChannel)
			channels.DELETE("/:id", chc.DeleteChannel)
		}

		pricingRoutes := api.Group("/pricing")
		{
			pricingRoutes.POST("/grid", pc.GetGrid)
			pricingRoutes.GET("/session", pc.GetSession)
			pricingRoutes.PUT("/session", pc.UpdateSession)
			pricingRoutes.DELETE("/session", pc.CancelSession)
			pricingRoutes.POST("/session/apply", pc.ApplySession)
			pricingRoutes.POST("/batch", pc.ApplyBatch)
		}
	}

	return r
}
