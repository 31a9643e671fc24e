package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pricing-backend/config"
	"pricing-backend/controllers"
	"pricing-backend/models"
	"pricing-backend/pricing"
	"pricing-backend/services"
)

func setupRouter(t *testing.T) (*gin.Engine, *pricing.Registry, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, config.AutoMigrate(db))
	config.SeedDatabase(db)

	store := services.NewStoreService(db)
	catalog := services.NewCatalogService(db)
	ctx := context.Background()
	channels, err := store.LoadChannels(ctx)
	require.NoError(t, err)
	tabs, err := store.LoadTabs(ctx)
	require.NoError(t, err)

	registry := pricing.NewRegistry(channels, tabs, store)
	settings := config.PricingSettings{ColumnCount: 8, ReferenceBasePrice: 10000, Currency: "LKR"}
	svc := services.NewPricingService(catalog, registry, settings)

	r := SetupRouter(
		controllers.NewStayTypeController(catalog, pricing.NewCatalogEditor(store)),
		controllers.NewMealPlanController(catalog),
		controllers.NewChannelController(registry),
		controllers.NewPricingController(svc),
	)
	return r, registry, db
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGridEndpoint(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/pricing/grid", gin.H{"tabKey": models.TabOTA})
	require.Equal(t, http.StatusOK, w.Code)

	var grid services.GridResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	// 4 stay types x 4 meal plans x 2 guest types
	assert.Len(t, grid.Rows, 32)
	require.NotNil(t, grid.Channel)
	assert.Equal(t, models.TabOTA, grid.Channel.TabKey)
}

func TestChannelEndpoints(t *testing.T) {
	r, registry, _ := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/api/channels?tab=OTA", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ota []models.Channel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ota))
	assert.Len(t, ota, 2)

	w = doJSON(r, http.MethodPost, "/api/channels", gin.H{"name": "  ", "tabKey": models.TabOTA})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/channels", gin.H{"name": "Agoda", "tabKey": "NOPE"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, "/api/channel-tabs", gin.H{"label": "ota"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/channel-tabs/"+models.TabDirect, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/channels/selection", gin.H{"batchChannelIds": []string{"missing"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPut, "/api/channels/selection", gin.H{"batchChannelIds": []string{ota[0].ID}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{ota[0].ID}, registry.Selection().BatchChannelIDs)
}

func TestBatchEndpoint(t *testing.T) {
	r, registry, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/pricing/batch", gin.H{
		"scope":     gin.H{"kind": "all_channels_of_type", "tabKey": models.TabOTA},
		"operation": "decrease",
		"kind":      "percentage",
		"value":     "5",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Contains(t, body["message"], "2 channels updated")

	for _, ch := range registry.GroupByTab(models.TabOTA) {
		assert.Contains(t, []float64{10, 13}, ch.PriceModifierPercent)
	}

	w = doJSON(r, http.MethodPost, "/api/pricing/batch", gin.H{
		"scope":     gin.H{"kind": "all_channels"},
		"operation": "increase",
		"kind":      "percentage",
		"value":     "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionEndpoints(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/pricing/session/apply", gin.H{"tabKey": models.TabOTA})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/pricing/session", gin.H{"customPercent": 150})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/api/pricing/session/apply", gin.H{"tabKey": models.TabOTA})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "between -100 and 100")

	w = doJSON(r, http.MethodPut, "/api/pricing/session", gin.H{"customPercent": "10", "targetColumn": 3})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/api/pricing/session/apply", gin.H{"tabKey": models.TabOTA})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "32 combinations")

	w = doJSON(r, http.MethodGet, "/api/pricing/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var params pricing.AdjustmentParameters
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &params))
	assert.True(t, params.IsEmpty())
}

func TestUpdateChannel_RejectedPatchChangesNothing(t *testing.T) {
	r, registry, db := setupRouter(t)
	target := registry.GroupByTab(models.TabOTA)[0]

	w := doJSON(r, http.MethodPatch, "/api/channels/"+target.ID, gin.H{"name": "Renamed", "tabKey": "NOPE"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPatch, "/api/channels/"+target.ID, gin.H{"name": "Renamed", "status": "paused"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	got, ok := registry.Channel(target.ID)
	require.True(t, ok)
	assert.Equal(t, target.Name, got.Name)
	var stored models.Channel
	require.NoError(t, db.First(&stored, "id = ?", target.ID).Error)
	assert.Equal(t, target.Name, stored.Name)
	assert.Equal(t, models.TabOTA, stored.TabKey)

	w = doJSON(r, http.MethodPatch, "/api/channels/"+target.ID, gin.H{"name": "Renamed", "tabKey": models.TabTA, "status": "inactive"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&stored, "id = ?", target.ID).Error)
	assert.Equal(t, "Renamed", stored.Name)
	assert.Equal(t, models.TabTA, stored.TabKey)
	assert.Equal(t, models.ChannelStatusInactive, stored.Status)
}

func TestUpdateSelection_RejectedPutChangesNothing(t *testing.T) {
	r, registry, _ := setupRouter(t)
	ota := registry.GroupByTab(models.TabOTA)

	w := doJSON(r, http.MethodPut, "/api/channels/selection", gin.H{
		"selectedChannelId": ota[0].ID,
		"batchChannelIds":   []string{"missing"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, pricing.Selection{}, registry.Selection())

	w = doJSON(r, http.MethodPut, "/api/channels/selection", gin.H{
		"selectedChannelId": ota[0].ID,
		"batchChannelIds":   []string{ota[1].ID},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ota[0].ID, registry.Selection().SelectedChannelID)
	assert.Equal(t, []string{ota[1].ID}, registry.Selection().BatchChannelIDs)
}
