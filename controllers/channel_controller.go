package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pricing-backend/models"
	"pricing-backend/pricing"
	"pricing-backend/utils"
)

type createChannelPayload struct {
	Name   string `json:"name"`
	TabKey string `json:"tabKey"`
}

type updateChannelPayload struct {
	Name   *string `json:"name"`
	TabKey *string `json:"tabKey"`
	Status *string `json:"status"`
}

type createTabPayload struct {
	Label string `json:"label"`
}

type selectionPayload struct {
	SelectedChannelID *string  `json:"selectedChannelId"`
	BatchChannelIDs   []string `json:"batchChannelIds"`
}

type ChannelController struct {
	Registry *pricing.Registry
}

func NewChannelController(registry *pricing.Registry) *ChannelController {
	return &ChannelController{Registry: registry}
}

// GET /api/channels?tab=OTA
func (ctrl *ChannelController) GetChannels(c *gin.Context) {
	tab := strings.TrimSpace(c.Query("tab"))
	if tab == "" {
		c.JSON(http.StatusOK, ctrl.Registry.Channels())
		return
	}
	channels := ctrl.Registry.GroupByTab(tab)
	if channels == nil {
		channels = []models.Channel{}
	}
	c.JSON(http.StatusOK, channels)
}

// POST /api/channels
func (ctrl *ChannelController) CreateChannel(c *gin.Context) {
	var payload createChannelPayload
	if !bindJSON(c, &payload) {
		return
	}
	ch, err := ctrl.Registry.Create(c.Request.Context(), payload.Name, strings.TrimSpace(payload.TabKey))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

// PATCH /api/channels/:id
func (ctrl *ChannelController) UpdateChannel(c *gin.Context) {
	id := c.Param("id")
	var payload updateChannelPayload
	if !bindJSON(c, &payload) {
		return
	}

	ch, err := ctrl.Registry.UpdateChannel(c.Request.Context(), id, pricing.ChannelUpdate{
		Name:   payload.Name,
		TabKey: payload.TabKey,
		Status: payload.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// DELETE /api/channels/:id
func (ctrl *ChannelController) DeleteChannel(c *gin.Context) {
	if err := ctrl.Registry.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Channel deleted", nil)
}

// GET /api/channel-tabs
func (ctrl *ChannelController) GetTabs(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.Registry.Tabs())
}

// POST /api/channel-tabs
func (ctrl *ChannelController) CreateTab(c *gin.Context) {
	var payload createTabPayload
	if !bindJSON(c, &payload) {
		return
	}
	tab, err := ctrl.Registry.AddTab(c.Request.Context(), payload.Label)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tab)
}

// DELETE /api/channel-tabs/:key
func (ctrl *ChannelController) DeleteTab(c *gin.Context) {
	if err := ctrl.Registry.RemoveTab(c.Request.Context(), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Channel type removed", nil)
}

// GET /api/channels/selection
func (ctrl *ChannelController) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.Registry.Selection())
}

// PUT /api/channels/selection
func (ctrl *ChannelController) UpdateSelection(c *gin.Context) {
	var payload selectionPayload
	if !bindJSON(c, &payload) {
		return
	}
	if err := ctrl.Registry.SetSelection(payload.SelectedChannelID, payload.BatchChannelIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctrl.Registry.Selection())
}
