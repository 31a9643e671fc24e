package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"pricing-backend/config"
	"pricing-backend/models"
	"pricing-backend/pricing"
	"pricing-backend/utils"
)

// GridRequest selects how the grid is priced. A nil Params prices the grid
// with the editor's staged session.
type GridRequest struct {
	TabKey    string                        `json:"tabKey"`
	ChannelID string                        `json:"channelId"`
	Params    *pricing.AdjustmentParameters `json:"params,omitempty"`
}

type GridCell struct {
	Column      int     `json:"column"`
	BasePrice   float64 `json:"basePrice"`
	FinalPrice  float64 `json:"finalPrice"`
	Display     string  `json:"display"`
	Highlighted bool    `json:"highlighted"`
}

type GridRow struct {
	StayTypeID    uint       `json:"stayTypeId"`
	StayTypeName  string     `json:"stayTypeName"`
	MealPlanCode  string     `json:"mealPlanCode"`
	GuestTypeCode string     `json:"guestTypeCode"`
	Cells         []GridCell `json:"cells"`
}

type GridResponse struct {
	Columns  int             `json:"columns"`
	Currency string          `json:"currency"`
	TabKey   string          `json:"tabKey"`
	Channel  *models.Channel `json:"channel"`
	Rows     []GridRow       `json:"rows"`
}

// PricingService ties the catalog, the channel registry and the single
// editor's adjustment session together. Nothing derived is cached.
type PricingService struct {
	Catalog  pricing.Catalog
	Registry *pricing.Registry
	Batch    *pricing.BatchEngine
	Settings config.PricingSettings

	mu      sync.Mutex
	session pricing.Session
}

func NewPricingService(catalog pricing.Catalog, registry *pricing.Registry, settings config.PricingSettings) *PricingService {
	return &PricingService{
		Catalog:  catalog,
		Registry: registry,
		Batch:    pricing.NewBatchEngine(registry, settings.ReferenceBasePrice),
		Settings: settings,
	}
}

func (s *PricingService) rows(ctx context.Context) ([]pricing.PricingRow, []models.MealPlan, error) {
	stayTypes, err := s.Catalog.StayTypes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load stay types: %w", err)
	}
	mealPlans, err := s.Catalog.MealPlans(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load meal plans: %w", err)
	}
	return pricing.GenerateGrid(stayTypes, mealPlans, s.Catalog.GuestTypes(), s.Settings.ColumnCount), mealPlans, nil
}

// Grid regenerates the grid from the current catalog and prices every cell.
func (s *PricingService) Grid(ctx context.Context, req GridRequest) (GridResponse, error) {
	rows, mealPlans, err := s.rows(ctx)
	if err != nil {
		log.Printf("❌ PricingService.Grid: %v", err)
		return GridResponse{}, err
	}

	params := s.Session()
	if req.Params != nil {
		params = *req.Params
	}
	channelID := req.ChannelID
	if channelID == "" {
		channelID = s.Registry.Selection().SelectedChannelID
	}
	channel := s.Registry.ResolveChannel(channelID, req.TabKey)
	calc := pricing.NewCalculator(mealPlans)

	out := GridResponse{
		Columns:  s.Settings.ColumnCount,
		Currency: s.Settings.Currency,
		TabKey:   req.TabKey,
		Channel:  channel,
		Rows:     make([]GridRow, 0, len(rows)),
	}
	for _, row := range rows {
		gr := GridRow{
			StayTypeID:    row.StayTypeID,
			StayTypeName:  row.StayTypeName,
			MealPlanCode:  row.MealPlanCode,
			GuestTypeCode: row.GuestTypeCode,
			Cells:         make([]GridCell, 0, len(row.BasePrices)),
		}
		for i, base := range row.BasePrices {
			col := i + 1
			final := calc.CalculatePrice(base, row.MealPlanCode, params, channel)
			gr.Cells = append(gr.Cells, GridCell{
				Column:      col,
				BasePrice:   base,
				FinalPrice:  final,
				Display:     utils.FormatMoney(final, s.Settings.Currency),
				Highlighted: params.TargetColumn != nil && *params.TargetColumn == col,
			})
		}
		out.Rows = append(out.Rows, gr)
	}
	return out, nil
}

func (s *PricingService) Session() pricing.AdjustmentParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Params
}

func (s *PricingService) StageSession(p pricing.AdjustmentParameters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Stage(p)
}

func (s *PricingService) CancelSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Cancel()
}

// ApplySession reports the impact of the staged adjustment for tabKey. It
// does not write the adjustment anywhere; only ApplyBatch changes channels.
// The returned error is for catalog failures only.
func (s *PricingService) ApplySession(ctx context.Context, tabKey string) (pricing.ImpactSummary, pricing.Feedback, error) {
	rows, _, err := s.rows(ctx)
	if err != nil {
		return pricing.ImpactSummary{}, pricing.Feedback{}, err
	}
	label := tabKey
	if tab, ok := s.Registry.Tab(tabKey); ok {
		label = tab.Label
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	impact, fb := s.session.Apply(len(rows), s.Settings.ColumnCount, label)
	log.Printf("➡️ PricingService.ApplySession tab=%s status=%s cells=%d", tabKey, fb.Kind, impact.TotalCells)
	return impact, fb, nil
}

// ApplyBatch runs a batch adjustment. Selected-channel and single-channel
// scopes without ids fall back to the editor's current selection.
func (s *PricingService) ApplyBatch(ctx context.Context, req pricing.BatchRequest) (pricing.BatchResult, error) {
	sel := s.Registry.Selection()
	switch req.Scope.Kind {
	case pricing.ScopeSelectedChannels:
		if req.Scope.ChannelIDs == nil {
			req.Scope.ChannelIDs = sel.BatchChannelIDs
		}
	case pricing.ScopeSingleChannel:
		if req.Scope.ChannelID == "" {
			req.Scope.ChannelID = sel.SelectedChannelID
		}
	}

	result, err := s.Batch.Apply(ctx, req)
	if err != nil {
		log.Printf("⚠️ PricingService.ApplyBatch scope=%s op=%s: %v", req.Scope.Kind, req.Operation, err)
		return pricing.BatchResult{}, err
	}
	log.Printf("✅ PricingService.ApplyBatch: %s", result.Message)
	return result, nil
}
