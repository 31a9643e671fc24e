package pricing

import (
	"context"
	"math"
	"strconv"
	"strings"

	"pricing-backend/models"
)

// Catalog is the read-only view of the entities the grid is built from.
type Catalog interface {
	StayTypes(ctx context.Context) ([]models.StayType, error)
	MealPlans(ctx context.Context) ([]models.MealPlan, error)
	GuestTypes() []models.GuestType
}

// CatalogEditor validates stay type changes and hands them to the
// collaborator store as commands.
type CatalogEditor struct {
	dispatcher Dispatcher
}

func NewCatalogEditor(dispatcher Dispatcher) *CatalogEditor {
	if dispatcher == nil {
		dispatcher = nopDispatcher{}
	}
	return &CatalogEditor{dispatcher: dispatcher}
}

func validStayType(st *models.StayType) bool {
	st.Name = strings.TrimSpace(st.Name)
	return st.Name != "" && st.BasePrice >= 0 && !math.IsNaN(st.BasePrice) && !math.IsInf(st.BasePrice, 0)
}

// AddStayType dispatches ADD_ROOM_TYPE. The store fills in st.ID.
func (e *CatalogEditor) AddStayType(ctx context.Context, st *models.StayType) error {
	if st == nil || !validStayType(st) {
		return ErrInvalidStayType
	}
	return e.dispatcher.Dispatch(ctx, []Command{{Kind: CmdAddRoomType, StayType: st}})
}

func (e *CatalogEditor) UpdateStayType(ctx context.Context, st *models.StayType) error {
	if st == nil || st.ID == 0 || !validStayType(st) {
		return ErrInvalidStayType
	}
	return e.dispatcher.Dispatch(ctx, []Command{{Kind: CmdUpdateRoomType, StayType: st}})
}

// DeleteStayType dispatches DELETE_ROOM_TYPE. Grid rows are derived from
// the catalog, so the next grid no longer contains the stay type.
func (e *CatalogEditor) DeleteStayType(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidStayType
	}
	return e.dispatcher.Dispatch(ctx, []Command{{Kind: CmdDeleteRoomType, ID: strconv.FormatUint(uint64(id), 10)}})
}
