package pricing

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"pricing-backend/models"
)

// DefaultReferenceBasePrice approximates an average base price. Fixed
// batch amounts are turned into a percentage of it.
const DefaultReferenceBasePrice = 10000

type ScopeKind string

const (
	ScopeSingleChannel     ScopeKind = "single_channel"
	ScopeAllChannelsOfType ScopeKind = "all_channels_of_type"
	ScopeSelectedChannels  ScopeKind = "selected_channels"
	ScopeAllChannels       ScopeKind = "all_channels"
)

type Scope struct {
	Kind       ScopeKind `json:"kind"`
	ChannelID  string    `json:"channelId,omitempty"`
	TabKey     string    `json:"tabKey,omitempty"`
	ChannelIDs []string  `json:"channelIds,omitempty"`
}

type Operation string

const (
	OpIncrease Operation = "increase"
	OpDecrease Operation = "decrease"
	OpReset    Operation = "reset"
)

type ValueKind string

const (
	ValuePercentage ValueKind = "percentage"
	ValueFixed      ValueKind = "fixed"
)

type BatchRequest struct {
	Scope     Scope        `json:"scope"`
	Operation Operation    `json:"operation"`
	Kind      ValueKind    `json:"kind"`
	Value     NumericInput `json:"value"`
}

type BatchResult struct {
	UpdatedChannels []models.Channel `json:"updatedChannels"`
	Message         string           `json:"message"`
}

// BatchEngine is the only component that changes channel price modifiers
// in bulk.
type BatchEngine struct {
	registry           *Registry
	referenceBasePrice decimal.Decimal
}

func NewBatchEngine(registry *Registry, referenceBasePrice float64) *BatchEngine {
	if referenceBasePrice <= 0 {
		referenceBasePrice = DefaultReferenceBasePrice
	}
	return &BatchEngine{
		registry:           registry,
		referenceBasePrice: decimal.NewFromFloat(referenceBasePrice),
	}
}

// ResolveScope returns the ids of the channels a scope targets.
func (e *BatchEngine) ResolveScope(scope Scope) ([]string, error) {
	e.registry.mu.Lock()
	defer e.registry.mu.Unlock()
	return e.resolveScope(scope)
}

func (e *BatchEngine) resolveScope(scope Scope) ([]string, error) {
	r := e.registry
	switch scope.Kind {
	case ScopeAllChannels:
		ids := make([]string, 0, len(r.state.channels))
		for _, ch := range r.state.channels {
			ids = append(ids, ch.ID)
		}
		return ids, nil
	case ScopeAllChannelsOfType:
		group := r.groupByTab(scope.TabKey)
		ids := make([]string, 0, len(group))
		for _, ch := range group {
			ids = append(ids, ch.ID)
		}
		return ids, nil
	case ScopeSelectedChannels:
		if len(scope.ChannelIDs) == 0 {
			return nil, ErrEmptySelection
		}
		seen := make(map[string]bool, len(scope.ChannelIDs))
		ids := make([]string, 0, len(scope.ChannelIDs))
		for _, id := range scope.ChannelIDs {
			// Ids of channels deleted since they were picked are dropped.
			if seen[id] || r.indexOf(id) < 0 {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
		return ids, nil
	case ScopeSingleChannel:
		if scope.ChannelID == "" {
			return nil, ErrNoChannelSelected
		}
		if r.indexOf(scope.ChannelID) < 0 {
			return nil, ErrChannelNotFound
		}
		return []string{scope.ChannelID}, nil
	default:
		return nil, ErrUnknownScope
	}
}

// Apply validates the request, then updates every targeted channel in one
// critical section and one dispatch. Either all channels change or none do.
func (e *BatchEngine) Apply(ctx context.Context, req BatchRequest) (BatchResult, error) {
	switch req.Operation {
	case OpIncrease, OpDecrease, OpReset:
	default:
		return BatchResult{}, ErrUnknownOperation
	}

	r := e.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := e.resolveScope(req.Scope)
	if err != nil {
		return BatchResult{}, err
	}
	scopeLabel := e.scopeLabel(req.Scope, len(ids))
	snapshot := r.state.clone()

	if len(ids) == 0 {
		r.state.selection.BatchChannelIDs = nil
		return BatchResult{
			UpdatedChannels: []models.Channel{},
			Message:         fmt.Sprintf("No channels found for %s; 0 channels updated.", scopeLabel),
		}, nil
	}

	var pctDelta decimal.Decimal
	if req.Operation != OpReset {
		pctDelta, err = e.percentDelta(req)
		if err != nil {
			return BatchResult{}, err
		}
	}

	updated := make([]models.Channel, 0, len(ids))
	cmds := make([]Command, 0, len(ids))
	for _, id := range ids {
		i := r.indexOf(id)
		ch := r.state.channels[i]
		if req.Operation == OpReset {
			ch.PriceModifierPercent = 0
		} else {
			ch.PriceModifierPercent = decimal.NewFromFloat(ch.PriceModifierPercent).Add(pctDelta).InexactFloat64()
		}
		r.state.channels[i] = ch
		updated = append(updated, ch)
		cmds = append(cmds, Command{Kind: CmdUpdateChannel, Channel: channelRef(ch)})
	}
	r.state.selection.BatchChannelIDs = nil

	if err := r.commit(ctx, snapshot, cmds); err != nil {
		return BatchResult{}, err
	}
	return BatchResult{
		UpdatedChannels: updated,
		Message:         e.message(req, scopeLabel, len(updated)),
	}, nil
}

// percentDelta is the signed change in percentage points. Fixed amounts are
// expressed as a share of the reference base price.
func (e *BatchEngine) percentDelta(req BatchRequest) (decimal.Decimal, error) {
	v, ok := req.Value.Float()
	switch req.Kind {
	case ValuePercentage:
		if !ok || v == 0 {
			return decimal.Zero, ErrInvalidPercentage
		}
	case ValueFixed:
		if !ok || v == 0 {
			return decimal.Zero, ErrInvalidAmount
		}
	default:
		return decimal.Zero, ErrUnknownKind
	}

	delta := decimal.NewFromFloat(math.Abs(v))
	if req.Operation == OpDecrease {
		delta = delta.Neg()
	}
	if req.Kind == ValueFixed {
		delta = delta.Mul(decimal.NewFromInt(100)).Div(e.referenceBasePrice)
		// below the division precision the amount would change nothing
		if delta.IsZero() {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	return delta, nil
}

func (e *BatchEngine) scopeLabel(scope Scope, n int) string {
	r := e.registry
	switch scope.Kind {
	case ScopeSingleChannel:
		if i := r.indexOf(scope.ChannelID); i >= 0 {
			return fmt.Sprintf("channel %q", r.state.channels[i].Name)
		}
		return "the selected channel"
	case ScopeAllChannelsOfType:
		label := scope.TabKey
		if i := r.tabIndex(scope.TabKey); i >= 0 {
			label = r.state.tabs[i].Label
		}
		return fmt.Sprintf("all %s channels", label)
	case ScopeSelectedChannels:
		return fmt.Sprintf("%d selected channels", n)
	default:
		return "all channels"
	}
}

func (e *BatchEngine) message(req BatchRequest, scopeLabel string, n int) string {
	if req.Operation == OpReset {
		return fmt.Sprintf("Price modifier reset to 0%% for %s (%d channels updated).", scopeLabel, n)
	}
	verb := "increased"
	if req.Operation == OpDecrease {
		verb = "decreased"
	}
	v, _ := req.Value.Float()
	magnitude := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	if req.Kind == ValueFixed {
		pct, _ := e.percentDelta(req)
		return fmt.Sprintf("Price modifier %s by %s (%s%% of reference price %s) for %s (%d channels updated).",
			verb, magnitude, pct.Abs().String(), e.referenceBasePrice.String(), scopeLabel, n)
	}
	return fmt.Sprintf("Price modifier %s by %s%% for %s (%d channels updated).", verb, magnitude, scopeLabel, n)
}
