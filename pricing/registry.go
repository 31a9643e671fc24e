package pricing

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pricing-backend/models"
)

// tabTypeFallback groups legacy channels that carry no TabKey.
var tabTypeFallback = map[string][]models.ChannelType{
	models.TabDirect: {models.ChannelTypeDirect, models.ChannelTypeWalkIn},
	models.TabWeb:    {models.ChannelTypeDirect},
	models.TabOTA:    {models.ChannelTypeOTA},
	models.TabTA:     {models.ChannelTypeAgent, models.ChannelTypeTravelAgent},
}

// tabDefaultType is the Type given to channels created under a tab.
// Tabs not listed here create channels with an unspecified type.
var tabDefaultType = map[string]models.ChannelType{
	models.TabDirect: models.ChannelTypeDirect,
	models.TabWeb:    models.ChannelTypeDirect,
	models.TabOTA:    models.ChannelTypeOTA,
	models.TabTA:     models.ChannelTypeAgent,
}

// Selection is the editor's channel pick: one channel for pricing and a set
// of channels staged for a batch adjustment.
type Selection struct {
	SelectedChannelID string   `json:"selectedChannelId"`
	BatchChannelIDs   []string `json:"batchChannelIds"`
}

type registryState struct {
	channels  []models.Channel
	tabs      []models.ChannelTab
	selection Selection
}

func (s registryState) clone() registryState {
	return registryState{
		channels: append([]models.Channel(nil), s.channels...),
		tabs:     append([]models.ChannelTab(nil), s.tabs...),
		selection: Selection{
			SelectedChannelID: s.selection.SelectedChannelID,
			BatchChannelIDs:   append([]string(nil), s.selection.BatchChannelIDs...),
		},
	}
}

// Registry is the in-memory channel registry. Every mutation holds the lock
// for its whole duration, dispatches its commands, and restores the previous
// state if the dispatcher fails.
type Registry struct {
	mu         sync.Mutex
	state      registryState
	dispatcher Dispatcher
	newID      func() string
}

func NewRegistry(channels []models.Channel, tabs []models.ChannelTab, dispatcher Dispatcher) *Registry {
	if dispatcher == nil {
		dispatcher = nopDispatcher{}
	}
	return &Registry{
		state: registryState{
			channels: append([]models.Channel(nil), channels...),
			tabs:     withBuiltInTabs(tabs),
		},
		dispatcher: dispatcher,
		newID:      func() string { return uuid.NewString() },
	}
}

func withBuiltInTabs(tabs []models.ChannelTab) []models.ChannelTab {
	have := make(map[string]bool, len(tabs))
	for _, t := range tabs {
		have[t.Key] = true
	}
	out := make([]models.ChannelTab, 0, len(tabs)+4)
	for _, t := range models.BuiltInTabs() {
		if !have[t.Key] {
			out = append(out, t)
		}
	}
	for _, t := range tabs {
		if _, builtIn := tabDefaultType[t.Key]; builtIn {
			t.IsBuiltIn = true
		}
		out = append(out, t)
	}
	return out
}

func (r *Registry) Channels() []models.Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Channel(nil), r.state.channels...)
}

func (r *Registry) Channel(id string) (models.Channel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return models.Channel{}, false
	}
	return r.state.channels[i], true
}

func (r *Registry) Tabs() []models.ChannelTab {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ChannelTab(nil), r.state.tabs...)
}

func (r *Registry) Tab(key string) (models.ChannelTab, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.tabIndex(key)
	if i < 0 {
		return models.ChannelTab{}, false
	}
	return r.state.tabs[i], true
}

func (r *Registry) Selection() Selection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.clone().selection
}

// GroupByTab returns the channels filed under tabKey. Only when there are
// none does it fall back to legacy channels whose Type maps to the tab.
func (r *Registry) GroupByTab(tabKey string) []models.Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.groupByTab(tabKey)
}

func (r *Registry) groupByTab(tabKey string) []models.Channel {
	var out []models.Channel
	for _, ch := range r.state.channels {
		if ch.TabKey == tabKey {
			out = append(out, ch)
		}
	}
	if len(out) > 0 {
		return out
	}
	types, ok := tabTypeFallback[tabKey]
	if !ok {
		return nil
	}
	for _, ch := range r.state.channels {
		if ch.TabKey != "" {
			continue
		}
		for _, t := range types {
			if ch.Type == t {
				out = append(out, ch)
				break
			}
		}
	}
	return out
}

// ResolveChannel picks the channel whose modifier prices the grid: the
// explicitly selected one if it exists, otherwise the first channel of the
// active tab. It returns nil when nothing resolves.
func (r *Registry) ResolveChannel(selectedID, tabKey string) *models.Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	if selectedID != "" {
		if i := r.indexOf(selectedID); i >= 0 {
			ch := r.state.channels[i]
			return &ch
		}
	}
	group := r.groupByTab(tabKey)
	if len(group) == 0 {
		return nil
	}
	ch := group[0]
	return &ch
}

// Create adds a channel under tabKey with a zero price modifier.
func (r *Registry) Create(ctx context.Context, name, tabKey string) (models.Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Channel{}, ErrEmptyChannelName
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tabIndex(tabKey) < 0 {
		return models.Channel{}, ErrTabNotFound
	}

	ch := models.Channel{
		ID:                   r.newID(),
		Name:                 name,
		Type:                 tabDefaultType[tabKey],
		TabKey:               tabKey,
		PriceModifierPercent: 0,
		Status:               models.ChannelStatusActive,
	}
	snapshot := r.state.clone()
	r.state.channels = append(r.state.channels, ch)
	if err := r.commit(ctx, snapshot, []Command{{Kind: CmdAddChannel, Channel: channelRef(ch)}}); err != nil {
		return models.Channel{}, err
	}
	return ch, nil
}

// ChannelUpdate lists the fields UpdateChannel changes. Nil fields are kept.
type ChannelUpdate struct {
	Name   *string
	TabKey *string
	Status *string
}

func (u ChannelUpdate) isEmpty() bool {
	return u.Name == nil && u.TabKey == nil && u.Status == nil
}

// UpdateChannel validates every field of u before touching the channel, then
// applies them together as one UPDATE_CHANNEL. On any error nothing changes.
func (r *Registry) UpdateChannel(ctx context.Context, id string, u ChannelUpdate) (models.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return models.Channel{}, ErrChannelNotFound
	}

	ch := r.state.channels[i]
	if u.isEmpty() {
		return ch, nil
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return models.Channel{}, ErrEmptyChannelName
		}
		ch.Name = name
	}
	if u.TabKey != nil {
		key := strings.TrimSpace(*u.TabKey)
		if r.tabIndex(key) < 0 {
			return models.Channel{}, ErrTabNotFound
		}
		ch.TabKey = key
	}
	if u.Status != nil {
		if *u.Status != models.ChannelStatusActive && *u.Status != models.ChannelStatusInactive {
			return models.Channel{}, ErrInvalidStatus
		}
		ch.Status = *u.Status
	}

	snapshot := r.state.clone()
	r.state.channels[i] = ch
	if err := r.commit(ctx, snapshot, []Command{{Kind: CmdUpdateChannel, Channel: channelRef(ch)}}); err != nil {
		return models.Channel{}, err
	}
	return ch, nil
}

func (r *Registry) Rename(ctx context.Context, id, name string) (models.Channel, error) {
	return r.UpdateChannel(ctx, id, ChannelUpdate{Name: &name})
}

// Reassign files a channel under another tab, typically one orphaned by RemoveTab.
func (r *Registry) Reassign(ctx context.Context, id, tabKey string) (models.Channel, error) {
	return r.UpdateChannel(ctx, id, ChannelUpdate{TabKey: &tabKey})
}

func (r *Registry) SetStatus(ctx context.Context, id, status string) (models.Channel, error) {
	return r.UpdateChannel(ctx, id, ChannelUpdate{Status: &status})
}

// Delete removes a channel and drops it from the current selection and
// from the batch selection.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrChannelNotFound
	}
	snapshot := r.state.clone()
	r.state.channels = append(r.state.channels[:i:i], r.state.channels[i+1:]...)
	if r.state.selection.SelectedChannelID == id {
		r.state.selection.SelectedChannelID = ""
	}
	r.state.selection.BatchChannelIDs = without(r.state.selection.BatchChannelIDs, id)
	return r.commit(ctx, snapshot, []Command{{Kind: CmdDeleteChannel, ID: id}})
}

// NormalizeTabKey turns a label into an UPPER_SNAKE tab key.
func NormalizeTabKey(label string) string {
	return strings.Join(strings.Fields(strings.ToUpper(label)), "_")
}

func (r *Registry) AddTab(ctx context.Context, label string) (models.ChannelTab, error) {
	label = strings.TrimSpace(label)
	key := NormalizeTabKey(label)
	if key == "" {
		return models.ChannelTab{}, ErrEmptyTabLabel
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tabIndex(key) >= 0 {
		return models.ChannelTab{}, ErrDuplicateTab
	}
	pos := 0
	for _, t := range r.state.tabs {
		if t.Position >= pos {
			pos = t.Position + 1
		}
	}
	tab := models.ChannelTab{Key: key, Label: label, Position: pos}
	snapshot := r.state.clone()
	r.state.tabs = append(r.state.tabs, tab)
	if err := r.commit(ctx, snapshot, []Command{{Kind: CmdAddChannelTab, Tab: &tab}}); err != nil {
		return models.ChannelTab{}, err
	}
	return tab, nil
}

// RemoveTab hides a user-defined tab. Its channels keep their TabKey and
// stay in the registry until reassigned.
func (r *Registry) RemoveTab(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.tabIndex(key)
	if i < 0 {
		return ErrTabNotFound
	}
	if r.state.tabs[i].IsBuiltIn {
		return ErrBuiltInTab
	}
	snapshot := r.state.clone()
	r.state.tabs = append(r.state.tabs[:i:i], r.state.tabs[i+1:]...)
	return r.commit(ctx, snapshot, []Command{{Kind: CmdDeleteChannelTab, ID: key}})
}

// SelectChannel sets the channel used to price the grid. An empty id clears it.
func (r *Registry) SelectChannel(id string) error {
	return r.SetSelection(&id, nil)
}

// SetBatchSelection replaces the set of channels staged for a batch adjustment.
func (r *Registry) SetBatchSelection(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return r.SetSelection(nil, ids)
}

// SetSelection updates the selected channel and the batch selection in one
// step. A nil argument leaves that part alone. Both are checked before
// either is assigned.
func (r *Registry) SetSelection(selectedID *string, batchIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if selectedID != nil && *selectedID != "" && r.indexOf(*selectedID) < 0 {
		return ErrChannelNotFound
	}

	var batch []string
	if batchIDs != nil {
		seen := make(map[string]bool, len(batchIDs))
		batch = make([]string, 0, len(batchIDs))
		for _, id := range batchIDs {
			if r.indexOf(id) < 0 {
				return fmt.Errorf("%w: %s", ErrChannelNotFound, id)
			}
			if !seen[id] {
				seen[id] = true
				batch = append(batch, id)
			}
		}
	}

	if selectedID != nil {
		r.state.selection.SelectedChannelID = *selectedID
	}
	if batchIDs != nil {
		r.state.selection.BatchChannelIDs = batch
	}
	return nil
}

func (r *Registry) commit(ctx context.Context, snapshot registryState, cmds []Command) error {
	if err := r.dispatcher.Dispatch(ctx, cmds); err != nil {
		r.state = snapshot
		return fmt.Errorf("dispatch %s: %w", cmds[0].Kind, err)
	}
	return nil
}

func (r *Registry) indexOf(id string) int {
	for i, ch := range r.state.channels {
		if ch.ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) tabIndex(key string) int {
	for i, t := range r.state.tabs {
		if t.Key == key {
			return i
		}
	}
	return -1
}

func channelRef(ch models.Channel) *models.Channel {
	return &ch
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
