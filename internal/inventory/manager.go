// Package inventory owns the tracked food items and their expiry standing.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"fridjy/internal/database"
	"fridjy/internal/logger"
	"fridjy/internal/models"
	"fridjy/internal/monitoring"
)

var (
	ErrDuplicateID = errors.New("inventory: duplicate item id")
	ErrInvalidItem = errors.New("inventory: invalid item")
)

// Manual entry defaults
const (
	DefaultQuantity  = "1"
	DefaultShelfDays = 7
	DefaultFragility = 5
	DefaultCategory  = models.CategoryOther
)

// Manager holds the inventory collection and writes it through to the
// store after every mutation.
type Manager struct {
	mu      sync.RWMutex
	items   []models.InventoryItem
	store   database.Store
	log     *logger.Logger
	monitor *monitoring.Monitor
	now     func() time.Time
	newID   func() string
}

// Option configures a Manager.
type Option func(*Manager)

func WithMonitor(m *monitoring.Monitor) Option {
	return func(mg *Manager) { mg.monitor = m }
}

func WithClock(now func() time.Time) Option {
	return func(mg *Manager) { mg.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(mg *Manager) { mg.newID = fn }
}

// NewManager loads the inventory once from store. Missing or unreadable
// data yields an empty inventory; the latter is logged.
func NewManager(ctx context.Context, store database.Store, log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		log:   log.With("component", "inventory"),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(m)
	}

	var items []models.InventoryItem
	found, err := database.LoadJSON(ctx, store, database.KeyInventory, &items)
	switch {
	case err != nil:
		m.log.Warn("stored inventory unreadable, starting empty", "key", database.KeyInventory, "error", err)
		items = nil
	case !found:
		m.log.Debug("no stored inventory", "key", database.KeyInventory)
	}
	m.items = items
	m.monitor.SetInventorySize(len(m.items))
	return m
}

// Items returns a copy of the collection in insertion order.
func (m *Manager) Items() []models.InventoryItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.InventoryItem(nil), m.items...)
}

// Len returns the number of tracked items.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Add appends one item.
func (m *Manager) Add(ctx context.Context, item models.InventoryItem) error {
	return m.AddBatch(ctx, []models.InventoryItem{item})
}

// AddBatch appends items in order. A missing ID or AddedAt is filled in.
// The batch is rejected as a whole if any item is invalid or reuses an
// ID. An empty batch changes nothing, including the stored form.
func (m *Manager) AddBatch(ctx context.Context, items []models.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]struct{}, len(m.items)+len(items))
	for _, it := range m.items {
		seen[it.ID] = struct{}{}
	}
	prepared := make([]models.InventoryItem, 0, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = m.newID()
		}
		if it.AddedAt.IsZero() {
			it.AddedAt = m.now()
		}
		if err := models.Validate(it); err != nil {
			return fmt.Errorf("%w: item %d: %v", ErrInvalidItem, i, err)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		seen[it.ID] = struct{}{}
		prepared = append(prepared, it)
	}

	m.items = append(m.items, prepared...)
	return m.persistLocked(ctx)
}

// ManualEntry is what a user types in when adding an item by hand. Blank
// fields take the manual-entry defaults.
type ManualEntry struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	ExpiryDate string `json:"expiryDate"`
	Category   string `json:"category"`
	Fragility  int    `json:"fragility"`
}

// NewManualItem builds an item from a manual entry.
func NewManualItem(e ManualEntry, now time.Time, id string) (models.InventoryItem, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return models.InventoryItem{}, fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	item := models.InventoryItem{
		ID:         id,
		Name:       name,
		Quantity:   strings.TrimSpace(e.Quantity),
		ExpiryDate: strings.TrimSpace(e.ExpiryDate),
		Category:   strings.TrimSpace(e.Category),
		Fragility:  e.Fragility,
		AddedAt:    now,
	}
	if item.Quantity == "" {
		item.Quantity = DefaultQuantity
	}
	if item.ExpiryDate == "" {
		item.ExpiryDate = models.FormatDate(now.AddDate(0, 0, DefaultShelfDays))
	}
	if item.Category == "" {
		item.Category = DefaultCategory
	}
	if item.Fragility == 0 {
		item.Fragility = DefaultFragility
	}
	if err := models.Validate(item); err != nil {
		return models.InventoryItem{}, fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	return item, nil
}

// AddManual builds an item from e and adds it.
func (m *Manager) AddManual(ctx context.Context, e ManualEntry) (models.InventoryItem, error) {
	item, err := NewManualItem(e, m.now(), m.newID())
	if err != nil {
		return models.InventoryItem{}, err
	}
	if err := m.Add(ctx, item); err != nil {
		return models.InventoryItem{}, err
	}
	return item, nil
}

// Remove deletes the item with the given id. Removing an unknown id is a
// no-op; the second return reports whether anything was removed.
func (m *Manager) Remove(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := make([]models.InventoryItem, 0, len(m.items))
	for _, it := range m.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(m.items) {
		return false, nil
	}
	m.items = kept
	return true, m.persistLocked(ctx)
}

// Clear empties the inventory.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = []models.InventoryItem{}
	return m.persistLocked(ctx)
}

// ListSortedByExpiry returns the items ordered by ascending expiry date.
func (m *Manager) ListSortedByExpiry() []models.InventoryItem {
	return SortByExpiry(m.Items())
}

// Overview returns the expiry-sorted items annotated for now.
func (m *Manager) Overview() []ItemView {
	return Annotate(m.now(), m.ListSortedByExpiry())
}

// SortByExpiry returns a copy of items ordered by ascending expiry date.
// Ties keep insertion order; unparseable dates sort last.
func SortByExpiry(items []models.InventoryItem) []models.InventoryItem {
	out := append([]models.InventoryItem(nil), items...)
	key := func(it models.InventoryItem) (time.Time, bool) {
		t, err := models.ParseDate(it.ExpiryDate)
		return t, err == nil
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := key(out[i])
		tj, okJ := key(out[j])
		if okI != okJ {
			return okI
		}
		return ti.Before(tj)
	})
	return out
}

func (m *Manager) persistLocked(ctx context.Context) error {
	m.monitor.SetInventorySize(len(m.items))
	err := database.SaveJSON(ctx, m.store, database.KeyInventory, m.items)
	m.monitor.RecordStoreWrite(database.KeyInventory, err)
	if err != nil {
		m.log.Error("failed to persist inventory", "key", database.KeyInventory, "error", err)
		return fmt.Errorf("inventory: persist: %w", err)
	}
	return nil
}
