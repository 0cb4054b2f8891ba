package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridjy/internal/database"
	"fridjy/internal/inventory"
	"fridjy/internal/logger"
	"fridjy/internal/models"
	"fridjy/internal/monitoring"
)

var fixedNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func newManager(t *testing.T, store database.Store) *inventory.Manager {
	t.Helper()
	n := 0
	return inventory.NewManager(context.Background(), store, logger.Nop(),
		inventory.WithClock(func() time.Time { return fixedNow }),
		inventory.WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
}

func item(id, name, expiry string) models.InventoryItem {
	return models.InventoryItem{
		ID:         id,
		Name:       name,
		Quantity:   "1",
		ExpiryDate: expiry,
		Category:   models.CategoryProduce,
		Fragility:  5,
		AddedAt:    fixedNow,
	}
}

// failingStore accepts loads but fails every save.
type failingStore struct{}

func (f *failingStore) Load(ctx context.Context, key string) (string, error) {
	return "", database.ErrNotFound
}

func (f *failingStore) Save(ctx context.Context, key, raw string) error {
	return errors.New("disk full")
}

func TestManagerStartsEmpty(t *testing.T) {
	m := newManager(t, database.NewMemoryStore())
	assert.Empty(t, m.Items())
	assert.Equal(t, 0, m.Len())
}

func TestManagerPersistsAcrossRestart(t *testing.T) {
	store := database.NewMemoryStore()
	m := newManager(t, store)

	// Add three items, two in one batch
	require.NoError(t, m.Add(context.Background(), item("a", "Milk", "2024-05-12")))
	require.NoError(t, m.AddBatch(context.Background(), []models.InventoryItem{
		item("b", "Spinach", "2024-05-11"),
		item("c", "Cheddar", "2024-06-01"),
	}))

	// A new manager over the same store sees the same collection in order
	reloaded := newManager(t, store)
	got := reloaded.Items()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, m.Items(), got)
}

func TestManagerEmptyBatchLeavesStoreUntouched(t *testing.T) {
	store := database.NewMemoryStore()
	m := newManager(t, store)

	require.NoError(t, m.AddBatch(context.Background(), nil))
	_, err := store.Load(context.Background(), database.KeyInventory)
	assert.ErrorIs(t, err, database.ErrNotFound)

	require.NoError(t, m.Add(context.Background(), item("a", "Milk", "2024-05-12")))
	before, err := store.Load(context.Background(), database.KeyInventory)
	require.NoError(t, err)

	require.NoError(t, m.AddBatch(context.Background(), []models.InventoryItem{}))
	after, err := store.Load(context.Background(), database.KeyInventory)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, m.Items(), 1)
}

func TestManagerAddFillsIDAndTimestamp(t *testing.T) {
	m := newManager(t, database.NewMemoryStore())
	it := item("", "Eggs", "2024-05-20")
	it.AddedAt = time.Time{}

	require.NoError(t, m.Add(context.Background(), it))
	got := m.Items()[0]
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, fixedNow, got.AddedAt)
}

func TestManagerRejectsInvalidBatch(t *testing.T) {
	m := newManager(t, database.NewMemoryStore())
	bad := item("b", "Yogurt", "2024-05-20")
	bad.Fragility = 11

	err := m.AddBatch(context.Background(), []models.InventoryItem{item("a", "Milk", "2024-05-12"), bad})
	assert.ErrorIs(t, err, inventory.ErrInvalidItem)
	assert.Empty(t, m.Items())
}

func TestManagerRejectsDuplicateID(t *testing.T) {
	m := newManager(t, database.NewMemoryStore())
	require.NoError(t, m.Add(context.Background(), item("a", "Milk", "2024-05-12")))

	err := m.Add(context.Background(), item("a", "Butter", "2024-05-30"))
	assert.ErrorIs(t, err, inventory.ErrDuplicateID)
	assert.Len(t, m.Items(), 1)
}

func TestManagerRemove(t *testing.T) {
	store := database.NewMemoryStore()
	m := newManager(t, store)
	require.NoError(t, m.AddBatch(context.Background(), []models.InventoryItem{
		item("a", "Milk", "2024-05-12"),
		item("b", "Spinach", "2024-05-11"),
	}))

	removed, err := m.Remove(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, removed)

	// Unknown ids are a no-op
	removed, err = m.Remove(context.Background(), "zzz")
	require.NoError(t, err)
	assert.False(t, removed)

	reloaded := newManager(t, store)
	require.Len(t, reloaded.Items(), 1)
	assert.Equal(t, "b", reloaded.Items()[0].ID)
}

func TestManagerClear(t *testing.T) {
	store := database.NewMemoryStore()
	m := newManager(t, store)
	require.NoError(t, m.Add(context.Background(), item("a", "Milk", "2024-05-12")))

	require.NoError(t, m.Clear(context.Background()))
	assert.Empty(t, m.Items())
	assert.Empty(t, newManager(t, store).Items())
}

func TestManagerCorruptDataFallsBackToEmpty(t *testing.T) {
	store := database.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), database.KeyInventory, "{not json"))

	m := newManager(t, store)
	assert.Empty(t, m.Items())

	// The manager is still usable afterwards
	require.NoError(t, m.Add(context.Background(), item("a", "Milk", "2024-05-12")))
	assert.Len(t, newManager(t, store).Items(), 1)
}

func TestManagerPersistFailureKeepsMemoryState(t *testing.T) {
	mon := monitoring.NewMonitor()
	m := inventory.NewManager(context.Background(), &failingStore{}, logger.Nop(), inventory.WithMonitor(mon))

	err := m.Add(context.Background(), item("a", "Milk", "2024-05-12"))
	assert.Error(t, err)
	assert.Len(t, m.Items(), 1)
}

func TestListSortedByExpiry(t *testing.T) {
	m := newManager(t, database.NewMemoryStore())
	require.NoError(t, m.AddBatch(context.Background(), []models.InventoryItem{
		item("a", "Cheddar", "2024-06-01"),
		item("b", "Spinach", "2024-05-11"),
		item("c", "Milk", "2024-05-11"),
		item("d", "Ham", "2024-05-09"),
	}))

	got := m.ListSortedByExpiry()
	ids := make([]string, len(got))
	for i, it := range got {
		ids[i] = it.ID
	}
	// Ties keep insertion order
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids)

	// Sorting never reorders the stored collection
	assert.Equal(t, "a", m.Items()[0].ID)
}

func TestOverviewAnnotatesStatus(t *testing.T) {
	m := newManager(t, database.NewMemoryStore())
	require.NoError(t, m.AddBatch(context.Background(), []models.InventoryItem{
		item("a", "Cheddar", "2024-06-01"),
		item("b", "Ham", "2024-05-09"),
	}))

	views := m.Overview()
	require.Len(t, views, 2)
	assert.Equal(t, "b", views[0].ID)
	assert.Equal(t, models.ExpiryExpired, views[0].Status)
	assert.Equal(t, models.ExpiryOK, views[1].Status)
}

func TestAddManualDefaults(t *testing.T) {
	m := newManager(t, database.NewMemoryStore())

	got, err := m.AddManual(context.Background(), inventory.ManualEntry{Name: "  Tofu "})
	require.NoError(t, err)
	assert.Equal(t, "Tofu", got.Name)
	assert.Equal(t, "1", got.Quantity)
	assert.Equal(t, "2024-05-17", got.ExpiryDate)
	assert.Equal(t, models.CategoryOther, got.Category)
	assert.Equal(t, 5, got.Fragility)
	assert.Equal(t, "id-1", got.ID)
	assert.Len(t, m.Items(), 1)
}

func TestAddManualRejectsBlankName(t *testing.T) {
	m := newManager(t, database.NewMemoryStore())
	_, err := m.AddManual(context.Background(), inventory.ManualEntry{Name: "   "})
	assert.ErrorIs(t, err, inventory.ErrInvalidItem)
	assert.Empty(t, m.Items())
}
