package admin

import (
	"errors"
	"strings"
	"testing"

	"drivethru/internal/inventory"
	"drivethru/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInventory serves and mutates items from a map. Names listed in broken
// fail every adjustment, to exercise the failure-reporting path.
type fakeInventory struct {
	items  map[string]*models.MenuItem
	broken map[string]bool
}

func newFakeInventory(items ...models.MenuItem) *fakeInventory {
	f := &fakeInventory{
		items:  make(map[string]*models.MenuItem),
		broken: make(map[string]bool),
	}
	for i := range items {
		f.items[strings.ToLower(items[i].Name)] = &items[i]
	}
	return f
}

func (f *fakeInventory) GetAll() ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeInventory) AdjustQuantity(name string, delta int) (*models.MenuItem, error) {
	if f.broken[strings.ToLower(name)] {
		return nil, errors.New("disk I/O error")
	}
	item, ok := f.items[strings.ToLower(name)]
	if !ok {
		return nil, inventory.ErrNotFound
	}
	if delta < 0 && item.Quantity+delta < 0 {
		out := *item
		return &out, inventory.ErrInsufficientStock
	}
	item.Quantity += delta
	out := *item
	return &out, nil
}

func TestManualAdjustmentRejectsZeroDelta(t *testing.T) {
	r := New(newFakeInventory(), 0, 0)

	_, err := r.ApplyManualAdjustment("Fries", 0)
	assert.ErrorIs(t, err, ErrZeroDelta)
}

func TestManualAdjustmentPassesThrough(t *testing.T) {
	store := newFakeInventory(models.MenuItem{Name: "Fries", Quantity: 10})
	r := New(store, 0, 0)

	item, err := r.ApplyManualAdjustment("fries", 25)
	require.NoError(t, err)
	assert.Equal(t, 35, item.Quantity)

	_, err = r.ApplyManualAdjustment("Fries", -100)
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	_, err = r.ApplyManualAdjustment("Onion Rings", 5)
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestAutonomousCheckReordersBelowThreshold(t *testing.T) {
	store := newFakeInventory(
		models.MenuItem{Name: "Chicken Sandwich", Quantity: 3},
		models.MenuItem{Name: "Fries", Quantity: 100},
	)
	r := New(store, 10, 50)

	report, err := r.RunAutonomousCheck()
	require.NoError(t, err)

	require.Len(t, report.Restocked, 1)
	assert.Equal(t, Restock{Item: "Chicken Sandwich", OrderedAmount: 50, NewQuantity: 53}, report.Restocked[0])
	assert.Empty(t, report.Failed)
}

func TestAutonomousCheckThresholdIsStrict(t *testing.T) {
	// An item sitting exactly at the threshold is not reordered.
	store := newFakeInventory(models.MenuItem{Name: "Salad", Quantity: 10})
	r := New(store, 10, 50)

	report, err := r.RunAutonomousCheck()
	require.NoError(t, err)
	assert.Empty(t, report.Restocked)
}

func TestAutonomousCheckSurfacesFailuresAndContinues(t *testing.T) {
	store := newFakeInventory(
		models.MenuItem{Name: "Milkshake", Quantity: 2},
		models.MenuItem{Name: "Salad", Quantity: 4},
	)
	store.broken["milkshake"] = true
	r := New(store, 10, 50)

	report, err := r.RunAutonomousCheck()
	require.NoError(t, err)

	require.Len(t, report.Failed, 1)
	assert.Equal(t, "Milkshake", report.Failed[0].Item)
	require.Len(t, report.Restocked, 1)
	assert.Equal(t, "Salad", report.Restocked[0].Item)
	assert.Equal(t, 54, report.Restocked[0].NewQuantity)
}

func TestNewAppliesDefaults(t *testing.T) {
	r := New(newFakeInventory(), 0, -5)
	assert.Equal(t, DefaultLowStockThreshold, r.Threshold)
	assert.Equal(t, DefaultReorderAmount, r.ReorderAmount)
}
