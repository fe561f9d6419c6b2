package order

import (
	"errors"
	"strings"
	"testing"

	"drivethru/internal/inventory"
	"drivethru/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStock serves stock lookups from a map, case-insensitively.
type fakeStock struct {
	items map[string]*models.MenuItem
}

func newFakeStock(items ...models.MenuItem) *fakeStock {
	f := &fakeStock{items: make(map[string]*models.MenuItem)}
	for i := range items {
		f.items[strings.ToLower(items[i].Name)] = &items[i]
	}
	return f
}

func (f *fakeStock) GetByName(name string) (*models.MenuItem, error) {
	item, ok := f.items[strings.ToLower(name)]
	if !ok {
		return nil, inventory.ErrNotFound
	}
	out := *item
	return &out, nil
}

func add(item string, qty int, details string) models.ProposedAction {
	return models.ProposedAction{Action: models.ActionAdd, Item: item, Quantity: qty, Details: details}
}

func remove(item string, qty int, details string) models.ProposedAction {
	return models.ProposedAction{Action: models.ActionRemove, Item: item, Quantity: qty, Details: details}
}

func TestReconcileAddMergesByKey(t *testing.T) {
	stock := newFakeStock(models.MenuItem{Name: "Cheeseburger", Quantity: 50})
	r := NewReconciler(stock)
	s := newSession("test")

	result := r.Reconcile(s, []models.ProposedAction{
		add("Cheeseburger", 2, ""),
		add("cheeseburger", 3, ""),
	})

	assert.Len(t, result.Accepted, 2)
	assert.Empty(t, result.Rejected)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestReconcileDetailsAreDistinctLines(t *testing.T) {
	stock := newFakeStock(models.MenuItem{Name: "Soda", Quantity: 80})
	r := NewReconciler(stock)
	s := newSession("test")

	result := r.Reconcile(s, []models.ProposedAction{
		add("Soda", 1, "Coke"),
		add("Soda", 1, "Sprite"),
	})

	assert.Len(t, result.Accepted, 2)
	assert.Len(t, s.Lines(), 2)
}

func TestReconcileUnknownItem(t *testing.T) {
	r := NewReconciler(newFakeStock())
	s := newSession("test")

	result := r.Reconcile(s, []models.ProposedAction{add("Onion Rings", 1, "")})

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, models.RejectUnknownItem, result.Rejected[0].Code)
	assert.Empty(t, s.Lines())
}

func TestReconcileOutOfStock(t *testing.T) {
	stock := newFakeStock(models.MenuItem{Name: "Chicken Sandwich", Quantity: 0})
	r := NewReconciler(stock)
	s := newSession("test")

	result := r.Reconcile(s, []models.ProposedAction{add("Chicken Sandwich", 1, "")})

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, models.RejectOutOfStock, result.Rejected[0].Code)
}

func TestReconcileInsufficientStockAccountsForCart(t *testing.T) {
	// Fries: 5 in stock. The first add reserves 3 of them in the cart, so a
	// second add of 4 must be refused with only 2 reported available.
	stock := newFakeStock(models.MenuItem{Name: "Fries", Quantity: 5})
	r := NewReconciler(stock)
	s := newSession("test")

	result := r.Reconcile(s, []models.ProposedAction{
		add("Fries", 3, ""),
		add("Fries", 4, ""),
	})

	require.Len(t, result.Accepted, 1)
	require.Len(t, result.Rejected, 1)

	rej := result.Rejected[0]
	assert.Equal(t, models.RejectInsufficientStock, rej.Code)
	assert.Equal(t, 2, rej.Available)
	assert.Contains(t, rej.Message, "only 2")

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestReconcileExactAvailableCountSucceeds(t *testing.T) {
	stock := newFakeStock(models.MenuItem{Name: "Fries", Quantity: 5})
	r := NewReconciler(stock)
	s := newSession("test")

	result := r.Reconcile(s, []models.ProposedAction{add("Fries", 5, "")})

	assert.Len(t, result.Accepted, 1)
	assert.Empty(t, result.Rejected)
}

func TestReconcileCartAggregatesAcrossDetails(t *testing.T) {
	// Stock is tracked per item name, so variant lines share the same shelf.
	stock := newFakeStock(models.MenuItem{Name: "Milkshake", Quantity: 4})
	r := NewReconciler(stock)
	s := newSession("test")

	result := r.Reconcile(s, []models.ProposedAction{
		add("Milkshake", 3, "Chocolate"),
		add("Milkshake", 2, "Vanilla"),
	})

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, models.RejectInsufficientStock, result.Rejected[0].Code)
	assert.Equal(t, 1, result.Rejected[0].Available)
}

// erroringStock fails every lookup the way a lost database connection would.
type erroringStock struct{}

func (erroringStock) GetByName(string) (*models.MenuItem, error) {
	return nil, errors.New("database is locked")
}

func TestReconcileStoreFailureIsStoreError(t *testing.T) {
	r := NewReconciler(erroringStock{})
	s := newSession("test")

	result := r.Reconcile(s, []models.ProposedAction{add("Fries", 1, "")})

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, models.RejectStoreError, result.Rejected[0].Code)
	assert.Empty(t, s.Lines())
}

func TestReconcileInvalidActions(t *testing.T) {
	stock := newFakeStock(models.MenuItem{Name: "Fries", Quantity: 5})
	r := NewReconciler(stock)
	s := newSession("test")

	result := r.Reconcile(s, []models.ProposedAction{
		add("", 1, ""),
		add("Fries", 0, ""),
		{Action: "upgrade", Item: "Fries", Quantity: 1},
	})

	assert.Empty(t, result.Accepted)
	require.Len(t, result.Rejected, 3)
	for _, rej := range result.Rejected {
		assert.Equal(t, models.RejectInvalidAction, rej.Code)
	}
}

func TestReconcileRemoveClampsAndDeletesLine(t *testing.T) {
	stock := newFakeStock(models.MenuItem{Name: "Fries", Quantity: 100})
	r := NewReconciler(stock)
	s := newSession("test")

	r.Reconcile(s, []models.ProposedAction{add("Fries", 2, "")})
	result := r.Reconcile(s, []models.ProposedAction{remove("Fries", 10, "")})

	assert.Len(t, result.Accepted, 1)
	assert.Empty(t, s.Lines())
}

func TestReconcileRemoveAbsentKey(t *testing.T) {
	stock := newFakeStock(models.MenuItem{Name: "Fries", Quantity: 100})
	r := NewReconciler(stock)
	s := newSession("test")

	r.Reconcile(s, []models.ProposedAction{add("Fries", 2, "")})
	result := r.Reconcile(s, []models.ProposedAction{remove("Soda", 1, "Coke")})

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, models.RejectNotInOrder, result.Rejected[0].Code)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestReconcileRemoveLastSodaEmptiesOrder(t *testing.T) {
	stock := newFakeStock(models.MenuItem{Name: "Soda", Quantity: 80})
	r := NewReconciler(stock)
	s := newSession("test")

	r.Reconcile(s, []models.ProposedAction{add("Soda", 1, "Coke")})
	result := r.Reconcile(s, []models.ProposedAction{remove("Soda", 1, "Coke")})

	assert.Len(t, result.Accepted, 1)
	assert.Empty(t, result.Rejected)
	assert.Empty(t, s.Lines())
}

func TestReconcileRejectionNeverBlocksLaterActions(t *testing.T) {
	stock := newFakeStock(
		models.MenuItem{Name: "Fries", Quantity: 1},
		models.MenuItem{Name: "Soda", Quantity: 80},
	)
	r := NewReconciler(stock)
	s := newSession("test")

	result := r.Reconcile(s, []models.ProposedAction{
		add("Fries", 5, ""),
		add("Soda", 1, "Coke"),
	})

	require.Len(t, result.Accepted, 1)
	assert.Equal(t, "Soda", result.Accepted[0].Item)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "Fries", result.Rejected[0].Action.Item)
}

func TestReconcilePreservesSubmissionOrder(t *testing.T) {
	stock := newFakeStock(
		models.MenuItem{Name: "Cheeseburger", Quantity: 10},
		models.MenuItem{Name: "Fries", Quantity: 10},
		models.MenuItem{Name: "Soda", Quantity: 10},
	)
	r := NewReconciler(stock)
	s := newSession("test")

	result := r.Reconcile(s, []models.ProposedAction{
		add("Cheeseburger", 1, ""),
		add("Fries", 1, ""),
		add("Soda", 1, "Coke"),
	})

	require.Len(t, result.Accepted, 3)
	assert.Equal(t, "Cheeseburger", result.Accepted[0].Item)
	assert.Equal(t, "Fries", result.Accepted[1].Item)
	assert.Equal(t, "Soda", result.Accepted[2].Item)
}
