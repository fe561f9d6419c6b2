package menu

import (
	"testing"

	"drivethru/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupExactVariant(t *testing.T) {
	board := DefaultBoard()

	entry, ok := board.Lookup("Soda", "Coke")
	require.True(t, ok)
	assert.Equal(t, "Coke", entry.Label)

	entry, ok = board.Lookup("soda", "sprite")
	require.True(t, ok)
	assert.Equal(t, "Sprite", entry.Label)
}

func TestLookupFallsBackForUnknownVariant(t *testing.T) {
	board := DefaultBoard()

	// An unrecognized flavor still resolves to an entry for the item.
	entry, ok := board.Lookup("Milkshake", "Pistachio")
	require.True(t, ok)
	assert.Equal(t, "Milkshake", entry.Item)
	assert.InDelta(t, 3.49, entry.Price, 0.001)

	// A details-less lookup of a variant-only item resolves too.
	entry, ok = board.Lookup("Fries", "")
	require.True(t, ok)
	assert.Equal(t, "Fries", entry.Item)

	_, ok = board.Lookup("Onion Rings", "")
	assert.False(t, ok)
}

func TestPriceUnknownItemIsZero(t *testing.T) {
	board := DefaultBoard()
	assert.Zero(t, board.Price("Onion Rings", ""))
}

func TestTotal(t *testing.T) {
	board := DefaultBoard()
	lines := []models.OrderLine{
		{Item: "Cheeseburger", Quantity: 2},
		{Item: "Fries", Details: "Large", Quantity: 1},
		{Item: "Soda", Details: "Coke", Quantity: 2},
	}
	assert.InDelta(t, 2*5.99+3.99+2*1.99, board.Total(lines), 0.001)
}

func TestPromptTextMarksSoldOut(t *testing.T) {
	items := []models.MenuItem{
		{Name: "Fries", Description: "Crispy golden french fries", Price: 2.99, Quantity: 100},
		{Name: "Chicken Sandwich", Description: "Crispy chicken breast sandwich", Price: 6.99, Quantity: 0},
	}
	text := PromptText(items)
	assert.Contains(t, text, "- Fries ($2.99): Crispy golden french fries\n")
	assert.Contains(t, text, "- Chicken Sandwich ($6.99): Crispy chicken breast sandwich [SOLD OUT]\n")
}

func TestInventoryText(t *testing.T) {
	items := []models.MenuItem{
		{Name: "Salad", Price: 4.99, Quantity: 25},
	}
	assert.Contains(t, InventoryText(items), "- Salad: 25 in stock ($4.99 each)\n")
}
