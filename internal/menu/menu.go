// Package menu holds the customer-facing menu board: the display catalog the
// kiosk shows, price and icon lookups for cart lines, and the plain-text menu
// rendering fed to the intent interpreter.
package menu

import (
	"fmt"
	"strings"

	"drivethru/internal/models"
)

// Entry is one orderable thing on the board. Item plus Details map onto the
// cart's merge key: several board entries can share one inventory item (every
// soda flavor draws from the "Soda" stock).
type Entry struct {
	Label   string  `json:"label"`
	Item    string  `json:"item"`
	Details string  `json:"details,omitempty"`
	Price   float64 `json:"price"`
	Icon    string  `json:"icon,omitempty"`
}

// Category groups board entries for display.
type Category struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Board is the full display catalog.
type Board struct {
	categories []Category
}

// NewBoard builds a board from an ordered category list.
func NewBoard(categories []Category) *Board {
	return &Board{categories: categories}
}

// DefaultBoard is the stock drive-thru menu.
func DefaultBoard() *Board {
	return NewBoard([]Category{
		{Name: "Main Dishes", Entries: []Entry{
			{Label: "Cheeseburger", Item: "Cheeseburger", Price: 5.99, Icon: "🍔"},
			{Label: "Veggie Burger", Item: "Veggie Burger", Price: 6.49, Icon: "🥬"},
			{Label: "Chicken Sandwich", Item: "Chicken Sandwich", Price: 6.99, Icon: "🍗"},
		}},
		{Name: "Sides", Entries: []Entry{
			{Label: "Fries (Regular)", Item: "Fries", Details: "Regular", Price: 2.99, Icon: "🍟"},
			{Label: "Fries (Large)", Item: "Fries", Details: "Large", Price: 3.99, Icon: "🍟"},
			{Label: "Salad", Item: "Salad", Price: 4.99, Icon: "🥗"},
		}},
		{Name: "Drinks", Entries: []Entry{
			{Label: "Coke", Item: "Soda", Details: "Coke", Price: 1.99, Icon: "🥤"},
			{Label: "Sprite", Item: "Soda", Details: "Sprite", Price: 1.99, Icon: "🥤"},
			{Label: "Orange Soda", Item: "Soda", Details: "Orange", Price: 1.99, Icon: "🍊"},
		}},
		{Name: "Desserts", Entries: []Entry{
			{Label: "Chocolate Milkshake", Item: "Milkshake", Details: "Chocolate", Price: 3.49, Icon: "🧋"},
			{Label: "Vanilla Milkshake", Item: "Milkshake", Details: "Vanilla", Price: 3.49, Icon: "🧋"},
			{Label: "Strawberry Milkshake", Item: "Milkshake", Details: "Strawberry", Price: 3.49, Icon: "🧋"},
		}},
	})
}

// Categories returns the board in display order.
func (b *Board) Categories() []Category {
	return b.categories
}

// Lookup finds the board entry for a cart key. When no exact variant match
// exists it falls back to a details-less entry for the same item, then to the
// item's first listed variant, so unrecognized flavors still price correctly.
func (b *Board) Lookup(item, details string) (Entry, bool) {
	var fallback Entry
	var haveFallback bool
	for _, cat := range b.categories {
		for _, e := range cat.Entries {
			if !strings.EqualFold(e.Item, item) {
				continue
			}
			if strings.EqualFold(e.Details, details) {
				return e, true
			}
			if !haveFallback || (e.Details == "" && fallback.Details != "") {
				fallback, haveFallback = e, true
			}
		}
	}
	return fallback, haveFallback
}

// Price returns the price for a cart key, or zero when the board has no entry.
func (b *Board) Price(item, details string) float64 {
	if e, ok := b.Lookup(item, details); ok {
		return e.Price
	}
	return 0
}

// Total sums a cart against board prices.
func (b *Board) Total(lines []models.OrderLine) float64 {
	var total float64
	for _, l := range lines {
		total += float64(l.Quantity) * b.Price(l.Item, l.Details)
	}
	return total
}

// PromptText renders the current stock as the plain-text menu the order
// interpreter is given, so the model only offers what can actually be sold.
func PromptText(items []models.MenuItem) string {
	var sb strings.Builder
	sb.WriteString("Available menu items:\n")
	for _, item := range items {
		if item.Quantity <= 0 {
			fmt.Fprintf(&sb, "- %s ($%.2f): %s [SOLD OUT]\n", item.Name, item.Price, item.Description)
			continue
		}
		fmt.Fprintf(&sb, "- %s ($%.2f): %s\n", item.Name, item.Price, item.Description)
	}
	return sb.String()
}

// InventoryText renders the full stock report the admin interpreter is given.
func InventoryText(items []models.MenuItem) string {
	var sb strings.Builder
	sb.WriteString("Current inventory:\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "- %s: %d in stock ($%.2f each)\n", item.Name, item.Quantity, item.Price)
	}
	return sb.String()
}
