package order

import (
	"errors"

	"drivethru/internal/inventory"
	"drivethru/internal/models"
)

// Adjuster is the slice of the inventory store checkout needs: reads plus the
// serialized quantity update.
type Adjuster interface {
	Stock
	AdjustQuantity(name string, delta int) (*models.MenuItem, error)
}

// PlacementFailure reports one cart line that could not be fulfilled at
// confirmation time. Available carries the live count for short-stock cases.
type PlacementFailure struct {
	Line      models.OrderLine  `json:"line"`
	Code      models.RejectCode `json:"code"`
	Available int               `json:"available,omitempty"`
	Message   string            `json:"message"`
}

// PlacementResult is the outcome of confirming an order. Lines are fulfilled
// independently; Placed and Failed together cover the whole cart.
type PlacementResult struct {
	Placed []models.OrderLine `json:"placed"`
	Failed []PlacementFailure `json:"failed,omitempty"`
}

// Complete reports whether the entire cart was fulfilled.
func (p PlacementResult) Complete() bool {
	return len(p.Failed) == 0
}

// Checkout reserves stock for a confirmed order: each cart line decrements
// the store by its quantity. Reconciliation checks were advisory, so stock
// may have moved since: any line the store refuses stays in the cart and is
// reported; fulfilled lines are removed. There is no cross-item rollback.
func Checkout(store Adjuster, s *Session) PlacementResult {
	s.mu.Lock()
	lines := make([]models.OrderLine, len(s.lines))
	copy(lines, s.lines)
	s.mu.Unlock()

	var result PlacementResult
	for _, line := range lines {
		item, err := store.AdjustQuantity(line.Item, -line.Quantity)
		switch {
		case err == nil:
			result.Placed = append(result.Placed, line)
			s.mu.Lock()
			s.dropLine(line.Item, line.Details)
			s.mu.Unlock()
		case errors.Is(err, inventory.ErrNotFound):
			result.Failed = append(result.Failed, PlacementFailure{
				Line:    line,
				Code:    models.RejectUnknownItem,
				Message: line.Item + " is no longer on the menu",
			})
		case errors.Is(err, inventory.ErrInsufficientStock):
			failure := PlacementFailure{
				Line:    line,
				Code:    models.RejectInsufficientStock,
				Message: "not enough " + line.Item + " left to fulfill this line",
			}
			if item != nil {
				failure.Available = item.Quantity
			}
			result.Failed = append(result.Failed, failure)
		default:
			result.Failed = append(result.Failed, PlacementFailure{
				Line:    line,
				Code:    models.RejectStoreError,
				Message: "store error while placing " + line.Item,
			})
		}
	}
	return result
}
