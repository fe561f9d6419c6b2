package order

import (
	"errors"
	"fmt"
	"time"

	"drivethru/internal/inventory"
	"drivethru/internal/models"
)

// Stock is the slice of the inventory store the reconciler needs.
type Stock interface {
	GetByName(name string) (*models.MenuItem, error)
}

// Reconciler validates interpreter-proposed actions against current stock and
// applies the permitted subset to a session's cart.
//
// Stock checks here are advisory: the store is not decremented until the
// order is confirmed at checkout. To keep a session honest with itself, the
// availability check subtracts what the cart already holds of the same item,
// so a customer cannot chat their way past the shelf count one add at a time.
type Reconciler struct {
	stock Stock
}

// NewReconciler builds a reconciler over the given stock view.
func NewReconciler(stock Stock) *Reconciler {
	return &Reconciler{stock: stock}
}

// Reconcile evaluates each action independently, in the order received, and
// mutates the session's cart for every accepted one. A rejection never blocks
// subsequent actions; partial success is the normal outcome.
func (r *Reconciler) Reconcile(s *Session, actions []models.ProposedAction) models.ReconciliationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result models.ReconciliationResult
	for _, action := range actions {
		if rej, ok := r.apply(s, action); ok {
			result.Accepted = append(result.Accepted, action)
		} else {
			result.Rejected = append(result.Rejected, rej)
		}
	}
	s.lastActive = time.Now()
	return result
}

// apply handles one action against the locked session. Returns the rejection
// when the action is refused.
func (r *Reconciler) apply(s *Session, action models.ProposedAction) (models.Rejection, bool) {
	if action.Item == "" || action.Quantity <= 0 {
		return models.Rejection{
			Action:  action,
			Code:    models.RejectInvalidAction,
			Message: "malformed action: item and a positive quantity are required",
		}, false
	}

	switch action.Action {
	case models.ActionAdd:
		return r.applyAdd(s, action)
	case models.ActionRemove:
		return r.applyRemove(s, action)
	default:
		return models.Rejection{
			Action:  action,
			Code:    models.RejectInvalidAction,
			Message: fmt.Sprintf("unsupported action %q", action.Action),
		}, false
	}
}

func (r *Reconciler) applyAdd(s *Session, action models.ProposedAction) (models.Rejection, bool) {
	item, err := r.stock.GetByName(action.Item)
	if errors.Is(err, inventory.ErrNotFound) {
		return models.Rejection{
			Action:  action,
			Code:    models.RejectUnknownItem,
			Message: fmt.Sprintf("%s is not on the menu", action.Item),
		}, false
	}
	if err != nil {
		// Store failures are reported like any other per-action refusal; the
		// rest of the batch still runs.
		return models.Rejection{
			Action:  action,
			Code:    models.RejectStoreError,
			Message: fmt.Sprintf("could not check stock for %s", action.Item),
		}, false
	}

	if item.Quantity == 0 {
		return models.Rejection{
			Action:  action,
			Code:    models.RejectOutOfStock,
			Message: fmt.Sprintf("%s is sold out", item.Name),
		}, false
	}

	available := item.Quantity - s.quantityOfItem(item.Name)
	if action.Quantity > available {
		if available < 0 {
			available = 0
		}
		return models.Rejection{
			Action:    action,
			Code:      models.RejectInsufficientStock,
			Available: available,
			Message:   fmt.Sprintf("only %d %s available", available, item.Name),
		}, false
	}

	s.addLine(item.Name, action.Quantity, action.Details)
	return models.Rejection{}, true
}

func (r *Reconciler) applyRemove(s *Session, action models.ProposedAction) (models.Rejection, bool) {
	if !s.removeLine(action.Item, action.Quantity, action.Details) {
		return models.Rejection{
			Action:  action,
			Code:    models.RejectNotInOrder,
			Message: fmt.Sprintf("%s is not in your order", action.Label()),
		}, false
	}
	return models.Rejection{}, true
}
