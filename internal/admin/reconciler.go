// Package admin applies manager commands and the autonomous low-stock check
// directly against the inventory store.
package admin

import (
	"errors"
	"log"

	"drivethru/internal/models"
)

// ErrZeroDelta rejects manual adjustments that would change nothing.
var ErrZeroDelta = errors.New("adjustment delta must be a non-zero integer")

// Defaults for the autonomous check. These are configuration, not business
// rules; the YAML config can override both.
const (
	DefaultLowStockThreshold = 10
	DefaultReorderAmount     = 50
)

// Inventory is the slice of the store the admin path needs.
type Inventory interface {
	GetAll() ([]models.MenuItem, error)
	AdjustQuantity(name string, delta int) (*models.MenuItem, error)
}

// Restock records one successful autonomous reorder.
type Restock struct {
	Item          string `json:"item"`
	OrderedAmount int    `json:"ordered_amount"`
	NewQuantity   int    `json:"new_quantity"`
}

// RestockFailure records an item the check could not restock. Failures are
// surfaced rather than silently dropped so a stuck item is visible.
type RestockFailure struct {
	Item  string `json:"item"`
	Error string `json:"error"`
}

// RestockReport is the outcome of one autonomous check pass.
type RestockReport struct {
	Restocked []Restock        `json:"restocked"`
	Failed    []RestockFailure `json:"failed,omitempty"`
}

// Reconciler mutates inventory on behalf of managers.
type Reconciler struct {
	store         Inventory
	Threshold     int
	ReorderAmount int
}

// New builds an admin reconciler. Non-positive threshold or reorder amount
// falls back to the defaults.
func New(store Inventory, threshold, reorderAmount int) *Reconciler {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	if reorderAmount <= 0 {
		reorderAmount = DefaultReorderAmount
	}
	return &Reconciler{
		store:         store,
		Threshold:     threshold,
		ReorderAmount: reorderAmount,
	}
}

// ApplyManualAdjustment applies a signed stock delta for one item. A positive
// delta is the "order more stock" intent; the store enforces non-negativity
// for negative deltas.
func (r *Reconciler) ApplyManualAdjustment(name string, delta int) (*models.MenuItem, error) {
	if delta == 0 {
		return nil, ErrZeroDelta
	}
	return r.store.AdjustQuantity(name, delta)
}

// RunAutonomousCheck scans all items and reorders any whose quantity is
// strictly below the threshold. One item failing never halts the scan.
func (r *Reconciler) RunAutonomousCheck() (RestockReport, error) {
	items, err := r.store.GetAll()
	if err != nil {
		return RestockReport{}, err
	}

	var report RestockReport
	for _, item := range items {
		if item.Quantity >= r.Threshold {
			continue
		}
		updated, err := r.store.AdjustQuantity(item.Name, r.ReorderAmount)
		if err != nil {
			log.Printf("autonomous restock failed for %q: %v", item.Name, err)
			report.Failed = append(report.Failed, RestockFailure{Item: item.Name, Error: err.Error()})
			continue
		}
		report.Restocked = append(report.Restocked, Restock{
			Item:          updated.Name,
			OrderedAmount: r.ReorderAmount,
			NewQuantity:   updated.Quantity,
		})
	}
	return report, nil
}
