package inventory

import (
	"fmt"
	"strings"
	"sync"

	"drivethru/internal/models"

	"github.com/jinzhu/gorm"
)

// Store is the persistent record of menu items and their stock levels. It is
// shared between kiosk sessions and the admin path, so every check-then-write
// for a given item is serialized behind a per-item lock and runs inside a
// single transaction. Cross-item atomicity is deliberately not provided.
type Store struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore wraps an open gorm connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}
}

// Migrate creates the menu_items table if needed.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&models.MenuItem{}).Error; err != nil {
		return fmt.Errorf("failed to migrate menu_items: %w", err)
	}
	return nil
}

// Seed inserts items that are not already present. Existing rows are left
// untouched so re-running the seed never clobbers live stock levels.
func (s *Store) Seed(items []models.MenuItem) error {
	for _, item := range items {
		var existing models.MenuItem
		err := s.db.Where("LOWER(name) = LOWER(?)", item.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !gorm.IsRecordNotFoundError(err) {
			return fmt.Errorf("failed to check for %q: %w", item.Name, err)
		}
		if err := s.db.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to seed %q: %w", item.Name, err)
		}
	}
	return nil
}

// GetAll returns the full unfiltered snapshot, for admin views.
func (s *Store) GetAll() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

// GetAvailable returns only items with stock, for the customer-facing menu.
func (s *Store) GetAvailable() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.Where("quantity > 0").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list available items: %w", err)
	}
	return items, nil
}

// GetByName fetches a single item by case-insensitive exact name match.
func (s *Store) GetByName(name string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&item).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %q: %w", name, err)
	}
	return &item, nil
}

// itemLock returns the mutex serializing writes for one item name.
func (s *Store) itemLock(name string) *sync.Mutex {
	key := strings.ToLower(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// AdjustQuantity applies a signed delta to an item's stock. The read and the
// write happen under the item's lock inside one transaction, so concurrent
// adjustments for the same item cannot interleave and the quantity can never
// land below zero. On ErrInsufficientStock the returned item still carries
// the current quantity so callers can relay how much is actually available.
func (s *Store) AdjustQuantity(name string, delta int) (*models.MenuItem, error) {
	lock := s.itemLock(name)
	lock.Lock()
	defer lock.Unlock()

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	var item models.MenuItem
	err := tx.Where("LOWER(name) = LOWER(?)", name).First(&item).Error
	if gorm.IsRecordNotFoundError(err) {
		tx.Rollback()
		return nil, ErrNotFound
	}
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to fetch %q: %w", name, err)
	}

	if delta < 0 && item.Quantity+delta < 0 {
		tx.Rollback()
		return &item, fmt.Errorf("%w: %q has %d, requested %d", ErrInsufficientStock, item.Name, item.Quantity, -delta)
	}

	item.Quantity += delta
	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update %q: %w", name, err)
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to commit update for %q: %w", name, err)
	}
	return &item, nil
}
