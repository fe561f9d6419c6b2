package inventory

import "errors"

// ErrNotFound is returned when no menu item matches the requested name.
var ErrNotFound = errors.New("menu item not found")

// ErrInsufficientStock is returned when a decrement would drive an item's
// quantity below zero. No write happens in that case.
var ErrInsufficientStock = errors.New("insufficient stock")
