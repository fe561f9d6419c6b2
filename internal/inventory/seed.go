package inventory

import "drivethru/internal/models"

// DefaultMenu is the initial stock loaded on first run. The Chicken Sandwich
// starts at zero so the out-of-stock path is exercisable from a fresh database.
func DefaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{Name: "Cheeseburger", Description: "A classic beef patty with cheese, lettuce, and tomato", Price: 5.99, Quantity: 50},
		{Name: "Veggie Burger", Description: "A delicious plant-based patty with all the fixings", Price: 6.49, Quantity: 30},
		{Name: "Fries", Description: "Crispy golden french fries", Price: 2.99, Quantity: 100},
		{Name: "Soda", Description: "Choice of cola, lemon-lime, or orange", Price: 1.99, Quantity: 80},
		{Name: "Milkshake", Description: "Chocolate, Vanilla, or Strawberry", Price: 3.49, Quantity: 40},
		{Name: "Chicken Sandwich", Description: "Crispy chicken breast sandwich", Price: 6.99, Quantity: 0},
		{Name: "Salad", Description: "Fresh garden salad with choice of dressing", Price: 4.99, Quantity: 25},
	}
}
