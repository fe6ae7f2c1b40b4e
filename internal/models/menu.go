package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MenuItem represents a dish on the menu. Items are immutable once loaded;
// the menu catalog is their sole owner.
type MenuItem struct {
	Code        string          `json:"item_code"`
	Name        string          `json:"dish_name"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Ingredients []string        `json:"ingredients,omitempty"`
	DietaryTags []string        `json:"dietary_tags,omitempty"`
	Available   bool            `json:"available"`
	PrepTime    int             `json:"prep_time_minutes"`
	Popularity  int             `json:"popularity"`
}

// Category represents the section of the menu an item belongs to
type Category string

const (
	// Menu categories
	CategoryAppetizer Category = "appetizer"
	CategoryMain      Category = "main"
	CategoryDessert   Category = "dessert"
	CategoryDrink     Category = "drink"
)

// Categories returns every menu category in display order.
func Categories() []Category {
	return []Category{CategoryAppetizer, CategoryMain, CategoryDessert, CategoryDrink}
}

// Valid reports whether c is a known menu category.
func (c Category) Valid() bool {
	switch c {
	case CategoryAppetizer, CategoryMain, CategoryDessert, CategoryDrink:
		return true
	}
	return false
}

// ValidateMenuItem validates a menu item
func ValidateMenuItem(item *MenuItem) error {
	if item.Code == "" {
		return fmt.Errorf("menu item code is required")
	}
	if item.Name == "" {
		return fmt.Errorf("menu item name is required")
	}
	if !item.Category.Valid() {
		return fmt.Errorf("unknown menu category %q", item.Category)
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("menu item price must not be negative")
	}
	return nil
}

// IsInCategory checks if the item belongs to a specific category
func (mi *MenuItem) IsInCategory(category Category) bool {
	return mi.Category == category
}

// HasDietaryTag checks if the item carries a specific dietary label
func (mi *MenuItem) HasDietaryTag(tag string) bool {
	for _, t := range mi.DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}
