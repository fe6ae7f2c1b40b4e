package menu

import (
	"github.com/shopspring/decimal"

	"maitred/internal/models"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Default returns the standard house menu.
func Default() *Catalog {
	catalog, err := New(defaultItems())
	if err != nil {
		// The seed data is static; a failure here is a programming error.
		panic(err)
	}
	return catalog
}

func defaultItems() []models.MenuItem {
	return []models.MenuItem{
		{
			Code:        "APP_001",
			Name:        "Mediterranean Bruschetta",
			Category:    models.CategoryAppetizer,
			Description: "Artisan sourdough topped with heirloom tomatoes, fresh basil, and aged balsamic",
			Price:       price("9.99"),
			Ingredients: []string{"sourdough bread", "heirloom tomatoes", "basil", "garlic", "balsamic vinegar", "olive oil"},
			DietaryTags: []string{"vegetarian", "vegan-option"},
			Available:   true,
			PrepTime:    10,
			Popularity:  8,
		},
		{
			Code:        "APP_002",
			Name:        "Crispy Buffalo Wings",
			Category:    models.CategoryAppetizer,
			Description: "Double-fried chicken wings tossed in house buffalo sauce with celery and blue cheese dip",
			Price:       price("13.99"),
			Ingredients: []string{"chicken wings", "buffalo sauce", "butter", "celery", "blue cheese"},
			DietaryTags: []string{"spicy", "gluten-free-option"},
			Available:   true,
			PrepTime:    18,
			Popularity:  9,
		},
		{
			Code:        "APP_003",
			Name:        "Spinach Artichoke Dip",
			Category:    models.CategoryAppetizer,
			Description: "Creamy blend of spinach, artichokes, three cheeses, served with tortilla chips",
			Price:       price("11.49"),
			Ingredients: []string{"spinach", "artichokes", "cream cheese", "mozzarella", "parmesan", "tortilla chips"},
			DietaryTags: []string{"vegetarian"},
			Available:   true,
			PrepTime:    12,
			Popularity:  8,
		},
		{
			Code:        "MAIN_001",
			Name:        "Pan-Seared Atlantic Salmon",
			Category:    models.CategoryMain,
			Description: "Wild-caught salmon with lemon beurre blanc, roasted asparagus, and herb fingerling potatoes",
			Price:       price("26.99"),
			Ingredients: []string{"atlantic salmon", "lemon", "butter", "white wine", "asparagus", "fingerling potatoes", "herbs"},
			DietaryTags: []string{"gluten-free", "pescatarian"},
			Available:   true,
			PrepTime:    25,
			Popularity:  10,
		},
		{
			Code:        "MAIN_002",
			Name:        "Classic Fettuccine Alfredo",
			Category:    models.CategoryMain,
			Description: "Handmade fettuccine in rich parmesan cream sauce with grilled herb chicken breast",
			Price:       price("19.99"),
			Ingredients: []string{"fettuccine pasta", "chicken breast", "heavy cream", "parmesan", "garlic", "butter"},
			Available:   true,
			PrepTime:    22,
			Popularity:  9,
		},
		{
			Code:        "MAIN_003",
			Name:        "Angus Ribeye Steak",
			Category:    models.CategoryMain,
			Description: "12oz USDA Prime ribeye, garlic mashed potatoes, grilled broccolini, red wine reduction",
			Price:       price("34.99"),
			Ingredients: []string{"ribeye steak", "potatoes", "butter", "broccolini", "red wine", "shallots"},
			DietaryTags: []string{"gluten-free"},
			Available:   true,
			PrepTime:    30,
			Popularity:  10,
		},
		{
			Code:        "DESS_001",
			Name:        "Molten Chocolate Lava Cake",
			Category:    models.CategoryDessert,
			Description: "Warm Belgian chocolate cake with liquid center, vanilla bean ice cream, raspberry coulis",
			Price:       price("9.99"),
			Ingredients: []string{"dark chocolate", "flour", "eggs", "butter", "vanilla ice cream", "raspberries"},
			DietaryTags: []string{"vegetarian"},
			Available:   true,
			PrepTime:    14,
			Popularity:  10,
		},
		{
			Code:        "DESS_002",
			Name:        "New York Cheesecake",
			Category:    models.CategoryDessert,
			Description: "Classic creamy cheesecake with graham cracker crust, fresh berry compote",
			Price:       price("8.49"),
			Ingredients: []string{"cream cheese", "graham crackers", "eggs", "sour cream", "mixed berries"},
			DietaryTags: []string{"vegetarian"},
			Available:   true,
			PrepTime:    8,
			Popularity:  9,
		},
		{
			Code:        "DRINK_001",
			Name:        "Fresh-Squeezed Lemonade",
			Category:    models.CategoryDrink,
			Description: "House-made lemonade with organic lemons, cane sugar, and fresh mint",
			Price:       price("4.99"),
			Ingredients: []string{"lemons", "cane sugar", "water", "fresh mint"},
			DietaryTags: []string{"vegan", "vegetarian", "gluten-free"},
			Available:   true,
			PrepTime:    5,
			Popularity:  8,
		},
		{
			Code:        "DRINK_002",
			Name:        "Craft Root Beer Float",
			Category:    models.CategoryDrink,
			Description: "Artisan root beer with premium vanilla ice cream",
			Price:       price("6.49"),
			Ingredients: []string{"root beer", "vanilla ice cream"},
			DietaryTags: []string{"vegetarian"},
			Available:   true,
			PrepTime:    3,
			Popularity:  7,
		},
	}
}
