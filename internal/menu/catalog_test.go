package menu

import (
	"testing"

	"github.com/shopspring/decimal"

	"maitred/internal/models"
)

func TestLookupNormalizesCodes(t *testing.T) {
	catalog := Default()

	for _, code := range []string{"APP_001", "app_001", "  App_001  "} {
		item, ok := catalog.Lookup(code)
		if !ok {
			t.Fatalf("Lookup(%q) should resolve", code)
		}
		if item.Name != "Mediterranean Bruschetta" {
			t.Errorf("Lookup(%q) = %q, want Mediterranean Bruschetta", code, item.Name)
		}
	}

	if _, ok := catalog.Lookup("APP_999"); ok {
		t.Error("Lookup(APP_999) should not resolve")
	}
}

func TestListByCategory(t *testing.T) {
	catalog := Default()

	desserts, ok := catalog.ListByCategory("dessert")
	if !ok {
		t.Fatal("dessert should be a recognized category")
	}
	if len(desserts) != 2 {
		t.Fatalf("got %d desserts, want 2", len(desserts))
	}
	for _, item := range desserts {
		if item.Category != models.CategoryDessert {
			t.Errorf("item %s has category %q, want dessert", item.Code, item.Category)
		}
	}

	// Case-insensitive filters.
	mains, ok := catalog.ListByCategory("  MAIN ")
	if !ok || len(mains) != 3 {
		t.Errorf("ListByCategory(MAIN) = %d items, recognized=%v; want 3, true", len(mains), ok)
	}

	all, ok := catalog.ListByCategory("all")
	if !ok || len(all) != catalog.Len() {
		t.Errorf("ListByCategory(all) = %d items, recognized=%v; want %d, true", len(all), ok, catalog.Len())
	}
}

func TestListByCategoryUnrecognized(t *testing.T) {
	catalog := Default()

	items, ok := catalog.ListByCategory("nonexistent")
	if ok {
		t.Error("nonexistent category must not be reported as recognized")
	}
	if items != nil {
		t.Errorf("unrecognized category should yield nil items, got %v", items)
	}
}

func TestItemsAreCodeOrdered(t *testing.T) {
	catalog := Default()

	items := catalog.Items()
	for i := 1; i < len(items); i++ {
		if items[i-1].Code >= items[i].Code {
			t.Fatalf("items out of order: %s before %s", items[i-1].Code, items[i].Code)
		}
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	dup := []models.MenuItem{
		{Code: "APP_001", Name: "One", Category: models.CategoryAppetizer, Price: decimal.New(999, -2), Available: true},
		{Code: "app_001", Name: "Two", Category: models.CategoryAppetizer, Price: decimal.New(999, -2), Available: true},
	}
	if _, err := New(dup); err == nil {
		t.Fatal("New should reject duplicate codes that differ only in case")
	}
}

func TestDefaultMenuComplete(t *testing.T) {
	catalog := Default()

	if catalog.Len() != 10 {
		t.Fatalf("default menu has %d items, want 10", catalog.Len())
	}

	salmon, ok := catalog.Lookup("MAIN_001")
	if !ok {
		t.Fatal("MAIN_001 missing from default menu")
	}
	if want := decimal.RequireFromString("26.99"); !salmon.Price.Equal(want) {
		t.Errorf("MAIN_001 price = %s, want %s", salmon.Price, want)
	}
	if !salmon.HasDietaryTag("pescatarian") {
		t.Error("MAIN_001 should carry the pescatarian tag")
	}
}
