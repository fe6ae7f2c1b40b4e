package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"maitred/internal/menu"
)

func newEngine(t *testing.T, rate string) *Engine {
	t.Helper()
	return New(menu.Default(), decimal.RequireFromString(rate))
}

func TestComputeTotalReferenceOrder(t *testing.T) {
	engine := newEngine(t, "0.10")

	quote, err := engine.ComputeTotal([]string{"APP_001", "MAIN_001", "DESS_001", "DRINK_001"})
	if err != nil {
		t.Fatalf("ComputeTotal failed: %v", err)
	}

	if got, want := quote.Subtotal.StringFixed(2), "51.96"; got != want {
		t.Errorf("subtotal = %s, want %s", got, want)
	}
	if got, want := quote.Tax.StringFixed(2), "5.20"; got != want {
		t.Errorf("tax = %s, want %s", got, want)
	}
	if got, want := quote.GrandTotal.StringFixed(2), "57.16"; got != want {
		t.Errorf("grand total = %s, want %s", got, want)
	}
}

func TestComputeTotalIsDeterministic(t *testing.T) {
	engine := newEngine(t, "0.10")
	codes := []string{"APP_002", "MAIN_003", "MAIN_003", "DRINK_002"}

	first, err := engine.ComputeTotal(codes)
	if err != nil {
		t.Fatalf("ComputeTotal failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := engine.ComputeTotal(codes)
		if err != nil {
			t.Fatalf("ComputeTotal failed on repeat %d: %v", i, err)
		}
		if !again.Subtotal.Equal(first.Subtotal) || !again.Tax.Equal(first.Tax) || !again.GrandTotal.Equal(first.GrandTotal) {
			t.Fatalf("repeat %d produced %+v, first call %+v", i, again, first)
		}
	}
}

func TestComputeTotalCountsDuplicates(t *testing.T) {
	engine := newEngine(t, "0.10")

	quote, err := engine.ComputeTotal([]string{"DRINK_001", "DRINK_001", "DRINK_001"})
	if err != nil {
		t.Fatalf("ComputeTotal failed: %v", err)
	}
	// 3 x 4.99, one term per occurrence.
	if got, want := quote.Subtotal.StringFixed(2), "14.97"; got != want {
		t.Errorf("subtotal = %s, want %s", got, want)
	}
}

func TestComputeTotalUnknownItem(t *testing.T) {
	engine := newEngine(t, "0.10")

	quote, err := engine.ComputeTotal([]string{"APP_001", "NOPE_77", "MAIN_001"})
	if err == nil {
		t.Fatal("expected an error for an unknown item code")
	}

	var unknown *UnknownItemError
	if !errors.As(err, &unknown) {
		t.Fatalf("error type = %T, want *UnknownItemError", err)
	}
	if unknown.Code != "NOPE_77" {
		t.Errorf("error names code %q, want NOPE_77", unknown.Code)
	}
	if !quote.Subtotal.IsZero() || !quote.Tax.IsZero() || !quote.GrandTotal.IsZero() {
		t.Errorf("failed pricing must not leak partial totals, got %+v", quote)
	}
}

func TestComputeTotalNormalizesCodes(t *testing.T) {
	engine := newEngine(t, "0.10")

	quote, err := engine.ComputeTotal([]string{" app_001 ", "APP_001"})
	if err != nil {
		t.Fatalf("ComputeTotal failed: %v", err)
	}
	if got, want := quote.Subtotal.StringFixed(2), "19.98"; got != want {
		t.Errorf("subtotal = %s, want %s", got, want)
	}
}

func TestComputeTotalEmptyOrder(t *testing.T) {
	engine := newEngine(t, "0.10")

	quote, err := engine.ComputeTotal(nil)
	if err != nil {
		t.Fatalf("ComputeTotal failed: %v", err)
	}
	if got := quote.GrandTotal.StringFixed(2); got != "0.00" {
		t.Errorf("empty order grand total = %s, want 0.00", got)
	}
}

func TestComputeTotalAlternateTaxRate(t *testing.T) {
	// The sibling deployment runs at 14%.
	engine := newEngine(t, "0.14")

	quote, err := engine.ComputeTotal([]string{"MAIN_002"})
	if err != nil {
		t.Fatalf("ComputeTotal failed: %v", err)
	}
	if got, want := quote.Tax.StringFixed(2), "2.80"; got != want {
		t.Errorf("tax at 14%% = %s, want %s", got, want)
	}
	if got, want := quote.GrandTotal.StringFixed(2), "22.79"; got != want {
		t.Errorf("grand total at 14%% = %s, want %s", got, want)
	}
}
