package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"maitred/internal/models"
)

func TestNextIdentifierSequence(t *testing.T) {
	s := New()

	for i := 1; i <= 12; i++ {
		want := fmt.Sprintf("ORD-%05d", i)
		if got := s.NextIdentifier(); got != want {
			t.Fatalf("identifier %d = %q, want %q", i, got, want)
		}
	}
}

func TestNextIdentifierConcurrent(t *testing.T) {
	s := New()

	const n = 200
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- s.NextIdentifier()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("identifier %s issued twice", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("got %d unique identifiers, want %d", len(seen), n)
	}
}

func TestCreateAndGet(t *testing.T) {
	s := New()

	order := models.Order{
		ID:           s.NextIdentifier(),
		CustomerName: "Grace Hopper",
		ItemCodes:    []string{"MAIN_001"},
		Status:       models.StatusPending,
	}
	if err := s.Create(order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := s.Get(order.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.CustomerName != "Grace Hopper" {
		t.Errorf("customer = %q, want Grace Hopper", got.CustomerName)
	}

	// The returned copy must not alias store state.
	got.ItemCodes[0] = "DESS_002"
	again, _ := s.Get(order.ID)
	if again.ItemCodes[0] != "MAIN_001" {
		t.Error("mutating a returned order leaked into the store")
	}
}

func TestCreateRejectsDuplicates(t *testing.T) {
	s := New()

	order := models.Order{ID: s.NextIdentifier(), Status: models.StatusPending}
	if err := s.Create(order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Create(order); err == nil {
		t.Fatal("duplicate Create should fail")
	}
}

func TestGetUnknownOrder(t *testing.T) {
	s := New()

	_, err := s.Get("ORD-09999")
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestSetStatus(t *testing.T) {
	s := New()
	id := s.NextIdentifier()
	if err := s.Create(models.Order{ID: id, Status: models.StatusPending}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := s.SetStatus(id, models.StatusSentToKitchen); err != nil {
		t.Fatalf("pending -> sent_to_kitchen should succeed: %v", err)
	}
	order, _ := s.Get(id)
	if order.Status != models.StatusSentToKitchen {
		t.Errorf("status = %q, want sent_to_kitchen", order.Status)
	}

	// sent_to_kitchen is terminal.
	err := s.SetStatus(id, models.StatusPending)
	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want *InvalidTransitionError", err)
	}
	if invalid.From != models.StatusSentToKitchen || invalid.To != models.StatusPending {
		t.Errorf("transition error = %v, want sent_to_kitchen -> pending", invalid)
	}

	if err := s.SetStatus("ORD-00042", models.StatusSentToKitchen); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("unknown id err = %v, want ErrOrderNotFound", err)
	}
}

func TestListIsOrderedByIdentifier(t *testing.T) {
	s := New()

	for i := 0; i < 5; i++ {
		id := s.NextIdentifier()
		if err := s.Create(models.Order{ID: id, Status: models.StatusPending}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	orders := s.List()
	if len(orders) != 5 {
		t.Fatalf("List returned %d orders, want 5", len(orders))
	}
	for i := 1; i < len(orders); i++ {
		if orders[i-1].ID >= orders[i].ID {
			t.Fatalf("orders out of sequence: %s before %s", orders[i-1].ID, orders[i].ID)
		}
	}
	if s.Count() != 5 {
		t.Errorf("Count = %d, want 5", s.Count())
	}
}
