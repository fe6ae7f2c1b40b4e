package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a customer order registered with the order store. The
// store owns every Order after creation; reads hand out copies and status
// transitions happen in place.
type Order struct {
	ID              string            `json:"order_id"`
	CustomerName    string            `json:"customer_name"`
	ServiceLocation string            `json:"service_location"`
	ContactPhone    string            `json:"contact_phone"`
	CustomerEmail   string            `json:"customer_email,omitempty"`
	ItemCodes       []string          `json:"ordered_items"`
	Customizations  map[string]string `json:"customizations,omitempty"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	Tax             decimal.Decimal   `json:"tax"`
	GrandTotal      decimal.Decimal   `json:"grand_total"`
	CreatedAt       time.Time         `json:"timestamp"`
	Status          Status            `json:"status"`
}

// Clone returns a copy of the order that shares no mutable state with the
// original.
func (o Order) Clone() Order {
	clone := o
	clone.ItemCodes = append([]string(nil), o.ItemCodes...)
	if o.Customizations != nil {
		clone.Customizations = make(map[string]string, len(o.Customizations))
		for k, v := range o.Customizations {
			clone.Customizations[k] = v
		}
	}
	return clone
}

// OrderRequest carries the customer input needed to create an order.
// Duplicate item codes mean multiple units of the same dish.
type OrderRequest struct {
	CustomerName    string            `json:"customer_name"`
	ServiceLocation string            `json:"service_location"`
	ContactPhone    string            `json:"contact_phone"`
	CustomerEmail   string            `json:"customer_email,omitempty"`
	ItemCodes       []string          `json:"item_codes"`
	Customizations  map[string]string `json:"customizations,omitempty"`
}

// Validate checks the request fields that need no catalog access.
func (r *OrderRequest) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return fmt.Errorf("customer name is required")
	}
	if strings.TrimSpace(r.ServiceLocation) == "" {
		return fmt.Errorf("service location is required")
	}
	if strings.TrimSpace(r.ContactPhone) == "" {
		return fmt.Errorf("contact phone is required")
	}
	if len(r.ItemCodes) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	return nil
}

// Status represents the lifecycle state of an order
type Status string

const (
	// StatusPending is the initial status of every created order.
	StatusPending Status = "pending"
	// StatusSentToKitchen is reached only through a successful kitchen
	// dispatch.
	StatusSentToKitchen Status = "sent_to_kitchen"
)

// allowedTransitions is the complete status machine. A failed dispatch
// leaves the order pending, so dispatch stays retryable.
var allowedTransitions = map[Status][]Status{
	StatusPending:       {StatusSentToKitchen},
	StatusSentToKitchen: {},
}

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status machine permits moving from s
// to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
