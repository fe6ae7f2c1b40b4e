package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"maitred/internal/ledger"
	"maitred/internal/models"
)

const ledgerTimeLayout = "2006-01-02 15:04:05"

const (
	boxTop  = "╔════════════════════════════════════════════════════════╗"
	boxText = "║               NEW ORDER NOTIFICATION                    ║"
	boxBot  = "╚════════════════════════════════════════════════════════╝"
	rule    = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
)

func renderConfirmation(order models.Order) string {
	return fmt.Sprintf("Order %s successfully created for %s at %s. Grand total: $%s.",
		order.ID, order.CustomerName, order.ServiceLocation, order.GrandTotal.StringFixed(2))
}

func renderSubject(order models.Order) string {
	return fmt.Sprintf("🔔 NEW ORDER - %s | %s", order.ID, order.ServiceLocation)
}

// renderKitchenBody builds the plain-text kitchen ticket.
func (s *Service) renderKitchenBody(order models.Order) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(boxTop + "\n")
	b.WriteString(boxText + "\n")
	b.WriteString(boxBot + "\n\n")

	b.WriteString("📋 ORDER DETAILS\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%-17s%s\n", "Order ID:", order.ID)
	fmt.Fprintf(&b, "%-17s%s\n\n", "Timestamp:", order.CreatedAt.Format(time.RFC3339))

	b.WriteString("👤 CUSTOMER INFORMATION\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%-17s%s\n", "Name:", order.CustomerName)
	fmt.Fprintf(&b, "%-17s%s\n", "Location:", order.ServiceLocation)
	fmt.Fprintf(&b, "%-17s%s\n\n", "Phone:", order.ContactPhone)

	b.WriteString("🍽️ ORDERED ITEMS\n")
	b.WriteString(rule + "\n")
	for _, code := range order.ItemCodes {
		fmt.Fprintf(&b, "  • %s (Code: %s)\n", s.displayName(code), code)
	}
	b.WriteString("\n")

	b.WriteString("💰 PRICING\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%-17s$%s\n", "Subtotal:", order.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "%-17s$%s\n", taxLabel(s.deps.Pricing.TaxRate()), order.Tax.StringFixed(2))
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%-17s$%s\n\n", "GRAND TOTAL:", order.GrandTotal.StringFixed(2))

	b.WriteString("⚡ Please prepare this order with priority.\n")
	return b.String()
}

// renderLedgerRow maps an order to the fixed seven-column ledger row.
func (s *Service) renderLedgerRow(order models.Order) ledger.Row {
	names := make([]string, len(order.ItemCodes))
	for i, code := range order.ItemCodes {
		names[i] = s.displayName(code)
	}

	return ledger.Row{
		OrderID:      order.ID,
		Timestamp:    order.CreatedAt.Format(ledgerTimeLayout),
		CustomerName: order.CustomerName,
		Phone:        order.ContactPhone,
		Location:     order.ServiceLocation,
		Items:        strings.Join(names, ", "),
		Total:        "$" + order.GrandTotal.StringFixed(2),
	}
}

// displayName resolves a code to its dish name, falling back to the code for
// items that later left the catalog.
func (s *Service) displayName(code string) string {
	if item, ok := s.deps.Catalog.Lookup(code); ok {
		return item.Name
	}
	return code
}

func taxLabel(rate decimal.Decimal) string {
	percent := rate.Mul(decimal.NewFromInt(100))
	return fmt.Sprintf("Tax (%s%%):", percent.String())
}
