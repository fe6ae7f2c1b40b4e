// Package ledger appends completed orders to durable logs.
package ledger

// Row is one ledger entry, one order per row.
type Row struct {
	OrderID      string
	Timestamp    string
	CustomerName string
	Phone        string
	Location     string
	Items        string
	Total        string
}

// Headers returns the column headers in row order.
func Headers() []string {
	return []string{
		"Order ID",
		"Timestamp",
		"Customer Name",
		"Phone Number",
		"Location",
		"Items Ordered",
		"Total Amount",
	}
}
