package ledger

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Orders Log"

// Widths follow the header order: Order ID, Timestamp, Customer Name,
// Phone Number, Location, Items Ordered, Total Amount.
var columnWidths = []float64{15, 20, 25, 18, 15, 50, 15}

// Excel appends orders to an .xlsx workbook, one order per row.
type Excel struct {
	mu   sync.Mutex
	path string
}

// NewExcel creates an xlsx ledger writing to path. The workbook is created
// on first append.
func NewExcel(path string) *Excel {
	return &Excel{path: path}
}

// Append writes one order row. Appends are serialized, and each call reopens
// and saves the workbook so a crash never loses more than the in-flight row.
func (e *Excel) Append(ctx context.Context, row Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	f, created, err := e.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("reading %s sheet: %w", sheetName, err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("locating next ledger row: %w", err)
	}

	values := []interface{}{
		row.OrderID,
		row.Timestamp,
		row.CustomerName,
		row.Phone,
		row.Location,
		row.Items,
		row.Total,
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("writing ledger row for %s: %w", row.OrderID, err)
	}

	if created {
		if err := f.SaveAs(e.path); err != nil {
			return fmt.Errorf("saving ledger workbook: %w", err)
		}
		return nil
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("saving ledger workbook: %w", err)
	}
	return nil
}

// open returns the workbook, creating it with a styled header when missing.
func (e *Excel) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(e.path); err == nil {
		f, err := excelize.OpenFile(e.path)
		if err != nil {
			return nil, false, fmt.Errorf("opening ledger workbook: %w", err)
		}
		return f, false, nil
	} else if !os.IsNotExist(err) {
		return nil, false, fmt.Errorf("checking ledger workbook: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, false, fmt.Errorf("naming %s sheet: %w", sheetName, err)
	}

	headers := make([]interface{}, len(Headers()))
	for i, h := range Headers() {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		f.Close()
		return nil, false, fmt.Errorf("writing ledger headers: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, false, fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "G1", style); err != nil {
		f.Close()
		return nil, false, fmt.Errorf("styling ledger headers: %w", err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, false, fmt.Errorf("sizing ledger columns: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			f.Close()
			return nil, false, fmt.Errorf("sizing ledger columns: %w", err)
		}
	}

	return f, true, nil
}
