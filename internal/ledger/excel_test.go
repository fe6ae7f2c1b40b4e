package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExcelAppendCreatesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	led := NewExcel(path)

	row := Row{
		OrderID:      "ORD-00001",
		Timestamp:    "2025-03-14 19:02:11",
		CustomerName: "Maria Lopez",
		Phone:        "555-867-5309",
		Location:     "Table 12",
		Items:        "Bruschetta Trio, Lobster Ravioli",
		Total:        "$57.16",
	}
	if err := led.Append(context.Background(), row); err != nil {
		t.Fatalf("Append() returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("reading sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one order row, got %d rows", len(rows))
	}

	for i, want := range Headers() {
		if rows[0][i] != want {
			t.Errorf("header column %d = %q, want %q", i, rows[0][i], want)
		}
	}

	want := []string{
		"ORD-00001",
		"2025-03-14 19:02:11",
		"Maria Lopez",
		"555-867-5309",
		"Table 12",
		"Bruschetta Trio, Lobster Ravioli",
		"$57.16",
	}
	for i := range want {
		if rows[1][i] != want[i] {
			t.Errorf("row column %d = %q, want %q", i, rows[1][i], want[i])
		}
	}
}

func TestExcelAppendKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	led := NewExcel(path)

	ids := []string{"ORD-00001", "ORD-00002", "ORD-00003"}
	for _, id := range ids {
		row := Row{
			OrderID:      id,
			Timestamp:    "2025-03-14 19:02:11",
			CustomerName: "Maria Lopez",
			Phone:        "555-867-5309",
			Location:     "Table 12",
			Items:        "Craft Lemonade",
			Total:        "$5.49",
		}
		if err := led.Append(context.Background(), row); err != nil {
			t.Fatalf("Append(%s) returned error: %v", id, err)
		}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("reading sheet: %v", err)
	}
	if len(rows) != len(ids)+1 {
		t.Fatalf("expected %d rows, got %d", len(ids)+1, len(rows))
	}

	for i, id := range ids {
		if rows[i+1][0] != id {
			t.Errorf("row %d order id = %q, want %q", i+1, rows[i+1][0], id)
		}
	}
}
