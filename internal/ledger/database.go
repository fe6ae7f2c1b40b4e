package ledger

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"
)

// OrderLog is one ledger entry persisted to the database.
type OrderLog struct {
	gorm.Model
	OrderID      string `gorm:"column:order_id;unique_index"`
	LoggedAt     string `gorm:"column:logged_at"`
	CustomerName string `gorm:"column:customer_name"`
	Phone        string `gorm:"column:phone_number"`
	Location     string `gorm:"column:location"`
	Items        string `gorm:"column:items_ordered"`
	Total        string `gorm:"column:total_amount"`
}

// Database appends orders to a relational table.
type Database struct {
	db *gorm.DB
}

// NewDatabase migrates the order log table and returns the ledger.
func NewDatabase(db *gorm.DB) (*Database, error) {
	if err := db.AutoMigrate(&OrderLog{}).Error; err != nil {
		return nil, fmt.Errorf("migrating order log table: %w", err)
	}
	return &Database{db: db}, nil
}

// Append writes one order row.
func (d *Database) Append(ctx context.Context, row Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry := OrderLog{
		OrderID:      row.OrderID,
		LoggedAt:     row.Timestamp,
		CustomerName: row.CustomerName,
		Phone:        row.Phone,
		Location:     row.Location,
		Items:        row.Items,
		Total:        row.Total,
	}
	if err := d.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("logging order %s: %w", row.OrderID, err)
	}
	return nil
}
