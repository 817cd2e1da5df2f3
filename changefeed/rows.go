package changefeed

import (
	"encoding/json"
	"fmt"
)

// StockRow mirrors the daily_stock columns carried in change events.
type StockRow struct {
	ID              int    `json:"id"`
	ProductID       int    `json:"product_id"`
	StockDate       string `json:"stock_date"`
	InitialQuantity int    `json:"initial_quantity"`
	CurrentQuantity int    `json:"current_quantity"`
	SoldQuantity    int    `json:"sold_quantity"`
}

type ProductRow struct {
	ID        int     `json:"id"`
	SectionID int     `json:"section_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Active    bool    `json:"active"`
}

type InvoiceRow struct {
	ID            int     `json:"id"`
	InvoiceNumber string  `json:"invoice_number"`
	CustomerID    string  `json:"customer_id"`
	Total         float64 `json:"total"`
	Status        string  `json:"status"`
}

func DecodeStock(evt Event) (StockRow, error) {
	var row StockRow
	err := decodeRow(evt, TableStock, &row)
	return row, err
}

func DecodeProduct(evt Event) (ProductRow, error) {
	var row ProductRow
	err := decodeRow(evt, TableProducts, &row)
	return row, err
}

func DecodeInvoice(evt Event) (InvoiceRow, error) {
	var row InvoiceRow
	err := decodeRow(evt, TableInvoices, &row)
	return row, err
}

func decodeRow(evt Event, want Table, dst interface{}) error {
	if evt.Table != want {
		return fmt.Errorf("expected %s event, got %s", want, evt.Table)
	}
	raw := evt.Row()
	if len(raw) == 0 || string(raw) == "null" {
		return fmt.Errorf("%s %s event carries no row", evt.Table, evt.EventType)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s row: %w", evt.Table, err)
	}
	return nil
}

// RowKey returns the id of the changed row, used as the message key so all
// changes to one row stay ordered on one partition.
func RowKey(evt Event) string {
	var row struct {
		ID        int `json:"id"`
		ProductID int `json:"product_id"`
	}
	if err := json.Unmarshal(evt.Row(), &row); err != nil {
		return string(evt.Table)
	}
	if evt.Table == TableStock && row.ProductID != 0 {
		return fmt.Sprintf("%s:%d", evt.Table, row.ProductID)
	}
	return fmt.Sprintf("%s:%d", evt.Table, row.ID)
}
