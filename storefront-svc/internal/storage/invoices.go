package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"campus-storefront/storefront-svc/internal/domain"

	"github.com/lib/pq"
)

// CreateInvoice validates and decrements today's stock for every line, prices
// the lines from the product table and records the invoice, all inside one
// transaction. Business rejections come back as a result with Success=false
// and leave the database untouched.
func (r *PostgresRepository) CreateInvoice(ctx context.Context, req domain.InvoiceRequest, taxRate float64) (domain.InvoiceResult, error) {
	lines, rejection := mergeLines(req.Lines)
	if rejection != "" {
		return rejected(rejection), nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.InvoiceResult{}, err
	}
	defer tx.Rollback()

	items := make([]domain.InvoiceItem, 0, len(lines))
	var subtotal float64

	for _, line := range lines {
		var name string
		var price float64
		err := tx.QueryRowContext(ctx, `
			SELECT name, price FROM products WHERE id = $1 AND active = TRUE`, line.ProductID).
			Scan(&name, &price)
		if errors.Is(err, sql.ErrNoRows) {
			return rejected(fmt.Sprintf("product %d is not available", line.ProductID)), nil
		}
		if err != nil {
			return domain.InvoiceResult{}, err
		}

		var current int
		err = tx.QueryRowContext(ctx, `
			SELECT current_quantity
			FROM daily_stock
			WHERE product_id = $1 AND stock_date = CURRENT_DATE
			FOR UPDATE`, line.ProductID).Scan(&current)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return domain.InvoiceResult{}, err
		}
		if current < line.Quantity {
			return rejected(domain.InsufficientStockMessage(name, current, line.Quantity)), nil
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE daily_stock
			SET current_quantity = current_quantity - $1, sold_quantity = sold_quantity + $1
			WHERE product_id = $2 AND stock_date = CURRENT_DATE`, line.Quantity, line.ProductID); err != nil {
			return domain.InvoiceResult{}, err
		}

		lineTotal := roundCents(price * float64(line.Quantity))
		subtotal += lineTotal
		items = append(items, domain.InvoiceItem{
			ProductID:   line.ProductID,
			ProductName: name,
			Quantity:    line.Quantity,
			UnitPrice:   price,
			LineTotal:   lineTotal,
		})
	}

	subtotal = roundCents(subtotal)
	tax := roundCents(subtotal * taxRate)
	discount := 0.0
	total := roundCents(subtotal + tax - discount)

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&seq); err != nil {
		return domain.InvoiceResult{}, err
	}
	number := fmt.Sprintf("FAC-%06d", seq)

	var invoiceID int
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO invoices (invoice_number, customer_id, employee_id, subtotal, tax, discount, total, status, payment_method, notes)
		VALUES ($1, $2, NULL, $3, $4, $5, $6, 'pending', $7, NULLIF($8, ''))
		RETURNING id`,
		number, req.CustomerID, subtotal, tax, discount, total, req.PaymentMethod, req.Notes).Scan(&invoiceID); err != nil {
		return domain.InvoiceResult{}, err
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO invoice_items (invoice_id, product_id, product_name, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			invoiceID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.LineTotal); err != nil {
			return domain.InvoiceResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.InvoiceResult{}, err
	}

	return domain.InvoiceResult{
		Success:       true,
		InvoiceID:     invoiceID,
		InvoiceNumber: number,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
	}, nil
}

func rejected(message string) domain.InvoiceResult {
	return domain.InvoiceResult{Success: false, Message: message}
}

// mergeLines sums duplicate products and sorts by product id so concurrent
// invoices lock stock rows in the same order.
func mergeLines(lines []domain.StockRequest) ([]domain.StockRequest, string) {
	if len(lines) == 0 {
		return nil, "the order has no products"
	}

	totals := map[int]int{}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Sprintf("invalid quantity %d for product %d", line.Quantity, line.ProductID)
		}
		totals[line.ProductID] += line.Quantity
	}

	merged := make([]domain.StockRequest, 0, len(totals))
	for id, qty := range totals {
		merged = append(merged, domain.StockRequest{ProductID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ProductID < merged[j].ProductID })
	return merged, ""
}

const invoiceColumns = `
	id, invoice_number, customer_id, subtotal, tax, discount, total, status, payment_method,
	COALESCE(notes, ''), created_at`

func scanInvoice(row rowScanner) (domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.Subtotal, &inv.Tax, &inv.Discount,
		&inv.Total, &inv.Status, &inv.PaymentMethod, &inv.Notes, &inv.CreatedAt)
	inv.Items = []domain.InvoiceItem{}
	return inv, err
}

func (r *PostgresRepository) ListInvoicesByCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT`+invoiceColumns+`
		FROM invoices
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	index := map[int]int{}
	ids := []int64{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		index[inv.ID] = len(invoices)
		ids = append(ids, int64(inv.ID))
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return invoices, nil
	}

	itemRows, err := r.DB.QueryContext(ctx, `
		SELECT invoice_id, product_id, product_name, quantity, unit_price, line_total
		FROM invoice_items
		WHERE invoice_id = ANY($1)
		ORDER BY id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var invoiceID int
		var item domain.InvoiceItem
		if err := itemRows.Scan(&invoiceID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return nil, err
		}
		if i, ok := index[invoiceID]; ok {
			invoices[i].Items = append(invoices[i].Items, item)
		}
	}
	return invoices, itemRows.Err()
}

func (r *PostgresRepository) GetInvoice(ctx context.Context, id int) (domain.Invoice, bool, error) {
	inv, err := scanInvoice(r.DB.QueryRowContext(ctx, `SELECT`+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Invoice{}, false, nil
	}
	if err != nil {
		return domain.Invoice{}, false, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT product_id, product_name, quantity, unit_price, line_total
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY id`, id)
	if err != nil {
		return domain.Invoice{}, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.InvoiceItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return domain.Invoice{}, false, err
		}
		inv.Items = append(inv.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Invoice{}, false, err
	}
	return inv, true, nil
}

func (r *PostgresRepository) CountPaidInvoices(ctx context.Context, customerID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM invoices WHERE customer_id = $1 AND status = 'paid'`, customerID).Scan(&count)
	return count, err
}
