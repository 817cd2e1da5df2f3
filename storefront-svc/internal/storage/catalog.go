package storage

import (
	"context"
	"database/sql"
	"errors"

	"campus-storefront/storefront-svc/internal/domain"
)

const productWithStockColumns = `
	p.id, p.section_id, COALESCE(s.name, ''), p.name, COALESCE(p.description, ''), p.price,
	COALESCE(p.image_url, ''), p.active, p.display_order, p.created_at,
	COALESCE(ds.current_quantity, 0)`

const productWithStockJoin = `
	FROM products p
	LEFT JOIN sections s ON s.id = p.section_id
	LEFT JOIN daily_stock ds ON ds.product_id = p.id AND ds.stock_date = CURRENT_DATE`

func (r *PostgresRepository) ListActiveSections(ctx context.Context) ([]domain.Section, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), active, display_order, created_at
		FROM sections
		WHERE active = TRUE
		ORDER BY display_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []domain.Section{}
	for rows.Next() {
		var s domain.Section
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Active, &s.DisplayOrder, &s.CreatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

func (r *PostgresRepository) CreateSection(ctx context.Context, section *domain.Section) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO sections (name, description, active, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		section.Name, section.Description, section.Active, section.DisplayOrder).
		Scan(&section.ID, &section.CreatedAt)
}

func (r *PostgresRepository) ListActiveProducts(ctx context.Context) ([]domain.ProductWithStock, error) {
	return r.queryProducts(ctx, `SELECT`+productWithStockColumns+productWithStockJoin+`
		WHERE p.active = TRUE
		ORDER BY p.display_order, p.id`)
}

func (r *PostgresRepository) ListProductsBySection(ctx context.Context, sectionID int) ([]domain.ProductWithStock, error) {
	return r.queryProducts(ctx, `SELECT`+productWithStockColumns+productWithStockJoin+`
		WHERE p.active = TRUE AND p.section_id = $1
		ORDER BY p.display_order, p.id`, sectionID)
}

func (r *PostgresRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]domain.ProductWithStock, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.ProductWithStock{}
	for rows.Next() {
		p, err := scanProductWithStock(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProductWithStock(row rowScanner) (domain.ProductWithStock, error) {
	var p domain.ProductWithStock
	err := row.Scan(&p.ID, &p.SectionID, &p.SectionName, &p.Name, &p.Description, &p.Price,
		&p.ImageURL, &p.Active, &p.DisplayOrder, &p.CreatedAt, &p.StockAvailable)
	return p, err
}

// GetActiveProduct reports found=false when no active product has the id.
func (r *PostgresRepository) GetActiveProduct(ctx context.Context, id int) (domain.ProductWithStock, bool, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT`+productWithStockColumns+productWithStockJoin+`
		WHERE p.id = $1 AND p.active = TRUE`, id)

	p, err := scanProductWithStock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ProductWithStock{}, false, nil
	}
	if err != nil {
		return domain.ProductWithStock{}, false, err
	}
	return p, true, nil
}

func (r *PostgresRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO products (section_id, name, description, price, image_url, active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		product.SectionID, product.Name, product.Description, product.Price, product.ImageURL,
		product.Active, product.DisplayOrder).
		Scan(&product.ID, &product.CreatedAt)
}

func (r *PostgresRepository) UpdateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE products
		SET section_id = $1, name = $2, description = $3, price = $4, display_order = $5, updated_at = NOW()
		WHERE id = $6`,
		product.SectionID, product.Name, product.Description, product.Price, product.DisplayOrder, product.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) DeactivateProduct(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `UPDATE products SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpdateProductImage(ctx context.Context, id int, imageURL string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE products SET image_url = $1, updated_at = NOW() WHERE id = $2`, imageURL, id)
	return err
}

func (r *PostgresRepository) GetCurrentStock(ctx context.Context, productID int) (int, error) {
	var current int
	err := r.DB.QueryRowContext(ctx, `
		SELECT current_quantity
		FROM daily_stock
		WHERE product_id = $1 AND stock_date = CURRENT_DATE`, productID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return current, err
}

// GetStockLevel returns the product name with today's stock. found is false
// when the product does not exist or is inactive.
func (r *PostgresRepository) GetStockLevel(ctx context.Context, productID int) (string, int, bool, error) {
	var name string
	var current int
	err := r.DB.QueryRowContext(ctx, `
		SELECT p.name, COALESCE(ds.current_quantity, 0)
		FROM products p
		LEFT JOIN daily_stock ds ON ds.product_id = p.id AND ds.stock_date = CURRENT_DATE
		WHERE p.id = $1 AND p.active = TRUE`, productID).Scan(&name, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, err
	}
	return name, current, true, nil
}

// InitializeDailyStock creates a row for every active product on date.
// Products that already have a row for that date keep it.
func (r *PostgresRepository) InitializeDailyStock(ctx context.Context, date string, quantity int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `
		INSERT INTO daily_stock (product_id, stock_date, initial_quantity, current_quantity, sold_quantity)
		SELECT id, $1::date, $2, $2, 0
		FROM products
		WHERE active = TRUE
		ON CONFLICT (product_id, stock_date) DO NOTHING`, date, quantity)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ListDailyStock(ctx context.Context, date string) ([]domain.DailyStock, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT ds.id, ds.product_id, p.name, to_char(ds.stock_date, 'YYYY-MM-DD'),
			ds.initial_quantity, ds.current_quantity, ds.sold_quantity
		FROM daily_stock ds
		JOIN products p ON p.id = ds.product_id
		WHERE ds.stock_date = $1::date
		ORDER BY p.display_order, p.id`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stock := []domain.DailyStock{}
	for rows.Next() {
		var s domain.DailyStock
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.StockDate,
			&s.InitialQuantity, &s.CurrentQuantity, &s.SoldQuantity); err != nil {
			return nil, err
		}
		stock = append(stock, s)
	}
	return stock, rows.Err()
}
