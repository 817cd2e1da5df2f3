package service

import (
	"context"
	"strings"

	"campus-storefront/storefront-svc/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Gateway is the storefront's single entry point to backend data. Repository
// failures come back wrapped in domain.DataAccessError; missing rows are
// reported through found flags.
type Gateway struct {
	catalog  CatalogRepository
	invoices InvoiceRepository
	cache    GatewayCache
	taxRate  float64
	calendar domain.Calendar
}

func NewGateway(catalog CatalogRepository, invoices InvoiceRepository, cache GatewayCache, taxRate float64, calendar domain.Calendar) *Gateway {
	return &Gateway{
		catalog:  catalog,
		invoices: invoices,
		cache:    cache,
		taxRate:  taxRate,
		calendar: calendar,
	}
}

func (g *Gateway) ListActiveSections(ctx context.Context) ([]domain.Section, error) {
	if g.cache != nil {
		cached, found, err := g.cache.GetSections(ctx)
		if err != nil {
			log.Warnf("section cache read failed: %v", err)
		} else if found {
			return cached, nil
		}
	}

	sections, err := g.catalog.ListActiveSections(ctx)
	if err != nil {
		return nil, domain.NewDataAccessError("list sections", err)
	}

	if g.cache != nil {
		if err := g.cache.SetSections(ctx, sections); err != nil {
			log.Warnf("section cache write failed: %v", err)
		}
	}
	return sections, nil
}

func (g *Gateway) ListProductsWithStock(ctx context.Context) ([]domain.ProductWithStock, error) {
	products, err := g.catalog.ListActiveProducts(ctx)
	if err != nil {
		return nil, domain.NewDataAccessError("list products", err)
	}
	return products, nil
}

func (g *Gateway) ListProductsBySection(ctx context.Context, sectionID int) ([]domain.ProductWithStock, error) {
	products, err := g.catalog.ListProductsBySection(ctx, sectionID)
	if err != nil {
		return nil, domain.NewDataAccessError("list products by section", err)
	}
	return products, nil
}

func (g *Gateway) GetProductWithStock(ctx context.Context, id int) (domain.ProductWithStock, bool, error) {
	product, found, err := g.catalog.GetActiveProduct(ctx, id)
	if err != nil {
		return domain.ProductWithStock{}, false, domain.NewDataAccessError("get product", err)
	}
	return product, found, nil
}

func (g *Gateway) GetCurrentStock(ctx context.Context, productID int) (int, error) {
	current, err := g.catalog.GetCurrentStock(ctx, productID)
	if err != nil {
		return 0, domain.NewDataAccessError("get current stock", err)
	}
	return current, nil
}

// ListBestSellers returns at most limit products ranked by units sold on the
// date. An empty date means today.
func (g *Gateway) ListBestSellers(ctx context.Context, date string, limit int) ([]domain.ProductSales, error) {
	date, err := g.calendar.ResolveDate(date)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	if g.cache == nil {
		return []domain.ProductSales{}, nil
	}
	sales, err := g.cache.TopSellers(ctx, date, limit)
	if err != nil {
		return nil, domain.NewDataAccessError("list best sellers", err)
	}
	return sales, nil
}

// CheckAvailability stops at the first line that cannot be served.
func (g *Gateway) CheckAvailability(ctx context.Context, lines []domain.StockRequest) (domain.Availability, error) {
	for _, line := range lines {
		name, current, found, err := g.catalog.GetStockLevel(ctx, line.ProductID)
		if err != nil {
			return domain.Availability{}, domain.NewDataAccessError("check availability", err)
		}
		if !found {
			return domain.Availability{
				Available:    false,
				Reason:       "product is no longer available",
				ProductID:    line.ProductID,
				RequestedQty: line.Quantity,
			}, nil
		}
		if line.Quantity > current {
			return domain.Availability{
				Available:    false,
				Reason:       domain.InsufficientStockMessage(name, current, line.Quantity),
				ProductID:    line.ProductID,
				ProductName:  name,
				AvailableQty: current,
				RequestedQty: line.Quantity,
			}, nil
		}
	}
	return domain.Availability{Available: true}, nil
}

func (g *Gateway) CreateInvoice(ctx context.Context, customerID string, lines []domain.StockRequest, paymentMethod, notes string) (domain.InvoiceResult, error) {
	if strings.TrimSpace(customerID) == "" {
		return domain.InvoiceResult{}, domain.NewValidationError("customer_id", "is required")
	}
	if !domain.ValidPaymentMethod(paymentMethod) {
		return domain.InvoiceResult{}, domain.NewValidationError("payment_method", "must be one of cash, card, transfer")
	}
	if len(lines) == 0 {
		return domain.InvoiceResult{}, domain.NewValidationError("lines", "at least one product is required")
	}

	result, err := g.invoices.CreateInvoice(ctx, domain.InvoiceRequest{
		CustomerID:    customerID,
		Lines:         lines,
		PaymentMethod: paymentMethod,
		Notes:         notes,
	}, g.taxRate)
	if err != nil {
		return domain.InvoiceResult{}, domain.NewDataAccessError("create invoice", err)
	}

	if result.Success {
		log.WithFields(log.Fields{
			"customer_id": customerID,
			"invoice_id":  result.InvoiceID,
			"total":       result.Total,
		}).Infof("created invoice %s", result.InvoiceNumber)
	}
	return result, nil
}

func (g *Gateway) ListInvoicesForUser(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	invoices, err := g.invoices.ListInvoicesByCustomer(ctx, customerID)
	if err != nil {
		return nil, domain.NewDataAccessError("list invoices", err)
	}
	return invoices, nil
}

func (g *Gateway) GetInvoice(ctx context.Context, id int) (domain.Invoice, bool, error) {
	invoice, found, err := g.invoices.GetInvoice(ctx, id)
	if err != nil {
		return domain.Invoice{}, false, domain.NewDataAccessError("get invoice", err)
	}
	return invoice, found, nil
}

// IsFirstPaidInvoice reports whether the user has exactly one paid invoice.
func (g *Gateway) IsFirstPaidInvoice(ctx context.Context, userID string) (bool, error) {
	count, err := g.invoices.CountPaidInvoices(ctx, userID)
	if err != nil {
		return false, domain.NewDataAccessError("count paid invoices", err)
	}
	return count == 1, nil
}
