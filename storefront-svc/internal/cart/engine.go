// Package cart keeps each shopper's volatile cart and reconciles requested
// quantities against today's stock.
package cart

import (
	"context"
	"math"
	"sync"

	"campus-storefront/storefront-svc/internal/domain"
)

// StockGateway is the part of the data gateway the cart validates against.
type StockGateway interface {
	GetCurrentStock(ctx context.Context, productID int) (int, error)
	CheckAvailability(ctx context.Context, lines []domain.StockRequest) (domain.Availability, error)
}

// Result carries a business rejection. Transport failures are returned as
// errors instead.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func ok() Result { return Result{Success: true} }

func reject(message string) Result { return Result{Success: false, Message: message} }

// Engine is one shopper's cart. The lock is never held across a gateway call,
// so two concurrent mutations may both pass their stock check; the invoice
// transaction is the binding re-check.
type Engine struct {
	gateway StockGateway

	mu    sync.Mutex
	lines map[int]*domain.CartLineItem
	order []int
}

func NewEngine(gateway StockGateway) *Engine {
	return &Engine{
		gateway: gateway,
		lines:   map[int]*domain.CartLineItem{},
	}
}

func (e *Engine) AddItem(ctx context.Context, productID int, name string, price float64, quantity int) (Result, error) {
	if quantity < 1 {
		return reject("quantity must be at least 1"), nil
	}
	if price < 0 {
		return reject("price must not be negative"), nil
	}

	stock, err := e.gateway.GetCurrentStock(ctx, productID)
	if err != nil {
		return Result{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	existing := 0
	if line, found := e.lines[productID]; found {
		existing = line.Quantity
	}
	requested := existing + quantity
	if requested > stock {
		return reject(domain.InsufficientStockMessage(name, stock, requested)), nil
	}

	if line, found := e.lines[productID]; found {
		line.Quantity = requested
		line.StockAvailable = stock
		return ok(), nil
	}

	e.lines[productID] = &domain.CartLineItem{
		ProductID:      productID,
		Name:           name,
		Price:          price,
		Quantity:       quantity,
		StockAvailable: stock,
	}
	e.order = append(e.order, productID)
	return ok(), nil
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line.
func (e *Engine) UpdateQuantity(ctx context.Context, productID, quantity int) (Result, error) {
	if quantity <= 0 {
		e.RemoveItem(productID)
		return ok(), nil
	}

	e.mu.Lock()
	line, found := e.lines[productID]
	var name string
	if found {
		name = line.Name
	}
	e.mu.Unlock()
	if !found {
		return reject("product is not in the cart"), nil
	}

	stock, err := e.gateway.GetCurrentStock(ctx, productID)
	if err != nil {
		return Result{}, err
	}
	if quantity > stock {
		return reject(domain.InsufficientStockMessage(name, stock, quantity)), nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// the line may have been removed while stock was being fetched
	line, found = e.lines[productID]
	if !found {
		return reject("product is not in the cart"), nil
	}
	line.Quantity = quantity
	line.StockAvailable = stock
	return ok(), nil
}

func (e *Engine) RemoveItem(productID int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, found := e.lines[productID]; !found {
		return
	}
	delete(e.lines, productID)
	for i, id := range e.order {
		if id == productID {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = map[int]*domain.CartLineItem{}
	e.order = nil
}

// VerifyAvailability is the pre-checkout stock gate over every line.
func (e *Engine) VerifyAvailability(ctx context.Context) (domain.Availability, error) {
	return e.gateway.CheckAvailability(ctx, e.Lines())
}

// ApplyStock refreshes the stock snapshot of a line from a realtime push. The
// requested quantity is left alone even when it now exceeds stock.
func (e *Engine) ApplyStock(productID, stock int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	line, found := e.lines[productID]
	if !found {
		return false
	}
	line.StockAvailable = stock
	return true
}

// Lines returns the cart as stock requests in display order.
func (e *Engine) Lines() []domain.StockRequest {
	e.mu.Lock()
	defer e.mu.Unlock()

	lines := make([]domain.StockRequest, 0, len(e.order))
	for _, id := range e.order {
		lines = append(lines, domain.StockRequest{ProductID: id, Quantity: e.lines[id].Quantity})
	}
	return lines
}

func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.order) == 0
}

func (e *Engine) TotalItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalItems()
}

func (e *Engine) TotalPrice() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalPrice()
}

func (e *Engine) Snapshot() domain.CartView {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]domain.CartLineItem, 0, len(e.order))
	for _, id := range e.order {
		items = append(items, *e.lines[id])
	}
	return domain.CartView{
		Items:      items,
		TotalItems: e.totalItems(),
		TotalPrice: e.totalPrice(),
	}
}

func (e *Engine) totalItems() int {
	total := 0
	for _, line := range e.lines {
		total += line.Quantity
	}
	return total
}

func (e *Engine) totalPrice() float64 {
	total := 0.0
	for _, line := range e.lines {
		total += line.Price * float64(line.Quantity)
	}
	return math.Round(total*100) / 100
}
