package domain

import (
	"fmt"
	"time"
)

type Section struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Active       bool      `json:"active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID           int       `json:"id"`
	SectionID    int       `json:"section_id"`
	SectionName  string    `json:"section_name,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"image_url"`
	Active       bool      `json:"active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductWithStock is a product joined with today's remaining quantity.
type ProductWithStock struct {
	Product
	StockAvailable int `json:"stock_available"`
}

type DailyStock struct {
	ID              int    `json:"id"`
	ProductID       int    `json:"product_id"`
	ProductName     string `json:"product_name,omitempty"`
	StockDate       string `json:"stock_date"`
	InitialQuantity int    `json:"initial_quantity"`
	CurrentQuantity int    `json:"current_quantity"`
	SoldQuantity    int    `json:"sold_quantity"`
}

// ProductSales is one entry of a day's best sellers.
type ProductSales struct {
	ProductID int `json:"product_id"`
	UnitsSold int `json:"units_sold"`
}

type CartLineItem struct {
	ProductID      int     `json:"product_id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	StockAvailable int     `json:"stock_available"`
}

type CartView struct {
	Items      []CartLineItem `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPrice float64        `json:"total_price"`
}

func InsufficientStockMessage(name string, available, requested int) string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d, requested: %d", name, available, requested)
}

type StockRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Availability is the outcome of a pre-checkout stock check. When Available
// is false the remaining fields describe the first shortfall found.
type Availability struct {
	Available    bool   `json:"available"`
	Reason       string `json:"reason,omitempty"`
	ProductID    int    `json:"product_id,omitempty"`
	ProductName  string `json:"product_name,omitempty"`
	AvailableQty int    `json:"available_qty,omitempty"`
	RequestedQty int    `json:"requested_qty,omitempty"`
}

const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

const (
	InvoicePending   = "pending"
	InvoiceConfirmed = "confirmed"
	InvoiceDelivered = "delivered"
	InvoiceCancelled = "cancelled"
	InvoicePaid      = "paid"
)

type InvoiceRequest struct {
	CustomerID    string         `json:"customer_id"`
	Lines         []StockRequest `json:"lines"`
	PaymentMethod string         `json:"payment_method"`
	Notes         string         `json:"notes,omitempty"`
}

// InvoiceResult is the structured answer of invoice creation. Success false
// means the backend rejected the order and Message says why.
type InvoiceResult struct {
	Success       bool    `json:"success"`
	InvoiceID     int     `json:"invoice_id,omitempty"`
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	Subtotal      float64 `json:"subtotal,omitempty"`
	Tax           float64 `json:"tax,omitempty"`
	Total         float64 `json:"total,omitempty"`
	Message       string  `json:"message,omitempty"`
}

type Invoice struct {
	ID            int           `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	CustomerID    string        `json:"customer_id"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Discount      float64       `json:"discount"`
	Total         float64       `json:"total"`
	Status        string        `json:"status"`
	PaymentMethod string        `json:"payment_method"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	Items         []InvoiceItem `json:"items"`
}

type InvoiceItem struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

type Rating struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"score"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RatingEligibility struct {
	FirstPaidInvoice bool `json:"first_paid_invoice"`
	AlreadyRated     bool `json:"already_rated"`
	Eligible         bool `json:"eligible"`
}

const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	TokenID string `json:"-"`
}

type Profile struct {
	UserID        string     `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	CedulaRUC     string     `json:"cedula_ruc"`
	Phone         string     `json:"phone"`
	Gender        string     `json:"gender"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	StreetAddress string     `json:"street_address"`
	Reference     string     `json:"reference"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ProductImage struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}
