// Package checkout turns a verified cart into an invoice.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"campus-storefront/storefront-svc/internal/domain"
	"campus-storefront/storefront-svc/internal/service"

	log "github.com/sirupsen/logrus"
)

type State string

const (
	Idle       State = "idle"
	Verifying  State = "verifying"
	Rejected   State = "rejected"
	Submitting State = "submitting"
	Confirmed  State = "confirmed"
	Failed     State = "failed"
)

const (
	OrderNotes      = "Order placed from the campus storefront"
	LoginRedirect   = "/login"
	ProfileRedirect = "/profile"
)

var ErrCheckoutInProgress = errors.New("a checkout is already in progress for this user")

type Cart interface {
	IsEmpty() bool
	Lines() []domain.StockRequest
	VerifyAvailability(ctx context.Context) (domain.Availability, error)
	Clear()
}

type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, customerID string, lines []domain.StockRequest, paymentMethod, notes string) (domain.InvoiceResult, error)
}

type ProfileGate interface {
	CheckProfileComplete(ctx context.Context, userID string) bool
}

type Request struct {
	Identity      *domain.Identity
	Cart          Cart
	PaymentMethod string
}

// Result is the terminal outcome of one checkout attempt. Redirect is set
// when the attempt never started because the user must sign in or finish
// the profile first.
type Result struct {
	State        State                 `json:"state"`
	Message      string                `json:"message,omitempty"`
	Redirect     string                `json:"redirect,omitempty"`
	Availability *domain.Availability  `json:"availability,omitempty"`
	Invoice      *domain.InvoiceResult `json:"invoice,omitempty"`
	PickupCode   []byte                `json:"pickup_code,omitempty"`
}

type Orchestrator struct {
	invoices InvoiceCreator
	gate     ProfileGate
	qr       service.QRGenerator

	mu     sync.Mutex
	active map[string]State
}

func NewOrchestrator(invoices InvoiceCreator, gate ProfileGate, qr service.QRGenerator) *Orchestrator {
	return &Orchestrator{
		invoices: invoices,
		gate:     gate,
		qr:       qr,
		active:   map[string]State{},
	}
}

// State reports where the user's current attempt is, Idle when none runs.
func (o *Orchestrator) State(userID string) State {
	o.mu.Lock()
	defer o.mu.Unlock()
	if state, found := o.active[userID]; found {
		return state
	}
	return Idle
}

func (o *Orchestrator) Checkout(ctx context.Context, req Request) (Result, error) {
	if req.Identity == nil || req.Identity.UserID == "" {
		return Result{State: Idle, Message: "sign in to place an order", Redirect: LoginRedirect}, nil
	}
	if req.Cart == nil || req.Cart.IsEmpty() {
		return Result{State: Idle, Message: "your cart is empty"}, nil
	}
	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return Result{}, domain.NewValidationError("payment_method", "must be one of cash, card, transfer")
	}

	userID := req.Identity.UserID
	if !o.begin(userID) {
		return Result{}, ErrCheckoutInProgress
	}
	defer o.finish(userID)

	if !o.gate.CheckProfileComplete(ctx, userID) {
		return Result{State: Idle, Message: "complete your profile before checking out", Redirect: ProfileRedirect}, nil
	}

	o.transition(userID, Verifying)
	availability, err := req.Cart.VerifyAvailability(ctx)
	if err != nil {
		log.WithField("user_id", userID).Errorf("availability check failed: %v", err)
		return o.end(userID, Result{State: Failed, Message: domain.RetryMessage}), nil
	}
	if !availability.Available {
		return o.end(userID, Result{State: Rejected, Message: availability.Reason, Availability: &availability}), nil
	}

	o.transition(userID, Submitting)
	invoice, err := o.invoices.CreateInvoice(ctx, userID, req.Cart.Lines(), req.PaymentMethod, OrderNotes)
	if err != nil {
		if domain.IsValidation(err) {
			return o.end(userID, Result{State: Failed, Message: err.Error()}), nil
		}
		log.WithField("user_id", userID).Errorf("invoice creation failed: %v", err)
		return o.end(userID, Result{State: Failed, Message: domain.RetryMessage}), nil
	}
	if !invoice.Success {
		return o.end(userID, Result{State: Failed, Message: invoice.Message, Invoice: &invoice}), nil
	}

	req.Cart.Clear()
	result := Result{
		State:   Confirmed,
		Message: fmt.Sprintf("Order %s confirmed", invoice.InvoiceNumber),
		Invoice: &invoice,
	}
	if o.qr != nil {
		code, err := o.qr.Generate(invoice.InvoiceNumber)
		if err != nil {
			log.WithField("invoice", invoice.InvoiceNumber).Warnf("pickup code not generated: %v", err)
		} else {
			result.PickupCode = code
		}
	}
	return o.end(userID, result), nil
}

func (o *Orchestrator) begin(userID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.active[userID]; busy {
		return false
	}
	o.active[userID] = Idle
	return true
}

func (o *Orchestrator) transition(userID string, state State) {
	o.mu.Lock()
	from := o.active[userID]
	o.active[userID] = state
	o.mu.Unlock()
	log.WithFields(log.Fields{"user_id": userID, "from": from, "to": state}).Debug("checkout transition")
}

func (o *Orchestrator) end(userID string, result Result) Result {
	o.transition(userID, result.State)
	return result
}

func (o *Orchestrator) finish(userID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.active, userID)
}
