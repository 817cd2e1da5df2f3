package httpapi

import (
	"net/http"

	"campus-storefront/storefront-svc/internal/cart"
	"campus-storefront/storefront-svc/internal/checkout"
	"campus-storefront/storefront-svc/internal/domain"
)

type cartItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type cartResponse struct {
	cart.Result
	Cart domain.CartView `json:"cart"`
}

func (h *Handler) writeCartResult(w http.ResponseWriter, engine *cart.Engine, result cart.Result) {
	status := http.StatusOK
	if !result.Success {
		status = http.StatusConflict
	}
	writeJSON(w, status, cartResponse{Result: result, Cart: engine.Snapshot()})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Carts.Get(currentUser(r).UserID).Snapshot())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.Carts.Get(currentUser(r).UserID).Clear()
	w.WriteHeader(http.StatusNoContent)
}

// addCartItem takes name and price from the catalog, never from the client.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	product, found, err := h.Gateway.GetProductWithStock(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	engine := h.Carts.Get(currentUser(r).UserID)
	result, err := engine.AddItem(r.Context(), product.ID, product.Name, product.Price, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeCartResult(w, engine, result)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	engine := h.Carts.Get(currentUser(r).UserID)
	result, err := engine.UpdateQuantity(r.Context(), pathInt(r, "productId"), req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeCartResult(w, engine, result)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	engine := h.Carts.Get(currentUser(r).UserID)
	engine.RemoveItem(pathInt(r, "productId"))
	writeJSON(w, http.StatusOK, engine.Snapshot())
}

func (h *Handler) verifyCart(w http.ResponseWriter, r *http.Request) {
	availability, err := h.Carts.Get(currentUser(r).UserID).VerifyAvailability(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	identity := currentUser(r)
	result, err := h.Checkout.Checkout(r.Context(), checkout.Request{
		Identity:      &identity,
		Cart:          h.Carts.Get(identity.UserID),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, checkoutStatus(result), result)
}

func checkoutStatus(result checkout.Result) int {
	switch result.State {
	case checkout.Confirmed:
		return http.StatusCreated
	case checkout.Rejected:
		return http.StatusConflict
	case checkout.Failed:
		if result.Message == domain.RetryMessage {
			return http.StatusServiceUnavailable
		}
		return http.StatusUnprocessableEntity
	}
	switch result.Redirect {
	case checkout.LoginRedirect:
		return http.StatusUnauthorized
	case checkout.ProfileRedirect:
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}

func (h *Handler) getInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Gateway.ListInvoicesForUser(r.Context(), currentUser(r).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

// ownedInvoice writes the response itself when the invoice is missing or
// belongs to another customer.
func (h *Handler) ownedInvoice(w http.ResponseWriter, r *http.Request) (domain.Invoice, bool) {
	invoice, found, err := h.Gateway.GetInvoice(r.Context(), pathInt(r, "id"))
	if err != nil {
		writeError(w, err)
		return domain.Invoice{}, false
	}
	identity := currentUser(r)
	if !found || (invoice.CustomerID != identity.UserID && identity.Role != domain.RoleStaff) {
		writeMessage(w, http.StatusNotFound, "Invoice not found")
		return domain.Invoice{}, false
	}
	return invoice, true
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.ownedInvoice(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handler) getPickupCode(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.ownedInvoice(w, r)
	if !ok {
		return
	}
	png, err := h.QR.Generate(invoice.InvoiceNumber)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

type ratingRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

func (h *Handler) getRatingEligibility(w http.ResponseWriter, r *http.Request) {
	eligibility, err := h.Ratings.Eligibility(r.Context(), currentUser(r).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eligibility)
}

func (h *Handler) submitRating(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rating, err := h.Ratings.SubmitRating(r.Context(), currentUser(r).UserID, req.Score, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rating)
}
