package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"campus-storefront/changefeed"
	"campus-storefront/storefront-svc/internal/cart"
	"campus-storefront/storefront-svc/internal/checkout"
	"campus-storefront/storefront-svc/internal/domain"
	"campus-storefront/storefront-svc/internal/realtime"
	"campus-storefront/storefront-svc/internal/service"
	"campus-storefront/storefront-svc/internal/session"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Authenticator interface {
	SignUp(ctx context.Context, email, password string, profile domain.Profile) (session.Session, error)
	SignIn(ctx context.Context, email, password string) (session.Session, error)
	SignOut(ctx context.Context, token string)
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

type ProfileGate interface {
	CheckProfileComplete(ctx context.Context, userID string) bool
}

type CartStore interface {
	Get(userID string) *cart.Engine
	Drop(userID string)
}

type CheckoutRunner interface {
	Checkout(ctx context.Context, req checkout.Request) (checkout.Result, error)
}

type Subscriber interface {
	Subscribe(table changefeed.Table, buffer int) *realtime.Subscription
}

// Handler serves the storefront API. Images may be nil when no bucket is
// configured.
type Handler struct {
	Gateway      service.GatewayInterface
	Catalog      service.CatalogServiceInterface
	Ratings      service.RatingServiceInterface
	Profiles     service.ProfileServiceInterface
	Images       service.ImageServiceInterface
	Auth         Authenticator
	Gate         ProfileGate
	Carts        CartStore
	Checkout     CheckoutRunner
	Feed         Subscriber
	QR           service.QRGenerator
	DefaultStock int
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/sections", h.getSections).Methods("GET")
	r.HandleFunc("/api/sections", h.staff(h.createSection)).Methods("POST")

	r.HandleFunc("/api/products", h.getProducts).Methods("GET")
	r.HandleFunc("/api/products", h.staff(h.createProduct)).Methods("POST")
	r.HandleFunc("/api/products/bestsellers", h.getBestSellers).Methods("GET")
	r.HandleFunc("/api/products/{id:[0-9]+}", h.getProduct).Methods("GET")
	r.HandleFunc("/api/products/{id:[0-9]+}", h.staff(h.updateProduct)).Methods("PUT")
	r.HandleFunc("/api/products/{id:[0-9]+}", h.staff(h.deleteProduct)).Methods("DELETE")
	r.HandleFunc("/api/products/{id:[0-9]+}/images", h.getProductImages).Methods("GET")
	r.HandleFunc("/api/products/{id:[0-9]+}/images", h.staff(h.uploadProductImage)).Methods("POST")
	r.HandleFunc("/api/products/{id:[0-9]+}/images", h.staff(h.deleteProductImage)).Methods("DELETE")

	r.HandleFunc("/api/stock", h.staff(h.getDailyStock)).Methods("GET")
	r.HandleFunc("/api/stock/initialize", h.staff(h.initializeStock)).Methods("POST")
	r.HandleFunc("/api/stock/{productId:[0-9]+}", h.getStock).Methods("GET")

	r.HandleFunc("/api/auth/signup", h.signUp).Methods("POST")
	r.HandleFunc("/api/auth/signin", h.signIn).Methods("POST")
	r.HandleFunc("/api/auth/signout", h.signOut).Methods("POST")

	r.HandleFunc("/api/profile", h.authed(h.getProfile)).Methods("GET")
	r.HandleFunc("/api/profile", h.authed(h.updateProfile)).Methods("PUT")
	r.HandleFunc("/api/profile/complete", h.authed(h.getProfileComplete)).Methods("GET")

	r.HandleFunc("/api/cart", h.authed(h.getCart)).Methods("GET")
	r.HandleFunc("/api/cart", h.authed(h.clearCart)).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.authed(h.addCartItem)).Methods("POST")
	r.HandleFunc("/api/cart/items/{productId:[0-9]+}", h.authed(h.updateCartItem)).Methods("PUT")
	r.HandleFunc("/api/cart/items/{productId:[0-9]+}", h.authed(h.removeCartItem)).Methods("DELETE")
	r.HandleFunc("/api/cart/verify", h.authed(h.verifyCart)).Methods("POST")
	r.HandleFunc("/api/checkout", h.authed(h.checkout)).Methods("POST")

	r.HandleFunc("/api/invoices", h.authed(h.getInvoices)).Methods("GET")
	r.HandleFunc("/api/invoices/{id:[0-9]+}", h.authed(h.getInvoice)).Methods("GET")
	r.HandleFunc("/api/invoices/{id:[0-9]+}/pickup-code", h.authed(h.getPickupCode)).Methods("GET")

	r.HandleFunc("/api/ratings/eligibility", h.authed(h.getRatingEligibility)).Methods("GET")
	r.HandleFunc("/api/ratings", h.authed(h.submitRating)).Methods("POST")

	r.HandleFunc("/api/realtime", h.realtimeStream).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps service errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		writeMessage(w, http.StatusBadRequest, validation.Error())
	case errors.Is(err, session.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error(), "redirect": checkout.LoginRedirect})
	case errors.Is(err, session.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, session.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateRating),
		errors.Is(err, checkout.ErrCheckoutInProgress):
		writeMessage(w, http.StatusConflict, err.Error())
	case domain.IsDataAccess(err):
		log.Errorf("backend failure: %v", err)
		writeMessage(w, http.StatusServiceUnavailable, domain.RetryMessage)
	default:
		log.Errorf("unexpected error: %v", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathInt(r *http.Request, name string) int {
	id, _ := strconv.Atoi(mux.Vars(r)[name])
	return id
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
