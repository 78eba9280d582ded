package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evenlines/storefront/internal/cart"
	"github.com/evenlines/storefront/internal/checkout"
	"github.com/evenlines/storefront/internal/pricing"
	"github.com/evenlines/storefront/internal/validate"
)

type CheckoutHandler struct {
	checkouts *checkout.Service
	carts     *cart.Service
}

func NewCheckoutHandler(checkouts *checkout.Service, carts *cart.Service) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts, carts: carts}
}

type ShippingRequestDTO struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type PaymentRequestDTO struct {
	CardholderName string `json:"cardholder_name"`
	CardNumber     string `json:"card_number"`
	Expiry         string `json:"expiry"`
	CVV            string `json:"cvv"`
}

type CheckoutStatusDTO struct {
	Status string          `json:"status"`
	Order  *checkout.Order `json:"order,omitempty"`
}

func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if err := h.checkouts.Begin(sessionID); err != nil {
		if errors.Is(err, checkout.ErrNotAuthenticated) {
			respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in required before checkout")
			return
		}
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
		return
	}

	h.respondStatus(w, sessionID)
}

func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req ShippingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if !validate.Email(req.Email) {
		respondError(w, http.StatusBadRequest, "invalid_email", "email address is not valid")
		return
	}
	if !validate.Phone(req.Phone) {
		respondError(w, http.StatusBadRequest, "invalid_phone", "phone number is not valid")
		return
	}
	addr := validate.Address{
		Street:     validate.SanitizeInput(req.Address),
		City:       validate.SanitizeInput(req.City),
		Province:   validate.SanitizeInput(req.Province),
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}
	if errs := validate.AddressErrors(addr); len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "address is not valid",
			Code:    "invalid_address",
			Details: errs[0],
		})
		return
	}

	info := checkout.ShippingInfo{
		FirstName:  validate.SanitizeInput(req.FirstName),
		LastName:   validate.SanitizeInput(req.LastName),
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    addr.Street,
		City:       addr.City,
		Province:   addr.Province,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}

	if err := h.checkouts.SubmitShipping(sessionID, info); err != nil {
		if errors.Is(err, checkout.ErrMissingFields) {
			respondError(w, http.StatusBadRequest, "missing_fields", err.Error())
			return
		}
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
		return
	}

	h.respondStatus(w, sessionID)
}

func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req PaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if !validate.CardNumber(req.CardNumber) {
		respondError(w, http.StatusBadRequest, "invalid_card", "card number is not valid")
		return
	}
	if !validate.Expiry(req.Expiry) {
		respondError(w, http.StatusBadRequest, "invalid_expiry", "card expiry is not valid")
		return
	}
	if !validate.CVV(req.CVV) {
		respondError(w, http.StatusBadRequest, "invalid_cvv", "security code is not valid")
		return
	}

	info := checkout.PaymentInfo{
		CardholderName: validate.SanitizeInput(req.CardholderName),
		CardNumber:     req.CardNumber,
		Expiry:         req.Expiry,
		CVV:            req.CVV,
	}

	if err := h.checkouts.SubmitPayment(sessionID, info); err != nil {
		if errors.Is(err, checkout.ErrMissingFields) {
			respondError(w, http.StatusBadRequest, "missing_fields", err.Error())
			return
		}
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
		return
	}

	h.respondStatus(w, sessionID)
}

func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if err := h.checkouts.Back(sessionID); err != nil {
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
		return
	}

	h.respondStatus(w, sessionID)
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	order, err := h.checkouts.PlaceOrder(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
		case errors.Is(err, checkout.ErrCheckoutInProgress):
			respondError(w, http.StatusConflict, "checkout_in_progress", err.Error())
		case errors.Is(err, checkout.IllegalTransitionError):
			respondError(w, http.StatusConflict, "illegal_transition", err.Error())
		default:
			respondError(w, http.StatusBadGateway, "order_failed", checkout.ErrOrderFailed.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	h.respondStatus(w, sessionID)
}

// Quote prices the current cart with the flat shipping and tax model.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	c, err := h.carts.GetCart(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	respondJSON(w, http.StatusOK, pricing.ForCart(c))
}

func (h *CheckoutHandler) respondStatus(w http.ResponseWriter, sessionID string) {
	respondJSON(w, http.StatusOK, CheckoutStatusDTO{
		Status: h.checkouts.Status(sessionID).String(),
		Order:  h.checkouts.Order(sessionID),
	})
}
