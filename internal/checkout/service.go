package checkout

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/evenlines/storefront/internal/cart"
	"github.com/evenlines/storefront/internal/payment"
	"github.com/evenlines/storefront/internal/pricing"
	"github.com/evenlines/storefront/internal/validate"
)

// AuthState is the slice of the auth session the orchestrator gates on.
type AuthState interface {
	IsAuthenticated() bool
}

// Flow is one checkout attempt's state for a session. A flow moves
// SHIPPING -> PAYMENT -> REVIEW -> PLACING -> CONFIRMED, with explicit
// back actions, and only ever runs one submission at a time.
type Flow struct {
	mu       sync.Mutex
	status   Status
	shipping ShippingInfo
	payment  PaymentInfo
	order    *Order
	session  *payment.Session
}

func (f *Flow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Flow) Order() *Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order
}

// Service drives checkout flows per session on top of the cart service and
// the configured payment gateway.
type Service struct {
	carts   *cart.Service
	gateway payment.Gateway
	auth    AuthState
	orders  OrderRepository

	submitDelay  time.Duration
	displayDelay time.Duration
	sleep        func(ctx context.Context, d time.Duration) error

	mu    sync.Mutex
	flows map[string]*Flow
}

func NewService(carts *cart.Service, gateway payment.Gateway, auth AuthState, orders OrderRepository, submitDelay, displayDelay time.Duration) *Service {
	if orders == nil {
		orders = LogOrders{}
	}
	return &Service{
		carts:        carts,
		gateway:      gateway,
		auth:         auth,
		orders:       orders,
		submitDelay:  submitDelay,
		displayDelay: displayDelay,
		sleep:        sleepCtx,
		flows:        make(map[string]*Flow),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) flow(sessionID string) *Flow {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, exists := s.flows[sessionID]
	if !exists {
		f = &Flow{status: StatusUnauthenticated}
		s.flows[sessionID] = f
	}
	return f
}

// Status reports the flow state for a session; a session that never began
// a checkout is UNAUTHENTICATED.
func (s *Service) Status(sessionID string) Status {
	return s.flow(sessionID).Status()
}

func (s *Service) Order(sessionID string) *Order {
	return s.flow(sessionID).Order()
}

// Begin enters the shipping step. While the session is unauthenticated no
// transition occurs. A terminal flow is replaced by a fresh one.
func (s *Service) Begin(sessionID string) error {
	if !s.auth.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	f := s.flow(sessionID)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status.IsTerminal() {
		f.status = StatusUnauthenticated
		f.shipping = ShippingInfo{}
		f.payment = PaymentInfo{}
		f.order = nil
		f.session = nil
	}

	if !CanTransitionTo(f.status, StatusShipping) {
		return IllegalTransitionError
	}
	f.status = StatusShipping
	return nil
}

// SubmitShipping advances to the payment step. Only presence is enforced
// here; field-level validation belongs to the validate package and is the
// caller's concern.
func (s *Service) SubmitShipping(sessionID string, info ShippingInfo) error {
	if missingShipping(info) {
		return ErrMissingFields
	}

	f := s.flow(sessionID)
	f.mu.Lock()
	defer f.mu.Unlock()

	if !CanTransitionTo(f.status, StatusPayment) {
		return IllegalTransitionError
	}
	f.shipping = info
	f.status = StatusPayment
	return nil
}

func (s *Service) SubmitPayment(sessionID string, info PaymentInfo) error {
	if info.CardholderName == "" || info.CardNumber == "" || info.Expiry == "" || info.CVV == "" {
		return ErrMissingFields
	}

	f := s.flow(sessionID)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != StatusPayment || !CanTransitionTo(f.status, StatusReview) {
		return IllegalTransitionError
	}
	f.payment = info
	f.status = StatusReview
	return nil
}

// Back steps PAYMENT to SHIPPING or REVIEW to PAYMENT. PLACING and
// CONFIRMED are not reversible.
func (s *Service) Back(sessionID string) error {
	f := s.flow(sessionID)
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.status {
	case StatusPayment:
		f.status = StatusShipping
	case StatusReview:
		f.status = StatusPayment
	default:
		return IllegalTransitionError
	}
	return nil
}

// PlaceOrder runs REVIEW -> PLACING -> CONFIRMED. The order record is
// built without payment credentials, the gateway handoff and submission
// latency are simulated, the cart is cleared on success, and the panel
// auto-closes after the display delay. Any failure reverts to REVIEW with
// a generic error.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string) (*Order, error) {
	f := s.flow(sessionID)

	f.mu.Lock()
	if f.status == StatusPlacing {
		f.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	if !CanTransitionTo(f.status, StatusPlacing) {
		f.mu.Unlock()
		return nil, IllegalTransitionError
	}
	f.status = StatusPlacing
	shipping := f.shipping
	f.mu.Unlock()

	order, session, err := s.submit(ctx, sessionID, shipping)
	if err != nil {
		f.mu.Lock()
		f.status = StatusReview
		f.mu.Unlock()
		return nil, err
	}

	f.mu.Lock()
	f.status = StatusConfirmed
	f.order = order
	f.session = session
	f.mu.Unlock()

	if _, errClear := s.carts.ClearCart(ctx, sessionID); errClear != nil {
		log.Printf("failed to clear cart after order %s: %v", order.OrderID, errClear)
	}

	go s.autoClose(sessionID, order.OrderID)

	return order, nil
}

func (s *Service) submit(ctx context.Context, sessionID string, shipping ShippingInfo) (*Order, *payment.Session, error) {
	c, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		log.Printf("order failed: %v", err)
		return nil, nil, ErrOrderFailed
	}
	if len(c.Items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	quote := pricing.ForCart(c)
	if !validate.PaymentAmount(quote.Total) {
		log.Printf("order rejected: total %.2f outside chargeable range", quote.Total)
		return nil, nil, ErrOrderFailed
	}

	items := make([]payment.LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, payment.LineItem{
			ID:        item.ID,
			Name:      item.Name,
			Image:     item.Image,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
		})
	}

	session, err := s.gateway.CreateCheckout(ctx, items, quote.Total)
	if err != nil {
		log.Printf("order failed: %v", err)
		return nil, nil, ErrOrderFailed
	}

	if err := s.sleep(ctx, s.submitDelay); err != nil {
		return nil, nil, ErrOrderFailed
	}

	order := &Order{
		Items:     c.Items,
		Shipping:  shipping,
		Total:     quote.Total,
		OrderDate: time.Now().UTC().Format(time.RFC3339),
		OrderID:   NewOrderID(),
	}

	if err := s.orders.SaveOrder(ctx, order); err != nil {
		log.Printf("order backend rejected %s: %v", order.OrderID, err)
	}

	return order, session, nil
}

func (s *Service) autoClose(sessionID, orderID string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.displayDelay+time.Second)
	defer cancel()

	if err := s.sleep(ctx, s.displayDelay); err != nil {
		return
	}
	if _, err := s.carts.ClosePanel(ctx, sessionID); err != nil {
		log.Printf("failed to close cart panel after order %s: %v", orderID, err)
	}
}

func missingShipping(info ShippingInfo) bool {
	return info.FirstName == "" || info.LastName == "" || info.Email == "" ||
		info.Phone == "" || info.Address == "" || info.City == "" ||
		info.Province == "" || info.PostalCode == "" || info.Country == ""
}
