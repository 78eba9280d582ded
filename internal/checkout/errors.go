package checkout

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	IllegalTransitionError = errors.New("illegal transition of checkout status")
	ErrNotAuthenticated    = errors.New("sign in required before checkout")
	ErrCheckoutInProgress  = errors.New("a checkout attempt is already in progress")
	ErrMissingFields       = errors.New("required fields are missing")
	ErrOrderFailed         = errors.New("order failed, please try again")
)
