package model

import "errors"

var (
	// Credential and token errors. These are user-visible with generic
	// messages; handlers must never distinguish unknown-email from
	// bad-password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSignature   = errors.New("token signature invalid")
	ErrTokenExpired       = errors.New("token expired")
	ErrSessionRevoked     = errors.New("session revoked or superseded")

	// Infrastructure faults. Never treated as "not authenticated".
	ErrSessionStoreUnavailable = errors.New("session store unavailable")
	ErrSourceUnavailable       = errors.New("product source unavailable")

	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Catalog related errors
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid product category")

	// Cart related errors
	ErrCartItemNotFound = errors.New("cart item not found")

	// Coupon related errors
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponExpired  = errors.New("coupon expired")

	// Order related errors
	ErrOrderNotFound = errors.New("order not found")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
