package domain

import "errors"

var (
	// ErrAddressExists is returned when registering an address that is already monitored
	ErrAddressExists = errors.New("address already registered")

	// ErrAddressNotFound is returned when a monitored address is not found
	ErrAddressNotFound = errors.New("address not found")

	// ErrDuplicateTransaction is returned when inserting a transaction whose hash is already recorded
	ErrDuplicateTransaction = errors.New("transaction already recorded")

	// ErrInvalidAddress is returned when a user-supplied address is not a valid hex address
	ErrInvalidAddress = errors.New("invalid address")

	// ErrMissingCallbackURL is returned when subscription creation is attempted without a public callback URL
	ErrMissingCallbackURL = errors.New("callback URL is not configured")

	// ErrMarketNotFound is returned when no tradable market exists for a token symbol
	ErrMarketNotFound = errors.New("market not found")

	// ErrNotNormalizable is returned when a raw event cannot be normalized into a transfer
	ErrNotNormalizable = errors.New("event not normalizable")
)
