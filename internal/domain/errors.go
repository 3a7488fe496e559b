package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed input: non-positive amounts, out-of-range
	// percentages or fees, negative balances, non-finite numbers
	ErrInvalidInput = errors.New("invalid input")

	// ErrCooldownActive is returned when a withdrawal is submitted before the
	// allocation's cooldown period has elapsed
	ErrCooldownActive = errors.New("withdrawal cooldown active")

	// ErrNotFound is returned by repositories when a snapshot does not exist
	ErrNotFound = errors.New("not found")

	// ErrUpstream wraps failures reported by the external fund API
	ErrUpstream = errors.New("fund api error")

	// ErrBelowMinimumDeposit is returned when a deposit is smaller than the configured minimum
	ErrBelowMinimumDeposit = fmt.Errorf("%w: deposit below minimum", ErrInvalidInput)

	// ErrEmptyAddress is returned when an operation needs a wallet address and none was given
	ErrEmptyAddress = fmt.Errorf("%w: wallet address cannot be empty", ErrInvalidInput)
)
