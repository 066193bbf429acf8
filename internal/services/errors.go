package services

import (
	"errors"
	"strings"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrConfiguration = errors.New("server configuration error")
	ErrLedgerWrite   = errors.New("ledger write failed")

	// ErrChannelSkipped marks a notification that was not attempted, e.g. the
	// channel is unconfigured or the recipient is unusable.
	ErrChannelSkipped = errors.New("channel skipped")
)

// ValidationError lists every problem found in a lead, not just the first.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
