package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDonationNotFound: no donation with that id in pending status.
	ErrDonationNotFound = errors.New("donation not found or not pending")
	// ErrAlreadySettled: a concurrent settlement won the conditional update.
	ErrAlreadySettled = errors.New("donation already settled")
	// ErrMissingPaymentToken: settle called without a payment token.
	ErrMissingPaymentToken = errors.New("payment token is required")

	ErrCampaignNotFound = errors.New("campaign not found")
	ErrShelterNotFound  = errors.New("shelter not found")
)

// ValidationErrors collects every field violation so the caller can report
// them all at once rather than fail-fast on the first.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// PaymentError wraps a failure from the external payment step. By the time it
// surfaces the donation has already been moved to failed.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment processing failed: %v", e.Err)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}
