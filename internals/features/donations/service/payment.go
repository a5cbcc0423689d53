package service

import (
	"context"

	"github.com/google/uuid"

	"adoptme_backend/internals/features/donations/model"
)

// PaymentProcessor charges the donor and returns an opaque transaction id.
// The real gateway integration is out of scope; callers depend on this
// interface so the stub can be swapped without touching the lifecycle.
type PaymentProcessor interface {
	Charge(ctx context.Context, d *model.Donation, method, token string) (string, error)
}

// StubProcessor accepts every charge and hands back a fresh transaction id.
type StubProcessor struct{}

func (StubProcessor) Charge(_ context.Context, _ *model.Donation, _, _ string) (string, error) {
	return uuid.NewString(), nil
}
