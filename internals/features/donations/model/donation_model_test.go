package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	userModel "adoptme_backend/internals/features/users/model"
)

func TestCanTransitionPayment(t *testing.T) {
	allowed := []struct{ from, to string }{
		{PaymentPending, PaymentProcessing},
		{PaymentPending, PaymentCompleted},
		{PaymentPending, PaymentFailed},
		{PaymentPending, PaymentCancelled},
		{PaymentProcessing, PaymentCompleted},
		{PaymentProcessing, PaymentFailed},
		{PaymentCompleted, PaymentRefunded},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionPayment(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	forbidden := []struct{ from, to string }{
		{PaymentCompleted, PaymentPending},
		{PaymentCompleted, PaymentCompleted},
		{PaymentFailed, PaymentCompleted},
		{PaymentRefunded, PaymentCompleted},
		{PaymentCancelled, PaymentPending},
		{PaymentPending, PaymentRefunded},
		{"bogus", PaymentCompleted},
	}
	for _, tc := range forbidden {
		assert.False(t, CanTransitionPayment(tc.from, tc.to), "%s -> %s should be forbidden", tc.from, tc.to)
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, terminal := range []string{PaymentFailed, PaymentRefunded, PaymentCancelled} {
		for _, to := range []string{PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentRefunded, PaymentCancelled} {
			assert.False(t, CanTransitionPayment(terminal, to), "%s must be terminal", terminal)
		}
	}
}

func TestDonorDisplayName(t *testing.T) {
	donor := &userModel.UserModel{UserName: "jdoe", FirstName: "Jane", LastName: "Doe"}

	anon := &Donation{DonationIsAnonymous: true, DonationAnonymousName: "Generous Soul"}
	assert.Equal(t, "Anonymous", anon.DonorDisplayName(donor), "anonymous donations never expose a name")

	withDonor := &Donation{}
	assert.Equal(t, "Jane Doe", withDonor.DonorDisplayName(donor))

	guest := &Donation{DonationAnonymousName: "Guest Giver"}
	assert.Equal(t, "Guest Giver", guest.DonorDisplayName(nil))

	unknown := &Donation{}
	assert.Equal(t, "Anonymous", unknown.DonorDisplayName(nil))
}

func TestDonorDisplayNameFallsBackToUserName(t *testing.T) {
	donor := &userModel.UserModel{UserName: "jdoe"}
	d := &Donation{}
	assert.Equal(t, "jdoe", d.DonorDisplayName(donor))
}

func TestDonorEmailPriority(t *testing.T) {
	donor := &userModel.UserModel{Email: "donor@example.com"}

	d := &Donation{
		DonationReceiptEmail:   "receipts@example.com",
		DonationAnonymousEmail: "anon@example.com",
	}
	assert.Equal(t, "receipts@example.com", d.DonorEmail(donor), "explicit receipt email wins")

	d.DonationReceiptEmail = ""
	assert.Equal(t, "donor@example.com", d.DonorEmail(donor), "authenticated donor email next")

	assert.Equal(t, "anon@example.com", d.DonorEmail(nil), "anonymous-supplied email last")

	empty := &Donation{}
	assert.Equal(t, "", empty.DonorEmail(nil))
}

func TestIsCompletedAndIsSuccessful(t *testing.T) {
	d := &Donation{DonationPaymentStatus: PaymentPending}
	assert.False(t, d.IsCompleted())
	assert.False(t, d.IsSuccessful())

	d.DonationPaymentStatus = PaymentProcessing
	assert.False(t, d.IsCompleted())
	assert.True(t, d.IsSuccessful())

	d.DonationPaymentStatus = PaymentCompleted
	assert.True(t, d.IsCompleted())
	assert.True(t, d.IsSuccessful())
}
