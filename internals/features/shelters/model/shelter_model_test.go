package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionVerification(t *testing.T) {
	assert.True(t, CanTransitionVerification(VerificationPending, VerificationVerified))
	assert.True(t, CanTransitionVerification(VerificationPending, VerificationRejected))
	assert.True(t, CanTransitionVerification(VerificationRejected, VerificationPending), "rejected shelters may reapply")

	assert.False(t, CanTransitionVerification(VerificationVerified, VerificationPending), "verification is final")
	assert.False(t, CanTransitionVerification(VerificationVerified, VerificationRejected))
	assert.False(t, CanTransitionVerification(VerificationRejected, VerificationVerified))
	assert.False(t, CanTransitionVerification(VerificationPending, VerificationPending))
}

func TestIsVerified(t *testing.T) {
	s := &ShelterModel{ShelterVerificationStatus: VerificationPending}
	assert.False(t, s.IsVerified())

	s.ShelterVerificationStatus = VerificationVerified
	assert.True(t, s.IsVerified())
}
