package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProgressPercentage(t *testing.T) {
	c := &DonationCampaign{
		CampaignTargetAmount:  dec("1000.00"),
		CampaignCurrentAmount: dec("250.00"),
	}
	assert.InDelta(t, 25.0, c.ProgressPercentage(), 0.0001)

	c.CampaignCurrentAmount = dec("1500.00")
	assert.Equal(t, 100.0, c.ProgressPercentage(), "overfunded campaigns clamp at 100")

	c.CampaignCurrentAmount = dec("1000.00")
	assert.Equal(t, 100.0, c.ProgressPercentage())

	c.CampaignTargetAmount = decimal.Zero
	assert.Equal(t, 0.0, c.ProgressPercentage(), "no target means no progress")
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	c := &DonationCampaign{CampaignEndDate: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)}
	assert.Equal(t, 5, c.DaysRemaining(now), "partial days count as whole calendar days")

	c.CampaignEndDate = time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 0, c.DaysRemaining(now), "ending later today is zero days")

	c.CampaignEndDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, c.DaysRemaining(now), "expired campaigns floor at zero")
}

func TestIsActive(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	c := &DonationCampaign{
		CampaignStatus:    CampaignActive,
		CampaignStartDate: start,
		CampaignEndDate:   end,
	}

	assert.True(t, c.IsActive(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)))
	assert.True(t, c.IsActive(start), "boundary instants are inclusive")
	assert.True(t, c.IsActive(end))

	assert.False(t, c.IsActive(start.Add(-time.Second)), "not started yet")
	assert.False(t, c.IsActive(end.Add(time.Second)), "already over")

	c.CampaignStatus = CampaignPaused
	assert.False(t, c.IsActive(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)), "paused is never active")
}

func TestCanTransitionCampaign(t *testing.T) {
	assert.True(t, CanTransitionCampaign(CampaignDraft, CampaignActive))
	assert.True(t, CanTransitionCampaign(CampaignDraft, CampaignCancelled))
	assert.True(t, CanTransitionCampaign(CampaignActive, CampaignPaused))
	assert.True(t, CanTransitionCampaign(CampaignActive, CampaignCompleted))
	assert.True(t, CanTransitionCampaign(CampaignPaused, CampaignActive))

	assert.False(t, CanTransitionCampaign(CampaignDraft, CampaignCompleted))
	assert.False(t, CanTransitionCampaign(CampaignCompleted, CampaignActive))
	assert.False(t, CanTransitionCampaign(CampaignCancelled, CampaignActive))
	assert.False(t, CanTransitionCampaign(CampaignPaused, CampaignCompleted))
}
