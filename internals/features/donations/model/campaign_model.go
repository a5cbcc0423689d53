package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Campaign statuses
const (
	CampaignDraft     = "draft"
	CampaignActive    = "active"
	CampaignPaused    = "paused"
	CampaignCompleted = "completed"
	CampaignCancelled = "cancelled"
)

var campaignStatusTransitions = map[string][]string{
	CampaignDraft:     {CampaignActive, CampaignCancelled},
	CampaignActive:    {CampaignPaused, CampaignCompleted, CampaignCancelled},
	CampaignPaused:    {CampaignActive, CampaignCancelled},
	CampaignCompleted: {},
	CampaignCancelled: {},
}

// CanTransitionCampaign reports whether from→to is a legal campaign move.
func CanTransitionCampaign(from, to string) bool {
	for _, allowed := range campaignStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// DonationCampaign maps the donation_campaigns table.
//
// current_amount/total_donors/average_donation are a persisted snapshot
// refreshed by the statistics engine; progress, days remaining and is_active
// are cheap and always computed at read time.
type DonationCampaign struct {
	CampaignID uuid.UUID `gorm:"column:campaign_id;type:uuid;default:gen_random_uuid();primaryKey" json:"campaign_id"`

	CampaignTitle            string `gorm:"column:campaign_title;size:200;not null" json:"campaign_title"`
	CampaignDescription      string `gorm:"column:campaign_description;type:text;not null" json:"campaign_description"`
	CampaignShortDescription string `gorm:"column:campaign_short_description;size:300" json:"campaign_short_description"`

	// nil = platform-wide campaign
	CampaignShelterID *uuid.UUID `gorm:"column:campaign_shelter_id;type:uuid;index" json:"campaign_shelter_id,omitempty"`

	CampaignTargetAmount  decimal.Decimal `gorm:"column:campaign_target_amount;type:numeric(12,2);not null" json:"campaign_target_amount"`
	CampaignCurrentAmount decimal.Decimal `gorm:"column:campaign_current_amount;type:numeric(12,2);not null;default:0" json:"campaign_current_amount"`

	CampaignStartDate time.Time `gorm:"column:campaign_start_date;not null" json:"campaign_start_date"`
	CampaignEndDate   time.Time `gorm:"column:campaign_end_date;not null" json:"campaign_end_date"`

	CampaignStatus     string `gorm:"column:campaign_status;type:varchar(20);not null;default:'draft';index" json:"campaign_status"`
	CampaignIsFeatured bool   `gorm:"column:campaign_is_featured;not null;default:false" json:"campaign_is_featured"`

	CampaignAllowAnonymous bool `gorm:"column:campaign_allow_anonymous;not null;default:true" json:"campaign_allow_anonymous"`

	CampaignTotalDonors     int             `gorm:"column:campaign_total_donors;not null;default:0" json:"campaign_total_donors"`
	CampaignAverageDonation decimal.Decimal `gorm:"column:campaign_average_donation;type:numeric(8,2);not null;default:0" json:"campaign_average_donation"`

	CampaignCreatedBy uuid.UUID `gorm:"column:campaign_created_by;type:uuid;not null" json:"campaign_created_by"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DonationCampaign) TableName() string {
	return "donation_campaigns"
}

// ProgressPercentage is clamped to 100; a non-positive target yields 0.
func (c *DonationCampaign) ProgressPercentage() float64 {
	if !c.CampaignTargetAmount.IsPositive() {
		return 0
	}
	pct, _ := c.CampaignCurrentAmount.
		Div(c.CampaignTargetAmount).
		Mul(decimal.NewFromInt(100)).
		Float64()
	if pct > 100 {
		return 100
	}
	return pct
}

// IsActive reports whether the campaign is live at the given instant.
func (c *DonationCampaign) IsActive(now time.Time) bool {
	return c.CampaignStatus == CampaignActive &&
		!now.Before(c.CampaignStartDate) &&
		!now.After(c.CampaignEndDate)
}

// DaysRemaining counts whole calendar days until end_date, floored at 0.
func (c *DonationCampaign) DaysRemaining(now time.Time) int {
	if !c.CampaignEndDate.After(now) {
		return 0
	}
	endDay := truncateToDay(c.CampaignEndDate.UTC())
	nowDay := truncateToDay(now.UTC())
	days := int(endDay.Sub(nowDay).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
