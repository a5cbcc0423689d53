package dto

import (
	"github.com/shopspring/decimal"
)

// DonationStatsResponse is the platform-wide statistics payload,
// computed live from completed donations.
type DonationStatsResponse struct {
	TotalDonations      decimal.Decimal `json:"total_donations"`
	TotalDonationsCount int64           `json:"total_donations_count"`
	AverageDonation     decimal.Decimal `json:"average_donation"`
	TotalDonors         int64           `json:"total_donors"`

	// breakdown by donation type
	ShelterDonations   decimal.Decimal `json:"shelter_donations"`
	PlatformDonations  decimal.Decimal `json:"platform_donations"`
	EmergencyDonations decimal.Decimal `json:"emergency_donations"`
	GeneralDonations   decimal.Decimal `json:"general_donations"`

	// last 30 days
	RecentDonations      decimal.Decimal `json:"recent_donations"`
	RecentDonationsCount int64           `json:"recent_donations_count"`

	TotalCampaigns    int64 `json:"total_campaigns"`
	ActiveCampaigns   int64 `json:"active_campaigns"`
	FeaturedCampaigns int64 `json:"featured_campaigns"`

	TopCampaigns         []CampaignResponse `json:"top_campaigns"`
	RecentLargeDonations []DonationResponse `json:"recent_large_donations"`
}

// ShelterDonationStatsResponse is the same shape scoped to one shelter.
type ShelterDonationStatsResponse struct {
	ShelterName string `json:"shelter_name"`

	TotalDonations      decimal.Decimal `json:"total_donations"`
	TotalDonationsCount int64           `json:"total_donations_count"`
	AverageDonation     decimal.Decimal `json:"average_donation"`
	TotalDonors         int64           `json:"total_donors"`

	RecentDonations      decimal.Decimal `json:"recent_donations"`
	RecentDonationsCount int64           `json:"recent_donations_count"`

	ActiveCampaigns []CampaignResponse `json:"active_campaigns"`
	RecentDonors    []DonationResponse `json:"recent_donors"`
}
