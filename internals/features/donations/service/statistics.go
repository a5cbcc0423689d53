package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"adoptme_backend/internals/features/donations/dto"
	"adoptme_backend/internals/features/donations/model"
	shelterModel "adoptme_backend/internals/features/shelters/model"
	userModel "adoptme_backend/internals/features/users/model"
)

// StatisticsService recomputes campaign snapshots and builds the live
// statistics payloads. Recomputation is always a full aggregate over the
// committed completed-donation set, never an incremental counter, so
// overlapping recomputes converge on the same value.
type StatisticsService struct {
	DB *gorm.DB
}

func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{DB: db}
}

type aggregateRow struct {
	TotalAmount  decimal.Decimal
	TotalCount   int64
	AvgAmount    decimal.Decimal
	UniqueDonors int64
}

// scopedDonations narrows completed donations to the campaign's scope.
// Shelter campaigns count shelter donations to their shelter; platform
// campaigns count platform donations only. The two scopes never overlap.
func (s *StatisticsService) scopedDonations(ctx context.Context, cpg *model.DonationCampaign) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&model.Donation{}).
		Where("donation_payment_status = ?", model.PaymentCompleted)
	if cpg.CampaignShelterID != nil {
		return q.Where("donation_type = ? AND donation_shelter_id = ?", model.TypeShelter, *cpg.CampaignShelterID)
	}
	return q.Where("donation_type = ?", model.TypePlatform)
}

// Recompute refreshes the persisted snapshot (current_amount, total_donors,
// average_donation) from the full in-scope completed set. Safe to call
// repeatedly; two racing recomputes write the same deterministic figures.
func (s *StatisticsService) Recompute(ctx context.Context, cpg *model.DonationCampaign) error {
	var agg aggregateRow
	err := s.scopedDonations(ctx, cpg).
		Select("COALESCE(SUM(donation_amount), 0) AS total_amount, COUNT(*) AS total_count, COALESCE(AVG(donation_amount), 0) AS avg_amount").
		Scan(&agg).Error
	if err != nil {
		return err
	}

	err = s.DB.WithContext(ctx).Model(&model.DonationCampaign{}).
		Where("campaign_id = ?", cpg.CampaignID).
		Updates(map[string]interface{}{
			"campaign_current_amount":   agg.TotalAmount,
			"campaign_total_donors":     agg.TotalCount,
			"campaign_average_donation": agg.AvgAmount.Round(2),
		}).Error
	if err != nil {
		return err
	}

	cpg.CampaignCurrentAmount = agg.TotalAmount
	cpg.CampaignTotalDonors = int(agg.TotalCount)
	cpg.CampaignAverageDonation = agg.AvgAmount.Round(2)
	return nil
}

// RecomputeByID is the on-demand variant used by the admin endpoint.
func (s *StatisticsService) RecomputeByID(ctx context.Context, campaignID uuid.UUID) (*model.DonationCampaign, error) {
	var cpg model.DonationCampaign
	if err := s.DB.WithContext(ctx).First(&cpg, "campaign_id = ?", campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if err := s.Recompute(ctx, &cpg); err != nil {
		return nil, err
	}
	return &cpg, nil
}

// LargeDonationFloor is the cutoff for the recent-large-donations list.
var LargeDonationFloor = decimal.RequireFromString("100.00")

// BuildPlatformStats assembles the platform-wide statistics payload.
func (s *StatisticsService) BuildPlatformStats(ctx context.Context) (*dto.DonationStatsResponse, error) {
	now := time.Now().UTC()
	completed := func() *gorm.DB {
		return s.DB.WithContext(ctx).Model(&model.Donation{}).
			Where("donation_payment_status = ?", model.PaymentCompleted)
	}

	var totals aggregateRow
	if err := completed().
		Select("COALESCE(SUM(donation_amount), 0) AS total_amount, COUNT(*) AS total_count, COALESCE(AVG(donation_amount), 0) AS avg_amount, COUNT(DISTINCT donation_donor_id) AS unique_donors").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	stats := &dto.DonationStatsResponse{
		TotalDonations:      totals.TotalAmount,
		TotalDonationsCount: totals.TotalCount,
		AverageDonation:     totals.AvgAmount.Round(2),
		TotalDonors:         totals.UniqueDonors,
	}

	// breakdown by type
	type typeRow struct {
		DonationType string
		Amount       decimal.Decimal
	}
	var byType []typeRow
	if err := completed().
		Select("donation_type, COALESCE(SUM(donation_amount), 0) AS amount").
		Group("donation_type").
		Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, row := range byType {
		switch row.DonationType {
		case model.TypeShelter:
			stats.ShelterDonations = row.Amount
		case model.TypePlatform:
			stats.PlatformDonations = row.Amount
		case model.TypeEmergency:
			stats.EmergencyDonations = row.Amount
		case model.TypeGeneral:
			stats.GeneralDonations = row.Amount
		}
	}

	// last 30 days
	cutoff := now.AddDate(0, 0, -30)
	var recent aggregateRow
	if err := completed().
		Where("created_at >= ?", cutoff).
		Select("COALESCE(SUM(donation_amount), 0) AS total_amount, COUNT(*) AS total_count").
		Scan(&recent).Error; err != nil {
		return nil, err
	}
	stats.RecentDonations = recent.TotalAmount
	stats.RecentDonationsCount = recent.TotalCount

	// campaign counts
	campaignQ := s.DB.WithContext(ctx).Model(&model.DonationCampaign{})
	if err := campaignQ.Count(&stats.TotalCampaigns).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&model.DonationCampaign{}).
		Where("campaign_status = ?", model.CampaignActive).
		Count(&stats.ActiveCampaigns).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&model.DonationCampaign{}).
		Where("campaign_is_featured = true").
		Count(&stats.FeaturedCampaigns).Error; err != nil {
		return nil, err
	}

	// top 5 campaigns by amount raised
	var topCampaigns []model.DonationCampaign
	if err := s.DB.WithContext(ctx).
		Where("campaign_status IN ?", []string{model.CampaignActive, model.CampaignCompleted}).
		Order("campaign_current_amount DESC").
		Limit(5).
		Find(&topCampaigns).Error; err != nil {
		return nil, err
	}
	shelters, err := s.loadCampaignShelters(ctx, topCampaigns)
	if err != nil {
		return nil, err
	}
	stats.TopCampaigns = make([]dto.CampaignResponse, 0, len(topCampaigns))
	for i := range topCampaigns {
		stats.TopCampaigns = append(stats.TopCampaigns,
			dto.ToCampaignResponse(&topCampaigns[i], shelterFor(shelters, topCampaigns[i].CampaignShelterID), now))
	}

	// 10 most recent non-anonymous donations at or above the floor
	var large []model.Donation
	if err := completed().
		Where("donation_amount >= ? AND donation_is_anonymous = false", LargeDonationFloor).
		Order("created_at DESC").
		Limit(10).
		Find(&large).Error; err != nil {
		return nil, err
	}
	largeResponses, err := s.ShapeDonations(ctx, large)
	if err != nil {
		return nil, err
	}
	stats.RecentLargeDonations = largeResponses

	return stats, nil
}

// BuildShelterStats assembles the per-shelter statistics payload.
func (s *StatisticsService) BuildShelterStats(ctx context.Context, shelterID uuid.UUID) (*dto.ShelterDonationStatsResponse, error) {
	var shelter shelterModel.ShelterModel
	if err := s.DB.WithContext(ctx).First(&shelter, "shelter_id = ?", shelterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShelterNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	completed := func() *gorm.DB {
		return s.DB.WithContext(ctx).Model(&model.Donation{}).
			Where("donation_payment_status = ? AND donation_shelter_id = ?", model.PaymentCompleted, shelterID)
	}

	var totals aggregateRow
	if err := completed().
		Select("COALESCE(SUM(donation_amount), 0) AS total_amount, COUNT(*) AS total_count, COALESCE(AVG(donation_amount), 0) AS avg_amount, COUNT(DISTINCT donation_donor_id) AS unique_donors").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	stats := &dto.ShelterDonationStatsResponse{
		ShelterName:         shelter.ShelterName,
		TotalDonations:      totals.TotalAmount,
		TotalDonationsCount: totals.TotalCount,
		AverageDonation:     totals.AvgAmount.Round(2),
		TotalDonors:         totals.UniqueDonors,
	}

	cutoff := now.AddDate(0, 0, -30)
	var recent aggregateRow
	if err := completed().
		Where("created_at >= ?", cutoff).
		Select("COALESCE(SUM(donation_amount), 0) AS total_amount, COUNT(*) AS total_count").
		Scan(&recent).Error; err != nil {
		return nil, err
	}
	stats.RecentDonations = recent.TotalAmount
	stats.RecentDonationsCount = recent.TotalCount

	var active []model.DonationCampaign
	if err := s.DB.WithContext(ctx).
		Where("campaign_shelter_id = ? AND campaign_status = ?", shelterID, model.CampaignActive).
		Find(&active).Error; err != nil {
		return nil, err
	}
	stats.ActiveCampaigns = make([]dto.CampaignResponse, 0, len(active))
	for i := range active {
		stats.ActiveCampaigns = append(stats.ActiveCampaigns,
			dto.ToCampaignResponse(&active[i], &shelter, now))
	}

	var recentDonors []model.Donation
	if err := completed().
		Where("donation_is_anonymous = false AND donation_donor_id IS NOT NULL").
		Order("created_at DESC").
		Limit(10).
		Find(&recentDonors).Error; err != nil {
		return nil, err
	}
	donorResponses, err := s.ShapeDonations(ctx, recentDonors)
	if err != nil {
		return nil, err
	}
	stats.RecentDonors = donorResponses

	return stats, nil
}

// ShapeDonations batch-loads donors and shelters, then shapes the payloads.
func (s *StatisticsService) ShapeDonations(ctx context.Context, donations []model.Donation) ([]dto.DonationResponse, error) {
	donorIDs := make([]uuid.UUID, 0, len(donations))
	shelterIDs := make([]uuid.UUID, 0, len(donations))
	for i := range donations {
		if donations[i].DonationDonorID != nil {
			donorIDs = append(donorIDs, *donations[i].DonationDonorID)
		}
		if donations[i].DonationShelterID != nil {
			shelterIDs = append(shelterIDs, *donations[i].DonationShelterID)
		}
	}

	donors := map[uuid.UUID]*userModel.UserModel{}
	if len(donorIDs) > 0 {
		var users []userModel.UserModel
		if err := s.DB.WithContext(ctx).Where("id IN ?", donorIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for i := range users {
			donors[users[i].ID] = &users[i]
		}
	}

	shelters := map[uuid.UUID]*shelterModel.ShelterModel{}
	if len(shelterIDs) > 0 {
		var rows []shelterModel.ShelterModel
		if err := s.DB.WithContext(ctx).Where("shelter_id IN ?", shelterIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			shelters[rows[i].ShelterID] = &rows[i]
		}
	}

	out := make([]dto.DonationResponse, 0, len(donations))
	for i := range donations {
		var donor *userModel.UserModel
		if donations[i].DonationDonorID != nil {
			donor = donors[*donations[i].DonationDonorID]
		}
		var shelter *shelterModel.ShelterModel
		if donations[i].DonationShelterID != nil {
			shelter = shelters[*donations[i].DonationShelterID]
		}
		out = append(out, dto.ToDonationResponse(&donations[i], donor, shelter))
	}
	return out, nil
}

func (s *StatisticsService) loadCampaignShelters(ctx context.Context, campaigns []model.DonationCampaign) (map[uuid.UUID]*shelterModel.ShelterModel, error) {
	ids := make([]uuid.UUID, 0, len(campaigns))
	for i := range campaigns {
		if campaigns[i].CampaignShelterID != nil {
			ids = append(ids, *campaigns[i].CampaignShelterID)
		}
	}
	out := map[uuid.UUID]*shelterModel.ShelterModel{}
	if len(ids) == 0 {
		return out, nil
	}
	var rows []shelterModel.ShelterModel
	if err := s.DB.WithContext(ctx).Where("shelter_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ShelterID] = &rows[i]
	}
	return out, nil
}

func shelterFor(m map[uuid.UUID]*shelterModel.ShelterModel, id *uuid.UUID) *shelterModel.ShelterModel {
	if id == nil {
		return nil
	}
	return m[*id]
}
