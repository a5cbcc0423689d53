package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"adoptme_backend/internals/features/donations/dto"
	"adoptme_backend/internals/features/donations/model"
	"adoptme_backend/internals/features/donations/service"
	shelterModel "adoptme_backend/internals/features/shelters/model"
	helper "adoptme_backend/internals/helpers"
)

type CampaignController struct {
	DB    *gorm.DB
	Stats *service.StatisticsService
}

func NewCampaignController(db *gorm.DB) *CampaignController {
	return &CampaignController{
		DB:    db,
		Stats: service.NewStatisticsService(db),
	}
}

// CreateCampaign opens a new fundraising campaign in draft. Shelter
// campaigns require owning the shelter; platform-wide campaigns are
// admin only.
func (ctrl *CampaignController) CreateCampaign(c *fiber.Ctx) error {
	creatorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs := service.ValidateCampaignCreate(&req); fieldErrs != nil {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", fieldErrs)
	}

	if req.ShelterID != nil {
		var shelter shelterModel.ShelterModel
		if err := ctrl.DB.First(&shelter, "shelter_id = ?", *req.ShelterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.Error(c, fiber.StatusNotFound, "Shelter not found")
			}
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch shelter")
		}
		if shelter.ShelterOwnerID != creatorID && !helper.IsAdmin(c) {
			return helper.Error(c, fiber.StatusForbidden, "Only the shelter owner can create campaigns for this shelter")
		}
	} else if !helper.IsAdmin(c) {
		return helper.Error(c, fiber.StatusForbidden, "Only admins can create platform-wide campaigns")
	}

	allowAnonymous := true
	if req.AllowAnonymous != nil {
		allowAnonymous = *req.AllowAnonymous
	}

	campaign := model.DonationCampaign{
		CampaignTitle:            req.Title,
		CampaignDescription:      req.Description,
		CampaignShortDescription: req.ShortDescription,
		CampaignShelterID:        req.ShelterID,
		CampaignTargetAmount:     req.TargetAmount,
		CampaignStartDate:        req.StartDate,
		CampaignEndDate:          req.EndDate,
		CampaignStatus:           model.CampaignDraft,
		CampaignAllowAnonymous:   allowAnonymous,
		CampaignCreatedBy:        creatorID,
	}

	if err := ctrl.DB.Create(&campaign).Error; err != nil {
		log.Println("[ERROR] create campaign:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create campaign")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Campaign created", fiber.Map{
		"campaign": dto.ToCampaignResponse(&campaign, nil, time.Now().UTC()),
	})
}

// GetCampaigns lists campaigns with simple filters.
func (ctrl *CampaignController) GetCampaigns(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	now := time.Now().UTC()

	q := ctrl.DB.Model(&model.DonationCampaign{})
	if status := c.Query("status"); status != "" {
		q = q.Where("campaign_status = ?", status)
	} else if !helper.IsAdmin(c) {
		// drafts are never public
		q = q.Where("campaign_status <> ?", model.CampaignDraft)
	}
	if c.Query("featured") == "true" {
		q = q.Where("campaign_is_featured = true")
	}
	if sid := c.Query("shelter_id"); sid != "" {
		shelterID, err := uuid.Parse(sid)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid shelter_id")
		}
		q = q.Where("campaign_shelter_id = ?", shelterID)
	}
	if c.Query("platform_only") == "true" {
		q = q.Where("campaign_shelter_id IS NULL")
	}
	if c.Query("active_only") == "true" {
		q = q.Where("campaign_status = ? AND campaign_start_date <= ? AND campaign_end_date >= ?",
			model.CampaignActive, now, now)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count campaigns")
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at":     "created_at",
		"end_date":       "campaign_end_date",
		"current_amount": "campaign_current_amount",
	}, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Invalid sort")
	}

	var campaigns []model.DonationCampaign
	if err := q.Order(strings.TrimPrefix(order, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&campaigns).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch campaigns")
	}

	shelters, err := ctrl.loadShelters(campaigns)
	if err != nil {
		log.Println("[ERROR] load campaign shelters:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch campaigns")
	}

	out := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		var shelter *shelterModel.ShelterModel
		if campaigns[i].CampaignShelterID != nil {
			shelter = shelters[*campaigns[i].CampaignShelterID]
		}
		out = append(out, dto.ToCampaignResponse(&campaigns[i], shelter, now))
	}

	return helper.Success(c, "Campaigns retrieved", fiber.Map{
		"campaigns": out,
		"meta":      helper.BuildMeta(total, p),
	})
}

// GetCampaignByID returns one campaign with its computed progress figures.
func (ctrl *CampaignController) GetCampaignByID(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid campaign id")
	}

	var campaign model.DonationCampaign
	if err := ctrl.DB.First(&campaign, "campaign_id = ?", campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Campaign not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch campaign")
	}
	if campaign.CampaignStatus == model.CampaignDraft && !helper.IsAdmin(c) {
		requesterID, err := helper.GetUserIDIfAny(c)
		if err != nil {
			return err
		}
		if requesterID == nil || *requesterID != campaign.CampaignCreatedBy {
			return helper.Error(c, fiber.StatusNotFound, "Campaign not found")
		}
	}

	var shelter *shelterModel.ShelterModel
	if campaign.CampaignShelterID != nil {
		var s shelterModel.ShelterModel
		if err := ctrl.DB.First(&s, "shelter_id = ?", *campaign.CampaignShelterID).Error; err == nil {
			shelter = &s
		}
	}

	return helper.Success(c, "Campaign retrieved", fiber.Map{
		"campaign": dto.ToCampaignResponse(&campaign, shelter, time.Now().UTC()),
	})
}

// UpdateCampaign patches campaign fields; only the creator or an admin may
// do so. Status moves through UpdateCampaignStatus, never here.
func (ctrl *CampaignController) UpdateCampaign(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid campaign id")
	}

	var req dto.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var campaign model.DonationCampaign
	if err := ctrl.DB.First(&campaign, "campaign_id = ?", campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Campaign not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch campaign")
	}
	if campaign.CampaignCreatedBy != requesterID && !helper.IsAdmin(c) {
		return helper.Error(c, fiber.StatusForbidden, "Only the campaign creator can update this campaign")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["campaign_title"] = *req.Title
	}
	if req.Description != nil {
		updates["campaign_description"] = *req.Description
	}
	if req.ShortDescription != nil {
		updates["campaign_short_description"] = *req.ShortDescription
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() || req.TargetAmount.GreaterThan(service.MaxTargetAmount) {
			return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed",
				map[string]string{"target_amount": "must be positive and at most 1000000.00"})
		}
		updates["campaign_target_amount"] = *req.TargetAmount
	}
	startDate := campaign.CampaignStartDate
	endDate := campaign.CampaignEndDate
	if req.StartDate != nil {
		startDate = *req.StartDate
		updates["campaign_start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		endDate = *req.EndDate
		updates["campaign_end_date"] = *req.EndDate
	}
	if !startDate.Before(endDate) {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed",
			map[string]string{"end_date": "must be after start_date"})
	}
	if req.AllowAnonymous != nil {
		updates["campaign_allow_anonymous"] = *req.AllowAnonymous
	}
	if req.IsFeatured != nil {
		if !helper.IsAdmin(c) {
			return helper.Error(c, fiber.StatusForbidden, "Only admins can feature campaigns")
		}
		updates["campaign_is_featured"] = *req.IsFeatured
	}

	if len(updates) > 0 {
		if err := ctrl.DB.Model(&campaign).Updates(updates).Error; err != nil {
			log.Println("[ERROR] update campaign:", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to update campaign")
		}
	}

	return helper.Success(c, "Campaign updated", fiber.Map{
		"campaign": dto.ToCampaignResponse(&campaign, nil, time.Now().UTC()),
	})
}

// UpdateCampaignStatus moves a campaign along the status table. The update is
// conditional on the status the caller saw, so concurrent moves cannot both
// win.
func (ctrl *CampaignController) UpdateCampaignStatus(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid campaign id")
	}

	var req dto.UpdateCampaignStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var campaign model.DonationCampaign
	if err := ctrl.DB.First(&campaign, "campaign_id = ?", campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Campaign not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch campaign")
	}
	if campaign.CampaignCreatedBy != requesterID && !helper.IsAdmin(c) {
		return helper.Error(c, fiber.StatusForbidden, "Only the campaign creator can change this campaign's status")
	}

	if !model.CanTransitionCampaign(campaign.CampaignStatus, req.Status) {
		return helper.Error(c, fiber.StatusConflict,
			"Cannot move campaign from "+campaign.CampaignStatus+" to "+req.Status)
	}

	res := ctrl.DB.Model(&model.DonationCampaign{}).
		Where("campaign_id = ? AND campaign_status = ?", campaignID, campaign.CampaignStatus).
		Update("campaign_status", req.Status)
	if res.Error != nil {
		log.Println("[ERROR] update campaign status:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update campaign status")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusConflict, "Campaign status changed concurrently, retry")
	}

	campaign.CampaignStatus = req.Status
	return helper.Success(c, "Campaign status updated", fiber.Map{
		"campaign": dto.ToCampaignResponse(&campaign, nil, time.Now().UTC()),
	})
}

// RecomputeCampaign forces a snapshot refresh. Admin maintenance endpoint;
// the result is identical no matter how many times it runs.
func (ctrl *CampaignController) RecomputeCampaign(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid campaign id")
	}

	campaign, err := ctrl.Stats.RecomputeByID(c.UserContext(), campaignID)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Campaign not found")
		}
		log.Println("[ERROR] recompute campaign:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to recompute campaign")
	}

	return helper.Success(c, "Campaign statistics recomputed", fiber.Map{
		"campaign": dto.ToCampaignResponse(campaign, nil, time.Now().UTC()),
	})
}

func (ctrl *CampaignController) loadShelters(campaigns []model.DonationCampaign) (map[uuid.UUID]*shelterModel.ShelterModel, error) {
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
	if err := ctrl.DB.Where("shelter_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ShelterID] = &rows[i]
	}
	return out, nil
}
