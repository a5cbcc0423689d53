package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"adoptme_backend/internals/features/shelters/dto"
	"adoptme_backend/internals/features/shelters/model"
	helper "adoptme_backend/internals/helpers"
)

var validate = validator.New()

type ShelterController struct {
	DB *gorm.DB
}

func NewShelterController(db *gorm.DB) *ShelterController {
	return &ShelterController{DB: db}
}

// CreateShelter registers a new shelter profile owned by the caller.
// Verification starts at pending; an admin flips it later.
func (ctrl *ShelterController) CreateShelter(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateShelterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	slug, err := helper.GenerateUniqueSlug(ctrl.DB, helper.SlugOptions{
		Table:       "shelters",
		SlugColumn:  "shelter_slug",
		DefaultBase: "shelter",
	}, req.ShelterName)
	if err != nil {
		log.Println("[ERROR] shelter slug:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to generate shelter slug")
	}

	country := req.ShelterCountry
	if country == "" {
		country = "USA"
	}

	shelter := model.ShelterModel{
		ShelterOwnerID:            ownerID,
		ShelterName:               req.ShelterName,
		ShelterSlug:               slug,
		ShelterDescription:        req.ShelterDescription,
		ShelterEmail:              req.ShelterEmail,
		ShelterPhone:              req.ShelterPhone,
		ShelterAddress:            req.ShelterAddress,
		ShelterCity:               req.ShelterCity,
		ShelterCountry:            country,
		ShelterSocialLinks:        req.ShelterSocialLinks,
		ShelterVerificationStatus: model.VerificationPending,
		ShelterIsActive:           true,
		ShelterAcceptsDonations:   true,
	}

	if err := ctrl.DB.Create(&shelter).Error; err != nil {
		log.Println("[ERROR] create shelter:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create shelter")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Shelter created", fiber.Map{
		"shelter": dto.ToShelterResponse(&shelter),
	})
}

// GetShelters lists shelters with simple filters.
func (ctrl *ShelterController) GetShelters(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := ctrl.DB.Model(&model.ShelterModel{})
	if vs := c.Query("verification_status"); vs != "" {
		q = q.Where("shelter_verification_status = ?", vs)
	}
	if c.Query("active_only") == "true" {
		q = q.Where("shelter_is_active = true")
	}
	if city := c.Query("city"); city != "" {
		q = q.Where("lower(shelter_city) = lower(?)", city)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count shelters")
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "created_at",
		"name":       "shelter_name",
	}, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Invalid sort")
	}

	var shelters []model.ShelterModel
	if err := q.Order(strings.TrimPrefix(order, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&shelters).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch shelters")
	}

	out := make([]dto.ShelterResponse, 0, len(shelters))
	for i := range shelters {
		out = append(out, dto.ToShelterResponse(&shelters[i]))
	}

	return helper.Success(c, "Shelters retrieved", fiber.Map{
		"shelters": out,
		"meta":     helper.BuildMeta(total, p),
	})
}

// GetShelterByID returns one shelter.
func (ctrl *ShelterController) GetShelterByID(c *fiber.Ctx) error {
	shelterID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid shelter id")
	}

	var shelter model.ShelterModel
	if err := ctrl.DB.First(&shelter, "shelter_id = ?", shelterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Shelter not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch shelter")
	}

	return helper.Success(c, "Shelter retrieved", fiber.Map{
		"shelter": dto.ToShelterResponse(&shelter),
	})
}

// UpdateShelter patches a shelter; only its owner may do so.
func (ctrl *ShelterController) UpdateShelter(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	shelterID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid shelter id")
	}

	var req dto.UpdateShelterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var shelter model.ShelterModel
	if err := ctrl.DB.First(&shelter, "shelter_id = ?", shelterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Shelter not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch shelter")
	}
	if shelter.ShelterOwnerID != ownerID && !helper.IsAdmin(c) {
		return helper.Error(c, fiber.StatusForbidden, "Only the shelter owner can update this shelter")
	}

	updates := map[string]interface{}{}
	if req.ShelterName != nil {
		updates["shelter_name"] = *req.ShelterName
	}
	if req.ShelterDescription != nil {
		updates["shelter_description"] = *req.ShelterDescription
	}
	if req.ShelterEmail != nil {
		updates["shelter_email"] = *req.ShelterEmail
	}
	if req.ShelterPhone != nil {
		updates["shelter_phone"] = *req.ShelterPhone
	}
	if req.ShelterAddress != nil {
		updates["shelter_address"] = *req.ShelterAddress
	}
	if req.ShelterCity != nil {
		updates["shelter_city"] = *req.ShelterCity
	}
	if req.ShelterCountry != nil {
		updates["shelter_country"] = *req.ShelterCountry
	}
	if req.ShelterSocialLinks != nil {
		updates["shelter_social_links"] = *req.ShelterSocialLinks
	}
	if req.ShelterIsActive != nil {
		updates["shelter_is_active"] = *req.ShelterIsActive
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(&model.ShelterModel{}).
		Where("shelter_id = ?", shelterID).
		Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update shelter")
	}

	if err := ctrl.DB.First(&shelter, "shelter_id = ?", shelterID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to reload shelter")
	}

	return helper.Success(c, "Shelter updated", fiber.Map{
		"shelter": dto.ToShelterResponse(&shelter),
	})
}

// SetVerificationStatus moves a shelter through the verification table (admin).
func (ctrl *ShelterController) SetVerificationStatus(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	shelterID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid shelter id")
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=pending verified rejected"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var shelter model.ShelterModel
	if err := ctrl.DB.First(&shelter, "shelter_id = ?", shelterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Shelter not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch shelter")
	}

	if !model.CanTransitionVerification(shelter.ShelterVerificationStatus, req.Status) {
		return helper.Error(c, fiber.StatusConflict,
			"Illegal verification transition from "+shelter.ShelterVerificationStatus+" to "+req.Status)
	}

	updates := map[string]interface{}{
		"shelter_verification_status": req.Status,
	}
	if req.Status == model.VerificationVerified {
		now := time.Now().UTC()
		updates["shelter_verified_at"] = now
		updates["shelter_verified_by"] = adminID
	}

	// guard against a concurrent admin racing the same shelter
	res := ctrl.DB.Model(&model.ShelterModel{}).
		Where("shelter_id = ? AND shelter_verification_status = ?", shelterID, shelter.ShelterVerificationStatus).
		Updates(updates)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update verification status")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusConflict, "Verification status changed concurrently, retry")
	}

	return helper.Success(c, "Verification status updated", fiber.Map{
		"shelter_id": shelterID,
		"status":     req.Status,
	})
}
