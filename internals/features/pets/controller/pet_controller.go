package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"adoptme_backend/internals/features/pets/dto"
	"adoptme_backend/internals/features/pets/model"
	shelterModel "adoptme_backend/internals/features/shelters/model"
	helper "adoptme_backend/internals/helpers"
)

var validate = validator.New()

type PetController struct {
	DB *gorm.DB
}

func NewPetController(db *gorm.DB) *PetController {
	return &PetController{DB: db}
}

// CreatePet lists a new pet under one of the caller's shelters.
func (ctrl *PetController) CreatePet(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.PetAdoptionFee.IsNegative() {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Pet creation failed",
			map[string]string{"pet_adoption_fee": "Adoption fee cannot be negative."})
	}

	var shelter shelterModel.ShelterModel
	if err := ctrl.DB.First(&shelter, "shelter_id = ?", req.PetShelterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Shelter not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch shelter")
	}
	if shelter.ShelterOwnerID != ownerID && !helper.IsAdmin(c) {
		return helper.Error(c, fiber.StatusForbidden, "Only the shelter owner can list pets")
	}

	pet := model.PetModel{
		PetShelterID:   req.PetShelterID,
		PetName:        req.PetName,
		PetSpecies:     req.PetSpecies,
		PetBreed:       req.PetBreed,
		PetAge:         req.PetAge,
		PetGender:      defaultString(req.PetGender, "unknown"),
		PetSize:        defaultString(req.PetSize, "medium"),
		PetColor:       req.PetColor,
		PetDescription: req.PetDescription,
		PetAdoptionFee: req.PetAdoptionFee,
		PetAttributes:  req.PetAttributes,
		PetStatus:      model.PetAvailable,
		PetIsActive:    true,
	}

	if err := ctrl.DB.Create(&pet).Error; err != nil {
		log.Println("[ERROR] create pet:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create pet")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pet listed", fiber.Map{
		"pet": dto.ToPetResponse(&pet),
	})
}

// GetPets lists pets with filters.
func (ctrl *PetController) GetPets(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := ctrl.DB.Model(&model.PetModel{}).Where("pet_is_active = true")
	if species := c.Query("species"); species != "" {
		q = q.Where("pet_species = ?", species)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("pet_status = ?", status)
	}
	if shelterID := c.Query("shelter_id"); shelterID != "" {
		id, err := uuid.Parse(shelterID)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid shelter_id")
		}
		q = q.Where("pet_shelter_id = ?", id)
	}
	if minFee := c.Query("min_fee"); minFee != "" {
		if v, err := decimal.NewFromString(minFee); err == nil {
			q = q.Where("pet_adoption_fee >= ?", v)
		}
	}
	if maxFee := c.Query("max_fee"); maxFee != "" {
		if v, err := decimal.NewFromString(maxFee); err == nil {
			q = q.Where("pet_adoption_fee <= ?", v)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count pets")
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "created_at",
		"name":       "pet_name",
		"age":        "pet_age_months",
		"fee":        "pet_adoption_fee",
	}, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Invalid sort")
	}

	var pets []model.PetModel
	if err := q.Order(strings.TrimPrefix(order, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&pets).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch pets")
	}

	out := make([]dto.PetResponse, 0, len(pets))
	for i := range pets {
		out = append(out, dto.ToPetResponse(&pets[i]))
	}

	return helper.Success(c, "Pets retrieved", fiber.Map{
		"pets": out,
		"meta": helper.BuildMeta(total, p),
	})
}

// GetPetByID returns one pet.
func (ctrl *PetController) GetPetByID(c *fiber.Ctx) error {
	petID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid pet id")
	}

	var pet model.PetModel
	if err := ctrl.DB.First(&pet, "pet_id = ?", petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pet not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch pet")
	}

	return helper.Success(c, "Pet retrieved", fiber.Map{
		"pet": dto.ToPetResponse(&pet),
	})
}

// UpdatePetStatus drives the listing status through the transition table.
func (ctrl *PetController) UpdatePetStatus(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	petID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid pet id")
	}

	var req dto.UpdatePetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var pet model.PetModel
	if err := ctrl.DB.First(&pet, "pet_id = ?", petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pet not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch pet")
	}

	var shelter shelterModel.ShelterModel
	if err := ctrl.DB.First(&shelter, "shelter_id = ?", pet.PetShelterID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch shelter")
	}
	if shelter.ShelterOwnerID != ownerID && !helper.IsAdmin(c) {
		return helper.Error(c, fiber.StatusForbidden, "Only the shelter owner can change pet status")
	}

	if !model.CanTransitionStatus(pet.PetStatus, req.Status) {
		return helper.Error(c, fiber.StatusConflict,
			"Illegal status transition from "+pet.PetStatus+" to "+req.Status)
	}

	res := ctrl.DB.Model(&model.PetModel{}).
		Where("pet_id = ? AND pet_status = ?", petID, pet.PetStatus).
		Update("pet_status", req.Status)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update pet status")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusConflict, "Pet status changed concurrently, retry")
	}

	return helper.Success(c, "Pet status updated", fiber.Map{
		"pet_id": petID,
		"status": req.Status,
	})
}

// UpdatePet patches the descriptive listing fields.
func (ctrl *PetController) UpdatePet(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	petID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid pet id")
	}

	var req dto.UpdatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.PetAdoptionFee != nil && req.PetAdoptionFee.IsNegative() {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Pet update failed",
			map[string]string{"pet_adoption_fee": "Adoption fee cannot be negative."})
	}

	var pet model.PetModel
	if err := ctrl.DB.First(&pet, "pet_id = ?", petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pet not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch pet")
	}

	var shelter shelterModel.ShelterModel
	if err := ctrl.DB.First(&shelter, "shelter_id = ?", pet.PetShelterID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch shelter")
	}
	if shelter.ShelterOwnerID != ownerID && !helper.IsAdmin(c) {
		return helper.Error(c, fiber.StatusForbidden, "Only the shelter owner can update this pet")
	}

	updates := map[string]interface{}{}
	if req.PetName != nil {
		updates["pet_name"] = *req.PetName
	}
	if req.PetBreed != nil {
		updates["pet_breed"] = *req.PetBreed
	}
	if req.PetAge != nil {
		updates["pet_age_months"] = *req.PetAge
	}
	if req.PetGender != nil {
		updates["pet_gender"] = *req.PetGender
	}
	if req.PetSize != nil {
		updates["pet_size"] = *req.PetSize
	}
	if req.PetColor != nil {
		updates["pet_color"] = *req.PetColor
	}
	if req.PetDescription != nil {
		updates["pet_description"] = *req.PetDescription
	}
	if req.PetAdoptionFee != nil {
		updates["pet_adoption_fee"] = *req.PetAdoptionFee
	}
	if req.PetAttributes != nil {
		updates["pet_attributes"] = *req.PetAttributes
	}
	if req.PetIsActive != nil {
		updates["pet_is_active"] = *req.PetIsActive
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(&model.PetModel{}).
		Where("pet_id = ?", petID).
		Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update pet")
	}

	if err := ctrl.DB.First(&pet, "pet_id = ?", petID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to reload pet")
	}

	return helper.Success(c, "Pet updated", fiber.Map{
		"pet": dto.ToPetResponse(&pet),
	})
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
