package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"adoptme_backend/internals/features/users/dto"
	"adoptme_backend/internals/features/users/model"
	"adoptme_backend/internals/features/users/service"
	helper "adoptme_backend/internals/helpers"
)

var validate = validator.New()

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func (ctrl *UserController) Register(c *fiber.Ctx) error {
	return service.Register(ctrl.DB, c)
}

func (ctrl *UserController) Login(c *fiber.Ctx) error {
	return service.Login(ctrl.DB, c)
}

func (ctrl *UserController) Logout(c *fiber.Ctx) error {
	return service.Logout(c)
}

// Me returns the authenticated user's profile.
func (ctrl *UserController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	return helper.Success(c, "Profile retrieved", fiber.Map{
		"user": dto.ToUserResponse(&user),
	})
}

// UpdateProfile patches the mutable profile fields.
func (ctrl *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(&model.UserModel{}).
		Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	return helper.Success(c, "Profile updated", fiber.Map{
		"user": dto.ToUserResponse(&user),
	})
}
