package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"adoptme_backend/internals/configs"
	"adoptme_backend/internals/constants"
	"adoptme_backend/internals/features/users/dto"
	"adoptme_backend/internals/features/users/model"
	helper "adoptme_backend/internals/helpers"
)

var validate = validator.New()

const accessTTL = 24 * time.Hour

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	fieldErrs := map[string]string{}
	if err := validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				fieldErrs[fe.Field()] = fe.Tag()
			}
		}
	}
	if req.Password != "" && req.Password != req.PasswordConfirm {
		fieldErrs["password_confirm"] = "Passwords do not match."
	}
	if len(fieldErrs) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Registration failed", fieldErrs)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	role := constants.RoleUser
	if req.IsShelter {
		role = constants.RoleShelter
	}

	user := model.UserModel{
		UserName:    req.UserName,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    string(hashed),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Role:        role,
		IsShelter:   req.IsShelter,
		IsActive:    true,
	}

	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return helper.Error(c, fiber.StatusConflict, "Email or username already registered")
		}
		log.Println("[ERROR] register:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registration successful", fiber.Map{
		"user": dto.ToUserResponse(&user),
	})
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := db.Where("email = ? AND is_active = true", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := issueAccessToken(user)
	if err != nil {
		log.Println("[ERROR] sign token:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create access token")
	}

	setAuthCookie(c, token)

	return helper.Success(c, "Login successful", fiber.Map{
		"user":         dto.ToUserResponse(&user),
		"access_token": token,
	})
}

func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
	})
	return helper.Success(c, "Logout successful", nil)
}

func issueAccessToken(user model.UserModel) (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("missing JWT secret")
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":   user.ID.String(),
		"user_name": user.UserName,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(accessTTL),
	})
}
