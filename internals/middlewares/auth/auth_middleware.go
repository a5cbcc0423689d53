package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"adoptme_backend/internals/configs"
)

// AuthMiddleware requires a valid bearer token and binds user_id/role
// into the request locals.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		claims, err := parseAndVerify(tokenString)
		if err != nil {
			log.Println("[ERROR] token verification failed:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid token")
		}
		bindClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuthMiddleware binds the identity when a token is present but lets
// anonymous requests through. Used for donation create and public listings.
func OptionalAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return c.Next()
		}
		claims, err := parseAndVerify(tokenString)
		if err != nil {
			// a token was supplied but is bad: reject rather than silently downgrade
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid token")
		}
		bindClaims(c, claims)
		return c.Next()
	}
}

// RequireRoles gates a route group on the role claim.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden - insufficient role")
		}
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", errors.New("Unauthorized - malformed Authorization header")
		}
		return parts[1], nil
	}
	if cookie := c.Cookies("access_token"); cookie != "" {
		return cookie, nil
	}
	return "", errors.New("Unauthorized - missing token")
}

func parseAndVerify(tokenString string) (jwt.MapClaims, error) {
	secretKey := configs.JWTSecret
	if secretKey == "" {
		return nil, errors.New("missing JWT secret")
	}

	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	}); err != nil {
		return nil, err
	}

	if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
		return nil, err
	}
	return claims, nil
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("invalid exp claim")
	}
	exp := time.Unix(int64(expFloat), 0)
	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func bindClaims(c *fiber.Ctx, claims jwt.MapClaims) {
	if userID, ok := claims["user_id"].(string); ok {
		c.Locals("user_id", userID)
	}
	if role, ok := claims["role"].(string); ok {
		c.Locals("role", role)
	}
}
