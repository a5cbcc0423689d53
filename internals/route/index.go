package route

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"adoptme_backend/internals/constants"
	database "adoptme_backend/internals/databases"
	contactRoutes "adoptme_backend/internals/features/contact/routes"
	donationController "adoptme_backend/internals/features/donations/controller"
	donationRoutes "adoptme_backend/internals/features/donations/routes"
	petRoutes "adoptme_backend/internals/features/pets/routes"
	shelterRoutes "adoptme_backend/internals/features/shelters/routes"
	userRoutes "adoptme_backend/internals/features/users/routes"
	"adoptme_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes mounts every feature under three surfaces:
//
//	/api    public, optional auth — identity bound when a token is present
//	/api/u  authenticated users
//	/api/a  admins
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	baseRoutes(app)

	log.Println("[INFO] Setting up auth routes...")
	authGroup := app.Group("/api/auth")
	userRoutes.AuthRoutes(authGroup, db)

	// ===== public (optional auth) =====
	log.Println("[INFO] Setting up public routes...")
	public := app.Group("/api", auth.OptionalAuthMiddleware())
	shelterRoutes.PublicShelterRoutes(public.Group("/shelters"), db)
	petRoutes.PublicPetRoutes(public.Group("/pets"), db)
	donationRoutes.PublicDonationRoutes(public.Group("/donations"), db)
	contactRoutes.PublicContactRoutes(public.Group("/contact"), db)

	// per-shelter statistics sit on the shelter surface
	statsCtrl := donationController.NewStatsController(db)
	public.Get("/shelters/:id/donations/stats", statsCtrl.GetShelterDonationStats)

	// ===== authenticated =====
	log.Println("[INFO] Setting up user routes...")
	user := app.Group("/api/u", auth.AuthMiddleware())
	userRoutes.UserRoutes(user, db)
	shelterRoutes.UserShelterRoutes(user.Group("/shelters"), db)
	petRoutes.UserPetRoutes(user.Group("/pets"), db)
	donationRoutes.UserDonationRoutes(user.Group("/donations"), db)

	// ===== admin =====
	log.Println("[INFO] Setting up admin routes...")
	admin := app.Group("/api/a", auth.AuthMiddleware(), auth.RequireRoles(constants.RoleAdmin))
	shelterRoutes.AdminShelterRoutes(admin.Group("/shelters"), db)
	donationRoutes.AdminDonationRoutes(admin.Group("/donations"), db)
	contactRoutes.AdminContactRoutes(admin.Group("/contact"), db)
}

func baseRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := database.DB.DB()
		dbStatus := "connected"
		serverStatus := "ok"
		httpStatus := fiber.StatusOK

		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "database connection error"
			serverStatus = "down"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().UTC().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})
}
