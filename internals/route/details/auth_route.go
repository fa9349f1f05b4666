package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "school_backend/internals/features/users/auth/controller"
	"school_backend/internals/middlewares"
	authMw "school_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	public := app.Group("/api/auth")
	public.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	public.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	public.Post("/refresh-token", ctrl.RefreshToken)

	private := app.Group("/api/auth", authMw.AuthMiddleware(db))
	private.Post("/logout", ctrl.Logout)
	private.Get("/me", ctrl.Me)
	private.Post("/change-password", ctrl.ChangePassword)
}
