package api

import (
	_ "github.com/SundayYogurt/onboarding_service/docs" // registers doc.json
	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// RegisterSwagger serves the UI and doc.json under /swagger. Host is left
// empty so the UI calls whichever host served it.
func RegisterSwagger(app *fiber.App) {
	app.Get("/swagger/*", fiberSwagger.WrapHandler)
}
