package main

import (
	"log"
	"strings"

	"cafe-backend/internal/audit"
	"cafe-backend/internal/auth"
	"cafe-backend/internal/catalog"
	"cafe-backend/internal/config"
	"cafe-backend/internal/database"
	"cafe-backend/internal/mirror"
	"cafe-backend/internal/models"
	"cafe-backend/internal/orders"
	"cafe-backend/internal/waste"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	orderStore := orders.NewStore()
	wasteStore := waste.NewStore(database.DB)
	mir := mirror.New(cfg.MirrorDir, cfg.MirrorRemote)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-manager", auth.RegisterManagerHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Supply catalog
	protected.Get("/catalog", catalog.ListItemsHandler())
	protected.Post("/catalog", catalog.CreateItemHandler(mir))

	// Pending restock order
	protected.Post("/order/items", orders.AddLineHandler(orderStore))
	protected.Delete("/order/items/:sku", orders.RemoveLineHandler(orderStore))
	protected.Get("/order/summary", orders.SummaryHandler(orderStore))
	protected.Get("/order/email", orders.EmailHandler(orderStore))

	// Daily waste log + weekly reporting
	protected.Get("/waste/days/:date", waste.GetDayHandler(wasteStore))
	protected.Put("/waste/days/:date", waste.SaveDayHandler(wasteStore, mir))
	protected.Get("/waste/prices", waste.ListPricesHandler(wasteStore))
	protected.Get("/waste/weekly-summary", waste.WeeklySummaryHandler(wasteStore))
	protected.Get("/waste/weekly-report", waste.WeeklyReportHandler(wasteStore))

	// Manager-only writes
	managerRoutes := protected.Group("")
	managerRoutes.Use(auth.RequireRole(models.RoleManager))

	managerRoutes.Put("/catalog/:id", catalog.UpdateItemHandler(mir))
	managerRoutes.Delete("/catalog/:id", catalog.DeleteItemHandler(mir))
	managerRoutes.Post("/catalog/import", catalog.ImportItemsHandler(mir))
	managerRoutes.Put("/waste/prices", waste.ReplacePricesHandler(wasteStore, mir))
	managerRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
