package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ekspresi/itm-sub002/internal/application/auth"
	"github.com/ekspresi/itm-sub002/internal/application/census"
	"github.com/ekspresi/itm-sub002/internal/application/report"
	"github.com/ekspresi/itm-sub002/internal/application/usecase"
	"github.com/ekspresi/itm-sub002/internal/application/workflow"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	LocationUC   *usecase.LocationUseCase
	MasterItemUC *usecase.MasterItemUseCase
	DashboardUC  *usecase.DashboardUseCase
	RegistryUC   *census.RegistryUseCase
	LineItemUC   *census.LineItemUseCase
	Aggregator   *census.Aggregator
	ReportUC     *report.UseCase
	Workflow     *workflow.Controller
	JWTSecret    string
}

// AppConfig configuración de fiber para el servidor de la API.
// Immutable: los valores de Params/Get/Body no se reciclan entre peticiones,
// así los ids que llegan a los repositorios siguen siendo válidos después de responder.
func AppConfig(name string) fiber.Config {
	return fiber.Config{
		AppName:      name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleStaff)

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), anyRole)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/register", adminOnly, authHandler.Register)

	// Users (admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Patch("/:id/status", userHandler.SetStatus)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)

	// Locations
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", locationHandler.Create)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", adminOnly, locationHandler.Delete)

	// Master items
	items := protected.Group("/master-items")
	itemHandler := NewMasterItemHandler(deps.MasterItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Censuses (las rutas fijas van antes de /:id)
	censuses := protected.Group("/censuses")
	censusHandler := NewCensusHandler(deps.RegistryUC, deps.Aggregator)
	lineHandler := NewLineItemHandler(deps.LineItemUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	censuses.Get("/", censusHandler.List)
	censuses.Post("/", censusHandler.Create)
	censuses.Get("/years", censusHandler.Years)
	censuses.Get("/available-locations", censusHandler.AvailableLocations)
	censuses.Get("/:id", censusHandler.GetByID)
	censuses.Patch("/:id", censusHandler.Update)
	censuses.Delete("/:id", adminOnly, censusHandler.Delete)
	censuses.Post("/:id/close", censusHandler.Close)
	censuses.Post("/:id/recompute", censusHandler.Recompute)

	censuses.Get("/:id/items", lineHandler.List)
	censuses.Post("/:id/items", lineHandler.Create)
	censuses.Put("/:id/items/:itemId", lineHandler.Update)
	censuses.Delete("/:id/items/:itemId", lineHandler.Delete)
	censuses.Get("/:id/suggestions", lineHandler.Suggestions)
	censuses.Post("/:id/suggestions/:masterItemId", lineHandler.AddSuggested)

	censuses.Get("/:id/report", reportHandler.Census)
	censuses.Get("/:id/report/pdf", reportHandler.CensusPDF)

	// Reports
	reports := protected.Group("/reports")
	reports.Get("/yearly/:year", reportHandler.Yearly)
	reports.Get("/yearly/:year/pdf", reportHandler.YearlyPDF)

	// Workflow
	workflowHandler := NewWorkflowHandler(deps.Workflow)
	protected.Post("/workflow/navigate", workflowHandler.Navigate)
}
