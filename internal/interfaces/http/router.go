package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/estoque-api/internal/application/analytics"
	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/export"
	"github.com/jhoicas/estoque-api/internal/application/importer"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	CategoryUC       *usecase.CategoryUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	ImportUC         *importer.ImportUseCase
	ExportUC         *export.ExportUseCase
	Logger           *logger.Logger
	JWTSecret        string
}

// Router registra las rutas de la API.
// Todo /api acepta sesión anónima salvo /auth/me y /users; un token presente pero inválido es 401.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", OptionalAuth(deps.JWTSecret), RequestLogger(log))

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Users (solo admin)
	users := api.Group("/users", AuthMiddleware(deps.JWTSecret), RequireRole(deps.AuthUC, entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Movements
	movements := api.Group("/movements")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	movements.Get("/", inventoryHandler.List)
	movements.Post("/", inventoryHandler.RegisterMovement)

	// Sales + dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/sales", dashboardHandler.Sales)
	api.Get("/dashboard/stock-by-category", dashboardHandler.StockByCategory)

	// Imports
	imports := api.Group("/imports")
	importHandler := NewImportHandler(deps.ImportUC)
	imports.Post("/upload", importHandler.Upload)
	imports.Post("/url", importHandler.FromURL)
	imports.Post("/payload", importHandler.FromPayload)
	imports.Get("/staged", importHandler.ListStaged)
	imports.Post("/staged/discard", importHandler.Discard)
	imports.Get("/staged/export", importHandler.ExportStaged)
	imports.Post("/reconcile", importHandler.Reconcile)
	imports.Get("/history", importHandler.History)
	imports.Get("/history/export", importHandler.ExportLog)

	// Export
	exports := api.Group("/export")
	exportHandler := NewExportHandler(deps.ExportUC)
	exports.Get("/catalog", exportHandler.Catalog)
	exports.Get("/xlsx", exportHandler.Workbook)
	exports.Get("/stock-report", exportHandler.StockReport)
}
