package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/estoque-api/internal/application/analytics"
	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/export"
	"github.com/jhoicas/estoque-api/internal/application/importer"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/infrastructure/database"
	"github.com/jhoicas/estoque-api/internal/infrastructure/fetch"
	infrapdf "github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	infraxlsx "github.com/jhoicas/estoque-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, closeDB, err := database.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer closeDB()

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador por defecto")
	}
	if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("administrador por defecto creado")
	}

	userUC := usecase.NewUserUseCase(repos.Users)
	categoryUC := usecase.NewCategoryUseCase(repos.Categories, repos.Products)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Movements)
	registerMovementUC := inventory.NewRegisterMovementUseCase(repos.Tx, repos.Movements)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.Products, repos.Sales)

	fetcher := fetch.NewHTTPFetcher(cfg.Import.FetchTimeout, cfg.Import.MaxBytes)
	importUC := importer.NewImportUseCase(repos.Tx, repos.StagedImports, repos.ImportLogs, fetcher, cfg.Import.MaxBytes, log)

	// XLSX y PDF: exportaciones del catálogo
	exportUC := export.NewExportUseCase(repos, infraxlsx.NewExcelizeWorkbook(), infrapdf.NewMarotoStockReport(cfg.App.Name))

	bodyLimit := cfg.HTTP.BodyLimitMB * 1024 * 1024
	if bodyLimit <= 0 {
		bodyLimit = fiber.DefaultBodyLimit
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    bodyLimit,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.SwaggerFile != "" {
		if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.App.SwaggerFile,
				Path:     "docs",
				Title:    "Estoque API",
			}))
		} else {
			log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger no montado: archivo inexistente")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           userUC,
		CategoryUC:       categoryUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		DashboardUC:      dashboardUC,
		ImportUC:         importUC,
		ExportUC:         exportUC,
		Logger:           log,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
