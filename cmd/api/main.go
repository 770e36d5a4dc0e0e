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
	"github.com/tu-usuario/metromart-pos/internal/application/analytics"
	"github.com/tu-usuario/metromart-pos/internal/application/returns"
	"github.com/tu-usuario/metromart-pos/internal/application/sales"
	"github.com/tu-usuario/metromart-pos/internal/application/supply"
	"github.com/tu-usuario/metromart-pos/internal/application/usecase"
	infrapdf "github.com/tu-usuario/metromart-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/metromart-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/metromart-pos/internal/interfaces/http"
	"github.com/tu-usuario/metromart-pos/pkg/config"
	"github.com/tu-usuario/metromart-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	supplyOrderRepo := postgres.NewSupplyOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	createSaleUC := sales.NewCreateSaleUseCase(txRunner)
	invoiceReaderUC := sales.NewInvoiceReaderUseCase(invoiceRepo, pdfGenerator)
	returnsUC := returns.NewUseCase(txRunner, returnRepo)
	supplyUC := supply.NewUseCase(txRunner, supplyOrderRepo, supplierRepo)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)
	departmentUC := usecase.NewDepartmentUseCase(departmentRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MetroMart POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateSale:    createSaleUC,
		InvoiceReader: invoiceReaderUC,
		ReturnsUC:     returnsUC,
		SupplyUC:      supplyUC,
		DashboardUC:   dashboardUC,
		ProductUC:     productUC,
		CustomerUC:    customerUC,
		EmployeeUC:    employeeUC,
		DepartmentUC:  departmentUC,
		SupplierUC:    supplierUC,
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
