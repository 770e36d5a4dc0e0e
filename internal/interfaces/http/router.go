package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/metromart-pos/internal/application/analytics"
	"github.com/tu-usuario/metromart-pos/internal/application/returns"
	"github.com/tu-usuario/metromart-pos/internal/application/sales"
	"github.com/tu-usuario/metromart-pos/internal/application/supply"
	"github.com/tu-usuario/metromart-pos/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateSale    *sales.CreateSaleUseCase
	InvoiceReader *sales.InvoiceReaderUseCase
	ReturnsUC     *returns.UseCase
	SupplyUC      *supply.UseCase
	DashboardUC   *analytics.DashboardUseCase
	ProductUC     *usecase.ProductUseCase
	CustomerUC    *usecase.CustomerUseCase
	EmployeeUC    *usecase.EmployeeUseCase
	DepartmentUC  *usecase.DepartmentUseCase
	SupplierUC    *usecase.SupplierUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sales
	salesGroup := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.CreateSale, deps.InvoiceReader)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/export.csv", salesHandler.ExportCSV)
	salesGroup.Get("/:num", salesHandler.GetByNum)
	salesGroup.Get("/:num/pdf", salesHandler.GetPDF)

	// Returns
	returnsGroup := api.Group("/returns")
	returnsHandler := NewReturnsHandler(deps.ReturnsUC)
	returnsGroup.Post("/", returnsHandler.Create)
	returnsGroup.Get("/", returnsHandler.List)
	returnsGroup.Get("/:id", returnsHandler.GetByID)

	// Supply orders
	supplyGroup := api.Group("/supply-orders")
	supplyHandler := NewSupplyHandler(deps.SupplyUC)
	supplyGroup.Post("/", supplyHandler.Create)
	supplyGroup.Get("/:num", supplyHandler.GetByNum)
	supplyGroup.Post("/:num/receive", supplyHandler.Receive)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.Get)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:code", productHandler.GetByCode)
	products.Put("/:code", productHandler.Update)
	products.Delete("/:code", productHandler.Deactivate)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Employees
	employees := api.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Deactivate)

	// Departments
	departments := api.Group("/departments")
	departmentHandler := NewDepartmentHandler(deps.DepartmentUC)
	departments.Post("/", departmentHandler.Create)
	departments.Get("/", departmentHandler.List)
	departments.Get("/:id", departmentHandler.GetByID)
	departments.Put("/:id", departmentHandler.Update)
	departments.Delete("/:id", departmentHandler.Delete)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Deactivate)
}
