package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-pro/internal/application/reports"
	"github.com/tu-usuario/farmacia-pro/internal/application/sales"
	"github.com/tu-usuario/farmacia-pro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MedicineUC  *usecase.MedicineUseCase
	CustomerUC  *usecase.CustomerUseCase
	CartUC      *sales.CartUseCase
	CommitUC    *sales.CommitSaleUseCase
	SaleQueryUC *sales.SaleQueryUseCase
	ReceiptUC   *sales.ReceiptUseCase
	ReportUC    *reports.ReportUseCase
	DashboardUC *reports.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Medicines (protegido)
	medicines := protected.Group("/medicines")
	medicineHandler := NewMedicineHandler(deps.MedicineUC)
	medicines.Post("/", medicineHandler.Create)
	medicines.Get("/", medicineHandler.List)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Put("/:id", medicineHandler.Update)
	medicines.Delete("/:id", medicineHandler.Delete)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Cart (protegido)
	cartGroup := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Cancel)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Delete("/items/:medicineId", cartHandler.RemoveItem)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CommitUC, deps.SaleQueryUC, deps.ReceiptUC)
	salesGroup.Post("/", saleHandler.Commit)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.DownloadReceipt)

	// Reports + dashboard (protegido)
	reportHandler := NewReportHandler(deps.ReportUC, deps.DashboardUC)
	protected.Get("/reports", reportHandler.GetReport)
	protected.Get("/dashboard", reportHandler.GetDashboard)
}
