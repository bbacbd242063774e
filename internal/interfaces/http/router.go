package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngtrphuong/ioe/internal/application/audit"
	"github.com/ngtrphuong/ioe/internal/application/auth"
	"github.com/ngtrphuong/ioe/internal/application/inventory"
	"github.com/ngtrphuong/ioe/internal/application/member"
	"github.com/ngtrphuong/ioe/internal/application/product"
	"github.com/ngtrphuong/ioe/internal/application/report"
	"github.com/ngtrphuong/ioe/internal/application/sales"
	"github.com/ngtrphuong/ioe/internal/application/transfer"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
	"github.com/ngtrphuong/ioe/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *product.ProductUseCase
	AdjustStock *inventory.AdjustStockUseCase
	CheckUC     *inventory.CheckUseCase
	SaleUC      *sales.SaleUseCase
	MemberUC    *member.MemberUseCase
	TransferUC  *transfer.TransferUseCase
	ReportUC    *report.ReportUseCase
	AuditSvc    *audit.Service

	InventoryRepo   repository.InventoryRepository
	TransactionRepo repository.InventoryTransactionRepository
	MemberRepo      repository.MemberRepository
	Receipts        *pdf.ReceiptGenerator

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; el registro de usuarios lo hace un administrador.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products y categorías (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	categories := protected.Group("/categories")
	categories.Post("/", productHandler.CreateCategory)
	categories.Get("/", productHandler.ListCategories)

	// Consulta de código de barras en servicio externo (protegido)
	protected.Get("/barcodes/:code", productHandler.LookupBarcode)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustStock, deps.InventoryRepo, deps.TransactionRepo)
	invGroup.Post("/adjust", inventoryHandler.Adjust)
	invGroup.Get("/stock/:productId", inventoryHandler.GetStock)
	invGroup.Get("/low-stock", inventoryHandler.ListLowStock)
	invGroup.Get("/transactions", inventoryHandler.ListTransactions)

	// Conteos físicos (protegido; aprobar exige admin o manager)
	checks := protected.Group("/checks")
	checkHandler := NewCheckHandler(deps.CheckUC)
	checks.Post("/", checkHandler.Create)
	checks.Get("/", checkHandler.List)
	checks.Get("/:id", checkHandler.Get)
	checks.Post("/:id/start", checkHandler.Start)
	checks.Post("/:id/items", checkHandler.RecordItem)
	checks.Post("/:id/complete", checkHandler.Complete)
	checks.Post("/:id/approve", RequireRole(entity.RoleAdmin, entity.RoleManager), checkHandler.Approve)
	checks.Post("/:id/cancel", checkHandler.Cancel)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.MemberRepo, deps.Receipts)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.Get)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Post("/:id/items", saleHandler.AddItem)
	salesGroup.Post("/:id/complete", saleHandler.Complete)

	// Members (protegido)
	members := protected.Group("/members")
	memberHandler := NewMemberHandler(deps.MemberUC)
	members.Post("/", memberHandler.Create)
	members.Get("/", memberHandler.Search)
	members.Get("/levels", memberHandler.ListLevels)
	members.Get("/phone/:phone", memberHandler.GetByPhone)
	members.Get("/:id", memberHandler.Get)
	members.Post("/:id/recharge", memberHandler.Recharge)
	members.Post("/:id/points", memberHandler.AdjustPoints)
	members.Get("/:id/transactions", memberHandler.ListTransactions)

	// Importación/exportación CSV (protegido; importar exige admin o manager)
	transferGroup := protected.Group("/transfer")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transferGroup.Post("/products/import",
		RequireRole(entity.RoleAdmin, entity.RoleManager), transferHandler.ImportProducts)
	transferGroup.Get("/products/export", transferHandler.ExportProducts)
	transferGroup.Post("/members/import",
		RequireRole(entity.RoleAdmin, entity.RoleManager), transferHandler.ImportMembers)
	transferGroup.Get("/members/export", transferHandler.ExportMembers)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/sales", reportHandler.SalesSummary)
	reports.Get("/top-products", reportHandler.TopProducts)
	reports.Get("/inventory-value", reportHandler.InventoryValue)

	// Bitácora de operaciones (solo admin)
	auditHandler := NewAuditHandler(deps.AuditSvc)
	protected.Get("/audit/logs", RequireRole(entity.RoleAdmin), auditHandler.List)
}
