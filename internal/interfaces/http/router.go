package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/auth"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/ledger"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/usecase"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	StoreUC    *usecase.StoreUseCase
	UserUC     *usecase.UserUseCase
	ItemUC     *usecase.ItemUseCase
	OutgoingUC *ledger.OutgoingUseCase
	ReportUC   *usecase.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
//
// RBAC por grupo: tiendas, usuarios, reportes y auditoría son de
// admin_global; la escritura de artículos es de partner_admin o superior; la
// lectura de artículos y la salida rápida las tiene cualquier autenticado
// (el filtro por tienda asignada lo aplica la capa de aplicación).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdminGlobal)
	partnerUp := RequireRole(entity.RolePartnerAdmin, entity.RoleAdminGlobal)

	// Auth (login público; el resto requiere token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/change-password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stores (solo admin_global)
	stores := protected.Group("/stores", adminOnly)
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", storeHandler.Update)
	stores.Delete("/:id", storeHandler.Delete)

	// Users (solo admin_global)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Get("/:id/stores", userHandler.ListStores)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Items (lectura: cualquier autenticado; escritura: partner_admin+;
	// eliminación: admin_global)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/transfer", partnerUp, itemHandler.Transfer)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", partnerUp, itemHandler.Create)
	items.Put("/:id", partnerUp, itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Delete)
	items.Post("/:id/adjust", partnerUp, itemHandler.Adjust)

	// Transactions (salida rápida: cualquier autenticado; listado: partner_admin+)
	transactions := protected.Group("/transactions")
	txHandler := NewTransactionHandler(deps.OutgoingUC, deps.ReportUC)
	transactions.Post("/outgoing", txHandler.RegisterOutgoing)
	transactions.Get("/", partnerUp, txHandler.List)
	transactions.Get("/:ticket", partnerUp, txHandler.GetByTicket)

	// Reports y auditoría (solo admin_global); dashboard: cualquier autenticado
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports", adminOnly)
	reports.Get("/inventory", reportHandler.InventoryReport)
	reports.Get("/transactions", reportHandler.TransactionReport)
	protected.Get("/security-logs", adminOnly, reportHandler.SecurityLogs)
	protected.Get("/dashboard", reportHandler.Dashboard)
}
