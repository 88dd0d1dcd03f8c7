package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/inbound"
	"github.com/tu-usuario/almacen-api/internal/application/outbound"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/excel"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InboundUC   *inbound.UseCase
	OutboundUC  *outbound.UseCase
	StockUC     *usecase.StockUseCase
	ItemUC      *usecase.ItemUseCase
	MenuUC      *usecase.MenuUseCase
	CodeUC      *usecase.CodeUseCase
	UserUC      *usecase.UserUseCase
	AuditUC     *usecase.AuditUseCase
	DashboardUC *usecase.DashboardUseCase
	Exporter    *excel.Exporter
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Entradas (protegido)
	inboundGroup := protected.Group("/inbound")
	inboundHandler := NewInboundHandler(deps.InboundUC)
	inboundGroup.Post("/save", inboundHandler.Save)
	inboundGroup.Get("/", inboundHandler.Search)
	inboundGroup.Get("/item/:code", inboundHandler.ListByItem)
	inboundGroup.Get("/date/:date", inboundHandler.ListByDate)

	// Salidas e historial (protegido)
	outboundHandler := NewOutboundHandler(deps.OutboundUC)
	outboundGroup := protected.Group("/outbound")
	outboundGroup.Post("/save", outboundHandler.Save)
	outboundGroup.Get("/", outboundHandler.List)
	movements := protected.Group("/movements")
	movements.Get("/", outboundHandler.History)
	movements.Get("/lot/:lot_id", outboundHandler.ListByLot)

	// Estado de stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/balance", stockHandler.Balances)
	stockGroup.Get("/status", stockHandler.Status)
	stockGroup.Get("/low", stockHandler.LowStock)
	stockGroup.Get("/expiring", stockHandler.Expiring)
	stockGroup.Get("/items/:code", stockHandler.ItemHistory)

	// Maestro de artículos (protegido; mutaciones solo admin)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/save", adminOnly, itemHandler.Save)
	items.Get("/", itemHandler.List)
	items.Get("/:code", itemHandler.GetByCode)

	// Menús (árbol para todos; mantenimiento solo admin)
	menus := protected.Group("/menus")
	menuHandler := NewMenuHandler(deps.MenuUC)
	menus.Get("/tree", menuHandler.Tree)
	menus.Get("/", adminOnly, menuHandler.List)
	menus.Post("/", adminOnly, menuHandler.Create)
	menus.Put("/:id", adminOnly, menuHandler.Update)
	menus.Delete("/:id", adminOnly, menuHandler.Delete)

	// Códigos comunes (lectura para todos; mantenimiento solo admin)
	codes := protected.Group("/codes")
	codeHandler := NewCodeHandler(deps.CodeUC)
	codes.Post("/groups/save", adminOnly, codeHandler.SaveGroups)
	codes.Get("/groups", codeHandler.ListGroups)
	codes.Get("/groups/:grp_code", codeHandler.GetGroup)
	codes.Post("/details/save", adminOnly, codeHandler.SaveDetails)
	codes.Get("/details", codeHandler.ListDetails)
	codes.Get("/details/:grp_code/:code", codeHandler.GetDetail)
	codes.Get("/details/:grp_code", codeHandler.ListDetailsByGroup)

	// Usuarios (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/pending", userHandler.ListPending)
	users.Post("/approve", userHandler.Approve)

	// Auditoría (solo admin)
	auditGroup := protected.Group("/audit", adminOnly)
	auditHandler := NewAuditHandler(deps.AuditUC)
	auditGroup.Get("/", auditHandler.List)
	auditGroup.Get("/:table/:record_id", auditHandler.ListByRecord)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)

	// Exportación a Excel (protegido)
	export := protected.Group("/export")
	exportHandler := NewExportHandler(deps.StockUC, deps.OutboundUC, deps.Exporter)
	export.Get("/status", exportHandler.Status)
	export.Get("/movements", exportHandler.Movements)
}
