package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Calidad-api/internal/application/auth"
	"github.com/jhoicas/Calidad-api/internal/application/quality"
	"github.com/jhoicas/Calidad-api/internal/application/usecase"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	InspectionUC *quality.InspectionUseCase
	View         *quality.GroupedView
	DashboardUC  *quality.DashboardUseCase
	ExportUC     *quality.ExportUseCase
	OrderUC      *usecase.OrderUseCase
	ProductionUC *usecase.ProductionUseCase
	MasterDataUC *usecase.MasterDataUseCase
	DeviceUC     *usecase.DeviceUseCase
	UserUC       *usecase.UserUseCase
	JWTSecret    string
	Location     *time.Location

	// Fotos servidas desde disco (backend local). Vacío = sin ruta estática.
	FilesPrefix string
	FilesDir    string
}

// Router registra las rutas de la API.
//
// Roles: viewer solo consulta; inspector además registra y edita;
// admin además borra grupos, importa, administra usuarios y catálogos.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.FilesPrefix != "" && deps.FilesDir != "" {
		app.Static(deps.FilesPrefix, deps.FilesDir, fiber.Static{ByteRange: true, MaxAge: 3600})
	}

	api := app.Group("/api")

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleInspector, entity.RoleViewer)
	writer := RequireRole(entity.RoleAdmin, entity.RoleInspector)
	admin := RequireRole(entity.RoleAdmin)

	// Auth: login público; el alta de usuarios la hace un admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), anyRole)
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", admin, authHandler.Register)

	// Inspecciones
	inspHandler := NewInspectionHandler(deps.InspectionUC)
	insp := protected.Group("/inspections")
	insp.Get("/drafts", inspHandler.ListDrafts)
	insp.Post("/import", admin, inspHandler.Import)
	insp.Post("/", writer, inspHandler.Create)
	insp.Get("/:id", inspHandler.GetByID)
	insp.Patch("/:id", writer, inspHandler.Update)
	insp.Post("/:id/comments", writer, inspHandler.AddComment)
	insp.Post("/:id/images", writer, inspHandler.UploadImage)
	insp.Delete("/:id/images", writer, inspHandler.RemoveImage)

	// Vista agrupada
	groupHandler := NewGroupHandler(deps.View, deps.InspectionUC, deps.Location)
	groups := protected.Group("/groups")
	groups.Get("/", groupHandler.List)
	groups.Get("/:orderNumber", groupHandler.GetByOrderNumber)
	groups.Post("/:orderNumber/records", writer, groupHandler.AddRecord)
	groups.Delete("/:orderNumber", admin, groupHandler.Delete)

	// Tablero
	dashHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashHandler.GetSummary)
	protected.Post("/dashboard/digest", admin, dashHandler.SendDigest)

	// Exportaciones
	exportHandler := NewExportHandler(deps.ExportUC)
	exports := protected.Group("/exports")
	exports.Get("/groups.xlsx", exportHandler.GroupsSheet)
	exports.Get("/groups/:orderNumber/report.pdf", exportHandler.GroupReport)
	exports.Get("/orders/:orderNumber/label.png", exportHandler.OrderLabel)

	// Órdenes
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := protected.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Post("/", writer, orderHandler.Create)
	orders.Get("/by-number/:orderNumber", orderHandler.GetByNumber)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", writer, orderHandler.Update)

	// Producción
	prodHandler := NewProductionHandler(deps.ProductionUC, deps.Location)
	prod := protected.Group("/production")
	prod.Get("/", prodHandler.List)
	prod.Get("/summary", prodHandler.Summary)
	prod.Post("/", writer, prodHandler.Create)
	prod.Get("/:id", prodHandler.GetByID)
	prod.Delete("/:id", admin, prodHandler.Delete)

	// Catálogos
	mdHandler := NewMasterDataHandler(deps.MasterDataUC)
	protected.Get("/suppliers", mdHandler.ListSuppliers)
	protected.Post("/suppliers", admin, mdHandler.CreateSupplier)
	protected.Put("/suppliers/:id", admin, mdHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", admin, mdHandler.DeleteSupplier)
	protected.Get("/parts", mdHandler.ListParts)
	protected.Post("/parts", admin, mdHandler.CreatePart)
	protected.Put("/parts/:id", admin, mdHandler.UpdatePart)
	protected.Delete("/parts/:id", admin, mdHandler.DeletePart)
	protected.Get("/workers", mdHandler.ListWorkers)
	protected.Post("/workers", admin, mdHandler.CreateWorker)
	protected.Put("/workers/:id", admin, mdHandler.UpdateWorker)
	protected.Delete("/workers/:id", admin, mdHandler.DeleteWorker)

	// Dispositivos push
	devHandler := NewDeviceHandler(deps.DeviceUC)
	protected.Post("/devices", devHandler.Register)
	protected.Delete("/devices/:token", devHandler.Unregister)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", admin)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
}
