// Package server wires repositories, services and handlers into a fiber app.
package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"go-inventory-qr/internal/handler"
	"go-inventory-qr/internal/middleware"
	"go-inventory-qr/internal/repository"
	"go-inventory-qr/internal/service"
	"go-inventory-qr/internal/ws"
	"go-inventory-qr/pkg/config"
	"go-inventory-qr/pkg/jwt"
	"go-inventory-qr/pkg/logger"
	"go-inventory-qr/pkg/metrics"
	"go-inventory-qr/pkg/qr"
	"go-inventory-qr/pkg/storage"
)

// Deps are the long-lived resources built by the caller.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Logger   *logger.Logger
	Disk     storage.Disk
	Hub      *ws.Hub
	Registry *prometheus.Registry
}

// Server is the assembled application.
type Server struct {
	App       *fiber.App
	Bootstrap service.BootstrapService
}

func New(d Deps) (*Server, error) {
	cfg := d.Config
	logg := d.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	var events service.EventPublisher
	if d.Hub != nil {
		events = d.Hub
	}
	var inventoryMetrics *metrics.InventoryMetrics
	if d.Registry != nil {
		inventoryMetrics = metrics.NewInventoryMetrics(d.Registry)
	}

	provisioner, err := qr.NewProvisioner(cfg.QR, d.Disk, inventoryMetrics)
	if err != nil {
		return nil, fmt.Errorf("qr provisioner: %w", err)
	}
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration())

	// Dependency Injection (Wiring Layers)
	materialRepo := repository.NewMaterialRepo(d.DB)
	categoryRepo := repository.NewCategoryRepo(d.DB)
	userRepo := repository.NewUserRepo(d.DB)

	materialService := service.NewMaterialService(materialRepo, categoryRepo, provisioner, events, inventoryMetrics, logg)
	categoryService := service.NewCategoryService(categoryRepo, materialRepo, d.DB, events, inventoryMetrics, logg)
	authService := service.NewAuthService(userRepo, tokens, logg)
	adminService := service.NewAdminService(userRepo, logg)
	bootstrapService := service.NewBootstrapService(categoryRepo, userRepo, cfg.Bootstrap, logg)

	materialHandler := handler.NewMaterialHandler(materialService, cfg.Storage, logg)
	categoryHandler := handler.NewCategoryHandler(categoryService, logg)
	authHandler := handler.NewAuthHandler(authService, cfg.Auth, logg)
	adminHandler := handler.NewAdminHandler(adminService, logg)
	healthHandler := handler.NewHealthHandler(d.DB)
	gate := middleware.NewAuth(authService, cfg.Auth, logg)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	// Middleware
	app.Use(fiberlogger.New(fiberlogger.Config{Output: logg.Writer()}))
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/healthz", healthHandler.Health)
	if d.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}
	if cfg.Storage.IsLocal() && cfg.Storage.PublicPath != "" {
		if local, ok := d.Disk.(*storage.LocalDisk); ok {
			app.Static(cfg.Storage.PublicPath, local.Root(), fiber.Static{Browse: false})
		}
	}

	api := app.Group("/api/v1")

	// ============ AUTH ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", gate.Optional(), authHandler.Logout)
	auth.Get("/me", gate.RequireAuth(), authHandler.Me)

	// ============ INVENTORY ROUTES ============
	// Gated by INVENTORY_AUTH_REQUIRED.
	materials := api.Group("/materials", gate.Inventory())
	materials.Get("", materialHandler.GetMaterials)
	materials.Post("", materialHandler.CreateMaterial)
	materials.Get("/:id", materialHandler.GetMaterial)
	materials.Put("/:id", materialHandler.UpdateMaterial)
	materials.Post("/:id", materialHandler.UpdateMaterial)
	materials.Delete("/:id", materialHandler.DeleteMaterial)
	materials.Get("/:id/qr", materialHandler.GetQRCode)
	materials.Post("/:id/qr", materialHandler.RegenerateQRCode)

	categories := api.Group("/categories", gate.Inventory())
	categories.Get("", categoryHandler.GetCategories)
	categories.Post("", categoryHandler.CreateCategory)
	categories.Delete("/:id", categoryHandler.DeleteCategory)

	// ============ ADMIN ROUTES ============
	admin := api.Group("/admin", gate.RequireAuth(), gate.RequireAdmin())
	admin.Get("/pending", adminHandler.GetPending)
	admin.Post("/users/:id/approve", adminHandler.Approve)
	admin.Post("/users/:id/reject", adminHandler.Reject)

	// WebSocket Route
	if d.Hub != nil {
		app.Use("/ws", gate.Inventory(), ws.Upgrade)
		app.Get("/ws", ws.Handler(d.Hub))
	}

	return &Server{App: app, Bootstrap: bootstrapService}, nil
}
