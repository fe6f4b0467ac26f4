package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/gestion-ventas/internal/application/auth"
	"github.com/jhoicas/gestion-ventas/internal/application/compras"
	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/application/inventario"
	"github.com/jhoicas/gestion-ventas/internal/application/usecase"
	"github.com/jhoicas/gestion-ventas/internal/application/ventas"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ClienteUC    *usecase.ClienteUseCase
	ProveedorUC  *usecase.ProveedorUseCase
	EmpleadoUC   *usecase.EmpleadoUseCase
	CategoriaUC  *usecase.CategoriaUseCase
	ProductoUC   *usecase.ProductoUseCase
	VentasUC     *ventas.UseCase
	ComprasUC    *compras.UseCase
	InventarioUC *inventario.UseCase
	JWTSecret    string
	AppName      string
	Log          *logger.Logger
}

// ErrorHandler respuesta JSON para errores que no pasaron por writeError (404 de ruta, panics).
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "INTERNAL"
	msg := "error interno"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		code = "HTTP_ERROR"
		msg = fe.Message
	} else {
		c.Locals(LocalError, err)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app.Use(RequestLogger(log.Named("http")))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token). Toda lectura es para cualquier rol.
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	admin := RequireRole(entity.RolAdmin)
	ventasRol := RequireRole(entity.RolAdmin, entity.RolVendedor)
	bodegaRol := RequireRole(entity.RolAdmin, entity.RolBodeguero)

	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Post("/", ventasRol, clienteHandler.Create)
	clientes.Put("/:id", ventasRol, clienteHandler.Update)
	clientes.Delete("/:id", admin, clienteHandler.Delete)

	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Get("/:id", proveedorHandler.GetByID)
	proveedores.Post("/", bodegaRol, proveedorHandler.Create)
	proveedores.Put("/:id", bodegaRol, proveedorHandler.Update)
	proveedores.Delete("/:id", admin, proveedorHandler.Delete)

	// Empleados: solo admin
	empleados := protected.Group("/empleados", admin)
	empleadoHandler := NewEmpleadoHandler(deps.EmpleadoUC)
	empleados.Get("/", empleadoHandler.List)
	empleados.Get("/:id", empleadoHandler.GetByID)
	empleados.Post("/", empleadoHandler.Create)
	empleados.Put("/:id", empleadoHandler.Update)
	empleados.Delete("/:id", empleadoHandler.Delete)

	categorias := protected.Group("/categorias")
	categoriaHandler := NewCategoriaHandler(deps.CategoriaUC)
	categorias.Get("/", categoriaHandler.List)
	categorias.Get("/:id", categoriaHandler.GetByID)
	categorias.Post("/", bodegaRol, categoriaHandler.Create)
	categorias.Put("/:id", bodegaRol, categoriaHandler.Update)
	categorias.Delete("/:id", admin, categoriaHandler.Delete)

	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Get("/", productoHandler.List)
	productos.Get("/bajo-stock", productoHandler.ListBajoStock)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Post("/", bodegaRol, productoHandler.Create)
	productos.Put("/:id", bodegaRol, productoHandler.Update)
	productos.Delete("/:id", admin, productoHandler.Delete)

	ventasGroup := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentasUC)
	ventasGroup.Get("/", ventaHandler.List)
	ventasGroup.Get("/:id", ventaHandler.GetByID)
	ventasGroup.Get("/:id/comprobante", ventaHandler.Comprobante)
	ventasGroup.Post("/", ventasRol, ventaHandler.Create)
	ventasGroup.Post("/:id/anular", admin, ventaHandler.Anular)

	comprasGroup := protected.Group("/compras")
	compraHandler := NewCompraHandler(deps.ComprasUC)
	comprasGroup.Get("/", compraHandler.List)
	comprasGroup.Get("/:id", compraHandler.GetByID)
	comprasGroup.Post("/", bodegaRol, compraHandler.Create)
	comprasGroup.Post("/:id/recibir", bodegaRol, compraHandler.Recibir)
	comprasGroup.Post("/:id/anular", admin, compraHandler.Anular)

	inv := protected.Group("/inventario")
	inventarioHandler := NewInventarioHandler(deps.InventarioUC)
	inv.Post("/ajustes", bodegaRol, inventarioHandler.Ajustar)
	inv.Get("/kardex/:productoId", inventarioHandler.Kardex)
}
