package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ventas/internal/application/auth"
	"github.com/jhoicas/gestion-ventas/internal/application/compras"
	"github.com/jhoicas/gestion-ventas/internal/application/inventario"
	"github.com/jhoicas/gestion-ventas/internal/application/ports"
	"github.com/jhoicas/gestion-ventas/internal/application/usecase"
	"github.com/jhoicas/gestion-ventas/internal/application/ventas"
	"github.com/jhoicas/gestion-ventas/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/gestion-ventas/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-ventas/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/gestion-ventas/internal/interfaces/http"
	"github.com/jhoicas/gestion-ventas/pkg/config"
	"github.com/jhoicas/gestion-ventas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		migrator, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Named("migrate").Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("migrador")
		}
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = migrator.Close()
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de productos: Redis si está configurado, si no en memoria del proceso.
	var productoCache ports.ProductoCache
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		productoCache = cache.NewRedisProductoCache(client, cfg.Redis.TTL, log.Named("cache").Zerolog())
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de productos en Redis")
	} else {
		productoCache = cache.NewMemoryProductoCache(cfg.Redis.TTL)
	}

	clienteRepo := postgres.NewClienteRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	empleadoRepo := postgres.NewEmpleadoRepository(pool)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	productoRepo := cache.NewProductoRepository(postgres.NewProductoRepository(pool), productoCache)
	ventaRepo := postgres.NewVentaRepository(pool)
	compraRepo := postgres.NewCompraRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoComprobanteGenerator(cfg.App.Name)

	authUC := auth.NewAuthUseCase(empleadoRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})

	// Swagger UI: http://localhost:<port>/docs
	if cfg.Swagger.Enabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    cfg.App.Name + " API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ClienteUC:    usecase.NewClienteUseCase(clienteRepo),
		ProveedorUC:  usecase.NewProveedorUseCase(proveedorRepo),
		EmpleadoUC:   usecase.NewEmpleadoUseCase(empleadoRepo),
		CategoriaUC:  usecase.NewCategoriaUseCase(categoriaRepo),
		ProductoUC:   usecase.NewProductoUseCase(productoRepo, categoriaRepo),
		VentasUC:     ventas.NewUseCase(txRunner, ventaRepo, clienteRepo, empleadoRepo, productoRepo, productoCache, pdfGenerator, log),
		ComprasUC:    compras.NewUseCase(txRunner, compraRepo, proveedorRepo, empleadoRepo, productoRepo, productoCache, log),
		InventarioUC: inventario.NewUseCase(txRunner, productoRepo, movimientoRepo, empleadoRepo, productoCache, log),
		JWTSecret:    cfg.JWT.Secret,
		AppName:      cfg.App.Name,
		Log:          log,
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
