// importar carga categorías y productos desde un CSV separado por ';' y
// codificado en ISO-8859-1 (el formato que exportan las hojas de cálculo en español).
//
// Columnas: codigo;nombre;categoria;precio;impuesto;stock_minimo
// La primera fila es encabezado. Las categorías que no existen se crean; los
// productos con código ya registrado se omiten.
//
// Uso: go run ./cmd/importar productos.csv
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/gestion-ventas/internal/application/usecase"
	"github.com/jhoicas/gestion-ventas/internal/infrastructure/postgres"
	"github.com/jhoicas/gestion-ventas/pkg/config"
	"github.com/jhoicas/gestion-ventas/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: importar archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "importar"})

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoriaRepo := postgres.NewCategoriaRepository(pool)
	imp := &importador{
		categoriaRepo: categoriaRepo,
		categorias:    usecase.NewCategoriaUseCase(categoriaRepo),
		productos:     usecase.NewProductoUseCase(postgres.NewProductoRepository(pool), categoriaRepo),
		log:           log,
	}
	res, err := imp.Importar(ctx, f)
	if err != nil {
		log.Fatal().Err(err).Msg("importación")
	}
	log.Info().
		Int("categorias_creadas", res.CategoriasCreadas).
		Int("productos_creados", res.ProductosCreados).
		Int("omitidos", res.Omitidos).
		Int("errores", len(res.Errores)).
		Msg("importación terminada")
}
