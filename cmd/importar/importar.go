package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/application/usecase"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
	"github.com/jhoicas/gestion-ventas/pkg/logger"
)

const columnas = 6

// resumen resultado de una importación.
type resumen struct {
	CategoriasCreadas int
	ProductosCreados  int
	Omitidos          int
	Errores           []string // "línea N: detalle"
}

type importador struct {
	categoriaRepo repository.CategoriaRepository
	categorias    *usecase.CategoriaUseCase
	productos     *usecase.ProductoUseCase
	log           *logger.Logger
}

// Importar lee el CSV completo. Una fila inválida se reporta y no detiene el resto.
func (imp *importador) Importar(ctx context.Context, r io.Reader) (*resumen, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	res := &resumen{}
	cache := map[string]string{} // nombre de categoría en minúsculas -> id
	linea := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("leer CSV: %w", err)
		}
		linea++
		if linea == 1 {
			continue
		}
		if err := imp.fila(ctx, row, cache, res); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				res.Omitidos++
				continue
			}
			res.Errores = append(res.Errores, fmt.Sprintf("línea %d: %v", linea, err))
			imp.log.Warn().Int("linea", linea).Err(err).Msg("fila omitida")
		}
	}
	return res, nil
}

func (imp *importador) fila(ctx context.Context, row []string, cache map[string]string, res *resumen) error {
	if len(row) < columnas {
		return fmt.Errorf("%w: se esperaban %d columnas, hay %d", domain.ErrInvalidInput, columnas, len(row))
	}
	precio, err := numero(row[3])
	if err != nil {
		return fmt.Errorf("precio: %w", err)
	}
	impuesto, err := numero(row[4])
	if err != nil {
		return fmt.Errorf("impuesto: %w", err)
	}
	minimo, err := numero(row[5])
	if err != nil {
		return fmt.Errorf("stock_minimo: %w", err)
	}
	categoriaID, err := imp.categoria(ctx, row[2], cache, res)
	if err != nil {
		return err
	}
	if _, err := imp.productos.Create(ctx, dto.CreateProductoRequest{
		CategoriaID:  categoriaID,
		Codigo:       row[0],
		Nombre:       row[1],
		PrecioVenta:  precio,
		TasaImpuesto: impuesto,
		StockMinimo:  minimo,
	}); err != nil {
		return err
	}
	res.ProductosCreados++
	return nil
}

// categoria busca la categoría por nombre y la crea si no existe.
func (imp *importador) categoria(ctx context.Context, nombre string, cache map[string]string, res *resumen) (string, error) {
	nombre = strings.TrimSpace(nombre)
	key := strings.ToLower(nombre)
	if id, ok := cache[key]; ok {
		return id, nil
	}
	existing, err := imp.categoriaRepo.GetByNombre(ctx, nombre)
	if err != nil {
		return "", err
	}
	if existing != nil {
		cache[key] = existing.ID
		return existing.ID, nil
	}
	out, err := imp.categorias.Create(ctx, dto.CreateCategoriaRequest{Nombre: nombre})
	if err != nil {
		return "", err
	}
	res.CategoriasCreadas++
	cache[key] = out.ID
	return out.ID, nil
}

// numero acepta coma decimal ("19,5") y vacío como cero.
func numero(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: número %q", domain.ErrInvalidInput, s)
	}
	return d, nil
}
