package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/gestion-ventas/internal/domain"
)

const layoutFecha = "2006-01-02"

// RangoFechas convierte desde/hasta (2006-01-02) en un rango semiabierto [desde, hasta+1d).
// Cadenas vacías dan nil.
func RangoFechas(desde, hasta string) (*time.Time, *time.Time, error) {
	var d, h *time.Time
	if desde != "" {
		t, err := time.ParseInLocation(layoutFecha, desde, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: desde %q", domain.ErrInvalidInput, desde)
		}
		d = &t
	}
	if hasta != "" {
		t, err := time.ParseInLocation(layoutFecha, hasta, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: hasta %q", domain.ErrInvalidInput, hasta)
		}
		t = t.AddDate(0, 0, 1)
		h = &t
	}
	if d != nil && h != nil && !d.Before(*h) {
		return nil, nil, fmt.Errorf("%w: rango de fechas vacío", domain.ErrInvalidInput)
	}
	return d, h, nil
}
