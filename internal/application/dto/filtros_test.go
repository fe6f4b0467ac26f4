package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/domain"
)

func TestRangoFechas(t *testing.T) {
	d, h, err := dto.RangoFechas("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), *d)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local), *h)

	d, h, err = dto.RangoFechas("", "")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Nil(t, h)

	_, _, err = dto.RangoFechas("01/03/2026", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = dto.RangoFechas("2026-04-02", "2026-04-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPageRequest_DefaultPage(t *testing.T) {
	p := dto.PageRequest{}
	p.DefaultPage()
	assert.Equal(t, 20, p.Limit)

	p = dto.PageRequest{Limit: 500, Offset: -3}
	p.DefaultPage()
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 0, p.Offset)
}
