package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConCamposFijos(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "gestion-ventas", Out: &buf})

	l.Named("ventas").Info().Str("numero", "V-000001").Msg("venta registrada")

	var linea map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &linea))
	assert.Equal(t, "gestion-ventas", linea["service"])
	assert.Equal(t, "ventas", linea["component"])
	assert.Equal(t, "V-000001", linea["numero"])
	assert.Equal(t, "venta registrada", linea["message"])
}

func TestNew_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí sale")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("desconocido"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel(" error "))
}
