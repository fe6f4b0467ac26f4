package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-ventas/pkg/jwt"
)

const secret = "secreto-de-pruebas"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, exp, err := jwt.Generate(secret, "emp-1", "vendedor", "gestion-ventas", 30)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	id, rol, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", id)
	assert.Equal(t, "vendedor", rol)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, _, err := jwt.Generate(secret, "emp-1", "admin", "gestion-ventas", 30)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, _, err := jwt.Generate(secret, "emp-1", "admin", "gestion-ventas", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, _, err := jwt.Generate("", "emp-1", "admin", "x", 10)
	assert.ErrorIs(t, err, jwt.ErrSecretVacio)

	_, _, err = jwt.Parse("", "a.b.c")
	assert.ErrorIs(t, err, jwt.ErrSecretVacio)
}
