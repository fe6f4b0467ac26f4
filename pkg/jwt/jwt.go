package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrSecretVacio se retorna al firmar o validar sin secreto configurado.
var ErrSecretVacio = errors.New("jwt: secret vacío")

// Claims incluye los claims estándar JWT más el empleado autenticado y su rol,
// para que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	EmpleadoID string `json:"empleado_id"`
	Rol        string `json:"rol"` // "admin" | "vendedor" | "bodeguero"
}

// Generate genera un token HS256 firmado para el empleado.
func Generate(secret, empleadoID, rol, issuer string, expMinutes int) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrSecretVacio
	}
	now := time.Now()
	exp := now.Add(time.Duration(expMinutes) * time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   empleadoID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		EmpleadoID: empleadoID,
		Rol:        rol,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse valida el token y devuelve empleadoID y rol.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (empleadoID, rol string, err error) {
	if secret == "" {
		return "", "", ErrSecretVacio
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.EmpleadoID == "" {
		return "", "", fmt.Errorf("claims inválidos")
	}
	return claims.EmpleadoID, claims.Rol, nil
}
