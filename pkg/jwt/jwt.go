package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la identidad de quien cuenta y envía.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"` // se registra como responsable de la solicitud
	RestaurantID string `json:"restaurant_id"`
	Role         string `json:"role"` // "admin" | "encargado" | "cocinero"
}

// Identity datos del usuario autenticado.
type Identity struct {
	UserID       string
	UserName     string
	RestaurantID string
	Role         string
}

// Generate genera un token JWT firmado con la identidad indicada.
func Generate(secret, issuer string, id Identity, expMinutes int) (string, error) {
	if secret == "" {
		return "", errors.New("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:       id.UserID,
		UserName:     id.UserName,
		RestaurantID: id.RestaurantID,
		Role:         id.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma, expiración y emisor (si issuer no es vacío) y devuelve la identidad.
func Parse(secret, issuer, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, errors.New("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return Identity{}, errors.New("claims inválidos")
	}
	return Identity{
		UserID:       claims.UserID,
		UserName:     claims.UserName,
		RestaurantID: claims.RestaurantID,
		Role:         claims.Role,
	}, nil
}
