package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// GenerateAccessToken membuat JWT HS256 dengan claim sub (user id) dan role.
func GenerateAccessToken(secret string, userID uuid.UUID, role string, expiryHours int) (string, time.Time, error) {
	exp := time.Now().UTC().Add(time.Duration(expiryHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, exp, nil
}

// ParseAccessToken memvalidasi token dan mengembalikan user ID + role.
func ParseAccessToken(secret, raw string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, "", ErrInvalidToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	return userID, role, nil
}
