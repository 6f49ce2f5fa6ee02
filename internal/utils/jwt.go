// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned by [ValidateJWTToken] when the token's exp
// claim has passed.
var ErrTokenExpired = errors.New("token is expired")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT with iss, sub, iat
// and exp claims. All parameters are required; an error is returned when
// any of them is empty or zero.
func GenerateJWTToken(issuer, subject string, tokenDuration time.Duration, signKey string) (string, time.Time, error) {
	if issuer == "" || subject == "" || tokenDuration == 0 || signKey == "" {
		return "", time.Time{}, errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	expiresAt := now.Add(tokenDuration)
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateJWTToken verifies the signature, issuer and expiry of the
// token string and returns its subject claim. Expired tokens yield
// [ErrTokenExpired]; any other validation failure is wrapped.
func ValidateJWTToken(tokenString, signKey, issuer string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("error occurred validating token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred getting subject from token: %w", err)
	}
	if subject == "" {
		return "", errors.New("empty subject error")
	}

	return subject, nil
}
