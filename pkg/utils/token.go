package utils

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const verifyPurpose = "email-verify"

var ErrInvalidVerificationLink = errors.New("invalid or expired verification link")

type verifyClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// EmailHash is the {hash} path segment of a verification link.
func EmailHash(email string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

// NewVerificationToken signs an HS256 token bound to the user id.
func NewVerificationToken(secret string, userID uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := verifyClaims{
		Purpose: verifyPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign verification token: %w", err)
	}
	return signed, exp, nil
}

// VerificationURL builds /api/email/verify/{id}/{hash}?token=...
func VerificationURL(baseURL string, userID uuid.UUID, email, token string) string {
	return fmt.Sprintf("%s/api/email/verify/%s/%s?token=%s",
		strings.TrimRight(baseURL, "/"), userID, EmailHash(email), token)
}

// CheckVerificationLink validates the token signature, expiry, subject and email hash.
func CheckVerificationLink(secret string, userID uuid.UUID, email, hash, token string) error {
	var claims verifyClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return ErrInvalidVerificationLink
	}

	if claims.Purpose != verifyPurpose || claims.Subject != userID.String() {
		return ErrInvalidVerificationLink
	}

	if subtle.ConstantTimeCompare([]byte(EmailHash(email)), []byte(strings.ToLower(hash))) != 1 {
		return ErrInvalidVerificationLink
	}

	return nil
}
