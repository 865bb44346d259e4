package utils

import (
	"errors"
	"time"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// StaffClaims are the JWT claims of a staff session. The casino and role are bound into the
// token at login so that tenancy always comes from the session.
type StaffClaims struct {
	CasinoID string           `json:"casino_id"`
	Role     domain.StaffRole `json:"role"`
	jwt.RegisteredClaims
}

// Actor returns the actor the claims describe.
func (c StaffClaims) Actor() domain.Actor {
	return domain.Actor{StaffID: c.Subject, CasinoID: c.CasinoID, Role: c.Role}
}

// GenerateJWT generates a signed session token for staff.
func GenerateJWT(staff domain.Staff, secret string, expiryDuration time.Duration, issuer string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(expiryDuration)
	claims := StaffClaims{
		CasinoID: staff.CasinoID,
		Role:     staff.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   staff.StaffID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	return signed, expiresAt, err
}

// ParseAndValidateJWT parses a token string, validates its signature and standard claims
// and checks that the casino and role claims are present.
func ParseAndValidateJWT(tokenString string, secretKey string) (*StaffClaims, error) {
	claims := &StaffClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" || claims.CasinoID == "" || !claims.Role.Valid() {
		return nil, errors.New("token is missing staff claims")
	}
	return claims, nil
}
