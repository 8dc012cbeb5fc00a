package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	"github.com/PeteLJ/PetHeaven/pkg/domain"
	dErrors "github.com/PeteLJ/PetHeaven/pkg/domain-errors"
)

const (
	roleUser  = "user"
	roleStaff = "staff"
)

// Claims carried by a session token. Name and email ride along so ownership
// matching never needs a store lookup on the hot path.
type Claims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// TokenIssuer signs and validates session tokens with a shared HMAC key.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenIssuer(key string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{key: []byte(key), ttl: ttl, now: time.Now}
}

// NewTokenIssuerAt pins the clock, for expiry tests.
func NewTokenIssuerAt(key string, ttl time.Duration, now func() time.Time) *TokenIssuer {
	return &TokenIssuer{key: []byte(key), ttl: ttl, now: now}
}

// Issue signs a token for an authenticated principal. Anonymous principals
// have no token.
func (t *TokenIssuer) Issue(p Principal) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	switch v := p.(type) {
	case UserPrincipal:
		claims.Role = roleUser
		claims.Subject = v.Account.ID.String()
		claims.Name = v.Account.Name
		claims.Email = v.Account.Email
	case StaffPrincipal:
		claims.Role = roleStaff
		claims.Subject = v.Username
	default:
		return "", dErrors.New(dErrors.CodeInternal, "cannot issue a token for an anonymous principal")
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// ValidateToken parses a signed token back into a principal. Invalid,
// expired, or differently-signed tokens all fail closed.
func (t *TokenIssuer) ValidateToken(tokenString string) (Principal, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.Newf(dErrors.CodeUnauthorized, "unexpected signing method %v", token.Header["alg"])
		}
		return t.key, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")
	}

	switch claims.Role {
	case roleStaff:
		return StaffPrincipal{Username: claims.Subject}, nil
	case roleUser:
		id, err := domain.ParseUserID(claims.Subject)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "malformed token subject")
		}
		return UserPrincipal{Account: models.UserAccount{
			ID:    id,
			Name:  claims.Name,
			Email: claims.Email,
		}}, nil
	}
	return nil, dErrors.New(dErrors.CodeUnauthorized, "unknown token role")
}
