package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

// JWTPrincipalCodec encodes a resolved principal as a signed JWT (HS256) so
// services behind the proxy can verify the resolved identity without
// re-querying the registries. Stateless: no server-side state, no session.
type JWTPrincipalCodec struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// principalClaims defines the JWT claims structure for principals.
type principalClaims struct {
	jwt.RegisteredClaims
	Email         string   `json:"email,omitempty"`
	DisplayName   string   `json:"name,omitempty"`
	InstitutionID string   `json:"institution_id,omitempty"`
	IdPEntityID   string   `json:"idp,omitempty"`
	Authorities   []string `json:"authorities"`
}

// NewJWTPrincipalCodec creates a codec signing with the given secret.
// Tokens expire after lifetime.
func NewJWTPrincipalCodec(secret []byte, lifetime time.Duration) *JWTPrincipalCodec {
	return &JWTPrincipalCodec{
		secret:   secret,
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Encode returns a signed token carrying the principal. The raw attribute
// map is deliberately left out: downstream consumers get the resolved
// identity and authority set, nothing more.
func (c *JWTPrincipalCodec) Encode(principal *domain.Principal) (string, error) {
	if principal == nil || principal.UID == "" {
		return "", errors.New("principal without uid")
	}

	now := c.now()
	claims := principalClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
		Email:         principal.Email,
		DisplayName:   principal.DisplayName,
		InstitutionID: principal.InstitutionID,
		IdPEntityID:   principal.IdPEntityID,
		Authorities:   principal.Authorities.Strings(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies a token and returns the principal it carries.
func (c *JWTPrincipalCodec) Decode(token string) (*domain.Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &principalClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil {
		return nil, ports.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*principalClaims)
	if !ok || !parsed.Valid {
		return nil, ports.ErrTokenInvalid
	}

	tiers := make([]domain.Authority, 0, len(claims.Authorities))
	for _, a := range claims.Authorities {
		tiers = append(tiers, domain.Authority(a))
	}

	return &domain.Principal{
		UID:           claims.Subject,
		Email:         claims.Email,
		DisplayName:   claims.DisplayName,
		InstitutionID: claims.InstitutionID,
		IdPEntityID:   claims.IdPEntityID,
		Authorities:   domain.NewAuthorities(tiers...),
	}, nil
}

// Ensure JWTPrincipalCodec implements ports.PrincipalCodec
var _ ports.PrincipalCodec = (*JWTPrincipalCodec)(nil)
