package ports

import (
	"errors"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
)

// PrincipalCodec encodes a resolved principal into a verifiable token for
// propagation to downstream services, and decodes it back. Stateless: the
// engine keeps no sessions.
type PrincipalCodec interface {
	// Encode returns a signed token carrying the principal.
	Encode(principal *domain.Principal) (string, error)

	// Decode verifies a token and returns the principal it carries.
	// Returns ErrTokenInvalid for expired, tampered or malformed tokens.
	Decode(token string) (*domain.Principal, error)
}

// ErrTokenInvalid is returned when a principal token cannot be verified.
var ErrTokenInvalid = errors.New("principal token invalid")
