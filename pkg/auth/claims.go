package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kestrelgear/dealerdesk-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT. The
// identity provider owns credential checks; this service only consumes the
// resulting claims.
type AccessTokenPayload struct {
	Subject   uuid.UUID
	AccountID *uuid.UUID
	TierID    string
	Currency  string
	Role      enums.ActorRole
}

// AccessTokenClaims represents the typed JWT presented by portal callers.
// AccountID and Currency are the ground truth the order commit relies on.
type AccessTokenClaims struct {
	AccountID *uuid.UUID      `json:"account_id,omitempty"`
	TierID    string          `json:"tier_id,omitempty"`
	Currency  string          `json:"currency,omitempty"`
	Role      enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
