package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/auctionhaus/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"` // name data for backward compatibility
	jwt.StandardClaims
}

type AuthUsecase interface {
	// GetNonce issues a short lived nonce the caller must sign to prove
	// key ownership.
	GetNonce(ctx ctx.Ctx, address Address) (string, error)

	// SignToken verifies the signature over the nonce message and issues
	// an access token. Fails with ErrInvalidSignature on mismatch.
	SignToken(ctx ctx.Ctx, address Address, signature string) (string, error)

	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
}
