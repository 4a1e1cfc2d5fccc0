package chainlink

import (
	"math/big"

	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/domain"
)

type Chainlink interface {
	GetLatestAnswer(c ctx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (*big.Int, error)
	GetDecimals(c ctx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (uint8, error)
}
