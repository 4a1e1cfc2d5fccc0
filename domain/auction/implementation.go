package auction

import (
	"github.com/shopspring/decimal"
	"github.com/auctionhaus/goapi/domain"
)

// implementationV1 is the launch bid policy: the first bid must meet
// the start price, every later bid must strictly exceed the current
// highest after normalization. Equal bids lose, so the earliest
// sufficient bid at a price level wins.
type implementationV1 struct{}

func NewImplementationV1() Implementation {
	return implementationV1{}
}

func (implementationV1) Version() string {
	return "v1"
}

func (implementationV1) ValidateBid(startPrice decimal.Decimal, current *decimal.Decimal, incoming decimal.Decimal) error {
	if current == nil {
		if incoming.LessThan(startPrice) {
			return domain.ErrBidTooLow
		}
		return nil
	}
	if incoming.LessThanOrEqual(*current) {
		return domain.ErrBidTooLow
	}
	return nil
}

// implementationV2 additionally requires each outbid to clear the
// current highest by a minimum increment, in basis points.
type implementationV2 struct {
	minIncrementBps int64
}

func NewImplementationV2(minIncrementBps int64) Implementation {
	return implementationV2{minIncrementBps: minIncrementBps}
}

func (implementationV2) Version() string {
	return "v2"
}

func (im implementationV2) ValidateBid(startPrice decimal.Decimal, current *decimal.Decimal, incoming decimal.Decimal) error {
	if current == nil {
		if incoming.LessThan(startPrice) {
			return domain.ErrBidTooLow
		}
		return nil
	}
	bps := decimal.New(im.minIncrementBps, -4)
	required := current.Mul(decimal.NewFromInt(1).Add(bps))
	if incoming.LessThanOrEqual(*current) || incoming.LessThan(required) {
		return domain.ErrBidTooLow
	}
	return nil
}
