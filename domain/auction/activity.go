package auction

import (
	"time"

	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/domain"
)

type ActivityType string

const (
	ActivityTypeCreated ActivityType = "created"
	ActivityTypeBid     ActivityType = "bid"
	ActivityTypeSettled ActivityType = "settled"
)

// Activity is an append-only record of auction events: creation,
// accepted bids and settlement.
type Activity struct {
	AuctionId AuctionId       `bson:"auctionId"`
	Type      ActivityType    `bson:"type"`
	Account   domain.Address  `bson:"account"`
	Amount    string          `bson:"amount,omitempty"`
	Currency  domain.Currency `bson:"currency,omitempty"`
	Time      time.Time       `bson:"time"`
}

type ActivityRepo interface {
	Insert(ctx.Ctx, *Activity) error
	FindByAuction(c ctx.Ctx, id AuctionId, offset, limit int) ([]*Activity, error)
}
