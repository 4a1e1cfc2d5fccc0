package auction

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/domain"
)

type AuctionId string

func (i AuctionId) String() string {
	return string(i)
}

type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusEnded   Status = "ended"
)

// Auction is one asset listed for sale. Bidding state is owned by this
// entity alone; no two auctions share mutable state.
type Auction struct {
	Id              AuctionId       `bson:"id"`
	ChainId         domain.ChainId  `bson:"chainId"`
	Seller          domain.Address  `bson:"seller"`
	AssetContract   domain.Address  `bson:"assetContract"`
	AssetId         domain.TokenId  `bson:"assetId"`
	PaymentCurrency domain.Currency `bson:"paymentCurrency"`
	StartTime       time.Time       `bson:"startTime"`
	EndTime         time.Time       `bson:"endTime"`
	StartPrice      string          `bson:"startPrice"`
	HighestBidder   *domain.Address `bson:"highestBidder,omitempty"`
	HighestBid      string          `bson:"highestBid"`
	EscrowedFunds   string          `bson:"escrowedFunds"`
	EscrowCurrency  domain.Currency `bson:"escrowCurrency,omitempty"`
	Ended           bool            `bson:"ended"`
	Implementation  string          `bson:"implementation"`
	CreatedAt       time.Time       `bson:"createdAt"`
}

func (a *Auction) ToId() *Id {
	return &Id{Id: a.Id}
}

// Status derives the auction state from the clock. The pending to active
// transition is time-driven; active to ended happens only through an
// explicit EndAuction call.
func (a *Auction) Status(now time.Time) Status {
	if a.Ended {
		return StatusEnded
	}
	if now.Before(a.StartTime) {
		return StatusPending
	}
	return StatusActive
}

func (a *Auction) HighestBidDecimal() (decimal.Decimal, error) {
	if a.HighestBid == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(a.HighestBid)
}

func (a *Auction) StartPriceDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(a.StartPrice)
}

type Id struct {
	Id AuctionId `bson:"id"`
}

// Info is the read model returned by GetAuctionInfo.
type Info struct {
	Id              AuctionId       `json:"id"`
	Seller          domain.Address  `json:"seller"`
	AssetContract   domain.Address  `json:"assetContract"`
	AssetId         domain.TokenId  `json:"assetId"`
	PaymentCurrency domain.Currency `json:"paymentCurrency"`
	HighestBidder   *domain.Address `json:"highestBidder"`
	HighestBid      string          `json:"highestBid"`
	Ended           bool            `json:"ended"`
	Status          Status          `json:"status"`
	StartTime       time.Time       `json:"startTime"`
	EndTime         time.Time       `json:"endTime"`
	StartPrice      string          `json:"startPrice"`
	Implementation  string          `json:"implementation"`
}

// PatchableAuction carries the mutable bidding fields. Pointer fields
// are patched only when non-nil.
type PatchableAuction struct {
	HighestBidder  *domain.Address  `bson:"highestBidder,omitempty"`
	HighestBid     *string          `bson:"highestBid,omitempty"`
	EscrowedFunds  *string          `bson:"escrowedFunds,omitempty"`
	EscrowCurrency *domain.Currency `bson:"escrowCurrency,omitempty"`
	Ended          *bool            `bson:"ended,omitempty"`
}

type Repo interface {
	Insert(ctx.Ctx, *Auction) error
	FindOne(ctx.Ctx, AuctionId) (*Auction, error)
	// FindAll returns auctions in creation order.
	FindAll(c ctx.Ctx, offset, limit int) ([]*Auction, error)
	Patch(c ctx.Ctx, id AuctionId, patchable *PatchableAuction) error
	Count(ctx.Ctx) (int, error)
}

type PlaceBidParams struct {
	Bidder    domain.Address
	Amount    decimal.Decimal
	PaidValue decimal.Decimal
	// Currency the bid is denominated in. When it differs from the
	// auction's payment currency the amount is normalized through the
	// price oracle before comparison.
	Currency domain.Currency
}

type UseCase interface {
	// PlaceBid accepts a bid during the active window. The bid must be
	// fully funded (paidValue == amount) and strictly exceed the current
	// highest bid after normalization, or meet the start price for the
	// first bid.
	PlaceBid(c ctx.Ctx, id AuctionId, params *PlaceBidParams) (*Auction, error)

	// EndAuction finalizes once the end time has passed. Settlement is
	// all-or-nothing: a failed transfer rolls the terminal flag back and
	// the call can be retried. At most one call settles; calls after a
	// successful settlement fail with domain.ErrAlreadyEnded.
	EndAuction(c ctx.Ctx, id AuctionId, caller domain.Address) (*Auction, error)

	// GetAuctionInfo is a pure read, callable in any state.
	GetAuctionInfo(c ctx.Ctx, id AuctionId) (*Info, error)
}
