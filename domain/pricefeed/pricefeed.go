package pricefeed

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/domain"
)

// NormalizeScale is the number of fractional digits kept by Normalize.
// Division truncates toward zero at this scale.
const NormalizeScale int32 = 18

// PriceFeed is the latest unit price of one currency in the common
// reference unit. One document per currency, no history.
type PriceFeed struct {
	Currency  domain.Currency `bson:"currency"`
	UnitPrice string          `bson:"unitPrice"`
	UpdatedAt time.Time       `bson:"updatedAt"`
}

func (f *PriceFeed) Price() (decimal.Decimal, error) {
	return decimal.NewFromString(f.UnitPrice)
}

type Id struct {
	Currency domain.Currency `bson:"currency"`
}

func (f *PriceFeed) ToId() *Id {
	return &Id{Currency: f.Currency}
}

type Repo interface {
	FindOne(ctx.Ctx, domain.Currency) (*PriceFeed, error)
	FindAll(ctx.Ctx) ([]*PriceFeed, error)
	Upsert(ctx.Ctx, *PriceFeed) error
}

// Oracle maps currencies to unit prices and converts amounts between
// registered currencies.
type Oracle interface {
	// GetPrice returns the current unit price of the currency.
	// Returns domain.ErrUnsupportedCurrency if no feed is registered.
	GetPrice(ctx.Ctx, domain.Currency) (decimal.Decimal, error)

	// SetPrice registers or overwrites the feed for the currency.
	// Returns domain.ErrInvalidPrice unless price > 0.
	SetPrice(c ctx.Ctx, currency domain.Currency, price decimal.Decimal) error

	// Normalize converts amount from one currency to another using the
	// two unit prices, truncating toward zero. Fails with
	// domain.ErrUnsupportedCurrency if either leg is unregistered.
	Normalize(c ctx.Ctx, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error)
}
