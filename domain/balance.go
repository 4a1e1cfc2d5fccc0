package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/auctionhaus/goapi/base/ctx"
)

// Balance is the deposited fund ledger per owner and currency. Bids are
// funded from it and refunds of outbid escrow are credited back to it;
// nothing is ever pushed to an external account, withdrawal is always
// pulled by the owner.
type Balance struct {
	Owner     Address   `bson:"owner"`
	Currency  Currency  `bson:"currency"`
	Available string    `bson:"available"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (b *Balance) ToId() *BalanceId {
	return &BalanceId{Owner: b.Owner, Currency: b.Currency}
}

func (b *Balance) AvailableDecimal() (decimal.Decimal, error) {
	if b.Available == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(b.Available)
}

type BalanceId struct {
	Owner    Address  `bson:"owner"`
	Currency Currency `bson:"currency"`
}

type BalanceRepo interface {
	FindOne(ctx.Ctx, BalanceId) (*Balance, error)
	FindByOwner(ctx.Ctx, Address) ([]*Balance, error)
	Upsert(ctx.Ctx, *Balance) error
}

type BalanceUseCase interface {
	// Deposit adds funds to the owner's available balance.
	Deposit(c ctx.Ctx, id BalanceId, amount decimal.Decimal) (*Balance, error)

	// Withdraw removes funds, failing with ErrInsufficientFunds when the
	// available balance does not cover the amount.
	Withdraw(c ctx.Ctx, id BalanceId, amount decimal.Decimal) (*Balance, error)

	// Credit and Debit are the settlement-side ledger movements used by
	// the auction state machine.
	Credit(c ctx.Ctx, id BalanceId, amount decimal.Decimal) error
	Debit(c ctx.Ctx, id BalanceId, amount decimal.Decimal) error

	GetByOwner(c ctx.Ctx, owner Address) ([]*Balance, error)
}
