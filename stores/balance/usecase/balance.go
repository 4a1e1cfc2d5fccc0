package usecase

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/keymutex"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/keys"
)

type BalanceCfg struct {
	BalanceRepo domain.BalanceRepo
}

type impl struct {
	balanceRepo domain.BalanceRepo
	locks       *keymutex.KeyMutex
}

func New(cfg *BalanceCfg) domain.BalanceUseCase {
	return &impl{
		balanceRepo: cfg.BalanceRepo,
		locks:       keymutex.New(),
	}
}

func lockKey(id domain.BalanceId) string {
	return keys.RedisKey(id.Owner.ToLowerStr(), id.Currency.ToLowerStr())
}

func (im *impl) Deposit(c ctx.Ctx, id domain.BalanceId, amount decimal.Decimal) (*domain.Balance, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidNumberFmt
	}
	if err := im.Credit(c, id, amount); err != nil {
		return nil, err
	}
	return im.balanceRepo.FindOne(c, id)
}

func (im *impl) Withdraw(c ctx.Ctx, id domain.BalanceId, amount decimal.Decimal) (*domain.Balance, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidNumberFmt
	}
	if err := im.Debit(c, id, amount); err != nil {
		return nil, err
	}
	return im.balanceRepo.FindOne(c, id)
}

func (im *impl) Credit(c ctx.Ctx, id domain.BalanceId, amount decimal.Decimal) error {
	key := lockKey(id)
	im.locks.Lock(key)
	defer im.locks.Unlock(key)

	available, err := im.available(c, id)
	if err != nil {
		return err
	}
	return im.store(c, id, available.Add(amount))
}

func (im *impl) Debit(c ctx.Ctx, id domain.BalanceId, amount decimal.Decimal) error {
	key := lockKey(id)
	im.locks.Lock(key)
	defer im.locks.Unlock(key)

	available, err := im.available(c, id)
	if err != nil {
		return err
	}
	if available.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	return im.store(c, id, available.Sub(amount))
}

func (im *impl) GetByOwner(c ctx.Ctx, owner domain.Address) ([]*domain.Balance, error) {
	return im.balanceRepo.FindByOwner(c, owner)
}

func (im *impl) available(c ctx.Ctx, id domain.BalanceId) (decimal.Decimal, error) {
	balance, err := im.balanceRepo.FindOne(c, id)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("balanceRepo.FindOne failed")
		return decimal.Zero, err
	}
	if balance == nil {
		return decimal.Zero, nil
	}
	available, err := balance.AvailableDecimal()
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("balance.AvailableDecimal failed")
		return decimal.Zero, domain.ErrInvalidNumberFmt
	}
	return available, nil
}

func (im *impl) store(c ctx.Ctx, id domain.BalanceId, available decimal.Decimal) error {
	balance := &domain.Balance{
		Owner:     id.Owner.ToLower(),
		Currency:  id.Currency.ToLower(),
		Available: available.String(),
		UpdatedAt: time.Now(),
	}
	if err := im.balanceRepo.Upsert(c, balance); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("balanceRepo.Upsert failed")
		return err
	}
	return nil
}
