package usecase

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/keymutex"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/base/ptr"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/auction"
	"github.com/auctionhaus/goapi/domain/pricefeed"
)

type AuctionCfg struct {
	AuctionRepo     auction.Repo
	ActivityRepo    auction.ActivityRepo
	Implementations *auction.ImplementationRegistry
	Oracle          pricefeed.Oracle
	Balance         domain.BalanceUseCase
	AssetRegistry   domain.AssetRegistry
}

type impl struct {
	auctionRepo     auction.Repo
	activityRepo    auction.ActivityRepo
	implementations *auction.ImplementationRegistry
	oracle          pricefeed.Oracle
	balance         domain.BalanceUseCase

	assetRegistry domain.AssetRegistry

	// locks serializes all state-changing calls per auction. Two
	// auctions never contend, matching the one-instance-one-ledger
	// model.
	locks *keymutex.KeyMutex
}

func New(cfg *AuctionCfg) auction.UseCase {
	return &impl{
		auctionRepo:     cfg.AuctionRepo,
		activityRepo:    cfg.ActivityRepo,
		implementations: cfg.Implementations,
		oracle:          cfg.Oracle,
		balance:         cfg.Balance,
		assetRegistry:   cfg.AssetRegistry,
		locks:           keymutex.New(),
	}
}

func (im *impl) PlaceBid(c ctx.Ctx, id auction.AuctionId, params *auction.PlaceBidParams) (*auction.Auction, error) {
	im.locks.Lock(id.String())
	defer im.locks.Unlock(id.String())

	a, err := im.auctionRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAuctionNotFound
	}

	now := time.Now()
	if a.Status(now) != auction.StatusActive {
		return nil, domain.ErrAuctionNotActive
	}

	// escrow is bound to the declared amount, under-funded and
	// over-funded bids are both rejected
	if !params.PaidValue.Equal(params.Amount) {
		return nil, domain.ErrBidValueMismatch
	}
	if !params.Amount.IsPositive() {
		return nil, domain.ErrBidTooLow
	}

	policy, ok := im.implementations.Get(a.Implementation)
	if !ok {
		c.WithFields(log.Fields{
			"id":             id,
			"implementation": a.Implementation,
		}).Error("unknown implementation version")
		return nil, domain.ErrUnknownImplementation
	}

	currency := params.Currency
	if currency.IsEmpty() {
		currency = a.PaymentCurrency
	}

	normalized := params.Amount
	if !currency.Equals(a.PaymentCurrency) {
		normalized, err = im.oracle.Normalize(c, params.Amount, currency, a.PaymentCurrency)
		if err != nil {
			return nil, err
		}
	}

	startPrice, err := a.StartPriceDecimal()
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("auction.StartPriceDecimal failed")
		return nil, domain.ErrInvalidNumberFmt
	}

	var current *decimal.Decimal
	if a.HighestBidder != nil {
		highest, err := a.HighestBidDecimal()
		if err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("auction.HighestBidDecimal failed")
			return nil, domain.ErrInvalidNumberFmt
		}
		current = &highest
	}

	if err := policy.ValidateBid(startPrice, current, normalized); err != nil {
		return nil, err
	}

	// escrow the new bid before touching auction state, crediting back
	// on any later failure
	bidderId := domain.BalanceId{Owner: params.Bidder, Currency: currency}
	if err := im.balance.Debit(c, bidderId, params.PaidValue); err != nil {
		return nil, err
	}

	prevBidder := a.HighestBidder
	prevEscrow := a.EscrowedFunds
	prevCurrency := a.EscrowCurrency

	patchable := &auction.PatchableAuction{
		HighestBidder:  params.Bidder.ToLowerPtr(),
		HighestBid:     ptr.String(normalized.String()),
		EscrowedFunds:  ptr.String(params.PaidValue.String()),
		EscrowCurrency: &currency,
	}
	if err := im.auctionRepo.Patch(c, id, patchable); err != nil {
		if cerr := im.balance.Credit(c, bidderId, params.PaidValue); cerr != nil {
			c.WithFields(log.Fields{
				"err":    cerr,
				"id":     id,
				"bidder": params.Bidder,
			}).Error("escrow rollback failed")
		}
		return nil, err
	}

	// bid state is committed, the superseded escrow becomes claimable
	if prevBidder != nil {
		refund, err := decimal.NewFromString(prevEscrow)
		if err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"id":     id,
				"escrow": prevEscrow,
			}).Error("invalid escrowed amount")
		} else {
			prevId := domain.BalanceId{Owner: *prevBidder, Currency: prevCurrency}
			if err := im.balance.Credit(c, prevId, refund); err != nil {
				c.WithFields(log.Fields{
					"err":    err,
					"id":     id,
					"bidder": prevBidder,
				}).Error("refund credit failed")
				// restore the superseded bid and release the new escrow,
				// otherwise the outbid funds are gone from both ledgers
				restore := &auction.PatchableAuction{
					HighestBidder:  prevBidder,
					HighestBid:     ptr.String(a.HighestBid),
					EscrowedFunds:  ptr.String(prevEscrow),
					EscrowCurrency: &prevCurrency,
				}
				if perr := im.auctionRepo.Patch(c, id, restore); perr != nil {
					c.WithFields(log.Fields{
						"err": perr,
						"id":  id,
					}).Error("bid rollback failed")
				} else if cerr := im.balance.Credit(c, bidderId, params.PaidValue); cerr != nil {
					c.WithFields(log.Fields{
						"err":    cerr,
						"id":     id,
						"bidder": params.Bidder,
					}).Error("escrow rollback failed")
				}
				return nil, err
			}
		}
	}

	if err := im.activityRepo.Insert(c, &auction.Activity{
		AuctionId: id,
		Type:      auction.ActivityTypeBid,
		Account:   params.Bidder.ToLower(),
		Amount:    normalized.String(),
		Currency:  a.PaymentCurrency,
		Time:      now,
	}); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Warn("activityRepo.Insert failed")
	}

	return im.auctionRepo.FindOne(c, id)
}

func (im *impl) EndAuction(c ctx.Ctx, id auction.AuctionId, caller domain.Address) (*auction.Auction, error) {
	im.locks.Lock(id.String())
	defer im.locks.Unlock(id.String())

	a, err := im.auctionRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAuctionNotFound
	}

	if a.Ended {
		return nil, domain.ErrAlreadyEnded
	}

	now := time.Now()
	if now.Before(a.EndTime) {
		return nil, domain.ErrAuctionNotYetEndable
	}

	// the terminal flag is claimed first so two callers can never settle
	// the same auction. Any settlement failure rolls the flag back under
	// the held lock, keeping the call retryable instead of stranding the
	// escrow behind ErrAlreadyEnded.
	if err := im.auctionRepo.Patch(c, id, &auction.PatchableAuction{Ended: ptr.Bool(true)}); err != nil {
		return nil, err
	}
	a.Ended = true

	if a.HighestBidder != nil {
		escrow, err := decimal.NewFromString(a.EscrowedFunds)
		if err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"id":     id,
				"escrow": a.EscrowedFunds,
			}).Error("invalid escrowed amount")
			im.reopen(c, id, a)
			return nil, domain.ErrInvalidNumberFmt
		}

		sellerId := domain.BalanceId{Owner: a.Seller, Currency: a.EscrowCurrency}
		if err := im.balance.Credit(c, sellerId, escrow); err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("proceeds credit failed")
			im.reopen(c, id, a)
			return nil, err
		}

		if err := im.assetRegistry.TransferOwnership(c, a.ChainId, a.AssetContract, a.AssetId, a.Seller, *a.HighestBidder); err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"id":     id,
				"winner": a.HighestBidder,
			}).Error("assetRegistry.TransferOwnership failed")
			if derr := im.balance.Debit(c, sellerId, escrow); derr != nil {
				c.WithFields(log.Fields{
					"err": derr,
					"id":  id,
				}).Error("proceeds rollback failed")
			}
			im.reopen(c, id, a)
			return nil, err
		}
	}

	if err := im.activityRepo.Insert(c, &auction.Activity{
		AuctionId: id,
		Type:      auction.ActivityTypeSettled,
		Account:   caller.ToLower(),
		Time:      now,
	}); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Warn("activityRepo.Insert failed")
	}

	return a, nil
}

// reopen undoes a claimed terminal flag after a failed settlement step.
// Callers hold the auction's keymutex.
func (im *impl) reopen(c ctx.Ctx, id auction.AuctionId, a *auction.Auction) {
	if err := im.auctionRepo.Patch(c, id, &auction.PatchableAuction{Ended: ptr.Bool(false)}); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("ended rollback failed")
		return
	}
	a.Ended = false
}

func (im *impl) GetAuctionInfo(c ctx.Ctx, id auction.AuctionId) (*auction.Info, error) {
	a, err := im.auctionRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAuctionNotFound
	}

	return &auction.Info{
		Id:              a.Id,
		Seller:          a.Seller,
		AssetContract:   a.AssetContract,
		AssetId:         a.AssetId,
		PaymentCurrency: a.PaymentCurrency,
		HighestBidder:   a.HighestBidder,
		HighestBid:      a.HighestBid,
		Ended:           a.Ended,
		Status:          a.Status(time.Now()),
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		StartPrice:      a.StartPrice,
		Implementation:  a.Implementation,
	}, nil
}
