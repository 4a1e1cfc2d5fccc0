package usecase

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/keys"
	"github.com/auctionhaus/goapi/domain/pricefeed"
	"github.com/auctionhaus/goapi/service/cache"
	"github.com/auctionhaus/goapi/service/cache/provider/primitive"
)

type OracleCfg struct {
	PriceFeedRepo pricefeed.Repo

	// CacheTtl bounds staleness of cached unit prices. Zero disables
	// expiry-based refresh until SetPrice invalidates.
	CacheTtl time.Duration
}

type oracleImpl struct {
	priceFeedRepo pricefeed.Repo
	cache         cache.Service
}

func NewOracle(cfg *OracleCfg) pricefeed.Oracle {
	ttl := cfg.CacheTtl
	if ttl == 0 {
		ttl = time.Minute
	}
	return &oracleImpl{
		priceFeedRepo: cfg.PriceFeedRepo,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   keys.PfxPriceFeed,
			Cache: primitive.NewPrimitive(keys.PfxPriceFeed, 8),
		}),
	}
}

func (im *oracleImpl) GetPrice(c ctx.Ctx, currency domain.Currency) (decimal.Decimal, error) {
	var unitPrice string

	key := keys.RedisKey(currency.ToLowerStr())

	if err := im.cache.GetByFunc(c, key, &unitPrice, func() (interface{}, error) {
		feed, err := im.priceFeedRepo.FindOne(c, currency)
		if err != nil {
			c.WithFields(log.Fields{
				"err":      err,
				"currency": currency,
			}).Error("priceFeedRepo.FindOne failed")
			return nil, err
		}
		if feed == nil {
			return nil, domain.ErrUnsupportedCurrency
		}
		return &feed.UnitPrice, nil
	}); err != nil {
		if err != domain.ErrUnsupportedCurrency {
			c.WithFields(log.Fields{
				"err":      err,
				"currency": currency,
			}).Error("cache.GetByFunc failed")
		}
		return decimal.Zero, err
	}

	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"currency":  currency,
			"unitPrice": unitPrice,
		}).Error("decimal.NewFromString failed")
		return decimal.Zero, domain.ErrInvalidPrice
	}
	return price, nil
}

func (im *oracleImpl) SetPrice(c ctx.Ctx, currency domain.Currency, price decimal.Decimal) error {
	if !price.IsPositive() {
		return domain.ErrInvalidPrice
	}

	feed := &pricefeed.PriceFeed{
		Currency:  currency.ToLower(),
		UnitPrice: price.String(),
		UpdatedAt: time.Now(),
	}
	if err := im.priceFeedRepo.Upsert(c, feed); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"currency": currency,
		}).Error("priceFeedRepo.Upsert failed")
		return err
	}

	key := keys.RedisKey(currency.ToLowerStr())
	if err := im.cache.Del(c, key); err != nil && err != cache.ErrNotFound {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Warn("cache.Del failed")
	}
	return nil
}

// Normalize converts amount denominated in from into to units via the
// two feeds. The quotient truncates toward zero so a converted bid never
// rounds up past what was actually paid.
func (im *oracleImpl) Normalize(c ctx.Ctx, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	if from.Equals(to) {
		// identity conversion still requires a registered feed
		if _, err := im.GetPrice(c, from); err != nil {
			return decimal.Zero, err
		}
		return amount, nil
	}

	fromPrice, err := im.GetPrice(c, from)
	if err != nil {
		return decimal.Zero, err
	}
	toPrice, err := im.GetPrice(c, to)
	if err != nil {
		return decimal.Zero, err
	}
	if !toPrice.IsPositive() {
		return decimal.Zero, domain.ErrInvalidPrice
	}

	converted := amount.Mul(fromPrice).
		DivRound(toPrice, pricefeed.NormalizeScale+2).
		Truncate(pricefeed.NormalizeScale)
	return converted, nil
}
