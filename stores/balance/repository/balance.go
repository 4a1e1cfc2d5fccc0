package repository

import (
	bCtx "github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/database/mongoclient"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/service/query"
)

type balanceMongoRepo struct {
	q query.Mongo
}

func NewBalanceRepo(q query.Mongo) domain.BalanceRepo {
	return &balanceMongoRepo{q}
}

func (r *balanceMongoRepo) FindOne(c bCtx.Ctx, id domain.BalanceId) (*domain.Balance, error) {
	res := &domain.Balance{}
	id.Owner = id.Owner.ToLower()
	id.Currency = id.Currency.ToLower()
	if qry, err := mongoclient.MakeBsonM(&id); err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	} else if err := r.q.FindOne(c, domain.TableBalances, qry, res); err != nil && err != query.ErrNotFound {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	} else if err == query.ErrNotFound {
		return nil, nil
	}
	return res, nil
}

func (r *balanceMongoRepo) FindByOwner(c bCtx.Ctx, owner domain.Address) ([]*domain.Balance, error) {
	res := []*domain.Balance{}
	qry, err := mongoclient.MakeBsonM(&domain.BalanceId{Owner: owner.ToLower()})
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}
	if err := r.q.Search(c, domain.TableBalances, 0, 0, "currency", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *balanceMongoRepo) Upsert(c bCtx.Ctx, balance *domain.Balance) error {
	balance.Owner = balance.Owner.ToLower()
	balance.Currency = balance.Currency.ToLower()
	selector, err := mongoclient.MakeBsonM(balance.ToId())
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := r.q.Upsert(c, domain.TableBalances, selector, balance); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  balance.ToId(),
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
