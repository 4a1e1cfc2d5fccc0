package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/database/mongoclient"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/pricefeed"
	"github.com/auctionhaus/goapi/service/query"
)

type priceFeedMongoRepo struct {
	q query.Mongo
}

func NewPriceFeedRepo(q query.Mongo) pricefeed.Repo {
	return &priceFeedMongoRepo{q}
}

func (r *priceFeedMongoRepo) FindOne(c bCtx.Ctx, currency domain.Currency) (*pricefeed.PriceFeed, error) {
	res := &pricefeed.PriceFeed{}
	if qry, err := mongoclient.MakeBsonM(&pricefeed.Id{Currency: currency.ToLower()}); err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	} else if err := r.q.FindOne(c, domain.TablePriceFeeds, qry, res); err != nil && err != query.ErrNotFound {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	} else if err == query.ErrNotFound {
		return nil, nil
	}
	return res, nil
}

func (r *priceFeedMongoRepo) FindAll(c bCtx.Ctx) ([]*pricefeed.PriceFeed, error) {
	res := []*pricefeed.PriceFeed{}

	// to prevent scancol error
	qry := bson.M{"currency": bson.M{"$exists": true}}

	if err := r.q.Search(c, domain.TablePriceFeeds, 0, 0, "_id", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *priceFeedMongoRepo) Upsert(c bCtx.Ctx, feed *pricefeed.PriceFeed) error {
	selector, err := mongoclient.MakeBsonM(feed.ToId())
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := r.q.Upsert(c, domain.TablePriceFeeds, selector, feed); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  feed.ToId(),
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
