package repository

import (
	bCtx "github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/database/mongoclient"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/auction"
	"github.com/auctionhaus/goapi/service/query"
)

type activityMongoRepo struct {
	q query.Mongo
}

func NewActivityRepo(q query.Mongo) auction.ActivityRepo {
	return &activityMongoRepo{q}
}

func (r *activityMongoRepo) Insert(c bCtx.Ctx, activity *auction.Activity) error {
	if err := r.q.Insert(c, domain.TableActivities, activity); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": activity.AuctionId,
			"type":      activity.Type,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *activityMongoRepo) FindByAuction(c bCtx.Ctx, id auction.AuctionId, offset, limit int) ([]*auction.Activity, error) {
	res := []*auction.Activity{}
	qry, err := mongoclient.MakeBsonM(&struct {
		AuctionId auction.AuctionId `bson:"auctionId"`
	}{id})
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}
	if err := r.q.Search(c, domain.TableActivities, offset, limit, "time", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
