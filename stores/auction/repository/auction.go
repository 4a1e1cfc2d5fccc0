package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/database/mongoclient"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/auction"
	"github.com/auctionhaus/goapi/service/query"
)

type auctionMongoRepo struct {
	q query.Mongo
}

func NewAuctionRepo(q query.Mongo) auction.Repo {
	return &auctionMongoRepo{q}
}

func (r *auctionMongoRepo) Insert(c bCtx.Ctx, a *auction.Auction) error {
	if err := r.q.Insert(c, domain.TableAuctions, a); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  a.Id,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *auctionMongoRepo) FindOne(c bCtx.Ctx, id auction.AuctionId) (*auction.Auction, error) {
	res := &auction.Auction{}
	if qry, err := mongoclient.MakeBsonM(&auction.Id{Id: id}); err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	} else if err := r.q.FindOne(c, domain.TableAuctions, qry, res); err != nil && err != query.ErrNotFound {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	} else if err == query.ErrNotFound {
		return nil, nil
	}
	return res, nil
}

func (r *auctionMongoRepo) FindAll(c bCtx.Ctx, offset, limit int) ([]*auction.Auction, error) {
	res := []*auction.Auction{}

	// to prevent scancol error
	qry := bson.M{"id": bson.M{"$exists": true}}

	if err := r.q.Search(c, domain.TableAuctions, offset, limit, "createdAt", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *auctionMongoRepo) Patch(c bCtx.Ctx, id auction.AuctionId, patchable *auction.PatchableAuction) error {
	selector, err := mongoclient.MakeBsonM(&auction.Id{Id: id})
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := r.q.Patch(c, domain.TableAuctions, selector, updater); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (r *auctionMongoRepo) Count(c bCtx.Ctx) (int, error) {
	qry := bson.M{"id": bson.M{"$exists": true}}
	n, err := r.q.Count(c, domain.TableAuctions, qry)
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return n, nil
}
