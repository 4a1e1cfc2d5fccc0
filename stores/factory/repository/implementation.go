package repository

import (
	"time"

	bCtx "github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/database/mongoclient"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/auction"
	"github.com/auctionhaus/goapi/service/query"
)

type implementationMongoRepo struct {
	q query.Mongo
}

func NewImplementationRepo(q query.Mongo) auction.ImplementationRepo {
	return &implementationMongoRepo{q}
}

func (r *implementationMongoRepo) GetCurrent(c bCtx.Ctx) (string, error) {
	res := &auction.ImplementationState{}
	qry, err := mongoclient.MakeBsonM(&auction.ImplementationState{Key: auction.ImplementationStateKey})
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return "", err
	}
	if err := r.q.FindOne(c, domain.TableImplementations, qry, res); err == query.ErrNotFound {
		return "", nil
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return "", err
	}
	return res.Version, nil
}

func (r *implementationMongoRepo) SetCurrent(c bCtx.Ctx, version string) error {
	state := &auction.ImplementationState{
		Key:       auction.ImplementationStateKey,
		Version:   version,
		UpdatedAt: time.Now(),
	}
	selector, err := mongoclient.MakeBsonM(&auction.ImplementationState{Key: auction.ImplementationStateKey})
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := r.q.Upsert(c, domain.TableImplementations, selector, state); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"version": version,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
