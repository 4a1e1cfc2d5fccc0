package chainlink

import (
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/auctionhaus/goapi/base/abi"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/keys"
	"github.com/auctionhaus/goapi/service/cache"
	"github.com/auctionhaus/goapi/service/cache/provider/primitive"
	"github.com/auctionhaus/goapi/service/chain"
)

type impl struct {
	chainClient chain.Client
	cache       cache.Service
}

func New(chainClient chain.Client) Chainlink {
	return &impl{
		chainClient: chainClient,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Hour,
			Pfx:   "chainlink_cache",
			Cache: primitive.NewPrimitive("chainlink_cache", 32),
		}),
	}
}

func (im *impl) GetLatestAnswer(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (*big.Int, error) {
	var res big.Int

	key := keys.RedisKey(strconv.Itoa(int(chainId)), string(address), "latest")

	if err := im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		if res, err := im.getLatestAnswer(c, chainId, address); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"address": address,
			}).Error("getLatestAnswer failed")
			return nil, err
		} else {
			return res, nil
		}
	}); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("cache.GetByFunc failed")
		return nil, err
	}

	return &res, nil
}

func (im *impl) GetDecimals(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (uint8, error) {
	var res uint8

	key := keys.RedisKey(strconv.Itoa(int(chainId)), string(address), "decimals")

	if err := im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		feedAddr := common.HexToAddress(string(address))
		unpacked, err := im.chainClient.Call(c, int32(chainId), feedAddr, nil, abi.ChainlinkFeedABI, "decimals")
		if err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"address": address,
			}).Error("chainClient.Call failed")
			return nil, err
		}
		decimals := unpacked[0].(uint8)
		return &decimals, nil
	}); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("cache.GetByFunc failed")
		return 0, err
	}

	return res, nil
}

func (im *impl) getLatestAnswer(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (*big.Int, error) {
	feedAddr := common.HexToAddress(string(address))

	res, err := im.chainClient.Call(c, int32(chainId), feedAddr, nil, abi.ChainlinkFeedABI, "latestAnswer")
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("chainClient.Call failed")
		return nil, err
	}

	return res[0].(*big.Int), nil
}
