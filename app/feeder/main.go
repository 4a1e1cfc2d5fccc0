package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/viney-shih/goroutines"

	"github.com/auctionhaus/goapi/base/backoff"
	"github.com/auctionhaus/goapi/base/counter"
	bCtx "github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/database/mongoclient"
	"github.com/auctionhaus/goapi/base/goroutine"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/pricefeed"
	"github.com/auctionhaus/goapi/service/chain"
	"github.com/auctionhaus/goapi/service/chainlink"
	"github.com/auctionhaus/goapi/service/query"
	pricefeed_repository "github.com/auctionhaus/goapi/stores/pricefeed/repository"
	pricefeed_usecase "github.com/auctionhaus/goapi/stores/pricefeed/usecase"
)

// feed is one chainlink aggregator to poll.
type feed struct {
	currency    domain.Currency
	chainId     domain.ChainId
	feedAddress domain.Address
}

func init() {
	pflag.String("config", "infra/configs/feeder/config.yaml", "config file path")
	pflag.Duration("interval", 0, "poll interval, overrides the config value")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		panic(err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(viper.GetString("config"))
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	defer cancel()

	ctx.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
	}
	chainService, err := chain.NewClient(ctx, &chain.ClientCfg{RpcUrls: rpcs})
	if err != nil {
		ctx.WithField("err", err).Warn("chainService started with error")
	}
	chainlinkService := chainlink.New(chainService)

	priceFeedRepo := pricefeed_repository.NewPriceFeedRepo(q)
	oracle := pricefeed_usecase.NewOracle(&pricefeed_usecase.OracleCfg{
		PriceFeedRepo: priceFeedRepo,
		CacheTtl:      time.Minute,
	})

	feedsCfg := viper.Sub("feeds")
	feeds := []feed{}
	for k := range feedsCfg.AllSettings() {
		feeds = append(feeds, feed{
			currency:    domain.Currency(feedsCfg.GetString(fmt.Sprintf("%s.currency", k))),
			chainId:     domain.ChainId(feedsCfg.GetInt32(fmt.Sprintf("%s.chainId", k))),
			feedAddress: domain.Address(feedsCfg.GetString(fmt.Sprintf("%s.feedAddress", k))),
		})
	}
	if len(feeds) == 0 {
		ctx.Panic("no feeds configured")
	}

	interval := viper.GetDuration("interval")
	if interval == 0 {
		interval = viper.GetDuration("feeder.interval")
	}
	workers := viper.GetInt("feeder.workers")
	if workers == 0 {
		workers = 4
	}

	ctx.WithFields(log.Fields{
		"feeds":    len(feeds),
		"interval": interval,
		"workers":  workers,
	}).Info("feeder starting")

	pool := goroutines.NewPool(workers, goroutines.WithTaskQueueLength(len(feeds)))
	defer pool.Release()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	published := counter.NewCounter()
	pollAll := func() {
		for _, f := range feeds {
			f := f
			if err := pool.ScheduleWithTimeout(3*time.Second, func() {
				updateFeed(ctx, chainlinkService, oracle, f, published)
			}); err != nil {
				ctx.WithFields(log.Fields{
					"err":      err,
					"currency": f.currency,
				}).Warn("pool.ScheduleWithTimeout failed")
			}
		}
	}

	goroutine.RecoverableGo(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		pollAll()
		for {
			select {
			case <-ticker.C:
				ctx.WithField("published", published.Count()).Info("poll tick")
				pollAll()
			case <-ctx.Done():
				return
			}
		}
	}, goroutine.WithAfterRecovered(func(p interface{}, stack []byte) {
		ctx.WithFields(log.Fields{
			"panic": p,
			"stack": string(stack),
		}).Error("poll loop panicked")
	}))

	sig := <-quit
	ctx.WithField("signal", sig).Info("received signal")
	cancel()
}

// updateFeed reads the latest aggregator answer and publishes it as the
// currency's unit price. Transient rpc failures back off and retry a
// few times within the tick.
func updateFeed(ctx bCtx.Ctx, chainlinkService chainlink.Chainlink, oracle pricefeed.Oracle, f feed, published *counter.Counter) {
	const retryLimit = 3
	bo := backoff.NewExponential(500*time.Millisecond, 5*time.Second)

	for attempt := 0; ; attempt++ {
		answer, err := chainlinkService.GetLatestAnswer(ctx, f.chainId, f.feedAddress)
		if err == nil {
			decimals, derr := chainlinkService.GetDecimals(ctx, f.chainId, f.feedAddress)
			if derr == nil {
				price := decimal.NewFromBigInt(answer, -int32(decimals))
				if !price.IsPositive() {
					ctx.WithFields(log.Fields{
						"currency": f.currency,
						"answer":   answer,
					}).Warn("skipping non-positive answer")
					return
				}
				if err := oracle.SetPrice(ctx, f.currency, price); err != nil {
					ctx.WithFields(log.Fields{
						"err":      err,
						"currency": f.currency,
					}).Error("oracle.SetPrice failed")
					return
				}
				published.Add(1)
				return
			}
			err = derr
		}

		if attempt >= retryLimit {
			ctx.WithFields(log.Fields{
				"err":      err,
				"currency": f.currency,
				"feed":     f.feedAddress,
			}).Error("feed update failed")
			return
		}
		if berr := bo.Backoff(ctx); berr != nil {
			return
		}
	}
}
