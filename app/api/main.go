package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/database/mongoclient"
	"github.com/auctionhaus/goapi/base/database/redisclient"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/base/metrics"
	bValidator "github.com/auctionhaus/goapi/base/validator"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/auction"
	mmiddleware "github.com/auctionhaus/goapi/middleware"
	"github.com/auctionhaus/goapi/service/chain"
	"github.com/auctionhaus/goapi/service/chain/contract"
	"github.com/auctionhaus/goapi/service/query"
	"github.com/auctionhaus/goapi/service/redis"
	auction_delivery "github.com/auctionhaus/goapi/stores/auction/delivery/http"
	auction_repository "github.com/auctionhaus/goapi/stores/auction/repository"
	auction_usecase "github.com/auctionhaus/goapi/stores/auction/usecase"
	auth_delivery "github.com/auctionhaus/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/auctionhaus/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/auctionhaus/goapi/stores/auth/usecase"
	balance_delivery "github.com/auctionhaus/goapi/stores/balance/delivery/http"
	balance_repository "github.com/auctionhaus/goapi/stores/balance/repository"
	balance_usecase "github.com/auctionhaus/goapi/stores/balance/usecase"
	factory_delivery "github.com/auctionhaus/goapi/stores/factory/delivery/http"
	factory_repository "github.com/auctionhaus/goapi/stores/factory/repository"
	factory_usecase "github.com/auctionhaus/goapi/stores/factory/usecase"
	hc_delivery "github.com/auctionhaus/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/auctionhaus/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/auctionhaus/goapi/stores/healthcheck/usecase"
	pricefeed_delivery "github.com/auctionhaus/goapi/stores/pricefeed/delivery/http"
	pricefeed_repository "github.com/auctionhaus/goapi/stores/pricefeed/repository"
	pricefeed_usecase "github.com/auctionhaus/goapi/stores/pricefeed/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls: rpcs,
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	transactor, err := chain.NewTransactor(context, &chain.TransactorCfg{
		RpcUrls:    rpcs,
		PrivateKey: viper.GetString("chain.operatorKey"),
	})
	if err != nil {
		context.WithField("err", err).Panic("failed to init transactor")
	}
	operator := domain.Address(transactor.OperatorAddress().Hex()).ToLower()
	erc721Service := contract.NewErc721(chainService, transactor)
	assetRegistry := contract.NewAssetRegistry(erc721Service, operator)

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	priceFeedRepo := pricefeed_repository.NewPriceFeedRepo(q)
	auctionRepo := auction_repository.NewAuctionRepo(q)
	activityRepo := auction_repository.NewActivityRepo(q)
	implementationRepo := factory_repository.NewImplementationRepo(q)
	balanceRepo := balance_repository.NewBalanceRepo(q)

	implementations := auction.NewImplementationRegistry(
		auction.NewImplementationV1(),
		auction.NewImplementationV2(viper.GetInt64("auction.minIncrementBps")),
	)

	hc := hc_usecase.New(hcRepo)
	oracle := pricefeed_usecase.NewOracle(&pricefeed_usecase.OracleCfg{
		PriceFeedRepo: priceFeedRepo,
		CacheTtl:      viper.GetDuration("oracle.cacheTtl"),
	})
	balance := balance_usecase.New(&balance_usecase.BalanceCfg{
		BalanceRepo: balanceRepo,
	})
	auctionUC := auction_usecase.New(&auction_usecase.AuctionCfg{
		AuctionRepo:     auctionRepo,
		ActivityRepo:    activityRepo,
		Implementations: implementations,
		Oracle:          oracle,
		Balance:         balance,
		AssetRegistry:   assetRegistry,
	})

	allowedSenders := []domain.Address{}
	for _, sender := range viper.GetStringSlice("crosschain.allowedSenders") {
		allowedSenders = append(allowedSenders, domain.Address(sender))
	}
	factory := factory_usecase.New(&factory_usecase.FactoryCfg{
		AuctionRepo:        auctionRepo,
		ActivityRepo:       activityRepo,
		ImplementationRepo: implementationRepo,
		Implementations:    implementations,
		Oracle:             oracle,
		AssetRegistry:      assetRegistry,
		Operator:           operator,
		DefaultVersion:     viper.GetString("auction.defaultImplementation"),
		ChainId:            domain.ChainId(viper.GetInt32("auction.chainId")),
		Router:             domain.Address(viper.GetString("crosschain.router")),
		AllowedSenders:     allowedSenders,
	})

	auth := auth_usecase.New(&auth_usecase.Cfg{
		JwtSecret:          viper.GetString("auth.jwtSecret"),
		TokenTtl:           viper.GetDuration("auth.tokenTtl"),
		SigningMsgTemplate: viper.GetString("auth.signatureMsg"),
		Redis:              redisCache,
	})

	adminAddresses := viper.GetStringSlice("admin.addresses")
	auth_middleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, viper.GetString("auth.signatureMsg"))
	pricefeed_delivery.New(e, oracle, auth_middleware)
	auction_delivery.New(e, auctionUC, activityRepo, auth_middleware)
	factory_delivery.New(e, factory, auth_middleware)
	balance_delivery.New(e, balance, auth_middleware)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, auth_middleware.Auth())

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
