package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/auction"
	"github.com/auctionhaus/goapi/domain/crosschain"
	"github.com/auctionhaus/goapi/domain/pricefeed"
)

type FactoryCfg struct {
	AuctionRepo        auction.Repo
	ActivityRepo       auction.ActivityRepo
	ImplementationRepo auction.ImplementationRepo
	Implementations    *auction.ImplementationRegistry
	Oracle             pricefeed.Oracle
	AssetRegistry      domain.AssetRegistry

	// Operator is the custody address sellers must approve before
	// listing.
	Operator domain.Address

	// DefaultVersion is used until the first explicit upgrade.
	DefaultVersion string

	// ChainId auctions created through this factory settle on.
	ChainId domain.ChainId

	// Router and AllowedSenders gate cross-chain creation.
	Router         domain.Address
	AllowedSenders []domain.Address
}

type impl struct {
	auctionRepo        auction.Repo
	activityRepo       auction.ActivityRepo
	implementationRepo auction.ImplementationRepo
	implementations    *auction.ImplementationRegistry
	oracle             pricefeed.Oracle
	assetRegistry      domain.AssetRegistry
	operator           domain.Address
	defaultVersion     string
	chainId            domain.ChainId
	router             domain.Address
	allowedSenders     map[domain.Address]struct{}
}

func New(cfg *FactoryCfg) auction.Factory {
	allowed := make(map[domain.Address]struct{}, len(cfg.AllowedSenders))
	for _, sender := range cfg.AllowedSenders {
		allowed[sender.ToLower()] = struct{}{}
	}
	return &impl{
		auctionRepo:        cfg.AuctionRepo,
		activityRepo:       cfg.ActivityRepo,
		implementationRepo: cfg.ImplementationRepo,
		implementations:    cfg.Implementations,
		oracle:             cfg.Oracle,
		assetRegistry:      cfg.AssetRegistry,
		operator:           cfg.Operator.ToLower(),
		defaultVersion:     cfg.DefaultVersion,
		chainId:            cfg.ChainId,
		router:             cfg.Router.ToLower(),
		allowedSenders:     allowed,
	}
}

func (im *impl) CreateAuction(c ctx.Ctx, params *auction.CreateAuctionParams) (*auction.Auction, error) {
	if params.Seller.IsEmpty() || params.AssetContract.IsEmpty() {
		return nil, domain.ErrInvalidAuctionParameters
	}
	if !params.StartTime.Before(params.EndTime) {
		return nil, domain.ErrInvalidAuctionParameters
	}
	if !params.StartPrice.IsPositive() {
		return nil, domain.ErrInvalidAuctionParameters
	}

	// the payment currency must be priceable or no cross-currency bid
	// could ever be compared
	if _, err := im.oracle.GetPrice(c, params.PaymentCurrency); err != nil {
		return nil, err
	}

	if ok, err := im.assetRegistry.IsAssetContract(c, im.chainId, params.AssetContract); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrInvalidAuctionParameters
	}

	owner, err := im.assetRegistry.OwnerOf(c, im.chainId, params.AssetContract, params.AssetId)
	if err != nil {
		return nil, err
	}
	if !owner.Equals(params.Seller) {
		return nil, domain.ErrAssetNotAuthorized
	}
	if approved, err := im.assetRegistry.IsApproved(c, im.chainId, params.AssetContract, params.AssetId, im.operator); err != nil {
		return nil, err
	} else if !approved {
		return nil, domain.ErrAssetNotAuthorized
	}

	version, err := im.currentVersion(c)
	if err != nil {
		return nil, err
	}
	if _, ok := im.implementations.Get(version); !ok {
		c.WithField("version", version).Error("unknown implementation version")
		return nil, domain.ErrUnknownImplementation
	}

	now := time.Now()
	a := &auction.Auction{
		Id:              auction.AuctionId(uuid.New().String()),
		ChainId:         im.chainId,
		Seller:          params.Seller.ToLower(),
		AssetContract:   params.AssetContract.ToLower(),
		AssetId:         params.AssetId,
		PaymentCurrency: params.PaymentCurrency.ToLower(),
		StartTime:       params.StartTime,
		EndTime:         params.EndTime,
		StartPrice:      params.StartPrice.String(),
		Implementation:  version,
		CreatedAt:       now,
	}
	if err := im.auctionRepo.Insert(c, a); err != nil {
		return nil, err
	}

	if err := im.activityRepo.Insert(c, &auction.Activity{
		AuctionId: a.Id,
		Type:      auction.ActivityTypeCreated,
		Account:   a.Seller,
		Amount:    a.StartPrice,
		Currency:  a.PaymentCurrency,
		Time:      now,
	}); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  a.Id,
		}).Warn("activityRepo.Insert failed")
	}

	c.WithFields(log.Fields{
		"id":             a.Id,
		"seller":         a.Seller,
		"implementation": a.Implementation,
	}).Info("auction created")

	return a, nil
}

func (im *impl) GetAllAuctions(c ctx.Ctx, offset, limit int) (*auction.SearchResult, error) {
	items, err := im.auctionRepo.FindAll(c, offset, limit)
	if err != nil {
		return nil, err
	}
	count, err := im.auctionRepo.Count(c)
	if err != nil {
		return nil, err
	}
	return &auction.SearchResult{Items: items, Count: count}, nil
}

func (im *impl) UpgradeImplementation(c ctx.Ctx, version string) error {
	if _, ok := im.implementations.Get(version); !ok {
		return domain.ErrUnknownImplementation
	}
	if err := im.implementationRepo.SetCurrent(c, version); err != nil {
		return err
	}

	c.WithField("version", version).Info("implementation upgraded")
	return nil
}

func (im *impl) HandleCrossChainMessage(c ctx.Ctx, origin domain.Address, msg *crosschain.Message) (*auction.Auction, error) {
	if im.router.IsEmpty() || !origin.Equals(im.router) {
		c.WithFields(log.Fields{
			"origin":    origin,
			"messageId": msg.MessageId,
		}).Warn("message from unexpected origin")
		return nil, domain.ErrUnauthorizedOrigin
	}
	if _, ok := im.allowedSenders[msg.Sender.ToLower()]; !ok {
		c.WithFields(log.Fields{
			"sender":    msg.Sender,
			"messageId": msg.MessageId,
		}).Warn("message from unlisted sender")
		return nil, domain.ErrUnauthorizedOrigin
	}

	payload, err := crosschain.DecodeCreateAuctionPayload(msg.Payload)
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"messageId": msg.MessageId,
		}).Error("crosschain.DecodeCreateAuctionPayload failed")
		return nil, domain.ErrInvalidAuctionParameters
	}

	startPrice, err := decimal.NewFromString(payload.StartPrice)
	if err != nil {
		return nil, domain.ErrInvalidAuctionParameters
	}

	return im.CreateAuction(c, &auction.CreateAuctionParams{
		Seller:          payload.Seller,
		AssetContract:   payload.AssetContract,
		AssetId:         payload.AssetId,
		PaymentCurrency: payload.PaymentCurrency,
		StartTime:       time.Unix(payload.StartTime, 0),
		EndTime:         time.Unix(payload.EndTime, 0),
		StartPrice:      startPrice,
	})
}

func (im *impl) currentVersion(c ctx.Ctx) (string, error) {
	version, err := im.implementationRepo.GetCurrent(c)
	if err != nil {
		return "", err
	}
	if version == "" {
		version = im.defaultVersion
	}
	return version, nil
}
