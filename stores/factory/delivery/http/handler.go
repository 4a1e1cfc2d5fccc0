package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/labstack/echo/v4"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/delivery"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/auction"
	"github.com/auctionhaus/goapi/domain/crosschain"
	"github.com/auctionhaus/goapi/middleware"
	authMiddleware "github.com/auctionhaus/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	factory auction.Factory
}

// New registers the factory routes. Implementation upgrades and the
// cross-chain ingress are admin surfaces.
func New(e *echo.Echo, factory auction.Factory, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{factory}

	e.GET("/auctions", h.getAll, middleware.CacheHttp(10*time.Second))
	e.POST("/auctions", h.create, authMiddleware.Auth())
	e.POST("/factory/implementation", h.upgrade, authMiddleware.Auth(), authMiddleware.IsAdmin())
	e.POST("/crosschain/message", h.handleMessage, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Offset int `query:"offset"`
		Limit  int `query:"limit"`
	}

	p := &params{Limit: 32}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.factory.GetAllAuctions(ctx, p.Offset, p.Limit); err != nil {
		ctx.WithField("err", err).Error("factory.GetAllAuctions failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	seller := c.Get("address").(domain.Address)

	type payload struct {
		AssetContract   domain.Address  `json:"assetContract"`
		AssetId         domain.TokenId  `json:"assetId"`
		PaymentCurrency domain.Currency `json:"paymentCurrency"`
		StartTime       time.Time       `json:"startTime"`
		EndTime         time.Time       `json:"endTime"`
		StartPrice      string          `json:"startPrice"`
	}

	p := &payload{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	startPrice, err := decimal.NewFromString(p.StartPrice)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAuctionParameters)
	}

	res, err := h.factory.CreateAuction(ctx, &auction.CreateAuctionParams{
		Seller:          seller,
		AssetContract:   p.AssetContract,
		AssetId:         p.AssetId,
		PaymentCurrency: p.PaymentCurrency,
		StartTime:       p.StartTime,
		EndTime:         p.EndTime,
		StartPrice:      startPrice,
	})
	switch err {
	case nil:
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	case domain.ErrInvalidAuctionParameters, domain.ErrUnsupportedCurrency:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	case domain.ErrAssetNotAuthorized:
		return delivery.MakeJsonResp(c, http.StatusForbidden, err)
	default:
		ctx.WithField("err", err).Error("factory.CreateAuction failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}

func (h *handler) upgrade(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Version string `json:"version"`
	}

	p := &payload{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.factory.UpgradeImplementation(ctx, p.Version); err == domain.ErrUnknownImplementation {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("factory.UpgradeImplementation failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

func (h *handler) handleMessage(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Origin  domain.Address     `json:"origin"`
		Message crosschain.Message `json:"message"`
	}

	p := &payload{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.factory.HandleCrossChainMessage(ctx, p.Origin, &p.Message)
	switch err {
	case nil:
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	case domain.ErrUnauthorizedOrigin:
		return delivery.MakeJsonResp(c, http.StatusForbidden, err)
	case domain.ErrInvalidAuctionParameters, domain.ErrUnsupportedCurrency:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	case domain.ErrAssetNotAuthorized:
		return delivery.MakeJsonResp(c, http.StatusForbidden, err)
	default:
		ctx.WithField("err", err).Error("factory.HandleCrossChainMessage failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}
