package http

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/labstack/echo/v4"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/delivery"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/auction"
	authMiddleware "github.com/auctionhaus/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	auction  auction.UseCase
	activity auction.ActivityRepo
}

func New(e *echo.Echo, uc auction.UseCase, activity auction.ActivityRepo, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{uc, activity}

	g := e.Group("/auctions")
	g.GET("/:id", h.getInfo, authMiddleware.OptionalAuth())
	g.GET("/:id/activities", h.getActivities)
	g.POST("/:id/bids", h.placeBid, authMiddleware.Auth())
	g.POST("/:id/end", h.end, authMiddleware.Auth())
}

func (h *handler) getInfo(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address")

	user := domain.Address("")

	if address != nil {
		user = address.(domain.Address)
	}

	type params struct {
		Id auction.AuctionId `param:"id"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.GetAuctionInfo(ctx, p.Id)
	if err == domain.ErrAuctionNotFound {
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("auction.GetAuctionInfo failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	if user.IsEmpty() {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}

	out := struct {
		*auction.Info
		IsSeller        bool `json:"isSeller"`
		IsHighestBidder bool `json:"isHighestBidder"`
	}{
		Info:            res,
		IsSeller:        user.Equals(res.Seller),
		IsHighestBidder: res.HighestBidder != nil && user.Equals(*res.HighestBidder),
	}
	return delivery.MakeJsonResp(c, http.StatusOK, out)
}

func (h *handler) getActivities(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Id     auction.AuctionId `param:"id"`
		Offset int               `query:"offset"`
		Limit  int               `query:"limit"`
	}

	p := &params{Limit: 32}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.activity.FindByAuction(ctx, p.Id, p.Offset, p.Limit); err != nil {
		ctx.WithField("err", err).Error("activity.FindByAuction failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	bidder := c.Get("address").(domain.Address)

	type payload struct {
		Id        auction.AuctionId `param:"id"`
		Amount    string            `json:"amount"`
		PaidValue string            `json:"paidValue"`
		Currency  domain.Currency   `json:"currency"`
	}

	p := &payload{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFmt)
	}
	paidValue, err := decimal.NewFromString(p.PaidValue)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFmt)
	}

	res, err := h.auction.PlaceBid(ctx, p.Id, &auction.PlaceBidParams{
		Bidder:    bidder,
		Amount:    amount,
		PaidValue: paidValue,
		Currency:  p.Currency,
	})
	switch err {
	case nil:
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	case domain.ErrAuctionNotFound:
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	case domain.ErrAuctionNotActive, domain.ErrBidTooLow, domain.ErrBidValueMismatch, domain.ErrInsufficientFunds, domain.ErrUnsupportedCurrency:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	default:
		ctx.WithField("err", err).Error("auction.PlaceBid failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}

func (h *handler) end(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Id auction.AuctionId `param:"id"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.EndAuction(ctx, p.Id, caller)
	switch err {
	case nil:
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	case domain.ErrAuctionNotFound:
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	case domain.ErrAuctionNotYetEndable, domain.ErrAlreadyEnded:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	default:
		ctx.WithField("err", err).Error("auction.EndAuction failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}
