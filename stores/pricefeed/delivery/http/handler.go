package http

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/labstack/echo/v4"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/delivery"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/pricefeed"
	authMiddleware "github.com/auctionhaus/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	oracle pricefeed.Oracle
}

// New registers the price oracle routes. Setting a price is an admin
// operation.
func New(e *echo.Echo, oracle pricefeed.Oracle, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{oracle}

	g := e.Group("/oracle")
	g.GET("/price", h.getPrice)
	g.GET("/normalize", h.normalize)
	g.POST("/price", h.setPrice, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func (h *handler) getPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Currency domain.Currency `query:"currency"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if price, err := h.oracle.GetPrice(ctx, p.Currency); err == domain.ErrUnsupportedCurrency {
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("oracle.GetPrice failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		res := struct {
			Currency domain.Currency `json:"currency"`
			Price    string          `json:"price"`
		}{p.Currency.ToLower(), price.String()}
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) normalize(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Amount string          `query:"amount"`
		From   domain.Currency `query:"from"`
		To     domain.Currency `query:"to"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFmt)
	}

	if converted, err := h.oracle.Normalize(ctx, amount, p.From, p.To); err == domain.ErrUnsupportedCurrency {
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("oracle.Normalize failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		res := struct {
			Amount string `json:"amount"`
		}{converted.String()}
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) setPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Currency domain.Currency `json:"currency"`
		Price    string          `json:"price"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFmt)
	}

	if err := h.oracle.SetPrice(ctx, p.Currency, price); err == domain.ErrInvalidPrice {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("oracle.SetPrice failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}
