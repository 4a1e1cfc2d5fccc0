package http

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/labstack/echo/v4"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/delivery"
	"github.com/auctionhaus/goapi/domain"
	authMiddleware "github.com/auctionhaus/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	balance domain.BalanceUseCase
}

// New registers balance routes. Deposits and withdrawals act on the
// authenticated caller's own ledger only.
func New(e *echo.Echo, balance domain.BalanceUseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{balance}

	g := e.Group("/balances")
	g.GET("", h.getOwn, authMiddleware.Auth())
	g.POST("/deposit", h.deposit, authMiddleware.Auth())
	g.POST("/withdraw", h.withdraw, authMiddleware.Auth())
}

func (h *handler) getOwn(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	owner := c.Get("address").(domain.Address)

	if res, err := h.balance.GetByOwner(ctx, owner); err != nil {
		ctx.WithField("err", err).Error("balance.GetByOwner failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

type movePayload struct {
	Currency domain.Currency `json:"currency"`
	Amount   string          `json:"amount"`
}

func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	owner := c.Get("address").(domain.Address)

	p := &movePayload{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFmt)
	}

	id := domain.BalanceId{Owner: owner, Currency: p.Currency}
	if res, err := h.balance.Deposit(ctx, id, amount); err == domain.ErrInvalidNumberFmt {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("balance.Deposit failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	owner := c.Get("address").(domain.Address)

	p := &movePayload{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFmt)
	}

	id := domain.BalanceId{Owner: owner, Currency: p.Currency}
	if res, err := h.balance.Withdraw(ctx, id, amount); err == domain.ErrInsufficientFunds || err == domain.ErrInvalidNumberFmt {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("balance.Withdraw failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}
