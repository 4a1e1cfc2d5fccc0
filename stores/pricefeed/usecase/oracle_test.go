package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/pricefeed"
	mockPricefeed "github.com/auctionhaus/goapi/domain/pricefeed/mocks"
)

var mockCtx = ctx.Background()

const (
	eth = domain.Currency("0x0000000000000000000000000000000000000000")
	usd = domain.Currency("0x1111111111111111111111111111111111111111")
)

type testsuite struct {
	suite.Suite
	mockRepo *mockPricefeed.Repo
	subject  pricefeed.Oracle
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockRepo = &mockPricefeed.Repo{}
	t.subject = NewOracle(&OracleCfg{
		PriceFeedRepo: t.mockRepo,
		CacheTtl:      time.Minute,
	})
}

func (t *testsuite) feed(currency domain.Currency, price string) *pricefeed.PriceFeed {
	return &pricefeed.PriceFeed{
		Currency:  currency,
		UnitPrice: price,
		UpdatedAt: time.Now(),
	}
}

func (t *testsuite) TestGetPrice() {
	t.mockRepo.On("FindOne", mockCtx, eth).Return(t.feed(eth, "3000"), nil).Once()

	price, err := t.subject.GetPrice(mockCtx, eth)
	t.NoError(err)
	t.True(price.Equal(decimal.NewFromInt(3000)))

	// second read is served from cache
	price, err = t.subject.GetPrice(mockCtx, eth)
	t.NoError(err)
	t.True(price.Equal(decimal.NewFromInt(3000)))
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestGetPriceUnsupported() {
	t.mockRepo.On("FindOne", mockCtx, eth).Return(nil, nil).Once()

	_, err := t.subject.GetPrice(mockCtx, eth)
	t.Equal(domain.ErrUnsupportedCurrency, err)
}

func (t *testsuite) TestSetPriceRejectsNonPositive() {
	t.Equal(domain.ErrInvalidPrice, t.subject.SetPrice(mockCtx, eth, decimal.Zero))
	t.Equal(domain.ErrInvalidPrice, t.subject.SetPrice(mockCtx, eth, decimal.NewFromInt(-1)))
	t.mockRepo.AssertNotCalled(t.T(), "Upsert")
}

func (t *testsuite) TestSetPriceInvalidatesCache() {
	t.mockRepo.On("FindOne", mockCtx, eth).Return(t.feed(eth, "3000"), nil).Once()

	price, err := t.subject.GetPrice(mockCtx, eth)
	t.NoError(err)
	t.True(price.Equal(decimal.NewFromInt(3000)))

	t.mockRepo.On("Upsert", mockCtx, mock.AnythingOfType("*pricefeed.PriceFeed")).Return(nil).Once()
	t.NoError(t.subject.SetPrice(mockCtx, eth, decimal.NewFromInt(3100)))

	// the stale cached value is gone, the repo is hit again
	t.mockRepo.On("FindOne", mockCtx, eth).Return(t.feed(eth, "3100"), nil).Once()
	price, err = t.subject.GetPrice(mockCtx, eth)
	t.NoError(err)
	t.True(price.Equal(decimal.NewFromInt(3100)))
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestNormalize() {
	t.mockRepo.On("FindOne", mockCtx, eth).Return(t.feed(eth, "3000"), nil).Once()
	t.mockRepo.On("FindOne", mockCtx, usd).Return(t.feed(usd, "1"), nil).Once()

	amount := decimal.RequireFromString("0.2")
	converted, err := t.subject.Normalize(mockCtx, amount, eth, usd)
	t.NoError(err)
	t.True(converted.Equal(decimal.NewFromInt(600)))
}

func (t *testsuite) TestNormalizeTruncatesTowardZero() {
	t.mockRepo.On("FindOne", mockCtx, eth).Return(t.feed(eth, "1"), nil).Once()
	t.mockRepo.On("FindOne", mockCtx, usd).Return(t.feed(usd, "3"), nil).Once()

	converted, err := t.subject.Normalize(mockCtx, decimal.NewFromInt(1), eth, usd)
	t.NoError(err)
	t.True(converted.Equal(decimal.RequireFromString("0.333333333333333333")), converted.String())
	t.Equal(int32(-18), converted.Exponent())
}

func (t *testsuite) TestNormalizeSameCurrency() {
	t.mockRepo.On("FindOne", mockCtx, eth).Return(t.feed(eth, "3000"), nil).Once()

	amount := decimal.RequireFromString("1.5")
	converted, err := t.subject.Normalize(mockCtx, amount, eth, eth)
	t.NoError(err)
	t.True(converted.Equal(amount))
}

func (t *testsuite) TestNormalizeSameCurrencyUnregistered() {
	t.mockRepo.On("FindOne", mockCtx, eth).Return(nil, nil).Once()

	_, err := t.subject.Normalize(mockCtx, decimal.NewFromInt(1), eth, eth)
	t.Equal(domain.ErrUnsupportedCurrency, err)
}

func (t *testsuite) TestNormalizeRoundTrip() {
	t.mockRepo.On("FindOne", mockCtx, eth).Return(t.feed(eth, "3000"), nil).Once()
	t.mockRepo.On("FindOne", mockCtx, usd).Return(t.feed(usd, "7"), nil).Once()

	amount := decimal.RequireFromString("1.234567")
	there, err := t.subject.Normalize(mockCtx, amount, eth, usd)
	t.NoError(err)
	back, err := t.subject.Normalize(mockCtx, there, usd, eth)
	t.NoError(err)

	// each leg truncates, so the composition loses at most one unit in
	// the last kept digit
	ulp := decimal.New(1, -pricefeed.NormalizeScale)
	t.True(amount.Sub(back).Abs().LessThanOrEqual(ulp), back.String())
}

func (t *testsuite) TestNormalizeUnsupportedLeg() {
	t.mockRepo.On("FindOne", mockCtx, eth).Return(t.feed(eth, "3000"), nil).Once()
	t.mockRepo.On("FindOne", mockCtx, usd).Return(nil, nil).Once()

	_, err := t.subject.Normalize(mockCtx, decimal.NewFromInt(1), eth, usd)
	t.Equal(domain.ErrUnsupportedCurrency, err)
}
