package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/domain"
	mockDomain "github.com/auctionhaus/goapi/domain/mocks"
)

var mockCtx = ctx.Background()

var (
	owner = domain.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	weth  = domain.Currency("0xcccccccccccccccccccccccccccccccccccccccc")
)

type testsuite struct {
	suite.Suite
	mockRepo *mockDomain.BalanceRepo
	subject  domain.BalanceUseCase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockRepo = &mockDomain.BalanceRepo{}
	t.subject = New(&BalanceCfg{BalanceRepo: t.mockRepo})
}

func (t *testsuite) balance(available string) *domain.Balance {
	return &domain.Balance{
		Owner:     owner,
		Currency:  weth,
		Available: available,
		UpdatedAt: time.Now(),
	}
}

func (t *testsuite) expectUpsert(available string) {
	t.mockRepo.On("Upsert", mockCtx, mock.MatchedBy(func(b *domain.Balance) bool {
		return b.Owner == owner && b.Currency == weth && b.Available == available
	})).Return(nil).Once()
}

func (t *testsuite) TestDepositFromEmpty() {
	id := domain.BalanceId{Owner: owner, Currency: weth}

	t.mockRepo.On("FindOne", mockCtx, id).Return(nil, nil).Once()
	t.expectUpsert("5")
	t.mockRepo.On("FindOne", mockCtx, id).Return(t.balance("5"), nil).Once()

	res, err := t.subject.Deposit(mockCtx, id, decimal.NewFromInt(5))
	t.NoError(err)
	t.Equal("5", res.Available)
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestDepositRejectsNonPositive() {
	id := domain.BalanceId{Owner: owner, Currency: weth}

	_, err := t.subject.Deposit(mockCtx, id, decimal.Zero)
	t.Equal(domain.ErrInvalidNumberFmt, err)
	t.mockRepo.AssertNotCalled(t.T(), "Upsert")
}

func (t *testsuite) TestWithdrawInsufficient() {
	id := domain.BalanceId{Owner: owner, Currency: weth}

	t.mockRepo.On("FindOne", mockCtx, id).Return(t.balance("3"), nil).Once()

	_, err := t.subject.Withdraw(mockCtx, id, decimal.NewFromInt(5))
	t.Equal(domain.ErrInsufficientFunds, err)
	t.mockRepo.AssertNotCalled(t.T(), "Upsert")
}

func (t *testsuite) TestWithdraw() {
	id := domain.BalanceId{Owner: owner, Currency: weth}

	t.mockRepo.On("FindOne", mockCtx, id).Return(t.balance("5"), nil).Once()
	t.expectUpsert("3")
	t.mockRepo.On("FindOne", mockCtx, id).Return(t.balance("3"), nil).Once()

	res, err := t.subject.Withdraw(mockCtx, id, decimal.NewFromInt(2))
	t.NoError(err)
	t.Equal("3", res.Available)
}

func (t *testsuite) TestDebitAgainstMissingLedger() {
	id := domain.BalanceId{Owner: owner, Currency: weth}

	t.mockRepo.On("FindOne", mockCtx, id).Return(nil, nil).Once()

	err := t.subject.Debit(mockCtx, id, decimal.NewFromInt(1))
	t.Equal(domain.ErrInsufficientFunds, err)
}

func (t *testsuite) TestCreditAccumulates() {
	id := domain.BalanceId{Owner: owner, Currency: weth}

	t.mockRepo.On("FindOne", mockCtx, id).Return(t.balance("0.1"), nil).Once()
	t.expectUpsert("0.3")

	t.NoError(t.subject.Credit(mockCtx, id, decimal.RequireFromString("0.2")))
	t.mockRepo.AssertExpectations(t.T())
}
