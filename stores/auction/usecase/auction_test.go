package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/keymutex"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/auction"
	mockAuction "github.com/auctionhaus/goapi/domain/auction/mocks"
	mockDomain "github.com/auctionhaus/goapi/domain/mocks"
	mockPricefeed "github.com/auctionhaus/goapi/domain/pricefeed/mocks"
)

var mockCtx = ctx.Background()

var (
	auctionId = auction.AuctionId("5f6b0c1e-0000-0000-0000-000000000001")
	seller    = domain.Address("0x5e11e7000000000000000000000000000000a111")
	bidderA   = domain.Address("0xb1ddeaa0000000000000000000000000000000aa")
	bidderB   = domain.Address("0xb1ddebb0000000000000000000000000000000bb")
	weth      = domain.Currency("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
	usdc      = domain.Currency("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	nftAddr   = domain.Address("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d")
)

type testsuite struct {
	suite.Suite
	mockRepo     *mockAuction.Repo
	mockActivity *mockAuction.ActivityRepo
	mockOracle   *mockPricefeed.Oracle
	mockBalance  *mockDomain.BalanceUseCase
	mockAssets   *mockDomain.AssetRegistry
	subject      auction.UseCase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockRepo = &mockAuction.Repo{}
	t.mockActivity = &mockAuction.ActivityRepo{}
	t.mockOracle = &mockPricefeed.Oracle{}
	t.mockBalance = &mockDomain.BalanceUseCase{}
	t.mockAssets = &mockDomain.AssetRegistry{}
	t.subject = &impl{
		auctionRepo:     t.mockRepo,
		activityRepo:    t.mockActivity,
		implementations: auction.NewImplementationRegistry(auction.NewImplementationV1(), auction.NewImplementationV2(500)),
		oracle:          t.mockOracle,
		balance:         t.mockBalance,
		assetRegistry:   t.mockAssets,
		locks:           keymutex.New(),
	}
}

func (t *testsuite) activeAuction() *auction.Auction {
	now := time.Now()
	return &auction.Auction{
		Id:              auctionId,
		ChainId:         domain.ChainId(1),
		Seller:          seller,
		AssetContract:   nftAddr,
		AssetId:         domain.TokenId("42"),
		PaymentCurrency: weth,
		StartTime:       now.Add(-time.Hour),
		EndTime:         now.Add(time.Hour),
		StartPrice:      "0.1",
		Implementation:  "v1",
		CreatedAt:       now.Add(-2 * time.Hour),
	}
}

func (t *testsuite) bid(bidder domain.Address, amount string) *auction.PlaceBidParams {
	v := decimal.RequireFromString(amount)
	return &auction.PlaceBidParams{
		Bidder:    bidder,
		Amount:    v,
		PaidValue: v,
		Currency:  weth,
	}
}

func (t *testsuite) TestPlaceBidNotFound() {
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(nil, nil).Once()

	_, err := t.subject.PlaceBid(mockCtx, auctionId, t.bid(bidderA, "0.2"))
	t.Equal(domain.ErrAuctionNotFound, err)
}

func (t *testsuite) TestPlaceBidPendingAuction() {
	a := t.activeAuction()
	a.StartTime = time.Now().Add(time.Hour)
	a.EndTime = time.Now().Add(2 * time.Hour)
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()

	_, err := t.subject.PlaceBid(mockCtx, auctionId, t.bid(bidderA, "0.2"))
	t.Equal(domain.ErrAuctionNotActive, err)
}

func (t *testsuite) TestPlaceBidEndedAuction() {
	a := t.activeAuction()
	a.Ended = true
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()

	_, err := t.subject.PlaceBid(mockCtx, auctionId, t.bid(bidderA, "0.2"))
	t.Equal(domain.ErrAuctionNotActive, err)
}

func (t *testsuite) TestPlaceBidValueMismatch() {
	a := t.activeAuction()
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()

	params := t.bid(bidderA, "0.2")
	params.PaidValue = decimal.RequireFromString("0.1")

	_, err := t.subject.PlaceBid(mockCtx, auctionId, params)
	t.Equal(domain.ErrBidValueMismatch, err)
	t.mockBalance.AssertNotCalled(t.T(), "Debit")
}

func (t *testsuite) TestPlaceBidBelowStartPrice() {
	a := t.activeAuction()
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()

	_, err := t.subject.PlaceBid(mockCtx, auctionId, t.bid(bidderA, "0.05"))
	t.Equal(domain.ErrBidTooLow, err)
	t.mockBalance.AssertNotCalled(t.T(), "Debit")
}

func (t *testsuite) TestPlaceBidFirstBidAtStartPrice() {
	a := t.activeAuction()
	updated := t.activeAuction()
	updated.HighestBidder = bidderA.ToLowerPtr()
	updated.HighestBid = "0.1"
	updated.EscrowedFunds = "0.1"
	updated.EscrowCurrency = weth

	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()
	t.mockBalance.On("Debit", mockCtx, domain.BalanceId{Owner: bidderA, Currency: weth}, decimal.RequireFromString("0.1")).Return(nil).Once()
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.MatchedBy(func(p *auction.PatchableAuction) bool {
		return *p.HighestBidder == bidderA.ToLower() && *p.HighestBid == "0.1" && *p.EscrowedFunds == "0.1"
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.AnythingOfType("*auction.Activity")).Return(nil).Once()
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(updated, nil).Once()

	res, err := t.subject.PlaceBid(mockCtx, auctionId, t.bid(bidderA, "0.1"))
	t.NoError(err)
	t.Equal("0.1", res.HighestBid)
	t.mockBalance.AssertNotCalled(t.T(), "Credit")
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestPlaceBidEqualToHighestRejected() {
	a := t.activeAuction()
	a.HighestBidder = bidderA.ToLowerPtr()
	a.HighestBid = "0.2"
	a.EscrowedFunds = "0.2"
	a.EscrowCurrency = weth
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()

	_, err := t.subject.PlaceBid(mockCtx, auctionId, t.bid(bidderB, "0.2"))
	t.Equal(domain.ErrBidTooLow, err)
	t.mockBalance.AssertNotCalled(t.T(), "Debit")
}

func (t *testsuite) TestPlaceBidOutbidRefundsPrevious() {
	a := t.activeAuction()
	a.HighestBidder = bidderA.ToLowerPtr()
	a.HighestBid = "0.2"
	a.EscrowedFunds = "0.2"
	a.EscrowCurrency = weth

	updated := t.activeAuction()
	updated.HighestBidder = bidderB.ToLowerPtr()
	updated.HighestBid = "0.3"
	updated.EscrowedFunds = "0.3"
	updated.EscrowCurrency = weth

	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()
	t.mockBalance.On("Debit", mockCtx, domain.BalanceId{Owner: bidderB, Currency: weth}, decimal.RequireFromString("0.3")).Return(nil).Once()
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.AnythingOfType("*auction.PatchableAuction")).Return(nil).Once()
	t.mockBalance.On("Credit", mockCtx, domain.BalanceId{Owner: bidderA.ToLower(), Currency: weth}, decimal.RequireFromString("0.2")).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.AnythingOfType("*auction.Activity")).Return(nil).Once()
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(updated, nil).Once()

	res, err := t.subject.PlaceBid(mockCtx, auctionId, t.bid(bidderB, "0.3"))
	t.NoError(err)
	t.Equal(bidderB.ToLowerPtr(), res.HighestBidder)
	t.mockBalance.AssertExpectations(t.T())
}

func (t *testsuite) TestPlaceBidCrossCurrency() {
	a := t.activeAuction()
	updated := t.activeAuction()
	updated.HighestBidder = bidderA.ToLowerPtr()
	updated.HighestBid = "0.15"
	updated.EscrowedFunds = "450"
	updated.EscrowCurrency = usdc

	params := t.bid(bidderA, "450")
	params.Currency = usdc

	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()
	t.mockOracle.On("Normalize", mockCtx, decimal.RequireFromString("450"), usdc, weth).Return(decimal.RequireFromString("0.15"), nil).Once()
	t.mockBalance.On("Debit", mockCtx, domain.BalanceId{Owner: bidderA, Currency: usdc}, decimal.RequireFromString("450")).Return(nil).Once()
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.MatchedBy(func(p *auction.PatchableAuction) bool {
		return *p.HighestBid == "0.15" && *p.EscrowedFunds == "450" && *p.EscrowCurrency == usdc
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.AnythingOfType("*auction.Activity")).Return(nil).Once()
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(updated, nil).Once()

	res, err := t.subject.PlaceBid(mockCtx, auctionId, params)
	t.NoError(err)
	t.Equal("0.15", res.HighestBid)
	t.mockOracle.AssertExpectations(t.T())
}

func (t *testsuite) TestPlaceBidInsufficientFunds() {
	a := t.activeAuction()
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()
	t.mockBalance.On("Debit", mockCtx, domain.BalanceId{Owner: bidderA, Currency: weth}, decimal.RequireFromString("0.2")).Return(domain.ErrInsufficientFunds).Once()

	_, err := t.subject.PlaceBid(mockCtx, auctionId, t.bid(bidderA, "0.2"))
	t.Equal(domain.ErrInsufficientFunds, err)
	t.mockRepo.AssertNotCalled(t.T(), "Patch")
}

func (t *testsuite) TestEndAuctionNotYetEndable() {
	a := t.activeAuction()
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()

	_, err := t.subject.EndAuction(mockCtx, auctionId, seller)
	t.Equal(domain.ErrAuctionNotYetEndable, err)
	t.mockRepo.AssertNotCalled(t.T(), "Patch")
}

func (t *testsuite) TestEndAuctionAlreadyEnded() {
	a := t.activeAuction()
	a.EndTime = time.Now().Add(-time.Minute)
	a.Ended = true
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()

	_, err := t.subject.EndAuction(mockCtx, auctionId, seller)
	t.Equal(domain.ErrAlreadyEnded, err)
	t.mockRepo.AssertNotCalled(t.T(), "Patch")
	t.mockAssets.AssertNotCalled(t.T(), "TransferOwnership")
}

func (t *testsuite) TestEndAuctionNoBidder() {
	a := t.activeAuction()
	a.EndTime = time.Now().Add(-time.Minute)
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.MatchedBy(func(p *auction.PatchableAuction) bool {
		return p.Ended != nil && *p.Ended
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.AnythingOfType("*auction.Activity")).Return(nil).Once()

	res, err := t.subject.EndAuction(mockCtx, auctionId, seller)
	t.NoError(err)
	t.True(res.Ended)
	t.mockBalance.AssertNotCalled(t.T(), "Credit")
	t.mockAssets.AssertNotCalled(t.T(), "TransferOwnership")
}

func (t *testsuite) TestEndAuctionSettlesWinner() {
	a := t.activeAuction()
	a.EndTime = time.Now().Add(-time.Minute)
	a.HighestBidder = bidderA.ToLowerPtr()
	a.HighestBid = "0.2"
	a.EscrowedFunds = "0.2"
	a.EscrowCurrency = weth

	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.AnythingOfType("*auction.PatchableAuction")).Return(nil).Once()
	t.mockBalance.On("Credit", mockCtx, domain.BalanceId{Owner: seller, Currency: weth}, decimal.RequireFromString("0.2")).Return(nil).Once()
	t.mockAssets.On("TransferOwnership", mockCtx, domain.ChainId(1), nftAddr, domain.TokenId("42"), seller, bidderA.ToLower()).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.AnythingOfType("*auction.Activity")).Return(nil).Once()

	res, err := t.subject.EndAuction(mockCtx, auctionId, seller)
	t.NoError(err)
	t.True(res.Ended)
	t.mockBalance.AssertExpectations(t.T())
	t.mockAssets.AssertExpectations(t.T())
}

func (t *testsuite) TestPlaceBidRefundFailureRollsBack() {
	a := t.activeAuction()
	a.HighestBidder = bidderA.ToLowerPtr()
	a.HighestBid = "0.2"
	a.EscrowedFunds = "0.2"
	a.EscrowCurrency = weth

	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()
	t.mockBalance.On("Debit", mockCtx, domain.BalanceId{Owner: bidderB, Currency: weth}, decimal.RequireFromString("0.3")).Return(nil).Once()
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.MatchedBy(func(p *auction.PatchableAuction) bool {
		return p.HighestBid != nil && *p.HighestBid == "0.3"
	})).Return(nil).Once()
	t.mockBalance.On("Credit", mockCtx, domain.BalanceId{Owner: bidderA.ToLower(), Currency: weth}, decimal.RequireFromString("0.2")).Return(errors.New("mongo down")).Once()

	// the superseded bid is restored and the new escrow released
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.MatchedBy(func(p *auction.PatchableAuction) bool {
		return p.HighestBidder != nil && *p.HighestBidder == bidderA.ToLower() &&
			p.HighestBid != nil && *p.HighestBid == "0.2" &&
			p.EscrowedFunds != nil && *p.EscrowedFunds == "0.2"
	})).Return(nil).Once()
	t.mockBalance.On("Credit", mockCtx, domain.BalanceId{Owner: bidderB, Currency: weth}, decimal.RequireFromString("0.3")).Return(nil).Once()

	_, err := t.subject.PlaceBid(mockCtx, auctionId, t.bid(bidderB, "0.3"))
	t.Error(err)
	t.mockRepo.AssertExpectations(t.T())
	t.mockBalance.AssertExpectations(t.T())
}

func (t *testsuite) TestEndAuctionCreditFailureRetryable() {
	a := t.activeAuction()
	a.EndTime = time.Now().Add(-time.Minute)
	a.HighestBidder = bidderA.ToLowerPtr()
	a.HighestBid = "0.2"
	a.EscrowedFunds = "0.2"
	a.EscrowCurrency = weth

	sellerId := domain.BalanceId{Owner: seller, Currency: weth}
	escrow := decimal.RequireFromString("0.2")

	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.MatchedBy(func(p *auction.PatchableAuction) bool {
		return p.Ended != nil && *p.Ended
	})).Return(nil).Once()
	t.mockBalance.On("Credit", mockCtx, sellerId, escrow).Return(errors.New("mongo down")).Once()
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.MatchedBy(func(p *auction.PatchableAuction) bool {
		return p.Ended != nil && !*p.Ended
	})).Return(nil).Once()

	_, err := t.subject.EndAuction(mockCtx, auctionId, seller)
	t.Error(err)
	t.mockAssets.AssertNotCalled(t.T(), "TransferOwnership")

	// the flag was rolled back, a retry settles in full
	retry := t.activeAuction()
	retry.EndTime = a.EndTime
	retry.HighestBidder = bidderA.ToLowerPtr()
	retry.HighestBid = "0.2"
	retry.EscrowedFunds = "0.2"
	retry.EscrowCurrency = weth

	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(retry, nil).Once()
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.MatchedBy(func(p *auction.PatchableAuction) bool {
		return p.Ended != nil && *p.Ended
	})).Return(nil).Once()
	t.mockBalance.On("Credit", mockCtx, sellerId, escrow).Return(nil).Once()
	t.mockAssets.On("TransferOwnership", mockCtx, domain.ChainId(1), nftAddr, domain.TokenId("42"), seller, bidderA.ToLower()).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.AnythingOfType("*auction.Activity")).Return(nil).Once()

	res, err := t.subject.EndAuction(mockCtx, auctionId, seller)
	t.NoError(err)
	t.True(res.Ended)
	t.mockRepo.AssertExpectations(t.T())
	t.mockBalance.AssertExpectations(t.T())
	t.mockAssets.AssertExpectations(t.T())
}

func (t *testsuite) TestEndAuctionTransferFailureRollsBack() {
	a := t.activeAuction()
	a.EndTime = time.Now().Add(-time.Minute)
	a.HighestBidder = bidderA.ToLowerPtr()
	a.HighestBid = "0.2"
	a.EscrowedFunds = "0.2"
	a.EscrowCurrency = weth

	sellerId := domain.BalanceId{Owner: seller, Currency: weth}
	escrow := decimal.RequireFromString("0.2")

	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.MatchedBy(func(p *auction.PatchableAuction) bool {
		return p.Ended != nil && *p.Ended
	})).Return(nil).Once()
	t.mockBalance.On("Credit", mockCtx, sellerId, escrow).Return(nil).Once()
	t.mockAssets.On("TransferOwnership", mockCtx, domain.ChainId(1), nftAddr, domain.TokenId("42"), seller, bidderA.ToLower()).Return(errors.New("rpc timeout")).Once()

	// the proceeds credit is compensated and the flag rolled back
	t.mockBalance.On("Debit", mockCtx, sellerId, escrow).Return(nil).Once()
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.MatchedBy(func(p *auction.PatchableAuction) bool {
		return p.Ended != nil && !*p.Ended
	})).Return(nil).Once()

	_, err := t.subject.EndAuction(mockCtx, auctionId, seller)
	t.Error(err)
	t.mockRepo.AssertExpectations(t.T())
	t.mockBalance.AssertExpectations(t.T())
}

func (t *testsuite) TestGetAuctionInfo() {
	a := t.activeAuction()
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()

	info, err := t.subject.GetAuctionInfo(mockCtx, auctionId)
	t.NoError(err)
	t.Equal(auction.StatusActive, info.Status)
	t.Equal(seller, info.Seller)
	t.Equal("0.1", info.StartPrice)
	t.Nil(info.HighestBidder)
}

func (t *testsuite) TestGetAuctionInfoNotFound() {
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(nil, nil).Once()

	_, err := t.subject.GetAuctionInfo(mockCtx, auctionId)
	t.Equal(domain.ErrAuctionNotFound, err)
}

func (t *testsuite) TestIndependentAuctions() {
	otherId := auction.AuctionId("5f6b0c1e-0000-0000-0000-000000000002")
	a := t.activeAuction()
	b := t.activeAuction()
	b.Id = otherId
	b.HighestBidder = bidderA.ToLowerPtr()
	b.HighestBid = "5"
	b.EscrowedFunds = "5"
	b.EscrowCurrency = weth

	// a fresh auction still accepts a start-price bid even though a
	// sibling carries a much higher one
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()
	t.mockBalance.On("Debit", mockCtx, domain.BalanceId{Owner: bidderB, Currency: weth}, decimal.RequireFromString("0.1")).Return(nil).Once()
	t.mockRepo.On("Patch", mockCtx, auctionId, mock.AnythingOfType("*auction.PatchableAuction")).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.AnythingOfType("*auction.Activity")).Return(nil).Once()
	t.mockRepo.On("FindOne", mockCtx, auctionId).Return(a, nil).Once()

	_, err := t.subject.PlaceBid(mockCtx, auctionId, t.bid(bidderB, "0.1"))
	t.NoError(err)

	t.mockRepo.On("FindOne", mockCtx, otherId).Return(b, nil).Once()
	info, err := t.subject.GetAuctionInfo(mockCtx, otherId)
	t.NoError(err)
	t.Equal("5", info.HighestBid)
}
