package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/auction"
	mockAuction "github.com/auctionhaus/goapi/domain/auction/mocks"
	"github.com/auctionhaus/goapi/domain/crosschain"
	mockDomain "github.com/auctionhaus/goapi/domain/mocks"
	mockPricefeed "github.com/auctionhaus/goapi/domain/pricefeed/mocks"
)

var mockCtx = ctx.Background()

var (
	seller   = domain.Address("0x5e11e7000000000000000000000000000000a111")
	operator = domain.Address("0x0perat0r00000000000000000000000000000123")
	router   = domain.Address("0xr0uter0000000000000000000000000000000999")
	remote   = domain.Address("0xremote0000000000000000000000000000000777")
	weth     = domain.Currency("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
	nftAddr  = domain.Address("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d")
	tokenId  = domain.TokenId("42")
	chainId  = domain.ChainId(1)
)

type testsuite struct {
	suite.Suite
	mockRepo     *mockAuction.Repo
	mockActivity *mockAuction.ActivityRepo
	mockImplRepo *mockAuction.ImplementationRepo
	mockOracle   *mockPricefeed.Oracle
	mockAssets   *mockDomain.AssetRegistry
	subject      auction.Factory
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockRepo = &mockAuction.Repo{}
	t.mockActivity = &mockAuction.ActivityRepo{}
	t.mockImplRepo = &mockAuction.ImplementationRepo{}
	t.mockOracle = &mockPricefeed.Oracle{}
	t.mockAssets = &mockDomain.AssetRegistry{}
	t.subject = New(&FactoryCfg{
		AuctionRepo:        t.mockRepo,
		ActivityRepo:       t.mockActivity,
		ImplementationRepo: t.mockImplRepo,
		Implementations:    auction.NewImplementationRegistry(auction.NewImplementationV1(), auction.NewImplementationV2(500)),
		Oracle:             t.mockOracle,
		AssetRegistry:      t.mockAssets,
		Operator:           operator,
		DefaultVersion:     "v1",
		ChainId:            chainId,
		Router:             router,
		AllowedSenders:     []domain.Address{remote},
	})
}

func (t *testsuite) params() *auction.CreateAuctionParams {
	now := time.Now()
	return &auction.CreateAuctionParams{
		Seller:          seller,
		AssetContract:   nftAddr,
		AssetId:         tokenId,
		PaymentCurrency: weth,
		StartTime:       now.Add(time.Minute),
		EndTime:         now.Add(time.Hour),
		StartPrice:      decimal.RequireFromString("0.1"),
	}
}

func (t *testsuite) expectAuthorizedAsset() {
	t.mockOracle.On("GetPrice", mockCtx, weth).Return(decimal.NewFromInt(1), nil).Once()
	t.mockAssets.On("IsAssetContract", mockCtx, chainId, nftAddr).Return(true, nil).Once()
	t.mockAssets.On("OwnerOf", mockCtx, chainId, nftAddr, tokenId).Return(seller, nil).Once()
	t.mockAssets.On("IsApproved", mockCtx, chainId, nftAddr, tokenId, operator.ToLower()).Return(true, nil).Once()
}

func (t *testsuite) TestCreateAuctionInvalidTiming() {
	p := t.params()
	p.StartTime, p.EndTime = p.EndTime, p.StartTime

	_, err := t.subject.CreateAuction(mockCtx, p)
	t.Equal(domain.ErrInvalidAuctionParameters, err)
	t.mockRepo.AssertNotCalled(t.T(), "Insert")
}

func (t *testsuite) TestCreateAuctionInvalidStartPrice() {
	p := t.params()
	p.StartPrice = decimal.Zero

	_, err := t.subject.CreateAuction(mockCtx, p)
	t.Equal(domain.ErrInvalidAuctionParameters, err)
}

func (t *testsuite) TestCreateAuctionUnsupportedCurrency() {
	p := t.params()
	t.mockOracle.On("GetPrice", mockCtx, weth).Return(decimal.Zero, domain.ErrUnsupportedCurrency).Once()

	_, err := t.subject.CreateAuction(mockCtx, p)
	t.Equal(domain.ErrUnsupportedCurrency, err)
}

func (t *testsuite) TestCreateAuctionNotAssetContract() {
	p := t.params()
	t.mockOracle.On("GetPrice", mockCtx, weth).Return(decimal.NewFromInt(1), nil).Once()
	t.mockAssets.On("IsAssetContract", mockCtx, chainId, nftAddr).Return(false, nil).Once()

	_, err := t.subject.CreateAuction(mockCtx, p)
	t.Equal(domain.ErrInvalidAuctionParameters, err)
	t.mockAssets.AssertNotCalled(t.T(), "OwnerOf")
}

func (t *testsuite) TestCreateAuctionNotOwner() {
	p := t.params()
	t.mockOracle.On("GetPrice", mockCtx, weth).Return(decimal.NewFromInt(1), nil).Once()
	t.mockAssets.On("IsAssetContract", mockCtx, chainId, nftAddr).Return(true, nil).Once()
	t.mockAssets.On("OwnerOf", mockCtx, chainId, nftAddr, tokenId).Return(domain.Address("0xsomebodyelse"), nil).Once()

	_, err := t.subject.CreateAuction(mockCtx, p)
	t.Equal(domain.ErrAssetNotAuthorized, err)
}

func (t *testsuite) TestCreateAuctionNotApproved() {
	p := t.params()
	t.mockOracle.On("GetPrice", mockCtx, weth).Return(decimal.NewFromInt(1), nil).Once()
	t.mockAssets.On("IsAssetContract", mockCtx, chainId, nftAddr).Return(true, nil).Once()
	t.mockAssets.On("OwnerOf", mockCtx, chainId, nftAddr, tokenId).Return(seller, nil).Once()
	t.mockAssets.On("IsApproved", mockCtx, chainId, nftAddr, tokenId, operator.ToLower()).Return(false, nil).Once()

	_, err := t.subject.CreateAuction(mockCtx, p)
	t.Equal(domain.ErrAssetNotAuthorized, err)
	t.mockRepo.AssertNotCalled(t.T(), "Insert")
}

func (t *testsuite) TestCreateAuctionBindsCurrentImplementation() {
	t.expectAuthorizedAsset()
	t.mockImplRepo.On("GetCurrent", mockCtx).Return("", nil).Once()
	t.mockRepo.On("Insert", mockCtx, mock.MatchedBy(func(a *auction.Auction) bool {
		return a.Implementation == "v1" && a.Seller == seller && a.Id != ""
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.AnythingOfType("*auction.Activity")).Return(nil).Once()

	res, err := t.subject.CreateAuction(mockCtx, t.params())
	t.NoError(err)
	t.Equal("v1", res.Implementation)
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestGetAllAuctions() {
	items := []*auction.Auction{
		{Id: auction.AuctionId("a-1")},
		{Id: auction.AuctionId("a-2")},
	}
	t.mockRepo.On("FindAll", mockCtx, 0, 2).Return(items, nil).Once()
	t.mockRepo.On("Count", mockCtx).Return(7, nil).Once()

	res, err := t.subject.GetAllAuctions(mockCtx, 0, 2)
	t.NoError(err)
	t.Len(res.Items, 2)
	t.Equal(7, res.Count)
}

func (t *testsuite) TestUpgradeAffectsOnlyNewAuctions() {
	t.mockImplRepo.On("SetCurrent", mockCtx, "v2").Return(nil).Once()
	t.NoError(t.subject.UpgradeImplementation(mockCtx, "v2"))

	t.expectAuthorizedAsset()
	t.mockImplRepo.On("GetCurrent", mockCtx).Return("v2", nil).Once()
	t.mockRepo.On("Insert", mockCtx, mock.MatchedBy(func(a *auction.Auction) bool {
		return a.Implementation == "v2"
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.AnythingOfType("*auction.Activity")).Return(nil).Once()

	res, err := t.subject.CreateAuction(mockCtx, t.params())
	t.NoError(err)
	t.Equal("v2", res.Implementation)
}

func (t *testsuite) TestUpgradeUnknownVersion() {
	t.Equal(domain.ErrUnknownImplementation, t.subject.UpgradeImplementation(mockCtx, "v9"))
	t.mockImplRepo.AssertNotCalled(t.T(), "SetCurrent")
}

func (t *testsuite) crossChainMessage() *crosschain.Message {
	now := time.Now()
	payload := &crosschain.CreateAuctionPayload{
		Seller:          seller,
		AssetContract:   nftAddr,
		AssetId:         tokenId,
		PaymentCurrency: weth,
		StartTime:       now.Add(time.Minute).Unix(),
		EndTime:         now.Add(time.Hour).Unix(),
		StartPrice:      "0.1",
	}
	raw, err := payload.Encode()
	t.Require().NoError(err)
	return &crosschain.Message{
		SourceChainId: 137,
		Sender:        remote,
		MessageId:     "msg-1",
		Payload:       raw,
	}
}

func (t *testsuite) TestHandleCrossChainMessage() {
	t.expectAuthorizedAsset()
	t.mockImplRepo.On("GetCurrent", mockCtx).Return("v1", nil).Once()
	t.mockRepo.On("Insert", mockCtx, mock.MatchedBy(func(a *auction.Auction) bool {
		return a.Seller == seller.ToLower() && a.Implementation == "v1"
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.AnythingOfType("*auction.Activity")).Return(nil).Once()

	res, err := t.subject.HandleCrossChainMessage(mockCtx, router, t.crossChainMessage())
	t.NoError(err)
	t.Equal(seller.ToLower(), res.Seller)
}

func (t *testsuite) TestHandleCrossChainMessageWrongOrigin() {
	_, err := t.subject.HandleCrossChainMessage(mockCtx, remote, t.crossChainMessage())
	t.Equal(domain.ErrUnauthorizedOrigin, err)
	t.mockRepo.AssertNotCalled(t.T(), "Insert")
}

func (t *testsuite) TestHandleCrossChainMessageUnlistedSender() {
	msg := t.crossChainMessage()
	msg.Sender = domain.Address("0xattacker000000000000000000000000000000bad")

	_, err := t.subject.HandleCrossChainMessage(mockCtx, router, msg)
	t.Equal(domain.ErrUnauthorizedOrigin, err)
	t.mockRepo.AssertNotCalled(t.T(), "Insert")
}

func (t *testsuite) TestHandleCrossChainMessageBadPayload() {
	msg := t.crossChainMessage()
	msg.Payload = []byte{0xff, 0x00, 0x13}

	_, err := t.subject.HandleCrossChainMessage(mockCtx, router, msg)
	t.Equal(domain.ErrInvalidAuctionParameters, err)
}
