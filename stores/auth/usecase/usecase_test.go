package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/keys"
	"github.com/auctionhaus/goapi/service/redis"
	mockRedis "github.com/auctionhaus/goapi/service/redis/mocks"
)

var mockCtx = ctx.Background()

const signingMsgTemplate = "Welcome!\n\nNonce: %s"

type testsuite struct {
	suite.Suite
	mockRedis *mockRedis.Service
	subject   domain.AuthUsecase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockRedis = &mockRedis.Service{}
	t.subject = New(&Cfg{
		JwtSecret:          "test-secret",
		TokenTtl:           time.Hour,
		SigningMsgTemplate: signingMsgTemplate,
		Redis:              t.mockRedis,
	})
}

func (t *testsuite) TestSignAndParseToken() {
	privateKey, err := crypto.GenerateKey()
	t.Require().NoError(err)

	address := domain.Address(crypto.PubkeyToAddress(privateKey.PublicKey).Hex()).ToLower()
	key := keys.RedisKey(keys.PfxNonce, address.ToLowerStr())

	var nonce string
	t.mockRedis.On("Set", mockCtx, key, mock.Anything, nonceTtl).
		Run(func(args mock.Arguments) {
			nonce = string(args.Get(2).([]byte))
		}).
		Return(nil).Once()

	issued, err := t.subject.GetNonce(mockCtx, address)
	t.Require().NoError(err)
	t.Equal(nonce, issued)

	msg := fmt.Sprintf(signingMsgTemplate, nonce)
	sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), privateKey)
	t.Require().NoError(err)

	t.mockRedis.On("Get", mockCtx, key).Return([]byte(nonce), nil).Once()
	t.mockRedis.On("Del", mockCtx, key).Return(1, nil).Once()

	token, err := t.subject.SignToken(mockCtx, address, hexutil.Encode(sig))
	t.Require().NoError(err)
	t.NotEmpty(token)

	parsed, err := t.subject.ParseToken(mockCtx, token)
	t.NoError(err)
	t.Equal(address.ToLowerStr(), parsed)
}

func (t *testsuite) TestSignTokenWrongKey() {
	ownerKey, err := crypto.GenerateKey()
	t.Require().NoError(err)
	strangerKey, err := crypto.GenerateKey()
	t.Require().NoError(err)

	address := domain.Address(crypto.PubkeyToAddress(ownerKey.PublicKey).Hex()).ToLower()
	key := keys.RedisKey(keys.PfxNonce, address.ToLowerStr())
	nonce := "12345"

	msg := fmt.Sprintf(signingMsgTemplate, nonce)
	sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), strangerKey)
	t.Require().NoError(err)

	t.mockRedis.On("Get", mockCtx, key).Return([]byte(nonce), nil).Once()

	_, err = t.subject.SignToken(mockCtx, address, hexutil.Encode(sig))
	t.Equal(domain.ErrInvalidSignature, err)
	t.mockRedis.AssertNotCalled(t.T(), "Del")
}

func (t *testsuite) TestSignTokenExpiredNonce() {
	address := domain.Address("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d")
	key := keys.RedisKey(keys.PfxNonce, address.ToLowerStr())

	t.mockRedis.On("Get", mockCtx, key).Return(nil, redis.ErrNotFound).Once()

	_, err := t.subject.SignToken(mockCtx, address, "0x00")
	t.Equal(domain.ErrInvalidSignature, err)
}

func (t *testsuite) TestParseTokenGarbage() {
	_, err := t.subject.ParseToken(mockCtx, "not-a-token")
	t.Error(err)
}
