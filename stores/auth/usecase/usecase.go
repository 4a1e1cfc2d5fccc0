package usecase

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/ethereum"
	"github.com/auctionhaus/goapi/domain"
	"github.com/auctionhaus/goapi/domain/keys"
	"github.com/auctionhaus/goapi/service/redis"
)

const nonceTtl = 10 * time.Minute

type impl struct {
	jwtSecret          []byte
	tokenTtl           time.Duration
	signingMsgTemplate string
	redis              redis.Service
}

type Cfg struct {
	JwtSecret          string
	TokenTtl           time.Duration
	SigningMsgTemplate string
	Redis              redis.Service
}

func New(cfg *Cfg) domain.AuthUsecase {
	tokenTtl := cfg.TokenTtl
	if tokenTtl == 0 {
		tokenTtl = 24 * time.Hour
	}
	return &impl{
		jwtSecret:          []byte(cfg.JwtSecret),
		tokenTtl:           tokenTtl,
		signingMsgTemplate: cfg.SigningMsgTemplate,
		redis:              cfg.Redis,
	}
}

func (im *impl) GetNonce(ctx ctx.Ctx, address domain.Address) (string, error) {
	nonce := fmt.Sprintf("%d", rand.Int63())

	key := keys.RedisKey(keys.PfxNonce, address.ToLowerStr())
	if err := im.redis.Set(ctx, key, []byte(nonce), nonceTtl); err != nil {
		ctx.WithField("err", err).Error("redis.Set failed")
		return "", err
	}
	return nonce, nil
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	key := keys.RedisKey(keys.PfxNonce, address.ToLowerStr())

	nonce, err := im.redis.Get(ctx, key)
	if err == redis.ErrNotFound {
		return "", domain.ErrInvalidSignature
	} else if err != nil {
		ctx.WithField("err", err).Error("redis.Get failed")
		return "", err
	}

	msg := fmt.Sprintf(im.signingMsgTemplate, string(nonce))
	if valid, err := ethereum.ValidateMsgSignature([]byte(msg), signature, string(address)); err != nil {
		ctx.WithField("err", err).Error("ethereum.ValidateMsgSignature failed")
		return "", domain.ErrInvalidSignature
	} else if !valid {
		return "", domain.ErrInvalidSignature
	}

	// one shot nonce
	if _, err := im.redis.Del(ctx, key); err != nil {
		ctx.WithField("err", err).Warn("redis.Del failed")
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(im.tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return "", domain.ErrInvalidSignature
}
