package chain

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	bCtx "github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/log"
)

// Transactor sends state-changing contract calls signed by the
// configured operator key.
type Transactor interface {
	Transact(c bCtx.Ctx, chainId int32, to common.Address, _abi abi.ABI, method string, params ...interface{}) (common.Hash, error)
	OperatorAddress() common.Address
}

type TransactorCfg struct {
	RpcUrls map[int32]string
	// PrivateKey is the hex encoded operator key
	PrivateKey string
}

type transactorImpl struct {
	clients map[int32]*ethclient.Client
	key     *ecdsa.PrivateKey
	from    common.Address
}

func NewTransactor(ctx bCtx.Ctx, cfg *TransactorCfg) (Transactor, error) {
	key, err := crypto.HexToECDSA(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	clients := make(map[int32]*ethclient.Client)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			continue
		}
		clients[chainId] = client
	}

	return &transactorImpl{
		clients: clients,
		key:     key,
		from:    crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (t *transactorImpl) OperatorAddress() common.Address {
	return t.from
}

func (t *transactorImpl) Transact(ctx bCtx.Ctx, chainId int32, to common.Address, _abi abi.ABI, method string, params ...interface{}) (common.Hash, error) {
	client, ok := t.clients[chainId]
	if !ok {
		return common.Hash{}, ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("abi.Pack failed")
		return common.Hash{}, err
	}

	nonce, err := client.PendingNonceAt(ctx, t.from)
	if err != nil {
		ctx.WithField("err", err).Error("client.PendingNonceAt failed")
		return common.Hash{}, err
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return common.Hash{}, err
	}

	msg := ethereum.CallMsg{From: t.from, To: &to, Data: data}
	gasLimit, err := client.EstimateGas(ctx, msg)
	if err != nil {
		ctx.WithField("err", err).Error("client.EstimateGas failed")
		return common.Hash{}, err
	}

	tx := types.NewTransaction(nonce, to, big.NewInt(0), gasLimit, gasPrice, data)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(big.NewInt(int64(chainId))), t.key)
	if err != nil {
		ctx.WithField("err", err).Error("types.SignTx failed")
		return common.Hash{}, err
	}

	if err := client.SendTransaction(ctx, signedTx); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"txHash": signedTx.Hash(),
		}).Error("client.SendTransaction failed")
		return common.Hash{}, err
	}
	return signedTx.Hash(), nil
}
