package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/auctionhaus/goapi/base/abi"
	bCtx "github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/service/chain"
)

type Erc721Contract interface {
	Supports721Interface(ctx bCtx.Ctx, chainId int32, addr string) (bool, error)
	OwnerOf(ctx bCtx.Ctx, chainId int32, addr string, tokenId *big.Int) (string, error)
	GetApproved(ctx bCtx.Ctx, chainId int32, addr string, tokenId *big.Int) (string, error)
	IsApprovedForAll(ctx bCtx.Ctx, chainId int32, addr, owner, operator string) (bool, error)
	SafeTransferFrom(ctx bCtx.Ctx, chainId int32, addr, from, to string, tokenId *big.Int) (string, error)
}

type Erc721 struct {
	chainService      chain.Client
	transactor        chain.Transactor
	abi               ethabi.ABI
	erc721InterfaceId [4]byte
}

func NewErc721(chainService chain.Client, transactor chain.Transactor) *Erc721 {
	var interfaceId [4]byte
	copy(interfaceId[:], common.Hex2Bytes("80ac58cd"))
	return &Erc721{
		abi:               baseabi.ERC721TokenABI,
		chainService:      chainService,
		transactor:        transactor,
		erc721InterfaceId: interfaceId,
	}
}

func (e *Erc721) Supports721Interface(ctx bCtx.Ctx, chainId int32, addr string) (bool, error) {
	method := "supportsInterface"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, method, e.erc721InterfaceId)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721) OwnerOf(ctx bCtx.Ctx, chainId int32, addr string, tokenId *big.Int) (string, error) {
	method := "ownerOf"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, method, tokenId)
	if err != nil {
		return "", err
	}
	return unpacked[0].(common.Address).String(), nil
}

func (e *Erc721) GetApproved(ctx bCtx.Ctx, chainId int32, addr string, tokenId *big.Int) (string, error) {
	method := "getApproved"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, method, tokenId)
	if err != nil {
		return "", err
	}
	return unpacked[0].(common.Address).String(), nil
}

func (e *Erc721) IsApprovedForAll(ctx bCtx.Ctx, chainId int32, addr, owner, operator string) (bool, error) {
	method := "isApprovedForAll"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, method, common.HexToAddress(owner), common.HexToAddress(operator))
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721) SafeTransferFrom(ctx bCtx.Ctx, chainId int32, addr, from, to string, tokenId *big.Int) (string, error) {
	method := "safeTransferFrom"
	txHash, err := e.transactor.Transact(ctx, chainId, common.HexToAddress(addr), e.abi, method, common.HexToAddress(from), common.HexToAddress(to), tokenId)
	if err != nil {
		return "", err
	}
	return txHash.Hex(), nil
}
