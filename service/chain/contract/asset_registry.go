package contract

import (
	bCtx "github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/log"
	"github.com/auctionhaus/goapi/domain"
)

// assetRegistry adapts the erc721 contract bindings to the custody
// boundary the auction logic depends on. operator is the address the
// factory escrows assets under, i.e. the transactor's key.
type assetRegistry struct {
	erc721   Erc721Contract
	operator domain.Address
}

func NewAssetRegistry(erc721 Erc721Contract, operator domain.Address) domain.AssetRegistry {
	return &assetRegistry{erc721: erc721, operator: operator}
}

func (r *assetRegistry) IsAssetContract(c bCtx.Ctx, chainId domain.ChainId, assetContract domain.Address) (bool, error) {
	supported, err := r.erc721.Supports721Interface(c, int32(chainId), string(assetContract))
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"contract": assetContract,
		}).Error("erc721.Supports721Interface failed")
		return false, err
	}
	return supported, nil
}

func (r *assetRegistry) OwnerOf(c bCtx.Ctx, chainId domain.ChainId, assetContract domain.Address, assetId domain.TokenId) (domain.Address, error) {
	tokenId, err := assetId.ToBigInt()
	if err != nil {
		return domain.EmptyAddress, err
	}
	owner, err := r.erc721.OwnerOf(c, int32(chainId), string(assetContract), tokenId)
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"contract": assetContract,
			"tokenId":  assetId,
		}).Error("erc721.OwnerOf failed")
		return domain.EmptyAddress, err
	}
	return domain.Address(owner).ToLower(), nil
}

func (r *assetRegistry) IsApproved(c bCtx.Ctx, chainId domain.ChainId, assetContract domain.Address, assetId domain.TokenId, operator domain.Address) (bool, error) {
	tokenId, err := assetId.ToBigInt()
	if err != nil {
		return false, err
	}
	approved, err := r.erc721.GetApproved(c, int32(chainId), string(assetContract), tokenId)
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"contract": assetContract,
			"tokenId":  assetId,
		}).Error("erc721.GetApproved failed")
		return false, err
	}
	if operator.Equals(domain.Address(approved)) {
		return true, nil
	}

	owner, err := r.OwnerOf(c, chainId, assetContract, assetId)
	if err != nil {
		return false, err
	}
	approvedForAll, err := r.erc721.IsApprovedForAll(c, int32(chainId), string(assetContract), string(owner), string(operator))
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"contract": assetContract,
			"owner":    owner,
			"operator": operator,
		}).Error("erc721.IsApprovedForAll failed")
		return false, err
	}
	return approvedForAll, nil
}

func (r *assetRegistry) TransferOwnership(c bCtx.Ctx, chainId domain.ChainId, assetContract domain.Address, assetId domain.TokenId, from, to domain.Address) error {
	owner, err := r.OwnerOf(c, chainId, assetContract, assetId)
	if err != nil {
		return err
	}
	if !owner.Equals(from) {
		return domain.ErrAssetNotAuthorized
	}

	tokenId, err := assetId.ToBigInt()
	if err != nil {
		return err
	}
	txHash, err := r.erc721.SafeTransferFrom(c, int32(chainId), string(assetContract), string(from), string(to), tokenId)
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"contract": assetContract,
			"tokenId":  assetId,
			"from":     from,
			"to":       to,
		}).Error("erc721.SafeTransferFrom failed")
		return err
	}
	c.WithFields(log.Fields{
		"txHash":   txHash,
		"contract": assetContract,
		"tokenId":  assetId,
	}).Info("asset transfer submitted")
	return nil
}
