package domain

import (
	"github.com/auctionhaus/goapi/base/ctx"
)

// AssetRegistry is the custody boundary to the external non-fungible
// asset registry. Implementations call the asset contract on chain;
// tests substitute mocks.
type AssetRegistry interface {
	// IsAssetContract reports whether the contract implements the
	// non-fungible asset registry interface.
	IsAssetContract(c ctx.Ctx, chainId ChainId, assetContract Address) (bool, error)

	// OwnerOf returns the current owner of the asset.
	OwnerOf(c ctx.Ctx, chainId ChainId, assetContract Address, assetId TokenId) (Address, error)

	// IsApproved reports whether operator may move the asset on behalf
	// of its owner.
	IsApproved(c ctx.Ctx, chainId ChainId, assetContract Address, assetId TokenId, operator Address) (bool, error)

	// TransferOwnership moves the asset. Fails if from is not the
	// current owner.
	TransferOwnership(c ctx.Ctx, chainId ChainId, assetContract Address, assetId TokenId, from, to Address) error
}
