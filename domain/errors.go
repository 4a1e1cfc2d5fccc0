package domain

import "errors"

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")

	// auction creation
	ErrInvalidAuctionParameters = errors.New("invalid auction parameters")
	ErrAssetNotAuthorized       = errors.New("asset not authorized for auction")

	// bidding
	ErrAuctionNotFound   = errors.New("auction not found")
	ErrAuctionNotActive  = errors.New("auction not active")
	ErrBidTooLow         = errors.New("bid not higher than current highest")
	ErrBidValueMismatch  = errors.New("paid value does not match bid amount")
	ErrInsufficientFunds = errors.New("insufficient deposited funds")

	// settlement
	ErrAuctionNotYetEndable = errors.New("auction not yet endable")
	ErrAlreadyEnded         = errors.New("auction already ended")

	// oracle
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidPrice        = errors.New("invalid price")

	// auth
	ErrUnauthorizedOrigin = errors.New("unauthorized cross-chain origin")

	// factory
	ErrUnknownImplementation = errors.New("unknown implementation version")

	// request error
	ErrInvalidSignature = errors.New("Invalid signature")
	ErrInvalidNumberFmt = errors.New("invalid number format")
)
