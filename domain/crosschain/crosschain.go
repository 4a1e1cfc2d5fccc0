package crosschain

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/auctionhaus/goapi/domain"
)

// Message is an inbound cross-chain message as delivered by the router.
// Payload is an opaque CBOR blob decoded by the receiving component.
type Message struct {
	SourceChainId uint64         `json:"sourceChainId"`
	Sender        domain.Address `json:"sender"`
	MessageId     string         `json:"messageId"`
	Payload       []byte         `json:"payload"`
}

// CreateAuctionPayload is the cross-chain encoding of createAuction
// arguments. Times are unix seconds, the price a decimal string.
type CreateAuctionPayload struct {
	Seller          domain.Address  `cbor:"1,keyasint"`
	AssetContract   domain.Address  `cbor:"2,keyasint"`
	AssetId         domain.TokenId  `cbor:"3,keyasint"`
	PaymentCurrency domain.Currency `cbor:"4,keyasint"`
	StartTime       int64           `cbor:"5,keyasint"`
	EndTime         int64           `cbor:"6,keyasint"`
	StartPrice      string          `cbor:"7,keyasint"`
}

func (p *CreateAuctionPayload) Encode() ([]byte, error) {
	return cbor.Marshal(p)
}

func DecodeCreateAuctionPayload(raw []byte) (*CreateAuctionPayload, error) {
	p := &CreateAuctionPayload{}
	if err := cbor.Unmarshal(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}
