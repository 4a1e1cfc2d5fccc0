package crosschain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/auctionhaus/goapi/domain"
)

func TestCreateAuctionPayloadRoundTrip(t *testing.T) {
	req := require.New(t)

	now := time.Now().Truncate(time.Second)
	in := &CreateAuctionPayload{
		Seller:          domain.Address("0x5e11e7000000000000000000000000000000a111"),
		AssetContract:   domain.Address("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"),
		AssetId:         domain.TokenId("42"),
		PaymentCurrency: domain.Currency("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"),
		StartTime:       now.Unix(),
		EndTime:         now.Add(time.Hour).Unix(),
		StartPrice:      "0.1",
	}

	raw, err := in.Encode()
	req.NoError(err)

	out, err := DecodeCreateAuctionPayload(raw)
	req.NoError(err)
	req.Equal(in, out)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	req := require.New(t)

	_, err := DecodeCreateAuctionPayload([]byte{0xff, 0x00, 0x13})
	req.Error(err)
}
