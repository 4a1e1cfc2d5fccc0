package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var ChainlinkFeedABI abi.ABI

var chainlinkFeedABI = `[{"type":"function","name":"latestAnswer","constant":true,"stateMutability":"view","payable":false,"inputs":[],"outputs":[{"type":"int256"}]},{"type":"function","name":"latestTimestamp","constant":true,"stateMutability":"view","payable":false,"inputs":[],"outputs":[{"type":"uint256"}]},{"type":"function","name":"decimals","constant":true,"stateMutability":"view","payable":false,"inputs":[],"outputs":[{"type":"uint8"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(chainlinkFeedABI))
	if err != nil {
		panic("Failed to parse chainlink feed abi")
	}
	ChainlinkFeedABI = _abi
}
