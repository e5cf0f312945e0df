package contracts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal ERC-20 ABI: balanceOf, transfer and approve.
const erc20ABI = `[
{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
{"constant":false,"inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"nonpayable","type":"function"},
{"constant":false,"inputs":[{"name":"_spender","type":"address"},{"name":"_value","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"nonpayable","type":"function"}
]`

// SimpleStorage demo contract: get() and set(uint256).
const simpleStorageABI = `[
{"inputs":[],"name":"get","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"uint256","name":"x","type":"uint256"}],"name":"set","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

// TransferSelector is the 4-byte selector of transfer(address,uint256).
const TransferSelector = "0xa9059cbb"

var (
	parsedERC20         abi.ABI
	parsedSimpleStorage abi.ABI
	parseOnce           sync.Once
)

func initParsedABIs() {
	parseOnce.Do(func() {
		var err error
		parsedERC20, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
		parsedSimpleStorage, err = abi.JSON(strings.NewReader(simpleStorageABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse SimpleStorage ABI: %v", err))
		}
	})
}

// ERC20 returns the parsed ERC-20 ABI.
func ERC20() abi.ABI {
	initParsedABIs()
	return parsedERC20
}

// SimpleStorage returns the parsed SimpleStorage ABI.
func SimpleStorage() abi.ABI {
	initParsedABIs()
	return parsedSimpleStorage
}
