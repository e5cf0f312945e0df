package entity

import "github.com/ethereum/go-ethereum/common"

// SmartAccount references a connected, initialized smart account.
type SmartAccount struct {
	Address common.Address `json:"address"`
	Owner   common.Address `json:"owner"`
}

// ShortAddress renders 0x1234...abcd.
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
