package lib

import "github.com/ethereum/go-ethereum/common"

// ShortenHex renders an address as 0x1234...abcd
func ShortenHex(hex string) string {
	if len(hex) <= 10 {
		return hex
	}
	return hex[:6] + "..." + hex[len(hex)-4:]
}

func ShortenAddr(addr common.Address) string {
	return ShortenHex(addr.Hex())
}
