package entity

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// DemoAddress is substituted when a demo is requested for an invalid address.
const DemoAddress = "0x742d35Cc6634C0532925a3b8D362579bB2137c41"

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// WalletAddress is an accepted, lower-cased EVM wallet address.
type WalletAddress string

// IsValidAddress reports whether input is exactly "0x" followed by 40 hex characters.
// Surrounding whitespace is not tolerated.
func IsValidAddress(input string) bool {
	return addressPattern.MatchString(input)
}

// ParseWalletAddress validates the raw input and returns its normalized form.
func ParseWalletAddress(input string) (WalletAddress, error) {
	if !IsValidAddress(input) {
		return "", NewInvalidAddressError(input)
	}
	return WalletAddress(strings.ToLower(input)), nil
}

// String returns the normalized address.
func (a WalletAddress) String() string {
	return string(a)
}

// Checksum returns the EIP-55 mixed-case form used for display.
func (a WalletAddress) Checksum() string {
	if a == "" {
		return ""
	}
	return common.HexToAddress(string(a)).Hex()
}
