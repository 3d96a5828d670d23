package entity

// Wallet is a single entry of a wallet list used for batch analysis.
type Wallet struct {
	Address WalletAddress `json:"address" yaml:"address"`
	Line    int           `json:"-" yaml:"-"`
}
