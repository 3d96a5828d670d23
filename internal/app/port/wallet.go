package port

import "wallet_risk_analyzer/internal/domain/entity"

// WalletProvider defines the interface for fetching wallet addresses for batch analysis.
type WalletProvider interface {
	GetWallets() ([]entity.Wallet, error)
}
