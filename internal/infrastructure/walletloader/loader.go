package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"wallet_risk_analyzer/internal/app/port"
	"wallet_risk_analyzer/internal/domain/entity"
)

// WalletFileLoader implements port.WalletProvider by reading one address per
// line. Blank lines and lines starting with # are ignored; invalid or repeated
// addresses are skipped.
type WalletFileLoader struct {
	filePath string
	logger   port.Logger
}

// NewWalletFileLoader creates a loader for the file at filePath.
func NewWalletFileLoader(filePath string, logger port.Logger) port.WalletProvider {
	return &WalletFileLoader{
		filePath: filePath,
		logger:   logger,
	}
}

// GetWallets reads wallet addresses from the configured file path.
func (l *WalletFileLoader) GetWallets() ([]entity.Wallet, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var wallets []entity.Wallet
	seen := make(map[entity.WalletAddress]int)
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		address, err := entity.ParseWalletAddress(line)
		if err != nil {
			l.logger.Warn("Skipping invalid wallet address", "file", l.filePath, "line_number", lineNum, "address", line)
			continue
		}
		if first, dup := seen[address]; dup {
			l.logger.Debug("Skipping repeated wallet address", "file", l.filePath, "line_number", lineNum, "first_line", first)
			continue
		}
		seen[address] = lineNum
		wallets = append(wallets, entity.Wallet{Address: address, Line: lineNum})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet file %s: %w", l.filePath, err)
	}

	l.logger.Info("Wallets loaded successfully from file", "count", len(wallets), "path", l.filePath)
	return wallets, nil
}
