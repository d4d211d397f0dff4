package account

import (
	"context"
	"fmt"

	"fundscontroller/core"
)

// New account service backed by the configured account list. Stands in
// for the credentials lookup of the execution environment.
func New(cfg *core.Config) core.AccountService {
	return &accountService{cfg: cfg}
}

type accountService struct {
	cfg *core.Config
}

func (s *accountService) CheckAccount(ctx context.Context, subaccount string, wallet core.Wallet) error {
	if !wallet.Exchange.Valid() {
		return fmt.Errorf("unknown exchange %q", wallet.Exchange)
	}

	acct, ok := s.cfg.FindAccount(subaccount, wallet.Exchange)
	if !ok {
		return fmt.Errorf("unknown %s subaccount %s", wallet.Exchange, subaccount)
	}

	if wallet.Type == core.WalletPortfolioMarginPro && !acct.PortfolioMarginPro {
		return fmt.Errorf("portfolio margin pro mode is not supported for subaccount %s", subaccount)
	}
	return nil
}
