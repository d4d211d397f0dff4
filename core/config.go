package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config funds controller config
type Config struct {
	DB       db.Config     `json:"db"`
	Gateway  GatewayConfig `json:"gateway"`
	Alert    AlertConfig   `json:"alert"`
	Accounts []Account     `json:"accounts"`
}

// GatewayConfig execution gateway endpoint
type GatewayConfig struct {
	Endpoint string `json:"endpoint" valid:"required"`
	Timeout  int64  `json:"timeout"`
}

// AlertConfig slack webhooks per failure domain
type AlertConfig struct {
	FundsWebhook string `json:"funds_webhook"`
	OpsWebhook   string `json:"ops_webhook"`
}

// Account a subaccount authorized on an exchange
type Account struct {
	Subaccount         string   `json:"subaccount" valid:"required"`
	Exchange           Exchange `json:"exchange" valid:"required"`
	PortfolioMarginPro bool     `json:"portfolio_margin_pro"`
}

// FindAccount look up the account entry for a subaccount on an exchange
func (c *Config) FindAccount(subaccount string, exchange Exchange) (*Account, bool) {
	for idx := range c.Accounts {
		a := &c.Accounts[idx]
		if a.Subaccount == subaccount && a.Exchange == exchange {
			return a, true
		}
	}
	return nil, false
}
