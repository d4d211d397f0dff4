package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// HedgeInfo a claim that Subaccount holds Amount of Asset backed by
// the futures hedge tracked by HedgeID.
type HedgeInfo struct {
	ID                string          `sql:"size:36;PRIMARY_KEY" json:"id"`
	CreatedAt         time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Subaccount        string          `sql:"size:64;index:hedge_account_idx" json:"subaccount"`
	Asset             string          `sql:"size:20;index:hedge_account_idx" json:"asset"`
	Amount            decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	InitialSubaccount string          `sql:"size:64" json:"initial_subaccount"`
	HedgeID           string          `sql:"size:36;index" json:"hedge_id"`
	Status            string          `sql:"size:12" json:"status"`
}

// FuturesHedge the hedging position opened at an exchange, keyed by
// HedgeID, 1:N with HedgeInfo.
type FuturesHedge struct {
	ID             string          `sql:"size:36;PRIMARY_KEY" json:"id"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	Subaccount     string          `sql:"size:64" json:"subaccount"`
	Market         Market          `sql:"size:20" json:"market"`
	Pair           string          `sql:"size:20" json:"pair"`
	CryptoEqAmount decimal.Decimal `sql:"type:decimal(32,16)" json:"crypto_eq_amount"`
	OpenAmountUSD  decimal.Decimal `sql:"type:decimal(32,16)" json:"open_amount_usd"`
	HedgeID        string          `sql:"size:36;index" json:"hedge_id"`
	Status         string          `sql:"size:12" json:"status"`
}

// HedgeStore hedge info store
type HedgeStore interface {
	Create(ctx context.Context, hedge *HedgeInfo) error
	Find(ctx context.Context, subaccount, asset string) ([]*HedgeInfo, error)
	UpdateAmount(ctx context.Context, id string, amount decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}

// FuturesHedgeStore futures hedge store
type FuturesHedgeStore interface {
	Create(ctx context.Context, hedge *FuturesHedge) error
	FindByHedgeID(ctx context.Context, hedgeID string) (*FuturesHedge, error)
	UpdateAmount(ctx context.Context, id string, amount decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	DeleteByHedgeID(ctx context.Context, hedgeID string) error
}

// HedgeService open and query futures hedges
type HedgeService interface {
	GetHedgesInfo(ctx context.Context, subaccount, asset string) ([]*HedgeInfo, error)
	GetFuturesHedge(ctx context.Context, hedgeID string) (*FuturesHedge, error)
	GetCurrentHedgeAmountOnAccount(ctx context.Context, subaccount, asset string) (decimal.Decimal, error)
	CreateHedge(ctx context.Context, subaccount string, exchange Exchange, asset string, amount decimal.Decimal) error
}
