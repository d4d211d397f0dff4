package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// TransactionTypeTransfer cross subaccount transfer
const TransactionTypeTransfer = "transfer"

// Transaction immutable audit entry for a completed transfer. Never
// updated or deleted.
type Transaction struct {
	ID         uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	CreatedAt  time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	From       string          `sql:"size:64" gorm:"column:from_subaccount" json:"from"`
	FromWallet string          `sql:"size:40" json:"from_wallet"`
	To         string          `sql:"size:64" gorm:"column:to_subaccount" json:"to"`
	ToWallet   string          `sql:"size:40" json:"to_wallet"`
	Asset      string          `sql:"size:20" json:"asset"`
	Amount     decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	Type       string          `sql:"size:20" json:"type"`
	Status     string          `sql:"size:12" json:"status"`
	Extra      types.JSONText  `sql:"type:TEXT" json:"extra,omitempty"`
}

// TransferExtra breakdown of a transfer amount
type TransferExtra struct {
	LoanAmount decimal.Decimal `json:"loan_amount"`
	FreeAmount decimal.Decimal `json:"free_amount"`
}

// Format format as []byte by default
func (e TransferExtra) Format() []byte {
	bs, err := json.Marshal(e)
	if err != nil {
		return []byte("{}")
	}
	return bs
}

// TransactionStore append-only transaction store
type TransactionStore interface {
	Create(ctx context.Context, tx *Transaction) error
	List(ctx context.Context, limit int) ([]*Transaction, error)
}

// TransactionService orchestrates cross subaccount transfers
type TransactionService interface {
	Transfer(ctx context.Context, from string, fromWallet Wallet, to string, toWallet Wallet, asset string, amount decimal.Decimal) error
}
