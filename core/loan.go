package core

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// LoanType loan type
type LoanType string

const (
	// LoanTypeNormal plain asset loan
	LoanTypeNormal LoanType = "Normal"
	// LoanTypeStableExchange loan swapped through a stable pair
	LoanTypeStableExchange LoanType = "StableExchange"
)

// Valid check loan type read from the ledger
func (t LoanType) Valid() bool {
	return t == LoanTypeNormal || t == LoanTypeStableExchange
}

// LoanInfo a claim that Subaccount currently holds Amount of borrowed
// Asset. Many rows may share one LoanID once a debt has been split
// across subaccounts by transfers.
type LoanInfo struct {
	ID                string          `sql:"size:36;PRIMARY_KEY" json:"id"`
	CreatedAt         time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Subaccount        string          `sql:"size:64;index:loan_account_idx" json:"subaccount"`
	Asset             string          `sql:"size:20;index:loan_account_idx" json:"asset"`
	Amount            decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	InitialSubaccount string          `sql:"size:64" json:"initial_subaccount"`
	LoanID            string          `sql:"size:36;index" json:"loan_id"`
	Type              LoanType        `sql:"size:20" json:"type"`
	Status            string          `sql:"size:12" json:"status"`
}

// BorrowInfo ledger of record for one outstanding borrow call against
// the exchange, 1:N with LoanInfo by LoanID.
type BorrowInfo struct {
	ID            string          `sql:"size:36;PRIMARY_KEY" json:"id"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Subaccount    string          `sql:"size:64" json:"subaccount"`
	Asset         string          `sql:"size:20" json:"asset"`
	Amount        decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	OpenAmountUSD decimal.Decimal `sql:"type:decimal(32,16)" json:"open_amount_usd"`
	LoanID        string          `sql:"size:36;index" json:"loan_id"`
	Status        string          `sql:"size:12" json:"status"`
}

var (
	// ErrInsufficientLoanAmount not enough borrowed amount on the account
	ErrInsufficientLoanAmount = errors.New("not enough borrowed amount on account")
	// ErrBorrowNotActive the backing borrow row is not done
	ErrBorrowNotActive = errors.New("backing borrow is not active")
)

// LoanStore loan info store. Find returns rows of every status in
// stable query order; callers filter tombstones.
type LoanStore interface {
	Create(ctx context.Context, loan *LoanInfo) error
	Find(ctx context.Context, subaccount, asset string) ([]*LoanInfo, error)
	UpdateAmount(ctx context.Context, id string, amount decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	DeleteByLoanID(ctx context.Context, loanID string) error
}

// BorrowStore borrow info store
type BorrowStore interface {
	Create(ctx context.Context, borrow *BorrowInfo) error
	FindByLoanID(ctx context.Context, loanID string) (*BorrowInfo, error)
	UpdateAmount(ctx context.Context, id string, amount decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	DeleteByLoanID(ctx context.Context, loanID string) error
}

// LoanService borrow, repay and move borrowed balances between
// subaccounts
type LoanService interface {
	GetLoansInfo(ctx context.Context, subaccount, asset string) ([]*LoanInfo, error)
	GetBorrowInfo(ctx context.Context, loanID string) (*BorrowInfo, error)
	GetCurrentLoanAmountOnAccount(ctx context.Context, subaccount, asset string) (decimal.Decimal, error)
	Borrow(ctx context.Context, subaccount string, exchange Exchange, asset string, amount decimal.Decimal) error
	Repay(ctx context.Context, subaccount string, exchange Exchange, asset string, amount decimal.Decimal) error
	Transfer(ctx context.Context, from string, fromExchange Exchange, to string, toExchange Exchange, asset string, amount decimal.Decimal) error
}
