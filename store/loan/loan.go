package loan

import (
	"context"

	"fundscontroller/core"
	"fundscontroller/pkg/id"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type loanStore struct {
	db *db.DB
}

// New new loan store
func New(db *db.DB) core.LoanStore {
	return &loanStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.LoanInfo{})
		if err := tx.AutoMigrate(core.LoanInfo{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *loanStore) Create(ctx context.Context, loan *core.LoanInfo) error {
	if loan.ID == "" {
		loan.ID = id.GenTraceID()
	}
	if loan.Status == "" {
		loan.Status = core.StatusDone
	}
	return s.db.Update().Create(loan).Error
}

func (s *loanStore) Find(ctx context.Context, subaccount, asset string) ([]*core.LoanInfo, error) {
	var loans []*core.LoanInfo
	if err := s.db.View().
		Where("subaccount = ? AND asset = ?", subaccount, asset).
		Order("created_at ASC").
		Find(&loans).Error; err != nil {
		return nil, err
	}

	return loans, nil
}

func (s *loanStore) UpdateAmount(ctx context.Context, rowID string, amount decimal.Decimal) error {
	return s.db.Update().Model(core.LoanInfo{}).
		Where("id = ?", rowID).
		Update("amount", amount).Error
}

// Delete marks the row removed first so any concurrent reader treats
// it as inactive even before the physical delete lands. The two
// statements are deliberately not one transaction: the store offers
// none.
func (s *loanStore) Delete(ctx context.Context, rowID string) error {
	if err := s.db.Update().Model(core.LoanInfo{}).
		Where("id = ?", rowID).
		Update("status", core.StatusRemoved).Error; err != nil {
		return err
	}
	return s.db.Update().Where("id = ?", rowID).Delete(core.LoanInfo{}).Error
}

func (s *loanStore) DeleteByLoanID(ctx context.Context, loanID string) error {
	if err := s.db.Update().Model(core.LoanInfo{}).
		Where("loan_id = ?", loanID).
		Update("status", core.StatusRemoved).Error; err != nil {
		return err
	}
	return s.db.Update().Where("loan_id = ?", loanID).Delete(core.LoanInfo{}).Error
}
