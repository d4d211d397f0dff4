package borrow

import (
	"context"

	"fundscontroller/core"
	"fundscontroller/pkg/id"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type borrowStore struct {
	db *db.DB
}

// New new borrow store
func New(db *db.DB) core.BorrowStore {
	return &borrowStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.BorrowInfo{})
		if err := tx.AutoMigrate(core.BorrowInfo{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *borrowStore) Create(ctx context.Context, borrow *core.BorrowInfo) error {
	if borrow.ID == "" {
		borrow.ID = id.GenTraceID()
	}
	if borrow.Status == "" {
		borrow.Status = core.StatusDone
	}
	return s.db.Update().Create(borrow).Error
}

// FindByLoanID returns nil when no row exists. More than one row per
// loan_id is ledger corruption.
func (s *borrowStore) FindByLoanID(ctx context.Context, loanID string) (*core.BorrowInfo, error) {
	var borrows []*core.BorrowInfo
	if err := s.db.View().Where("loan_id = ?", loanID).Find(&borrows).Error; err != nil {
		return nil, err
	}

	switch len(borrows) {
	case 0:
		return nil, nil
	case 1:
		return borrows[0], nil
	default:
		return nil, core.ErrLedgerCorrupted
	}
}

func (s *borrowStore) UpdateAmount(ctx context.Context, rowID string, amount decimal.Decimal) error {
	return s.db.Update().Model(core.BorrowInfo{}).
		Where("id = ?", rowID).
		Update("amount", amount).Error
}

func (s *borrowStore) Delete(ctx context.Context, rowID string) error {
	if err := s.db.Update().Model(core.BorrowInfo{}).
		Where("id = ?", rowID).
		Update("status", core.StatusRemoved).Error; err != nil {
		return err
	}
	return s.db.Update().Where("id = ?", rowID).Delete(core.BorrowInfo{}).Error
}

func (s *borrowStore) DeleteByLoanID(ctx context.Context, loanID string) error {
	if err := s.db.Update().Model(core.BorrowInfo{}).
		Where("loan_id = ?", loanID).
		Update("status", core.StatusRemoved).Error; err != nil {
		return err
	}
	return s.db.Update().Where("loan_id = ?", loanID).Delete(core.BorrowInfo{}).Error
}
