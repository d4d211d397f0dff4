package transaction

import (
	"context"
	"errors"

	"fundscontroller/core"

	"github.com/fox-one/pkg/store/db"
)

type transactionStore struct {
	db *db.DB
}

// New new transaction store
func New(db *db.DB) core.TransactionStore {
	return &transactionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transaction{})
		if err := tx.AutoMigrate(core.Transaction{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Create appends one audit row. Transactions are never updated or
// deleted.
func (s *transactionStore) Create(ctx context.Context, transaction *core.Transaction) error {
	if transaction.Status == "" {
		transaction.Status = core.StatusDone
	}
	return s.db.Update().Create(transaction).Error
}

func (s *transactionStore) List(ctx context.Context, limit int) ([]*core.Transaction, error) {
	if limit <= 0 {
		return nil, errors.New("invalid limit")
	}

	var transactions []*core.Transaction
	if err := s.db.View().
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}
