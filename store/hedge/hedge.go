package hedge

import (
	"context"

	"fundscontroller/core"
	"fundscontroller/pkg/id"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type hedgeStore struct {
	db *db.DB
}

// New new hedge info store
func New(db *db.DB) core.HedgeStore {
	return &hedgeStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.HedgeInfo{})
		if err := tx.AutoMigrate(core.HedgeInfo{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *hedgeStore) Create(ctx context.Context, hedge *core.HedgeInfo) error {
	if hedge.ID == "" {
		hedge.ID = id.GenTraceID()
	}
	if hedge.Status == "" {
		hedge.Status = core.StatusDone
	}
	return s.db.Update().Create(hedge).Error
}

func (s *hedgeStore) Find(ctx context.Context, subaccount, asset string) ([]*core.HedgeInfo, error) {
	var hedges []*core.HedgeInfo
	if err := s.db.View().
		Where("subaccount = ? AND asset = ?", subaccount, asset).
		Order("created_at ASC").
		Find(&hedges).Error; err != nil {
		return nil, err
	}

	return hedges, nil
}

func (s *hedgeStore) UpdateAmount(ctx context.Context, rowID string, amount decimal.Decimal) error {
	return s.db.Update().Model(core.HedgeInfo{}).
		Where("id = ?", rowID).
		Update("amount", amount).Error
}

func (s *hedgeStore) Delete(ctx context.Context, rowID string) error {
	if err := s.db.Update().Model(core.HedgeInfo{}).
		Where("id = ?", rowID).
		Update("status", core.StatusRemoved).Error; err != nil {
		return err
	}
	return s.db.Update().Where("id = ?", rowID).Delete(core.HedgeInfo{}).Error
}
