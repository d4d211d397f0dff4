package futures

import (
	"context"

	"fundscontroller/core"
	"fundscontroller/pkg/id"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type futuresHedgeStore struct {
	db *db.DB
}

// New new futures hedge store
func New(db *db.DB) core.FuturesHedgeStore {
	return &futuresHedgeStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.FuturesHedge{})
		if err := tx.AutoMigrate(core.FuturesHedge{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *futuresHedgeStore) Create(ctx context.Context, hedge *core.FuturesHedge) error {
	if hedge.ID == "" {
		hedge.ID = id.GenTraceID()
	}
	if hedge.Status == "" {
		hedge.Status = core.StatusDone
	}
	return s.db.Update().Create(hedge).Error
}

// FindByHedgeID returns nil when no row exists. More than one row per
// hedge_id is ledger corruption.
func (s *futuresHedgeStore) FindByHedgeID(ctx context.Context, hedgeID string) (*core.FuturesHedge, error) {
	var hedges []*core.FuturesHedge
	if err := s.db.View().Where("hedge_id = ?", hedgeID).Find(&hedges).Error; err != nil {
		return nil, err
	}

	switch len(hedges) {
	case 0:
		return nil, nil
	case 1:
		return hedges[0], nil
	default:
		return nil, core.ErrLedgerCorrupted
	}
}

func (s *futuresHedgeStore) UpdateAmount(ctx context.Context, rowID string, amount decimal.Decimal) error {
	return s.db.Update().Model(core.FuturesHedge{}).
		Where("id = ?", rowID).
		Update("crypto_eq_amount", amount).Error
}

func (s *futuresHedgeStore) Delete(ctx context.Context, rowID string) error {
	if err := s.db.Update().Model(core.FuturesHedge{}).
		Where("id = ?", rowID).
		Update("status", core.StatusRemoved).Error; err != nil {
		return err
	}
	return s.db.Update().Where("id = ?", rowID).Delete(core.FuturesHedge{}).Error
}

func (s *futuresHedgeStore) DeleteByHedgeID(ctx context.Context, hedgeID string) error {
	if err := s.db.Update().Model(core.FuturesHedge{}).
		Where("hedge_id = ?", hedgeID).
		Update("status", core.StatusRemoved).Error; err != nil {
		return err
	}
	return s.db.Update().Where("hedge_id = ?", hedgeID).Delete(core.FuturesHedge{}).Error
}
