package blockrule

import (
	"context"

	"fundscontroller/core"

	"github.com/fox-one/pkg/store/db"
)

type blockRuleStore struct {
	db *db.DB
}

// New new block rule store
func New(db *db.DB) core.BlockRuleStore {
	return &blockRuleStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.BlockRule{})
		if err := tx.AutoMigrate(core.BlockRule{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *blockRuleStore) Create(ctx context.Context, rule *core.BlockRule) error {
	if rule.Status == "" {
		rule.Status = core.StatusDone
	}
	return s.db.Update().Create(rule).Error
}

func (s *blockRuleStore) Find(ctx context.Context, subaccount string) ([]*core.BlockRule, error) {
	var rules []*core.BlockRule
	if err := s.db.View().Where("subaccount = ?", subaccount).Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

// FindOne returns nil when no rule exists for the key. More than one
// row per key is ledger corruption.
func (s *blockRuleStore) FindOne(ctx context.Context, subaccount string, market core.Market, symbol string, kind core.BlockKind) (*core.BlockRule, error) {
	var rules []*core.BlockRule
	if err := s.db.View().
		Where("subaccount = ? AND market = ? AND symbol = ? AND type = ?", subaccount, market, symbol, kind).
		Find(&rules).Error; err != nil {
		return nil, err
	}

	switch len(rules) {
	case 0:
		return nil, nil
	case 1:
		return rules[0], nil
	default:
		return nil, core.ErrLedgerCorrupted
	}
}

// Delete tombstones the rule first, then deletes it physically.
func (s *blockRuleStore) Delete(ctx context.Context, subaccount string, market core.Market, symbol string, kind core.BlockKind) error {
	if err := s.db.Update().Model(core.BlockRule{}).
		Where("subaccount = ? AND market = ? AND symbol = ? AND type = ?", subaccount, market, symbol, kind).
		Update("status", core.StatusRemoved).Error; err != nil {
		return err
	}
	return s.db.Update().
		Where("subaccount = ? AND market = ? AND symbol = ? AND type = ?", subaccount, market, symbol, kind).
		Delete(core.BlockRule{}).Error
}
