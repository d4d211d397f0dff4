package core

import (
	"context"
	"errors"
	"time"
)

// BlockKind what a block rule matches against
type BlockKind string

const (
	// BlockKindAsset block every instrument quoted in the asset
	BlockKindAsset BlockKind = "asset"
	// BlockKindPair block one exact pair
	BlockKindPair BlockKind = "pair"
)

// Valid check block kind
func (k BlockKind) Valid() bool {
	return k == BlockKindAsset || k == BlockKindPair
}

// BlockRule one logical trading restriction per
// (subaccount, market, symbol, kind). At most one active rule per key.
type BlockRule struct {
	ID         uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	CreatedAt  time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Subaccount string    `sql:"size:64;index" json:"subaccount"`
	Market     Market    `sql:"size:20" json:"market"`
	Symbol     string    `sql:"size:20" json:"symbol"`
	Kind       BlockKind `sql:"size:10" gorm:"column:type" json:"kind"`
	Status     string    `sql:"size:12" json:"status"`
}

var (
	// ErrBlockRuleRemovalPending rule stuck in removed, finalize first
	ErrBlockRuleRemovalPending = errors.New("block rule removal not finalized, re-add is forbidden")
)

// BlockRuleStore block rule store
type BlockRuleStore interface {
	Create(ctx context.Context, rule *BlockRule) error
	Find(ctx context.Context, subaccount string) ([]*BlockRule, error)
	FindOne(ctx context.Context, subaccount string, market Market, symbol string, kind BlockKind) (*BlockRule, error)
	Delete(ctx context.Context, subaccount string, market Market, symbol string, kind BlockKind) error
}

// BlockerService lifecycle of block rules and the gate consulted
// before order placement
type BlockerService interface {
	IsTradingBlocked(ctx context.Context, subaccount string, instruments []Instrument) error
	AddBlockRule(ctx context.Context, subaccount string, market Market, symbol string, kind BlockKind) error
	RemoveBlockRule(ctx context.Context, subaccount string, market Market, symbol string, kind BlockKind) error
}
