package blocker

import (
	"context"
	"errors"
	"testing"

	"fundscontroller/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRuleStore struct {
	rules   []*core.BlockRule
	deletes int
}

func (s *memRuleStore) Create(ctx context.Context, rule *core.BlockRule) error {
	r := *rule
	s.rules = append(s.rules, &r)
	return nil
}

func (s *memRuleStore) Find(ctx context.Context, subaccount string) ([]*core.BlockRule, error) {
	var out []*core.BlockRule
	for _, r := range s.rules {
		if r.Subaccount == subaccount {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memRuleStore) FindOne(ctx context.Context, subaccount string, market core.Market, symbol string, kind core.BlockKind) (*core.BlockRule, error) {
	var out []*core.BlockRule
	for _, r := range s.rules {
		if r.Subaccount == subaccount && r.Market == market && r.Symbol == symbol && r.Kind == kind {
			out = append(out, r)
		}
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0], nil
	default:
		return nil, core.ErrLedgerCorrupted
	}
}

func (s *memRuleStore) Delete(ctx context.Context, subaccount string, market core.Market, symbol string, kind core.BlockKind) error {
	s.deletes++
	kept := s.rules[:0]
	for _, r := range s.rules {
		if r.Subaccount == subaccount && r.Market == market && r.Symbol == symbol && r.Kind == kind {
			continue
		}
		kept = append(kept, r)
	}
	s.rules = kept
	return nil
}

func TestAddBlockRuleIdempotent(t *testing.T) {
	ctx := context.Background()
	store := &memRuleStore{}
	svc := New(store)

	require.NoError(t, svc.AddBlockRule(ctx, "acct", core.MarketBinanceFutures, "BTCUSDT", core.BlockKindPair))
	require.NoError(t, svc.AddBlockRule(ctx, "acct", core.MarketBinanceFutures, "BTCUSDT", core.BlockKindPair))
	assert.Len(t, store.rules, 1)
}

func TestAddBlockRuleUnknownKind(t *testing.T) {
	ctx := context.Background()
	svc := New(&memRuleStore{})

	err := svc.AddBlockRule(ctx, "acct", core.MarketBinanceFutures, "BTCUSDT", core.BlockKind("weird"))
	require.Error(t, err)
}

func TestAddBlockRuleWhileRemovalPending(t *testing.T) {
	ctx := context.Background()
	store := &memRuleStore{rules: []*core.BlockRule{{
		Subaccount: "acct",
		Market:     core.MarketBinanceSpots,
		Symbol:     "BTC",
		Kind:       core.BlockKindAsset,
		Status:     core.StatusRemoved,
	}}}
	svc := New(store)

	err := svc.AddBlockRule(ctx, "acct", core.MarketBinanceSpots, "BTC", core.BlockKindAsset)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrBlockRuleRemovalPending))
}

func TestRemoveBlockRuleMissing(t *testing.T) {
	ctx := context.Background()
	store := &memRuleStore{}
	svc := New(store)

	require.NoError(t, svc.RemoveBlockRule(ctx, "acct", core.MarketBinanceSpots, "BTC", core.BlockKindAsset))
	assert.Equal(t, 0, store.deletes)
}

func TestRemoveBlockRuleAlreadyRemoving(t *testing.T) {
	ctx := context.Background()
	store := &memRuleStore{rules: []*core.BlockRule{{
		Subaccount: "acct",
		Market:     core.MarketBinanceSpots,
		Symbol:     "BTC",
		Kind:       core.BlockKindAsset,
		Status:     core.StatusRemoved,
	}}}
	svc := New(store)

	require.NoError(t, svc.RemoveBlockRule(ctx, "acct", core.MarketBinanceSpots, "BTC", core.BlockKindAsset))
	assert.Equal(t, 0, store.deletes)
}

func TestIsTradingBlockedByQuoteAsset(t *testing.T) {
	ctx := context.Background()
	store := &memRuleStore{}
	svc := New(store)
	require.NoError(t, svc.AddBlockRule(ctx, "acct", core.MarketBinanceSpots, "USDT", core.BlockKindAsset))

	blocked := core.Instrument{Market: core.MarketBinanceSpots, Pair: "BTCUSDT", BaseAsset: "BTC", QuoteAsset: "USDT"}
	err := svc.IsTradingBlocked(ctx, "acct", []core.Instrument{blocked})
	require.Error(t, err)

	// same instrument on another market stays tradable
	other := blocked
	other.Market = core.MarketBybitSpots
	require.NoError(t, svc.IsTradingBlocked(ctx, "acct", []core.Instrument{other}))

	// other subaccounts are unaffected
	require.NoError(t, svc.IsTradingBlocked(ctx, "acct2", []core.Instrument{blocked}))
}

func TestIsTradingBlockedByPair(t *testing.T) {
	ctx := context.Background()
	svc := New(&memRuleStore{})
	require.NoError(t, svc.AddBlockRule(ctx, "acct", core.MarketBinanceFutures, "ETHUSDT", core.BlockKindPair))

	err := svc.IsTradingBlocked(ctx, "acct", []core.Instrument{
		{Market: core.MarketBinanceFutures, Pair: "ETHUSDT", BaseAsset: "ETH", QuoteAsset: "USDT"},
	})
	require.Error(t, err)
}

func TestIsTradingBlockedIgnoresTombstones(t *testing.T) {
	ctx := context.Background()
	store := &memRuleStore{rules: []*core.BlockRule{{
		Subaccount: "acct",
		Market:     core.MarketBinanceFutures,
		Symbol:     "ETHUSDT",
		Kind:       core.BlockKindPair,
		Status:     core.StatusRemoved,
	}}}
	svc := New(store)

	require.NoError(t, svc.IsTradingBlocked(ctx, "acct", []core.Instrument{
		{Market: core.MarketBinanceFutures, Pair: "ETHUSDT", QuoteAsset: "USDT"},
	}))
}

func TestIsTradingBlockedRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	store := &memRuleStore{rules: []*core.BlockRule{{
		Subaccount: "acct",
		Market:     core.MarketBinanceFutures,
		Symbol:     "ETHUSDT",
		Kind:       core.BlockKindPair,
		Status:     "half-done",
	}}}
	svc := New(store)

	err := svc.IsTradingBlocked(ctx, "acct", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrLedgerCorrupted))
}
