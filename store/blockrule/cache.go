package blockrule

import (
	"context"
	"fmt"
	"time"

	"fundscontroller/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a block rule store with a small read cache. Mutations
// drop the subaccount's entry, so in-process readers observe an added
// or tombstoned rule immediately even while the store's own mutations
// are still propagating.
func Cache(store core.BlockRuleStore, exp time.Duration) core.BlockRuleStore {
	return &cacheBlockRuleStore{
		BlockRuleStore: store,
		cache:          gcache.New(512).LRU().Expiration(exp).Build(),
		sf:             &singleflight.Group{},
	}
}

type cacheBlockRuleStore struct {
	core.BlockRuleStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheBlockRuleStore) Create(ctx context.Context, rule *core.BlockRule) error {
	if err := s.BlockRuleStore.Create(ctx, rule); err != nil {
		return err
	}
	s.cache.Remove(s.subaccountKey(rule.Subaccount))
	return nil
}

func (s *cacheBlockRuleStore) Find(ctx context.Context, subaccount string) ([]*core.BlockRule, error) {
	key := s.subaccountKey(subaccount)
	if v, err := s.cache.Get(key); err == nil {
		if rules, ok := v.([]*core.BlockRule); ok {
			return rules, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		rules, err := s.BlockRuleStore.Find(ctx, subaccount)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, rules)
		return rules, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*core.BlockRule), nil
}

func (s *cacheBlockRuleStore) Delete(ctx context.Context, subaccount string, market core.Market, symbol string, kind core.BlockKind) error {
	// drop the cached view before touching the store: a reader racing
	// the two-phase delete must not resurrect the rule from cache
	s.cache.Remove(s.subaccountKey(subaccount))
	if err := s.BlockRuleStore.Delete(ctx, subaccount, market, symbol, kind); err != nil {
		return err
	}
	s.cache.Remove(s.subaccountKey(subaccount))
	return nil
}

func (s *cacheBlockRuleStore) subaccountKey(subaccount string) string {
	return fmt.Sprintf("blockrule:subaccount:%s", subaccount)
}
