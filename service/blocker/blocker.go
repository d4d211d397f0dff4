package blocker

import (
	"context"
	"fmt"

	"fundscontroller/core"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
)

// New new trading blocker service
func New(rules core.BlockRuleStore) core.BlockerService {
	return &blockerService{
		rules: rules,
	}
}

type blockerService struct {
	rules core.BlockRuleStore
}

// IsTradingBlocked fails when any instrument's quote asset or exact
// pair has an active block rule for the subaccount. One batched rule
// read per call, evaluated in process.
func (s *blockerService) IsTradingBlocked(ctx context.Context, subaccount string, instruments []core.Instrument) error {
	rules, err := s.rules.Find(ctx, subaccount)
	if err != nil {
		return err
	}

	blockedAssets := make(map[core.Market]map[string]bool)
	blockedPairs := make(map[core.Market]map[string]bool)
	for _, rule := range rules {
		switch rule.Status {
		case core.StatusDone:
		case core.StatusRemoved:
			// tombstoned, never active for blocking purposes
			continue
		default:
			return fmt.Errorf("%w: unknown block rule status %q", core.ErrLedgerCorrupted, rule.Status)
		}

		switch rule.Kind {
		case core.BlockKindAsset:
			if blockedAssets[rule.Market] == nil {
				blockedAssets[rule.Market] = make(map[string]bool)
			}
			blockedAssets[rule.Market][rule.Symbol] = true
		case core.BlockKindPair:
			if blockedPairs[rule.Market] == nil {
				blockedPairs[rule.Market] = make(map[string]bool)
			}
			blockedPairs[rule.Market][rule.Symbol] = true
		default:
			return fmt.Errorf("%w: unknown block rule kind %q", core.ErrLedgerCorrupted, rule.Kind)
		}
	}

	for _, instrument := range instruments {
		if blockedAssets[instrument.Market][instrument.QuoteAsset] {
			return fmt.Errorf("trading is blocked for asset %s instrument %s", instrument.QuoteAsset, instrument.Pair)
		}
		if blockedPairs[instrument.Market][instrument.Pair] {
			return fmt.Errorf("trading is blocked for pair %s", instrument.Pair)
		}
	}
	return nil
}

// AddBlockRule idempotent: adding an already active rule succeeds
// without side effects. A rule still under removal must be finalized
// before it can be re-added.
func (s *blockerService) AddBlockRule(ctx context.Context, subaccount string, market core.Market, symbol string, kind core.BlockKind) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"subaccount": subaccount,
		"market":     market,
		"symbol":     symbol,
		"kind":       kind,
	})

	if !kind.Valid() {
		return fmt.Errorf("unknown block rule kind %q", kind)
	}
	if !market.Valid() {
		return fmt.Errorf("unknown market %q", market)
	}

	rule, err := s.rules.FindOne(ctx, subaccount, market, symbol, kind)
	if err != nil {
		return err
	}

	if rule == nil {
		log.Infoln("insert block rule")
		return s.rules.Create(ctx, &core.BlockRule{
			Subaccount: subaccount,
			Market:     market,
			Symbol:     symbol,
			Kind:       kind,
			Status:     core.StatusDone,
		})
	}

	switch rule.Status {
	case core.StatusDone:
		log.Infoln("block rule already exists")
		return nil
	case core.StatusRemoved:
		return fmt.Errorf("%w: %s %s %s %s", core.ErrBlockRuleRemovalPending, subaccount, market, symbol, kind)
	default:
		return fmt.Errorf("%w: unknown block rule status %q", core.ErrLedgerCorrupted, rule.Status)
	}
}

// RemoveBlockRule idempotent: removing a missing rule or one already
// under removal succeeds without side effects.
func (s *blockerService) RemoveBlockRule(ctx context.Context, subaccount string, market core.Market, symbol string, kind core.BlockKind) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"subaccount": subaccount,
		"market":     market,
		"symbol":     symbol,
		"kind":       kind,
	})

	if !kind.Valid() {
		return fmt.Errorf("unknown block rule kind %q", kind)
	}

	rule, err := s.rules.FindOne(ctx, subaccount, market, symbol, kind)
	if err != nil {
		return err
	}

	if rule == nil {
		log.Infoln("block rule does not exist")
		return nil
	}

	switch rule.Status {
	case core.StatusRemoved:
		log.Infoln("block rule already under removal")
		return nil
	case core.StatusDone:
		log.Infoln("remove block rule")
		return s.rules.Delete(ctx, subaccount, market, symbol, kind)
	default:
		return fmt.Errorf("%w: unknown block rule status %q", core.ErrLedgerCorrupted, rule.Status)
	}
}
