package hedge

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"fundscontroller/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marketCall struct {
	market core.Market
	pair   string
	side   core.Side
	size   decimal.Decimal
}

type fakeGateway struct {
	markets []marketCall

	contractSize string
	lotSize      string
	lastPrice    string

	sendMarketErrOn int // fail the n-th SendMarket call, 0 = never
	updatesErr      error
}

func (g *fakeGateway) Borrow(ctx context.Context, subaccount string, exchange core.Exchange, asset string, amount decimal.Decimal) error {
	return errors.New("not implemented")
}

func (g *fakeGateway) Repay(ctx context.Context, subaccount string, exchange core.Exchange, asset string, amount decimal.Decimal) error {
	return errors.New("not implemented")
}

func (g *fakeGateway) SendMarket(ctx context.Context, subaccount string, instrument core.Instrument, side core.Side, size decimal.Decimal) error {
	if g.sendMarketErrOn > 0 && len(g.markets)+1 == g.sendMarketErrOn {
		return errors.New("order rejected")
	}
	g.markets = append(g.markets, marketCall{market: instrument.Market, pair: instrument.Pair, side: side, size: size})
	return nil
}

func (g *fakeGateway) Transfer(ctx context.Context, from string, fromWallet core.Wallet, to string, toWallet core.Wallet, asset string, amount decimal.Decimal) error {
	return errors.New("not implemented")
}

func (g *fakeGateway) GetLastPrice(ctx context.Context, instrument core.Instrument) (decimal.Decimal, error) {
	return decimal.RequireFromString(g.lastPrice), nil
}

func (g *fakeGateway) GetSpotInstrumentByAsset(ctx context.Context, asset string, exchange core.Exchange) (core.Instrument, error) {
	return core.Instrument{Market: core.MarketBinanceSpots, Pair: asset + "USDT", BaseAsset: asset, QuoteAsset: "USDT"}, nil
}

func (g *fakeGateway) GetFuturesInstrumentByAsset(ctx context.Context, asset string, exchange core.Exchange) (core.Instrument, error) {
	return core.Instrument{Market: core.MarketBinanceFutures, Pair: asset + "USDT", BaseAsset: asset, QuoteAsset: "USDT"}, nil
}

func (g *fakeGateway) GetInstrumentUpdates(ctx context.Context, market core.Market) ([]core.Instrument, error) {
	if g.updatesErr != nil {
		return nil, g.updatesErr
	}
	return []core.Instrument{{
		Market:       market,
		Pair:         "BTCUSDT",
		BaseAsset:    "BTC",
		QuoteAsset:   "USDT",
		ContractSize: decimal.RequireFromString(g.contractSize),
		LotSize:      decimal.RequireFromString(g.lotSize),
	}}, nil
}

type memHedgeStore struct {
	rows      []*core.HedgeInfo
	createErr error
}

func (s *memHedgeStore) Create(ctx context.Context, hedge *core.HedgeInfo) error {
	if s.createErr != nil {
		return s.createErr
	}
	r := *hedge
	r.ID = fmt.Sprintf("hedge-%d", len(s.rows)+1)
	s.rows = append(s.rows, &r)
	return nil
}

func (s *memHedgeStore) Find(ctx context.Context, subaccount, asset string) ([]*core.HedgeInfo, error) {
	var out []*core.HedgeInfo
	for _, r := range s.rows {
		if r.Subaccount == subaccount && r.Asset == asset {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memHedgeStore) UpdateAmount(ctx context.Context, id string, amount decimal.Decimal) error {
	for _, r := range s.rows {
		if r.ID == id {
			r.Amount = amount
			return nil
		}
	}
	return errors.New("row not found")
}

func (s *memHedgeStore) Delete(ctx context.Context, id string) error {
	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	return nil
}

func (s *memHedgeStore) DeleteByHedgeID(ctx context.Context, hedgeID string) error {
	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.HedgeID != hedgeID {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	return nil
}

type memFuturesStore struct {
	rows      []*core.FuturesHedge
	createErr error
}

func (s *memFuturesStore) Create(ctx context.Context, hedge *core.FuturesHedge) error {
	if s.createErr != nil {
		return s.createErr
	}
	r := *hedge
	r.ID = fmt.Sprintf("futures-%d", len(s.rows)+1)
	s.rows = append(s.rows, &r)
	return nil
}

func (s *memFuturesStore) FindByHedgeID(ctx context.Context, hedgeID string) (*core.FuturesHedge, error) {
	for _, r := range s.rows {
		if r.HedgeID == hedgeID {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memFuturesStore) UpdateAmount(ctx context.Context, id string, amount decimal.Decimal) error {
	for _, r := range s.rows {
		if r.ID == id {
			r.CryptoEqAmount = amount
			return nil
		}
	}
	return errors.New("row not found")
}

func (s *memFuturesStore) Delete(ctx context.Context, id string) error {
	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	return nil
}

func (s *memFuturesStore) DeleteByHedgeID(ctx context.Context, hedgeID string) error {
	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.HedgeID != hedgeID {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	return nil
}

type stubBlocker struct {
	err error
}

func (b stubBlocker) IsTradingBlocked(ctx context.Context, subaccount string, instruments []core.Instrument) error {
	return b.err
}

func (b stubBlocker) AddBlockRule(ctx context.Context, subaccount string, market core.Market, symbol string, kind core.BlockKind) error {
	return nil
}

func (b stubBlocker) RemoveBlockRule(ctx context.Context, subaccount string, market core.Market, symbol string, kind core.BlockKind) error {
	return nil
}

type fakeAlerter struct {
	messages []string
}

func (a *fakeAlerter) Send(ctx context.Context, message string) {
	a.messages = append(a.messages, message)
}

func TestCreateHedgeSellsFuturesAndBuysSpot(t *testing.T) {
	ctx := context.Background()
	gateway := &fakeGateway{contractSize: "1", lotSize: "0.5", lastPrice: "100"}
	hedges := &memHedgeStore{}
	futures := &memFuturesStore{}
	svc := New(gateway, hedges, futures, stubBlocker{}, &fakeAlerter{})

	require.NoError(t, svc.CreateHedge(ctx, "acct", core.ExchangeBinance, "BTC", decimal.NewFromInt(2)))

	// futures qty scales by contract size over lot size: 2*1/0.5 = 4
	require.Len(t, gateway.markets, 2)
	assert.Equal(t, core.MarketBinanceFutures, gateway.markets[0].market)
	assert.Equal(t, core.SideSell, gateway.markets[0].side)
	assert.Equal(t, "4", gateway.markets[0].size.String())
	assert.Equal(t, core.MarketBinanceSpots, gateway.markets[1].market)
	assert.Equal(t, core.SideBuy, gateway.markets[1].side)
	assert.Equal(t, "2", gateway.markets[1].size.String())

	require.Len(t, hedges.rows, 1)
	require.Len(t, futures.rows, 1)
	assert.Equal(t, hedges.rows[0].HedgeID, futures.rows[0].HedgeID)
	assert.Equal(t, "2", futures.rows[0].CryptoEqAmount.String())
	assert.Equal(t, "200", futures.rows[0].OpenAmountUSD.String())

	total, err := svc.GetCurrentHedgeAmountOnAccount(ctx, "acct", "BTC")
	require.NoError(t, err)
	assert.Equal(t, "2", total.String())
}

func TestCreateHedgeRespectsBlockRules(t *testing.T) {
	ctx := context.Background()
	gateway := &fakeGateway{contractSize: "1", lotSize: "1", lastPrice: "100"}
	svc := New(gateway, &memHedgeStore{}, &memFuturesStore{}, stubBlocker{err: errors.New("trading is blocked for pair BTCUSDT")}, &fakeAlerter{})

	err := svc.CreateHedge(ctx, "acct", core.ExchangeBinance, "BTC", decimal.NewFromInt(1))
	require.Error(t, err)
	assert.Empty(t, gateway.markets, "blocked hedge must not place orders")
}

func TestCreateHedgeRejectsBadContractMetadata(t *testing.T) {
	ctx := context.Background()
	gateway := &fakeGateway{contractSize: "0", lotSize: "1", lastPrice: "100"}
	svc := New(gateway, &memHedgeStore{}, &memFuturesStore{}, stubBlocker{}, &fakeAlerter{})

	err := svc.CreateHedge(ctx, "acct", core.ExchangeBinance, "BTC", decimal.NewFromInt(1))
	require.Error(t, err)
	assert.Empty(t, gateway.markets)
}

func TestCreateHedgeSecondLegFailurePropagates(t *testing.T) {
	ctx := context.Background()
	gateway := &fakeGateway{contractSize: "1", lotSize: "1", lastPrice: "100", sendMarketErrOn: 2}
	hedges := &memHedgeStore{}
	futures := &memFuturesStore{}
	svc := New(gateway, hedges, futures, stubBlocker{}, &fakeAlerter{})

	err := svc.CreateHedge(ctx, "acct", core.ExchangeBinance, "BTC", decimal.NewFromInt(2))
	require.Error(t, err)

	// the executed sell leg stays put: order failures surface to the
	// caller, only ledger failures trigger an unwind
	require.Len(t, gateway.markets, 1)
	assert.Equal(t, core.SideSell, gateway.markets[0].side)
	assert.Equal(t, core.MarketBinanceFutures, gateway.markets[0].market)

	assert.Empty(t, hedges.rows)
	assert.Empty(t, futures.rows)
}

func TestCreateHedgeLedgerFailureClosesPosition(t *testing.T) {
	ctx := context.Background()
	gateway := &fakeGateway{contractSize: "1", lotSize: "1", lastPrice: "100"}
	hedges := &memHedgeStore{createErr: errors.New("insert failed")}
	futures := &memFuturesStore{}
	alerter := &fakeAlerter{}
	svc := New(gateway, hedges, futures, stubBlocker{}, alerter)

	err := svc.CreateHedge(ctx, "acct", core.ExchangeBinance, "BTC", decimal.NewFromInt(2))
	require.Error(t, err)
	assert.False(t, core.IsUnrecoverable(err))

	// both legs opened, then both netted out by the undo
	require.Len(t, gateway.markets, 4)
	assert.Equal(t, core.SideSell, gateway.markets[2].side, "spot buy is unwound first")
	assert.Equal(t, core.MarketBinanceSpots, gateway.markets[2].market)
	assert.Equal(t, core.SideBuy, gateway.markets[3].side)
	assert.Equal(t, core.MarketBinanceFutures, gateway.markets[3].market)
	assert.Empty(t, alerter.messages)
}
