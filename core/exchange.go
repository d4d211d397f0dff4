package core

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Exchange exchange id
type Exchange string

const (
	// ExchangeBinance binance
	ExchangeBinance Exchange = "binance"
	// ExchangeBybit bybit
	ExchangeBybit Exchange = "bybit"
	// ExchangeOkex okex
	ExchangeOkex Exchange = "okex"
)

// Valid check if the exchange is supported
func (e Exchange) Valid() bool {
	switch e {
	case ExchangeBinance, ExchangeBybit, ExchangeOkex:
		return true
	}
	return false
}

// Market a tradable venue on an exchange
type Market string

const (
	// MarketBinanceSpots binance spot market
	MarketBinanceSpots Market = "binance-spots"
	// MarketBinanceFutures binance usdt futures market
	MarketBinanceFutures Market = "binance-futures"
	// MarketBybitSpots bybit spot market
	MarketBybitSpots Market = "bybit-spots"
	// MarketBybitFutures bybit futures market
	MarketBybitFutures Market = "bybit-futures"
	// MarketOkexSpots okex spot market
	MarketOkexSpots Market = "okex-spots"
	// MarketOkexFutures okex futures market
	MarketOkexFutures Market = "okex-futures"
)

// Exchange the exchange this market belongs to
func (m Market) Exchange() Exchange {
	switch m {
	case MarketBinanceSpots, MarketBinanceFutures:
		return ExchangeBinance
	case MarketBybitSpots, MarketBybitFutures:
		return ExchangeBybit
	case MarketOkexSpots, MarketOkexFutures:
		return ExchangeOkex
	}
	return ""
}

// Valid check if the market is supported
func (m Market) Valid() bool {
	return m.Exchange().Valid()
}

// WalletType wallet type on an exchange
type WalletType string

const (
	// WalletSpot spot wallet
	WalletSpot WalletType = "spot"
	// WalletMargin cross margin wallet
	WalletMargin WalletType = "margin"
	// WalletPortfolioMarginPro binance portfolio margin pro wallet
	WalletPortfolioMarginPro WalletType = "portfolio-margin-pro"
)

// Wallet a concrete wallet of a subaccount on an exchange
type Wallet struct {
	Exchange Exchange   `json:"exchange"`
	Type     WalletType `json:"type"`
}

// MarginWallet the wallet eligible for loan balances on the exchange
func MarginWallet(exchange Exchange) Wallet {
	if exchange == ExchangeBinance {
		return Wallet{Exchange: exchange, Type: WalletPortfolioMarginPro}
	}
	return Wallet{Exchange: exchange, Type: WalletMargin}
}

// IsMargin report whether this wallet may hold borrowed funds
func (w Wallet) IsMargin() bool {
	return w == MarginWallet(w.Exchange)
}

func (w Wallet) String() string {
	return fmt.Sprintf("%s:%s", w.Exchange, w.Type)
}

// Side order side
type Side string

const (
	// SideBuy bid
	SideBuy Side = "buy"
	// SideSell ask
	SideSell Side = "sell"
)

// Instrument tradable instrument description with metadata
type Instrument struct {
	Market       Market          `json:"market"`
	Pair         string          `json:"pair"`
	BaseAsset    string          `json:"base_asset"`
	QuoteAsset   string          `json:"quote_asset"`
	ContractSize decimal.Decimal `json:"contract_size"`
	LotSize      decimal.Decimal `json:"lot_size"`
}

func (i Instrument) String() string {
	return fmt.Sprintf("%s/%s", i.Market, i.Pair)
}

// ExchangeService execution gateway: borrow/repay primitives, market
// orders, wallet transfers and instrument metadata. Every call either
// completes or fails synchronously; failures are never fatal to the
// process.
type ExchangeService interface {
	Borrow(ctx context.Context, subaccount string, exchange Exchange, asset string, amount decimal.Decimal) error
	Repay(ctx context.Context, subaccount string, exchange Exchange, asset string, amount decimal.Decimal) error
	SendMarket(ctx context.Context, subaccount string, instrument Instrument, side Side, size decimal.Decimal) error
	Transfer(ctx context.Context, from string, fromWallet Wallet, to string, toWallet Wallet, asset string, amount decimal.Decimal) error
	GetLastPrice(ctx context.Context, instrument Instrument) (decimal.Decimal, error)
	GetSpotInstrumentByAsset(ctx context.Context, asset string, exchange Exchange) (Instrument, error)
	GetFuturesInstrumentByAsset(ctx context.Context, asset string, exchange Exchange) (Instrument, error)
	GetInstrumentUpdates(ctx context.Context, market Market) ([]Instrument, error)
}
