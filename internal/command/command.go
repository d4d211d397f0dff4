package command

import (
	"context"

	"fundscontroller/core"

	"github.com/shopspring/decimal"
)

// SendMarket market order command. The sign of amount picks the side,
// positive buys, negative sells; undo places the opposite order for
// the same size. Undo restores position, not value.
func SendMarket(gateway core.ExchangeService, subaccount string, instrument core.Instrument, amount decimal.Decimal) core.Command {
	return &sendMarketCommand{
		gateway:    gateway,
		subaccount: subaccount,
		instrument: instrument,
		amount:     amount,
	}
}

type sendMarketCommand struct {
	gateway    core.ExchangeService
	subaccount string
	instrument core.Instrument
	amount     decimal.Decimal
}

func (c *sendMarketCommand) Execute(ctx context.Context) error {
	return c.gateway.SendMarket(ctx, c.subaccount, c.instrument, sideOf(c.amount), c.amount.Abs())
}

func (c *sendMarketCommand) Undo(ctx context.Context) error {
	return c.gateway.SendMarket(ctx, c.subaccount, c.instrument, sideOf(c.amount.Neg()), c.amount.Abs())
}

func sideOf(amount decimal.Decimal) core.Side {
	if amount.IsPositive() {
		return core.SideBuy
	}
	return core.SideSell
}

// TransferCrypto wallet transfer command; undo moves the amount back.
func TransferCrypto(gateway core.ExchangeService, from string, fromWallet core.Wallet, to string, toWallet core.Wallet, asset string, amount decimal.Decimal) core.Command {
	return &transferCryptoCommand{
		gateway:    gateway,
		from:       from,
		fromWallet: fromWallet,
		to:         to,
		toWallet:   toWallet,
		asset:      asset,
		amount:     amount,
	}
}

type transferCryptoCommand struct {
	gateway    core.ExchangeService
	from       string
	fromWallet core.Wallet
	to         string
	toWallet   core.Wallet
	asset      string
	amount     decimal.Decimal
}

func (c *transferCryptoCommand) Execute(ctx context.Context) error {
	return c.gateway.Transfer(ctx, c.from, c.fromWallet, c.to, c.toWallet, c.asset, c.amount)
}

func (c *transferCryptoCommand) Undo(ctx context.Context) error {
	return c.gateway.Transfer(ctx, c.to, c.toWallet, c.from, c.fromWallet, c.asset, c.amount)
}

// Borrow borrow command; undo repays the same amount.
func Borrow(gateway core.ExchangeService, subaccount string, exchange core.Exchange, asset string, amount decimal.Decimal) core.Command {
	return &borrowCommand{
		gateway:    gateway,
		subaccount: subaccount,
		exchange:   exchange,
		asset:      asset,
		amount:     amount,
	}
}

type borrowCommand struct {
	gateway    core.ExchangeService
	subaccount string
	exchange   core.Exchange
	asset      string
	amount     decimal.Decimal
}

func (c *borrowCommand) Execute(ctx context.Context) error {
	return c.gateway.Borrow(ctx, c.subaccount, c.exchange, c.asset, c.amount)
}

func (c *borrowCommand) Undo(ctx context.Context) error {
	return c.gateway.Repay(ctx, c.subaccount, c.exchange, c.asset, c.amount)
}

// Repay repay command; undo borrows the same amount back.
func Repay(gateway core.ExchangeService, subaccount string, exchange core.Exchange, asset string, amount decimal.Decimal) core.Command {
	return &repayCommand{
		gateway:    gateway,
		subaccount: subaccount,
		exchange:   exchange,
		asset:      asset,
		amount:     amount,
	}
}

type repayCommand struct {
	gateway    core.ExchangeService
	subaccount string
	exchange   core.Exchange
	asset      string
	amount     decimal.Decimal
}

func (c *repayCommand) Execute(ctx context.Context) error {
	return c.gateway.Repay(ctx, c.subaccount, c.exchange, c.asset, c.amount)
}

func (c *repayCommand) Undo(ctx context.Context) error {
	return c.gateway.Borrow(ctx, c.subaccount, c.exchange, c.asset, c.amount)
}
