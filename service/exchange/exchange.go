package exchange

import (
	"context"
	"fmt"
	"time"

	"fundscontroller/core"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// New execution gateway client. One long-lived client serves every
// operation; the gateway owns connectivity, order routing and
// credentials.
func New(cfg core.GatewayConfig) core.ExchangeService {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &gatewayClient{
		client: resty.New().
			SetBaseURL(cfg.Endpoint).
			SetTimeout(timeout),
	}
}

type gatewayClient struct {
	client *resty.Client
}

type gatewayError struct {
	Msg string `json:"msg"`
}

func (c *gatewayClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	var gwerr gatewayError
	req := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetError(&gwerr)
	if out != nil {
		req = req.SetResult(out)
	}

	resp, err := req.Post(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("gateway %s: %s %s", path, resp.Status(), gwerr.Msg)
	}
	return nil
}

func (c *gatewayClient) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	var gwerr gatewayError
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		SetError(&gwerr).
		Get(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("gateway %s: %s %s", path, resp.Status(), gwerr.Msg)
	}
	return nil
}

func (c *gatewayClient) Borrow(ctx context.Context, subaccount string, exchange core.Exchange, asset string, amount decimal.Decimal) error {
	return c.post(ctx, "/loans/borrow", map[string]interface{}{
		"subaccount": subaccount,
		"exchange":   exchange,
		"asset":      asset,
		"amount":     amount,
	}, nil)
}

func (c *gatewayClient) Repay(ctx context.Context, subaccount string, exchange core.Exchange, asset string, amount decimal.Decimal) error {
	return c.post(ctx, "/loans/repay", map[string]interface{}{
		"subaccount": subaccount,
		"exchange":   exchange,
		"asset":      asset,
		"amount":     amount,
	}, nil)
}

func (c *gatewayClient) SendMarket(ctx context.Context, subaccount string, instrument core.Instrument, side core.Side, size decimal.Decimal) error {
	return c.post(ctx, "/orders/market", map[string]interface{}{
		"subaccount": subaccount,
		"market":     instrument.Market,
		"pair":       instrument.Pair,
		"side":       side,
		"size":       size,
	}, nil)
}

func (c *gatewayClient) Transfer(ctx context.Context, from string, fromWallet core.Wallet, to string, toWallet core.Wallet, asset string, amount decimal.Decimal) error {
	return c.post(ctx, "/wallets/transfer", map[string]interface{}{
		"from":        from,
		"from_wallet": fromWallet,
		"to":          to,
		"to_wallet":   toWallet,
		"asset":       asset,
		"amount":      amount,
	}, nil)
}

func (c *gatewayClient) GetLastPrice(ctx context.Context, instrument core.Instrument) (decimal.Decimal, error) {
	var out struct {
		Price decimal.Decimal `json:"price"`
	}
	if err := c.get(ctx, "/prices/last", map[string]string{
		"market": string(instrument.Market),
		"pair":   instrument.Pair,
	}, &out); err != nil {
		return decimal.Zero, err
	}
	return out.Price, nil
}

func (c *gatewayClient) GetSpotInstrumentByAsset(ctx context.Context, asset string, exchange core.Exchange) (core.Instrument, error) {
	var out core.Instrument
	if err := c.get(ctx, "/instruments/spot", map[string]string{
		"asset":    asset,
		"exchange": string(exchange),
	}, &out); err != nil {
		return core.Instrument{}, err
	}
	return out, nil
}

func (c *gatewayClient) GetFuturesInstrumentByAsset(ctx context.Context, asset string, exchange core.Exchange) (core.Instrument, error) {
	var out core.Instrument
	if err := c.get(ctx, "/instruments/futures", map[string]string{
		"asset":    asset,
		"exchange": string(exchange),
	}, &out); err != nil {
		return core.Instrument{}, err
	}
	return out, nil
}

func (c *gatewayClient) GetInstrumentUpdates(ctx context.Context, market core.Market) ([]core.Instrument, error) {
	var out []core.Instrument
	if err := c.get(ctx, "/instruments/updates", map[string]string{
		"market": string(market),
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
