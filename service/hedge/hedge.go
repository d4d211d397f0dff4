package hedge

import (
	"context"
	"errors"
	"fmt"

	"fundscontroller/core"
	"fundscontroller/internal/command"
	"fundscontroller/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var errAmountNotPositive = errors.New("amount must be positive")

// New new hedge manager
func New(
	gateway core.ExchangeService,
	hedges core.HedgeStore,
	futures core.FuturesHedgeStore,
	blocker core.BlockerService,
	alerter core.Alerter,
) core.HedgeService {
	return &hedgeService{
		gateway: gateway,
		hedges:  hedges,
		futures: futures,
		blocker: blocker,
		alerter: alerter,
	}
}

type hedgeService struct {
	gateway core.ExchangeService
	hedges  core.HedgeStore
	futures core.FuturesHedgeStore
	blocker core.BlockerService
	alerter core.Alerter
}

func (s *hedgeService) GetHedgesInfo(ctx context.Context, subaccount, asset string) ([]*core.HedgeInfo, error) {
	rows, err := s.hedges.Find(ctx, subaccount, asset)
	if err != nil {
		return nil, fmt.Errorf("find hedges: %w", err)
	}

	hedges := make([]*core.HedgeInfo, 0, len(rows))
	for _, row := range rows {
		switch row.Status {
		case core.StatusDone:
		case core.StatusRemoved:
			continue
		default:
			return nil, fmt.Errorf("%w: unknown hedge status %q", core.ErrLedgerCorrupted, row.Status)
		}
		hedges = append(hedges, row)
	}
	return hedges, nil
}

func (s *hedgeService) GetFuturesHedge(ctx context.Context, hedgeID string) (*core.FuturesHedge, error) {
	hedge, err := s.futures.FindByHedgeID(ctx, hedgeID)
	if err != nil {
		return nil, fmt.Errorf("find futures hedge: %w", err)
	}
	if hedge != nil && hedge.Status != core.StatusDone && hedge.Status != core.StatusRemoved {
		return nil, fmt.Errorf("%w: unknown futures hedge status %q", core.ErrLedgerCorrupted, hedge.Status)
	}
	return hedge, nil
}

func (s *hedgeService) GetCurrentHedgeAmountOnAccount(ctx context.Context, subaccount, asset string) (decimal.Decimal, error) {
	hedges, err := s.GetHedgesInfo(ctx, subaccount, asset)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, hedge := range hedges {
		total = total.Add(hedge.Amount)
	}
	return total, nil
}

// CreateHedge sells the futures leg and buys the spot leg as one
// composite command, then records the futures hedge row and the hedge
// info row under a fresh hedge id. The futures order quantity is
// amount scaled by contract size over lot size.
func (s *hedgeService) CreateHedge(ctx context.Context, subaccount string, exchange core.Exchange, asset string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":         "create_hedge",
		"subaccount": subaccount,
		"asset":      asset,
		"amount":     amount,
	})
	ctx = logger.WithContext(ctx, log)

	if !amount.IsPositive() {
		return errAmountNotPositive
	}
	if !exchange.Valid() {
		return fmt.Errorf("unknown exchange %q", exchange)
	}

	log.Infoln("creating hedge")
	futuresInstrument, err := s.gateway.GetFuturesInstrumentByAsset(ctx, asset, exchange)
	if err != nil {
		return err
	}

	updates, err := s.gateway.GetInstrumentUpdates(ctx, futuresInstrument.Market)
	if err != nil {
		return err
	}
	metadata, err := findInstrument(updates, futuresInstrument)
	if err != nil {
		return err
	}

	spotInstrument, err := s.gateway.GetSpotInstrumentByAsset(ctx, asset, exchange)
	if err != nil {
		return err
	}

	if err := s.blocker.IsTradingBlocked(ctx, subaccount, []core.Instrument{metadata, spotInstrument}); err != nil {
		return err
	}

	if !metadata.LotSize.IsPositive() || !metadata.ContractSize.IsPositive() {
		return fmt.Errorf("invalid contract metadata for %s", metadata)
	}
	futuresQty := amount.Neg().Mul(metadata.ContractSize).Div(metadata.LotSize)

	cmd := command.Merge(
		command.SendMarket(s.gateway, subaccount, metadata, futuresQty),
		command.SendMarket(s.gateway, subaccount, spotInstrument, amount),
	)
	if err := cmd.Execute(ctx); err != nil {
		return err
	}

	hedgeID := id.GenLedgerID()
	amountUSD, err := s.openAmountUSD(ctx, metadata, amount)
	if err != nil {
		return s.compensate(ctx, cmd, err)
	}

	if err := s.futures.Create(ctx, &core.FuturesHedge{
		Subaccount:     subaccount,
		Market:         metadata.Market,
		Pair:           metadata.Pair,
		CryptoEqAmount: amount,
		OpenAmountUSD:  amountUSD,
		HedgeID:        hedgeID,
		Status:         core.StatusDone,
	}); err != nil {
		return s.compensate(ctx, cmd, err)
	}

	if err := s.hedges.Create(ctx, &core.HedgeInfo{
		Subaccount:        subaccount,
		Asset:             asset,
		Amount:            amount,
		InitialSubaccount: subaccount,
		HedgeID:           hedgeID,
		Status:            core.StatusDone,
	}); err != nil {
		return s.compensate(ctx, cmd, err)
	}
	return nil
}

func (s *hedgeService) compensate(ctx context.Context, cmd core.Command, cause error) error {
	log := logger.FromContext(ctx)
	log.WithError(cause).Infoln("closing hedge, ledger write failed")

	if undoErr := cmd.Undo(ctx); undoErr != nil {
		err := core.Unrecoverable("create hedge", cause, undoErr)
		s.alerter.Send(ctx, err.Error())
		return err
	}
	return fmt.Errorf("ledger write failed: %w", cause)
}

func (s *hedgeService) openAmountUSD(ctx context.Context, instrument core.Instrument, amount decimal.Decimal) (decimal.Decimal, error) {
	price, err := s.gateway.GetLastPrice(ctx, instrument)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(price), nil
}

func findInstrument(updates []core.Instrument, want core.Instrument) (core.Instrument, error) {
	for _, update := range updates {
		if update.Market == want.Market && update.Pair == want.Pair {
			return update, nil
		}
	}
	return core.Instrument{}, fmt.Errorf("instrument update for %s not found", want)
}
