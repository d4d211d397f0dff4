package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fundscontroller/core"
	"fundscontroller/internal/command"
	"fundscontroller/pkg/id"
	"fundscontroller/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var errAmountNotPositive = errors.New("amount must be positive")

// Config loans manager config
type Config struct {
	// StepDelay cooperative pause between allocator steps, keeps
	// repeated borrow/repay calls under exchange rate limits.
	StepDelay time.Duration `json:"step_delay"`
}

// New new loans manager
func New(
	gateway core.ExchangeService,
	loans core.LoanStore,
	borrows core.BorrowStore,
	blocker core.BlockerService,
	alerter core.Alerter,
	cfg Config,
) core.LoanService {
	if cfg.StepDelay <= 0 {
		cfg.StepDelay = time.Second
	}

	return &loanService{
		gateway: gateway,
		loans:   loans,
		borrows: borrows,
		blocker: blocker,
		alerter: alerter,
		cfg:     cfg,
	}
}

type loanService struct {
	gateway core.ExchangeService
	loans   core.LoanStore
	borrows core.BorrowStore
	blocker core.BlockerService
	alerter core.Alerter
	cfg     Config
}

// GetLoansInfo active loan rows for the key, tombstones filtered out.
// Any status other than done/removed aborts: guessing semantics for a
// corrupted row is worse than failing.
func (s *loanService) GetLoansInfo(ctx context.Context, subaccount, asset string) ([]*core.LoanInfo, error) {
	rows, err := s.loans.Find(ctx, subaccount, asset)
	if err != nil {
		return nil, fmt.Errorf("find loans: %w", err)
	}

	loans := make([]*core.LoanInfo, 0, len(rows))
	for _, row := range rows {
		switch row.Status {
		case core.StatusDone:
		case core.StatusRemoved:
			continue
		default:
			return nil, fmt.Errorf("%w: unknown loan status %q", core.ErrLedgerCorrupted, row.Status)
		}
		if !row.Type.Valid() {
			return nil, fmt.Errorf("%w: unknown loan type %q", core.ErrLedgerCorrupted, row.Type)
		}
		loans = append(loans, row)
	}
	return loans, nil
}

func (s *loanService) GetBorrowInfo(ctx context.Context, loanID string) (*core.BorrowInfo, error) {
	borrow, err := s.borrows.FindByLoanID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("find borrow: %w", err)
	}
	if borrow != nil && borrow.Status != core.StatusDone && borrow.Status != core.StatusRemoved {
		return nil, fmt.Errorf("%w: unknown borrow status %q", core.ErrLedgerCorrupted, borrow.Status)
	}
	return borrow, nil
}

func (s *loanService) GetCurrentLoanAmountOnAccount(ctx context.Context, subaccount, asset string) (decimal.Decimal, error) {
	loans, err := s.GetLoansInfo(ctx, subaccount, asset)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, loan := range loans {
		total = total.Add(loan.Amount)
	}
	return total, nil
}

// Borrow executes the borrow at the exchange, then records one borrow
// row and one loan row under a fresh loan id. A failed ledger write
// repays the borrow; a failed repay escalates.
func (s *loanService) Borrow(ctx context.Context, subaccount string, exchange core.Exchange, asset string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":         "borrow",
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

	log.Infoln("borrowing")
	loanID := id.GenLedgerID()
	cmd := command.Borrow(s.gateway, subaccount, exchange, asset, amount)
	if err := cmd.Execute(ctx); err != nil {
		return err
	}

	amountUSD, err := s.lastPriceUSD(ctx, asset, exchange, amount)
	if err != nil {
		return s.compensate(ctx, "borrow", cmd, err)
	}

	if err := s.borrows.Create(ctx, &core.BorrowInfo{
		Subaccount:    subaccount,
		Asset:         asset,
		Amount:        amount,
		OpenAmountUSD: amountUSD,
		LoanID:        loanID,
		Status:        core.StatusDone,
	}); err != nil {
		return s.compensate(ctx, "borrow", cmd, err)
	}

	if err := s.loans.Create(ctx, &core.LoanInfo{
		Subaccount:        subaccount,
		Asset:             asset,
		Amount:            amount,
		InitialSubaccount: subaccount,
		LoanID:            loanID,
		Type:              core.LoanTypeNormal,
		Status:            core.StatusDone,
	}); err != nil {
		// tear down the borrow row written a moment ago, best effort
		if derr := s.borrows.DeleteByLoanID(ctx, loanID); derr != nil {
			log.WithError(derr).Errorln("tear down borrow row failed")
		}
		return s.compensate(ctx, "borrow", cmd, err)
	}
	return nil
}

// Repay walks the subaccount's loan rows in query order and repays
// row by row, shrinking or deleting each consumed row together with
// its backing borrow row. Each iteration commits on its own: earlier
// iterations are never rolled back when a later one fails.
func (s *loanService) Repay(ctx context.Context, subaccount string, exchange core.Exchange, asset string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":         "repay",
		"subaccount": subaccount,
		"exchange":   exchange,
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

	log.Infoln("repaying")
	loans, err := s.GetLoansInfo(ctx, subaccount, asset)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, loan := range loans {
		if loan.InitialSubaccount != subaccount {
			continue
		}
		total = total.Add(loan.Amount)
	}
	if total.LessThan(amount) {
		return core.ErrInsufficientLoanAmount
	}

	remaining := amount
	for _, loan := range loans {
		if loan.InitialSubaccount != subaccount {
			continue
		}

		borrow, err := s.GetBorrowInfo(ctx, loan.LoanID)
		if err != nil {
			return err
		}
		if borrow == nil || borrow.Status != core.StatusDone {
			return core.ErrBorrowNotActive
		}
		if borrow.Amount.LessThan(loan.Amount) {
			return fmt.Errorf("%w: borrow %s smaller than loan amount", core.ErrLedgerCorrupted, borrow.LoanID)
		}

		repayAmount := number.Min(loan.Amount, remaining)
		cmd := command.Repay(s.gateway, subaccount, exchange, asset, repayAmount)
		if err := cmd.Execute(ctx); err != nil {
			return err
		}

		if err := s.shrinkLoanRow(ctx, loan, repayAmount); err != nil {
			return s.compensate(ctx, "repay", cmd, err)
		}
		if err := s.shrinkBorrowRow(ctx, borrow, repayAmount); err != nil {
			return s.compensate(ctx, "repay", cmd, err)
		}

		remaining = remaining.Sub(repayAmount)
		if remaining.IsZero() {
			break
		}

		if err := s.pause(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Transfer moves borrowed balance between subaccounts with the same
// row allocator as Repay. The debt keeps its loan id and initial
// subaccount; only the holder changes. Same exchange moves margin
// wallet to margin wallet, across exchanges the amount is sold on the
// source and bought on the destination.
func (s *loanService) Transfer(ctx context.Context, from string, fromExchange core.Exchange, to string, toExchange core.Exchange, asset string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":    "loan_transfer",
		"from":  from,
		"to":    to,
		"asset": asset,
	})
	ctx = logger.WithContext(ctx, log)

	if !amount.IsPositive() {
		return errAmountNotPositive
	}
	if !fromExchange.Valid() || !toExchange.Valid() {
		return fmt.Errorf("unknown exchange %q/%q", fromExchange, toExchange)
	}

	log.WithField("amount", amount).Infoln("transferring loan")
	loans, err := s.GetLoansInfo(ctx, from, asset)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, loan := range loans {
		total = total.Add(loan.Amount)
	}
	if total.LessThan(amount) {
		return core.ErrInsufficientLoanAmount
	}

	remaining := amount
	for _, loan := range loans {
		transferAmount := number.Min(loan.Amount, remaining)
		cmd, err := s.makeTransferCommand(ctx, from, fromExchange, to, toExchange, asset, transferAmount)
		if err != nil {
			return err
		}
		if err := cmd.Execute(ctx); err != nil {
			return err
		}

		if err := s.shrinkLoanRow(ctx, loan, transferAmount); err != nil {
			return s.compensate(ctx, "loan transfer", cmd, err)
		}

		if err := s.loans.Create(ctx, &core.LoanInfo{
			Subaccount:        to,
			Asset:             asset,
			Amount:            transferAmount,
			InitialSubaccount: loan.InitialSubaccount,
			LoanID:            loan.LoanID,
			Type:              loan.Type,
			Status:            core.StatusDone,
		}); err != nil {
			return s.compensate(ctx, "loan transfer", cmd, err)
		}

		remaining = remaining.Sub(transferAmount)
		if remaining.IsZero() {
			break
		}

		if err := s.pause(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *loanService) makeTransferCommand(ctx context.Context, from string, fromExchange core.Exchange, to string, toExchange core.Exchange, asset string, amount decimal.Decimal) (core.Command, error) {
	if fromExchange == toExchange {
		return command.TransferCrypto(
			s.gateway,
			from, core.MarginWallet(fromExchange),
			to, core.MarginWallet(toExchange),
			asset, amount,
		), nil
	}

	sellInstrument, err := s.gateway.GetSpotInstrumentByAsset(ctx, asset, fromExchange)
	if err != nil {
		return nil, err
	}
	buyInstrument, err := s.gateway.GetSpotInstrumentByAsset(ctx, asset, toExchange)
	if err != nil {
		return nil, err
	}

	if err := s.blocker.IsTradingBlocked(ctx, from, []core.Instrument{sellInstrument}); err != nil {
		return nil, err
	}
	if err := s.blocker.IsTradingBlocked(ctx, to, []core.Instrument{buyInstrument}); err != nil {
		return nil, err
	}

	return command.Merge(
		command.SendMarket(s.gateway, from, sellInstrument, amount.Neg()),
		command.SendMarket(s.gateway, to, buyInstrument, amount),
	), nil
}

func (s *loanService) shrinkLoanRow(ctx context.Context, loan *core.LoanInfo, consumed decimal.Decimal) error {
	if loan.Amount.Equal(consumed) {
		return s.loans.Delete(ctx, loan.ID)
	}
	return s.loans.UpdateAmount(ctx, loan.ID, loan.Amount.Sub(consumed))
}

func (s *loanService) shrinkBorrowRow(ctx context.Context, borrow *core.BorrowInfo, consumed decimal.Decimal) error {
	if borrow.Amount.Equal(consumed) {
		return s.borrows.Delete(ctx, borrow.ID)
	}
	return s.borrows.UpdateAmount(ctx, borrow.ID, borrow.Amount.Sub(consumed))
}

// compensate undoes the step's external action after its ledger write
// failed. A failed undo leaves ledger and exchange state disagreeing:
// alert and return the unrecoverable variant.
func (s *loanService) compensate(ctx context.Context, op string, cmd core.Command, cause error) error {
	log := logger.FromContext(ctx)
	log.WithError(cause).Infoln("undoing, ledger write failed")

	if undoErr := cmd.Undo(ctx); undoErr != nil {
		err := core.Unrecoverable(op, cause, undoErr)
		s.alerter.Send(ctx, err.Error())
		return err
	}
	return fmt.Errorf("ledger write failed: %w", cause)
}

// pause cooperative delay between allocator steps; holds no lock.
func (s *loanService) pause(ctx context.Context) error {
	select {
	case <-time.After(s.cfg.StepDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *loanService) lastPriceUSD(ctx context.Context, asset string, exchange core.Exchange, amount decimal.Decimal) (decimal.Decimal, error) {
	instrument, err := s.gateway.GetSpotInstrumentByAsset(ctx, asset, exchange)
	if err != nil {
		return decimal.Zero, err
	}
	price, err := s.gateway.GetLastPrice(ctx, instrument)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(price), nil
}
