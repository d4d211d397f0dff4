package transaction

import (
	"context"
	"errors"
	"fmt"

	"fundscontroller/core"
	"fundscontroller/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	errAmountNotPositive = errors.New("amount must be positive")
	// errCrossExchangeFreeBalance free balance can only move inside one
	// exchange; only the loan-backed portion may cross exchanges.
	errCrossExchangeFreeBalance = errors.New("can't transfer free balance between different exchanges")
)

// New new transaction manager
func New(
	gateway core.ExchangeService,
	loans core.LoanService,
	accounts core.AccountService,
	transactions core.TransactionStore,
	alerter core.Alerter,
) core.TransactionService {
	return &transactionService{
		gateway:      gateway,
		loans:        loans,
		accounts:     accounts,
		transactions: transactions,
		alerter:      alerter,
	}
}

type transactionService struct {
	gateway      core.ExchangeService
	loans        core.LoanService
	accounts     core.AccountService
	transactions core.TransactionStore
	alerter      core.Alerter
}

// Transfer splits the amount into a loan-backed portion, moved through
// the loans manager, and a free-balance portion, moved directly. The
// loan leg goes first; if the free leg then fails, the loan leg is
// transferred back. On success one immutable transaction row is
// appended.
func (s *transactionService) Transfer(ctx context.Context, from string, fromWallet core.Wallet, to string, toWallet core.Wallet, asset string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":     "transfer",
		"from":   from,
		"to":     to,
		"asset":  asset,
		"amount": amount,
	})
	ctx = logger.WithContext(ctx, log)

	if !amount.IsPositive() {
		return errAmountNotPositive
	}
	if err := s.accounts.CheckAccount(ctx, from, fromWallet); err != nil {
		return err
	}
	if err := s.accounts.CheckAccount(ctx, to, toWallet); err != nil {
		return err
	}

	loanBalance, err := s.loans.GetCurrentLoanAmountOnAccount(ctx, from, asset)
	if err != nil {
		return err
	}

	loanAmount := number.Min(loanBalance, amount)
	if !fromWallet.IsMargin() || !toWallet.IsMargin() {
		log.Infoln("non margin wallet, not transferring loan")
		loanAmount = decimal.Zero
	}

	if !amount.Equal(loanAmount) && fromWallet.Exchange != toWallet.Exchange {
		return errCrossExchangeFreeBalance
	}

	if loanAmount.IsPositive() {
		if err := s.loans.Transfer(ctx, from, fromWallet.Exchange, to, toWallet.Exchange, asset, loanAmount); err != nil {
			return err
		}
	}

	freeAmount := amount.Sub(loanAmount)
	if freeAmount.IsPositive() {
		if err := s.gateway.Transfer(ctx, from, fromWallet, to, toWallet, asset, freeAmount); err != nil {
			log.WithError(err).Errorln("free balance transfer failed")
			if loanAmount.IsZero() {
				return err
			}

			// send the already-moved loan portion back
			if backErr := s.loans.Transfer(ctx, to, toWallet.Exchange, from, fromWallet.Exchange, asset, loanAmount); backErr != nil {
				uerr := core.Unrecoverable("transfer", err, backErr)
				s.alerter.Send(ctx, "failed to transfer loan back: "+uerr.Error())
				return uerr
			}
			return err
		}
	}

	extra := core.TransferExtra{LoanAmount: loanAmount, FreeAmount: freeAmount}
	if err := s.transactions.Create(ctx, &core.Transaction{
		From:       from,
		FromWallet: fromWallet.String(),
		To:         to,
		ToWallet:   toWallet.String(),
		Asset:      asset,
		Amount:     amount,
		Type:       core.TransactionTypeTransfer,
		Status:     core.StatusDone,
		Extra:      extra.Format(),
	}); err != nil {
		return fmt.Errorf("record transaction: %w", err)
	}
	return nil
}
