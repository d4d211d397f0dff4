package cmd

import (
	"fundscontroller/core"
	"fundscontroller/service/account"
	"fundscontroller/service/alert"
	"fundscontroller/service/blocker"
	"fundscontroller/service/exchange"
	"fundscontroller/service/hedge"
	"fundscontroller/service/loan"
	"fundscontroller/service/transaction"

	"github.com/fox-one/pkg/store/db"
)

func provideConfig() *core.Config {
	return &cfg
}

func provideExchangeService() core.ExchangeService {
	return exchange.New(cfg.Gateway)
}

func provideFundsAlerter() core.Alerter {
	if cfg.Alert.FundsWebhook == "" {
		return alert.Nop()
	}
	return alert.New(cfg.Alert.FundsWebhook)
}

func provideOpsAlerter() core.Alerter {
	if cfg.Alert.OpsWebhook == "" {
		return alert.Nop()
	}
	return alert.New(cfg.Alert.OpsWebhook)
}

func provideAccountService() core.AccountService {
	return account.New(provideConfig())
}

func provideBlockerService(database *db.DB) core.BlockerService {
	return blocker.New(provideBlockRuleStore(database))
}

func provideLoanService(database *db.DB, gateway core.ExchangeService) core.LoanService {
	return loan.New(
		gateway,
		provideLoanStore(database),
		provideBorrowStore(database),
		provideBlockerService(database),
		provideFundsAlerter(),
		loan.Config{StepDelay: stepDelay},
	)
}

func provideHedgeService(database *db.DB, gateway core.ExchangeService) core.HedgeService {
	return hedge.New(
		gateway,
		provideHedgeStore(database),
		provideFuturesHedgeStore(database),
		provideBlockerService(database),
		provideOpsAlerter(),
	)
}

func provideTransactionService(database *db.DB, gateway core.ExchangeService) core.TransactionService {
	return transaction.New(
		gateway,
		provideLoanService(database, gateway),
		provideAccountService(),
		provideTransactionStore(database),
		provideFundsAlerter(),
	)
}
