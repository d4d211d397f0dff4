package cmd

import (
	"time"

	"fundscontroller/core"
	"fundscontroller/store/blockrule"
	"fundscontroller/store/borrow"
	"fundscontroller/store/futures"
	"fundscontroller/store/hedge"
	"fundscontroller/store/loan"
	"fundscontroller/store/transaction"

	"github.com/fox-one/pkg/store/db"
)

// block rules change rarely, a short cache keeps the pre-order gate
// off the database
const blockRuleCacheExp = 30 * time.Second

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideLoanStore(db *db.DB) core.LoanStore {
	return loan.New(db)
}

func provideBorrowStore(db *db.DB) core.BorrowStore {
	return borrow.New(db)
}

func provideHedgeStore(db *db.DB) core.HedgeStore {
	return hedge.New(db)
}

func provideFuturesHedgeStore(db *db.DB) core.FuturesHedgeStore {
	return futures.New(db)
}

func provideTransactionStore(db *db.DB) core.TransactionStore {
	return transaction.New(db)
}

func provideBlockRuleStore(db *db.DB) core.BlockRuleStore {
	return blockrule.Cache(blockrule.New(db), blockRuleCacheExp)
}
