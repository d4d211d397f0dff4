package rest

import (
	"errors"
	"net/http"

	"fundscontroller/core"
	"fundscontroller/handler/render"

	"github.com/go-chi/chi"
)

// Handle read-only views over the ledger plus block rule management.
// Fund movements themselves stay on the cli, an open mutation endpoint
// for money is not worth the convenience.
func Handle(
	loanSrv core.LoanService,
	hedgeSrv core.HedgeService,
	transactionStr core.TransactionStore,
	blockRuleStr core.BlockRuleStore,
	blockerSrv core.BlockerService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/loans", loansHandler(loanSrv))
	router.Get("/loans/amount", loanAmountHandler(loanSrv))
	router.Get("/hedges", hedgesHandler(hedgeSrv))
	router.Get("/transactions", transactionsHandler(transactionStr))
	router.Get("/blocks", blockRulesHandler(blockRuleStr))
	router.Post("/blocks", addBlockRuleHandler(blockerSrv))
	router.Delete("/blocks", removeBlockRuleHandler(blockerSrv))

	return router
}
