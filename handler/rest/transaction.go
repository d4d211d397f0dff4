package rest

import (
	"net/http"

	"fundscontroller/core"
	"fundscontroller/handler/param"
	"fundscontroller/handler/render"
)

const defaultTransactionLimit = 500

func transactionsHandler(transactionStr core.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Limit int `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		limit := params.Limit
		if limit <= 0 {
			limit = defaultTransactionLimit
		}

		transactions, err := transactionStr.List(ctx, limit)
		if err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		render.JSON(w, transactions)
	}
}
