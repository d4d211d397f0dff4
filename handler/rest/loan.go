package rest

import (
	"net/http"

	"fundscontroller/core"
	"fundscontroller/handler/param"
	"fundscontroller/handler/render"
)

func loansHandler(loanSrv core.LoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Subaccount string `json:"subaccount"`
			Asset      string `json:"asset"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		loans, err := loanSrv.GetLoansInfo(ctx, params.Subaccount, params.Asset)
		if err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		render.JSON(w, loans)
	}
}

func loanAmountHandler(loanSrv core.LoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Subaccount string `json:"subaccount"`
			Asset      string `json:"asset"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		amount, err := loanSrv.GetCurrentLoanAmountOnAccount(ctx, params.Subaccount, params.Asset)
		if err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		render.JSON(w, render.H{
			"subaccount": params.Subaccount,
			"asset":      params.Asset,
			"amount":     amount,
		})
	}
}
