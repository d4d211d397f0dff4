package rest

import (
	"fmt"
	"net/http"

	"fundscontroller/core"
	"fundscontroller/handler/param"
	"fundscontroller/handler/render"
)

type blockRuleParams struct {
	Subaccount string `json:"subaccount"`
	Market     string `json:"market"`
	Symbol     string `json:"symbol"`
	Kind       string `json:"kind"`
}

func (p blockRuleParams) validate() error {
	if !core.Market(p.Market).Valid() {
		return fmt.Errorf("unknown market %q", p.Market)
	}
	if !core.BlockKind(p.Kind).Valid() {
		return fmt.Errorf("unknown block kind %q", p.Kind)
	}
	if p.Subaccount == "" || p.Symbol == "" {
		return fmt.Errorf("subaccount and symbol are required")
	}
	return nil
}

func blockRulesHandler(blockRuleStr core.BlockRuleStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Subaccount string `json:"subaccount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		rules, err := blockRuleStr.Find(ctx, params.Subaccount)
		if err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		render.JSON(w, rules)
	}
}

func addBlockRuleHandler(blockerSrv core.BlockerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params blockRuleParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}
		if err := params.validate(); err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		if err := blockerSrv.AddBlockRule(ctx, params.Subaccount, core.Market(params.Market), params.Symbol, core.BlockKind(params.Kind)); err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func removeBlockRuleHandler(blockerSrv core.BlockerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params blockRuleParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}
		if err := params.validate(); err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		if err := blockerSrv.RemoveBlockRule(ctx, params.Subaccount, core.Market(params.Market), params.Symbol, core.BlockKind(params.Kind)); err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}
