package rest

import (
	"net/http"

	"fundscontroller/core"
	"fundscontroller/handler/param"
	"fundscontroller/handler/render"
)

func hedgesHandler(hedgeSrv core.HedgeService) http.HandlerFunc {
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

		hedges, err := hedgeSrv.GetHedgesInfo(ctx, params.Subaccount, params.Asset)
		if err != nil {
			render.BadRequest(w, codeOf(err), err)
			return
		}

		render.JSON(w, hedges)
	}
}
