package cmd

import (
	"fundscontroller/core"
	"fundscontroller/pkg/number"

	"github.com/spf13/cobra"
)

var hedgeCmd = &cobra.Command{
	Use:   "hedge <subaccount> <exchange> <asset> <amount>",
	Short: "open a futures short hedged with a spot buy",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		hedgeSrv := provideHedgeService(database, provideExchangeService())

		amount := number.Decimal(args[3])
		if err := hedgeSrv.CreateHedge(ctx, args[0], core.Exchange(args[1]), args[2], amount); err != nil {
			cmd.PrintErrln("create hedge failed:", err)
			return
		}

		cmd.Println("hedged", amount, args[2], "on", args[0])
	},
}

func init() {
	rootCmd.AddCommand(hedgeCmd)
}
