package cmd

import (
	"fundscontroller/core"
	"fundscontroller/pkg/number"

	"github.com/spf13/cobra"
)

var repayCmd = &cobra.Command{
	Use:   "repay <subaccount> <exchange> <asset> <amount>",
	Short: "repay borrowed asset from a subaccount's margin wallet",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		loanSrv := provideLoanService(database, provideExchangeService())

		amount := number.Decimal(args[3])
		if err := loanSrv.Repay(ctx, args[0], core.Exchange(args[1]), args[2], amount); err != nil {
			cmd.PrintErrln("repay failed:", err)
			return
		}

		cmd.Println("repaid", amount, args[2], "on", args[0])
	},
}

func init() {
	rootCmd.AddCommand(repayCmd)
}
