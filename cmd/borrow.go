package cmd

import (
	"fundscontroller/core"
	"fundscontroller/pkg/number"

	"github.com/spf13/cobra"
)

var borrowCmd = &cobra.Command{
	Use:   "borrow <subaccount> <exchange> <asset> <amount>",
	Short: "borrow an asset on a subaccount's margin wallet",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		loanSrv := provideLoanService(database, provideExchangeService())

		amount := number.Decimal(args[3])
		if err := loanSrv.Borrow(ctx, args[0], core.Exchange(args[1]), args[2], amount); err != nil {
			cmd.PrintErrln("borrow failed:", err)
			return
		}

		cmd.Println("borrowed", amount, args[2], "on", args[0])
	},
}

func init() {
	rootCmd.AddCommand(borrowCmd)
}
