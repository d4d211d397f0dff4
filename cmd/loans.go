package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var loansCmd = &cobra.Command{
	Use:   "loans <subaccount> <asset>",
	Short: "show active loans of a subaccount",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		loanSrv := provideLoanService(database, provideExchangeService())

		loans, err := loanSrv.GetLoansInfo(ctx, args[0], args[1])
		if err != nil {
			cmd.PrintErrln("list loans failed:", err)
			return
		}
		total, err := loanSrv.GetCurrentLoanAmountOnAccount(ctx, args[0], args[1])
		if err != nil {
			cmd.PrintErrln("sum loans failed:", err)
			return
		}

		bs, _ := json.MarshalIndent(loans, "", "  ")
		cmd.Println(string(bs))
		cmd.Println("total:", total)
	},
}

var hedgesCmd = &cobra.Command{
	Use:   "hedges <subaccount> <asset>",
	Short: "show active hedges of a subaccount",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		hedgeSrv := provideHedgeService(database, provideExchangeService())

		hedges, err := hedgeSrv.GetHedgesInfo(ctx, args[0], args[1])
		if err != nil {
			cmd.PrintErrln("list hedges failed:", err)
			return
		}

		bs, _ := json.MarshalIndent(hedges, "", "  ")
		cmd.Println(string(bs))
	},
}

func init() {
	rootCmd.AddCommand(loansCmd, hedgesCmd)
}
