package cmd

import (
	"fundscontroller/core"
	"fundscontroller/pkg/number"

	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <from> <from-exchange> <to> <to-exchange> <asset> <amount>",
	Short: "transfer an asset between subaccounts, loan portion included",
	Args:  cobra.ExactArgs(6),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		transactionSrv := provideTransactionService(database, provideExchangeService())

		fromWalletType, _ := cmd.Flags().GetString("from-wallet")
		toWalletType, _ := cmd.Flags().GetString("to-wallet")
		fromWallet := walletOf(core.Exchange(args[1]), fromWalletType)
		toWallet := walletOf(core.Exchange(args[3]), toWalletType)

		amount := number.Decimal(args[5])
		if err := transactionSrv.Transfer(ctx, args[0], fromWallet, args[2], toWallet, args[4], amount); err != nil {
			cmd.PrintErrln("transfer failed:", err)
			return
		}

		cmd.Println("transferred", amount, args[4], "from", args[0], "to", args[2])
	},
}

// walletOf empty type means the exchange's margin wallet
func walletOf(exchange core.Exchange, walletType string) core.Wallet {
	if walletType == "" {
		return core.MarginWallet(exchange)
	}
	return core.Wallet{Exchange: exchange, Type: core.WalletType(walletType)}
}

func init() {
	rootCmd.AddCommand(transferCmd)
	transferCmd.Flags().String("from-wallet", "", "source wallet type, default margin")
	transferCmd.Flags().String("to-wallet", "", "destination wallet type, default margin")
}
