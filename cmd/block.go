package cmd

import (
	"encoding/json"

	"fundscontroller/core"

	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "manage trading block rules",
}

var blockAddCmd = &cobra.Command{
	Use:   "add <subaccount> <market> <symbol> <kind>",
	Short: "block trading of an asset or pair on a market",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		blockerSrv := provideBlockerService(database)
		if err := blockerSrv.AddBlockRule(ctx, args[0], core.Market(args[1]), args[2], core.BlockKind(args[3])); err != nil {
			cmd.PrintErrln("add block rule failed:", err)
			return
		}

		cmd.Println("blocked", args[3], args[2], "on", args[1], "for", args[0])
	},
}

var blockRemoveCmd = &cobra.Command{
	Use:   "remove <subaccount> <market> <symbol> <kind>",
	Short: "lift a trading block",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		blockerSrv := provideBlockerService(database)
		if err := blockerSrv.RemoveBlockRule(ctx, args[0], core.Market(args[1]), args[2], core.BlockKind(args[3])); err != nil {
			cmd.PrintErrln("remove block rule failed:", err)
			return
		}

		cmd.Println("unblocked", args[3], args[2], "on", args[1], "for", args[0])
	},
}

var blockListCmd = &cobra.Command{
	Use:   "list <subaccount>",
	Short: "list block rules of a subaccount",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		rules, err := provideBlockRuleStore(database).Find(ctx, args[0])
		if err != nil {
			cmd.PrintErrln("list block rules failed:", err)
			return
		}

		bs, _ := json.MarshalIndent(rules, "", "  ")
		cmd.Println(string(bs))
	},
}

func init() {
	blockCmd.AddCommand(blockAddCmd, blockRemoveCmd, blockListCmd)
	rootCmd.AddCommand(blockCmd)
}
