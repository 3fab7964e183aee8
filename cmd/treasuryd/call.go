package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"charity_dao/sdk"
)

var callAccount string

func init() {
	callCmd.Flags().StringVarP(&callAccount, "account", "a", "", "Acting account")
	callCmd.MarkFlagRequired("account")
}

var callCmd = &cobra.Command{
	Use:   "call <action> <payload>",
	Short: "Run one treasury action against the local store",
	Long: "Runs a single mutating action with a pipe-delimited payload, e.g.\n" +
		"  treasuryd call -a alice stake 1\n" +
		"  treasuryd call -a alice proposal_create '0.3|charity|winter coats'\n" +
		"  treasuryd call -a bob proposal_vote '0|true'\n" +
		"  treasuryd call -a bob proposal_pay 0",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		n, err := openNode(cfg)
		if err != nil {
			return err
		}
		defer n.Close()

		res, err := n.engine.Call(sdk.Address(callAccount), args[0], args[1])
		if err != nil {
			return err
		}
		if res != "" {
			fmt.Println(res)
		}
		return nil
	},
}
