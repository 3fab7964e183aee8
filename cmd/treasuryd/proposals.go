package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "Print every proposal in the store",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			reportErrorf("Unable to load config : %v", err)
		}
		n, err := openNode(cfg)
		if err != nil {
			reportErrorf("Unable to open treasury : %v", err)
		}
		defer n.Close()

		all, err := n.engine.ListProposals()
		if err != nil {
			reportErrorf("Unable to list proposals : %v", err)
		}
		treasury, err := n.engine.TreasuryBalance()
		if err != nil {
			reportErrorf("Unable to read treasury : %v", err)
		}

		fmt.Printf("Treasury: %s\n", treasury)
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "INDEX\tAMOUNT\tRECIPIENT\tFOR\tAGAINST\tSTATE\tVOTING ENDS\tDESCRIPTION")
		for _, p := range all {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
				p.ID, p.Amount, p.Recipient, p.VotesFor, p.VotesAgainst, p.State(),
				time.Unix(p.VotingEndsAt, 0).UTC().Format(time.RFC3339), p.Description)
		}
		tw.Flush()
	},
}
