package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"charity_dao/journal"
)

var (
	eventsAfter int64
	eventsLimit int
	eventsKind  string
	eventsTx    string
)

func init() {
	eventsCmd.Flags().Int64Var(&eventsAfter, "after", 0, "Only show events after this sequence number")
	eventsCmd.Flags().IntVarP(&eventsLimit, "limit", "n", 100, "Maximum number of events to show")
	eventsCmd.Flags().StringVarP(&eventsKind, "kind", "k", "", "Only show events of this kind (st, pc, v, rf, ps)")
	eventsCmd.Flags().StringVar(&eventsTx, "tx", "", "Only show the events of one operation")
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print committed events from the journal",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			reportErrorf("Unable to load config : %v", err)
		}
		if cfg.JournalPath == "" {
			reportErrorf("No journal configured (JournalPath is empty)")
		}
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			reportErrorf("Unable to open journal : %v", err)
		}
		defer j.Close()

		entries, err := queryJournal(j, eventsAfter, eventsLimit, eventsKind, eventsTx)
		if err != nil {
			reportErrorf("Unable to read journal : %v", err)
		}
		printEvents(os.Stdout, entries)
	},
}

// queryJournal picks the narrowest lookup the filters allow.
func queryJournal(j *journal.SQLite, after int64, limit int, kind, tx string) ([]journal.Entry, error) {
	switch {
	case tx != "":
		return j.ByTx(tx)
	case kind != "":
		return j.ByKind(kind)
	default:
		return j.Since(after, limit)
	}
}

func printEvents(w io.Writer, entries []journal.Entry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tAT\tTX\tLINE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Seq, time.Unix(e.At, 0).UTC().Format(time.RFC3339), e.Tx, e.Line)
	}
	tw.Flush()
}
