package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var logsLimit int

// logsCmd prints recent operational log entries
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent operational log entries",
	Long:  `Show the most recent operational log entries, newest first.`,
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := logService.Recent(logsLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read logs: %v\n", err)
			os.Exit(1)
		}
		if len(entries) == 0 {
			fmt.Println("No log entries.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tLEVEL\tMODULE\tACTION\tMESSAGE")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"), e.Level, e.Module, e.Action, e.Message)
		}
		w.Flush()
	},
}

func init() {
	logsCmd.Flags().IntVar(&logsLimit, "limit", 50, "maximum entries to show")
}
