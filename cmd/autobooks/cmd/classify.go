package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// classifyCmd runs one pass over Pending transactions.
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify pending bank transactions and post journal entries",
	Long: `Run one classification pass over Pending transactions.

Internal transfers and trust settlements post deterministically; unmatched
external flows go to the model in batches. Transactions whose entries fail
to post move to Error for a later retry pass.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		a, err := buildApp(ctx)
		exitOnError(err, "failed to initialize")
		defer a.close()

		sum, err := a.pipeline.Run(ctx)
		exitOnError(err, "classification pass failed")

		a.log.Info("classification pass complete",
			"scanned", sum.Scanned,
			"posted", sum.Posted,
			"failed", sum.Failed,
			"skipped", sum.Skipped)
	},
}

func exitOnError(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}
}
