package cmd

import (
	"github.com/spf13/cobra"
)

// retryCmd reprocesses transactions that failed their first pass.
var retryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Reprocess transactions that failed classification",
	Long: `Run one pass over Error transactions.

The model sees each transaction's previous classification and ledger error
and answers with the stronger retry tier. A transaction that fails again
moves to RetryError and needs manual review.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		a, err := buildApp(ctx)
		exitOnError(err, "failed to initialize")
		defer a.close()

		sum, err := a.pipeline.Retry(ctx)
		exitOnError(err, "retry pass failed")

		a.log.Info("retry pass complete",
			"scanned", sum.Scanned,
			"posted", sum.Posted,
			"failed", sum.Failed,
			"skipped", sum.Skipped)
	},
}
