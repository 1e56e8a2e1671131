// Package cmd provides CLI commands for autobooks.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "autobooks",
	Short: "AI-assisted double-entry bookkeeping for bank transactions",
	Long: `autobooks classifies raw bank transactions from the company's five
linked accounts into balanced double-entry journal postings.

Deterministic rules resolve internal transfers, trust settlements and
collection-fee events; everything else goes to a Gemini model in batches,
guarded by a confidence floor.

Example:
  autobooks classify
  autobooks retry
  autobooks serve`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; configuration falls back to the process env.
		if envFile != "" {
			_ = godotenv.Load(envFile)
		} else {
			_ = godotenv.Load()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default .env)")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(retryCmd)
	rootCmd.AddCommand(serveCmd)
}
