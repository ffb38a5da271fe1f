package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ExProbitasFiducia/deno/engine"
)

var rootCmd = &cobra.Command{
	Use:   "deno",
	Short: "Sandboxed script runtime",
	Long: `deno - A sandboxed script-execution runtime.

Extensions (native ops plus bootstrap scripts) are composed into one engine
instance with validated, exactly-once initialization. A warmed engine can be
frozen to a compressed snapshot artifact and restored at startup.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			log, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			engine.SetLogger(log)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
