package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ExProbitasFiducia/deno/engine"
	"github.com/ExProbitasFiducia/deno/extension"
	"github.com/ExProbitasFiducia/deno/snapshot"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a script",
	Long: `Execute a script against the runtime extension set.

With --snapshot, the engine starts from a snapshot artifact instead of
re-running the bootstrap scripts. The loading extension set must match the
one the snapshot was built from.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("snapshot", "", "Start from a snapshot artifact")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	code, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	exts := runtimeExtensions()

	var eng *engine.Engine
	if snapPath, _ := cmd.Flags().GetString("snapshot"); snapPath != "" {
		img, err := snapshot.Load(snapPath, snapshot.RuntimeCompressor())
		if err != nil {
			return err
		}
		eng, err = engine.NewFromSnapshot(img, exts)
		if err != nil {
			return err
		}
	} else {
		eng = engine.New()
		if err := eng.Install(exts...); err != nil {
			return err
		}
	}

	if _, err := eng.Execute(args[0], string(code)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := eng.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// runtimeExtensions is the extension set of the general runtime flavor.
func runtimeExtensions() []*extension.Extension {
	return []*extension.Extension{engine.CoreExtension()}
}
